// File: media/identity.go
// Author: momentics <momentics@gmail.com>
//
// Identity is a reference api.Media that copies raw bytes straight
// through, zero-padding or cropping to the decoded datum width. It
// exists to exercise the decode path without a real image/audio codec,
// mirroring the original loader's "raw" media path used by its tests.

package media

import "github.com/momentics/mbloader/api"

// Identity copies src into dst, zero-padding short items and cropping
// long ones so every decoded datum is exactly len(dst) bytes.
type Identity struct{}

var _ api.Media = (*Identity)(nil)

// Transform implements api.Media.
func (Identity) Transform(src, dst []byte) error {
	n := copy(dst, src)
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
	return nil
}
