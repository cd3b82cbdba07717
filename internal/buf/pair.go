// File: internal/buf/pair.go
// Author: momentics <momentics@gmail.com>
//
// BufferPair couples a data half and a target half that travel together
// through the pipeline. The target half always holds exactly batchSize
// items of targetSize bytes; the data half holds up to batchSize items
// of variable size (compressed) or exactly batchSize*datumSize bytes
// once decoded.

package buf

import "github.com/momentics/mbloader/api"

// Pair implements api.BufferPair.
type Pair struct {
	data   *Buffer
	target *Buffer
}

var _ api.BufferPair = (*Pair)(nil)

func NewPair(data, target *Buffer) *Pair {
	return &Pair{data: data, target: target}
}

func (p *Pair) Data() api.Buffer   { return p.data }
func (p *Pair) Target() api.Buffer { return p.target }

// DataBuf and TargetBuf return the concrete *Buffer, for pipeline code
// that needs the extra raw-offset access api.Buffer intentionally omits.
func (p *Pair) DataBuf() *Buffer   { return p.data }
func (p *Pair) TargetBuf() *Buffer { return p.target }

// Reset rewinds both halves for reuse.
func (p *Pair) Reset() {
	p.data.Reset()
	p.target.Reset()
}
