// File: internal/pipeline/errors.go
// Author: momentics <momentics@gmail.com>
//
// Wraps fatal stage errors into api.Error before they reach the Loader,
// so Loader.Err() returns the structured condition callers can inspect
// by Code/Context instead of a plain formatted string.

package pipeline

import "github.com/momentics/mbloader/api"

// asStructuredError wraps err as an api.Error carrying which stage
// raised it, unless err is already an *api.Error, which is returned
// unchanged.
func asStructuredError(err error, stage string) *api.Error {
	if se, ok := err.(*api.Error); ok {
		return se
	}
	return api.NewError(api.ErrCodeInternal, err.Error()).WithContext("stage", stage)
}
