package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/momentics/mbloader/api"
)

type failingReader struct{}

func (failingReader) Read(api.BufferPair) error { return errors.New("archive corrupt") }
func (failingReader) Reset() error              { return nil }
func (failingReader) ItemCount() int            { return -1 }

func TestReadStageWrapsFatalErrorAsStructured(t *testing.T) {
	pool := newTestBufPool(t, 4, 16, 4)

	var got error
	r := NewReadStage(failingReader{}, pool, -1, func(err error) { got = err })
	r.Start()

	deadline := time.Now().Add(3 * time.Second)
	for !r.Stopped() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for ReadStage to report a fatal error")
		}
		time.Sleep(time.Millisecond)
	}

	se, ok := got.(*api.Error)
	if !ok {
		t.Fatalf("onFatal received %T, want *api.Error", got)
	}
	if se.Code != api.ErrCodeInternal {
		t.Fatalf("Code = %v, want ErrCodeInternal", se.Code)
	}
	if se.Context["stage"] != "read" {
		t.Fatalf("Context[stage] = %v, want \"read\"", se.Context["stage"])
	}
}
