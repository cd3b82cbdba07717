package device

import (
	"testing"

	"github.com/momentics/mbloader/api"
)

type fakeBuffer struct {
	data   []byte
	pinned bool
}

var _ api.Buffer = (*fakeBuffer)(nil)

func (b *fakeBuffer) Data() []byte                      { return b.data }
func (b *fakeBuffer) Cap() int                          { return len(b.data) }
func (b *fakeBuffer) Count() int                        { return 1 }
func (b *fakeBuffer) AppendItem(p []byte) (int, bool)    { return 0, false }
func (b *fakeBuffer) Item(i int) ([]byte, bool)          { return b.data, true }
func (b *fakeBuffer) Reset()                             {}
func (b *fakeBuffer) NUMANode() int                      { return -1 }
func (b *fakeBuffer) Pinned() bool                       { return b.pinned }

func TestFakeGPUCopyDataPanicsOnUnpinnedSource(t *testing.T) {
	g := NewFakeGPU(8, 4)
	defer func() {
		if recover() == nil {
			t.Fatal("CopyData must panic on an unpinned source buffer")
		}
	}()
	g.CopyData(0, &fakeBuffer{data: make([]byte, 8), pinned: false})
}

func TestFakeGPUCopyDataAcceptsPinnedSource(t *testing.T) {
	g := NewFakeGPU(8, 4)
	src := &fakeBuffer{data: []byte{1, 2, 3, 4, 5, 6, 7, 8}, pinned: true}
	if err := g.CopyData(0, src); err != nil {
		t.Fatalf("CopyData: %v", err)
	}
	if g.CopyDataCalls != 1 {
		t.Fatalf("CopyDataCalls = %d, want 1", g.CopyDataCalls)
	}
}

func TestFakeGPUCopyLabelsPanicsOnUnpinnedSource(t *testing.T) {
	g := NewFakeGPU(8, 4)
	defer func() {
		if recover() == nil {
			t.Fatal("CopyLabels must panic on an unpinned source buffer")
		}
	}()
	g.CopyLabels(0, &fakeBuffer{data: make([]byte, 4), pinned: false})
}
