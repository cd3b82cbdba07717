package device

import "testing"

func TestCPUCopyDataAndLabelsStageBySlot(t *testing.T) {
	c := NewCPU(4, 2)
	data := &fakeBuffer{data: []byte{1, 2, 3, 4}}
	labels := &fakeBuffer{data: []byte{9, 9}}

	if err := c.CopyData(0, data); err != nil {
		t.Fatalf("CopyData: %v", err)
	}
	if err := c.CopyLabels(0, labels); err != nil {
		t.Fatalf("CopyLabels: %v", err)
	}
	if string(c.DataSlot(0)) != string(data.data) {
		t.Fatal("DataSlot(0) does not reflect staged data")
	}
	if string(c.LabelSlot(0)) != string(labels.data) {
		t.Fatal("LabelSlot(0) does not reflect staged labels")
	}
}
