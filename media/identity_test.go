package media

import "testing"

func TestIdentityCopiesAndPads(t *testing.T) {
	var id Identity
	dst := make([]byte, 4)
	if err := id.Transform([]byte{1, 2}, dst); err != nil {
		t.Fatalf("Transform: %v", err)
	}
	want := []byte{1, 2, 0, 0}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("Transform() = %v, want %v", dst, want)
		}
	}
}

func TestIdentityCrops(t *testing.T) {
	var id Identity
	dst := make([]byte, 2)
	if err := id.Transform([]byte{1, 2, 3, 4}, dst); err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if dst[0] != 1 || dst[1] != 2 {
		t.Fatalf("Transform() = %v, want [1 2]", dst)
	}
}
