package containers

import "testing"

func TestNewFrameRingEmpty(t *testing.T) {
	if _, err := NewFrameRing([]int{}); err == nil {
		t.Error("expected error for empty ring")
	}
}

func TestForFrameRotation(t *testing.T) {
	ring, err := NewFrameRing([]string{"a", "b", "c"})
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		frame uint32
		want  string
	}{
		{0, "a"},
		{1, "b"},
		{2, "c"},
		{3, "a"},
		{4, "b"},
		{299, "c"},
	}
	for _, c := range cases {
		if got := ring.ForFrame(c.frame); got != c.want {
			t.Errorf("ForFrame(%d) = %q, want %q", c.frame, got, c.want)
		}
	}
}

func TestRingCopiesInput(t *testing.T) {
	src := []int{1, 2}
	ring, err := NewFrameRing(src)
	if err != nil {
		t.Fatal(err)
	}
	src[0] = 99
	if ring.ForFrame(0) != 1 {
		t.Error("ring should not alias the caller's slice")
	}
	if ring.Len() != 2 {
		t.Errorf("Len = %d, want 2", ring.Len())
	}
}
