package task

import "testing"

func TestSequence_Next(t *testing.T) {
	seq := NewSequence()

	for want := 1; want <= 3; want++ {
		if got := seq.Next(); got != want {
			t.Fatalf("expected id %d, got %d", want, got)
		}
	}
}

func TestSequence_Observe(t *testing.T) {
	seq := NewSequence()
	seq.Next()

	seq.Observe(10)
	if got := seq.Next(); got != 11 {
		t.Errorf("expected 11 after observing 10, got %d", got)
	}

	seq.Observe(5)
	if got := seq.Last(); got != 11 {
		t.Errorf("expected observing a smaller id to be ignored, last = %d", got)
	}
}
