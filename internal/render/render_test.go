package render

import "testing"

func TestNew(t *testing.T) {
	t.Run("fitz", func(t *testing.T) {
		r, err := New("fitz")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := r.(*FitzRenderer); !ok {
			t.Errorf("expected *FitzRenderer, got %T", r)
		}
	})

	t.Run("empty defaults to fitz", func(t *testing.T) {
		r, err := New("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := r.(*FitzRenderer); !ok {
			t.Errorf("expected *FitzRenderer, got %T", r)
		}
	})

	t.Run("poppler", func(t *testing.T) {
		r, err := New("poppler")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := r.(*PopplerRenderer); !ok {
			t.Errorf("expected *PopplerRenderer, got %T", r)
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		if _, err := New("ghostscript"); err == nil {
			t.Error("expected error for unknown backend")
		}
	})
}
