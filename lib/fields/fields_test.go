package fields

import (
	"errors"
	"testing"

	"github.com/phil-mansfield/swarm/lib/eq"
)

func TestNewStore(t *testing.T) {
	specs := []Spec{{"weight", 1}, {"velocity", 3}}
	s, err := NewStore(4, specs)
	if err != nil {
		t.Fatalf("Expected no error, got '%v'.", err)
	}

	if s.Len() != 4 {
		t.Errorf("Expected Len() = 4, got %d.", s.Len())
	}
	if !eq.Strings(s.Names(), []string{"weight", "velocity"}) {
		t.Errorf("Expected names [weight velocity], got %v.", s.Names())
	}

	w, err := s.Get("weight")
	if err != nil {
		t.Fatalf("Expected no error, got '%v'.", err)
	}
	if w.Len() != 4 || w.BlockSize() != 1 || len(w.Data()) != 4 {
		t.Errorf("Expected a 4x1 field, got Len() = %d, BlockSize() = %d, len(Data()) = %d.",
			w.Len(), w.BlockSize(), len(w.Data()))
	}

	v, err := s.Get("velocity")
	if err != nil {
		t.Fatalf("Expected no error, got '%v'.", err)
	}
	if v.Len() != 4 || v.BlockSize() != 3 || len(v.Data()) != 12 {
		t.Errorf("Expected a 4x3 field, got Len() = %d, BlockSize() = %d, len(Data()) = %d.",
			v.Len(), v.BlockSize(), len(v.Data()))
	}
	if !eq.Float64s(v.Data(), make([]float64, 12)) {
		t.Errorf("Expected a zeroed field, got %v.", v.Data())
	}
}

func TestNewStoreErrors(t *testing.T) {
	tests := []struct {
		name  string
		specs []Spec
	}{
		{"duplicate name", []Spec{{"a", 1}, {"a", 2}}},
		{"empty name", []Spec{{"", 1}}},
		{"zero block size", []Spec{{"a", 0}}},
		{"negative block size", []Spec{{"a", -1}}},
	}

	for i, test := range tests {
		if _, err := NewStore(4, test.specs); err == nil {
			t.Errorf("%d) Expected an error for the '%s' case.", i, test.name)
		}
	}

	_, err := NewStore(4, []Spec{{"a", 1}, {"a", 1}})
	var dupErr *ErrDuplicateField
	if !errors.As(err, &dupErr) {
		t.Errorf("Expected an ErrDuplicateField, got '%v'.", err)
	} else if dupErr.Name != "a" {
		t.Errorf("Expected the duplicate name 'a', got '%s'.", dupErr.Name)
	}
}

func TestUnknownField(t *testing.T) {
	s, err := NewStore(4, []Spec{{"weight", 1}})
	if err != nil {
		t.Fatalf("Expected no error, got '%v'.", err)
	}

	_, err = s.Get("mass")
	var unknownErr *ErrUnknownField
	if !errors.As(err, &unknownErr) {
		t.Errorf("Expected an ErrUnknownField, got '%v'.", err)
	} else if unknownErr.Name != "mass" {
		t.Errorf("Expected the unknown name 'mass', got '%s'.", unknownErr.Name)
	}
}

func TestSetAndBlock(t *testing.T) {
	s, err := NewStore(3, []Spec{{"velocity", 2}})
	if err != nil {
		t.Fatalf("Expected no error, got '%v'.", err)
	}
	v, err := s.Get("velocity")
	if err != nil {
		t.Fatalf("Expected no error, got '%v'.", err)
	}

	if err := v.Set(1, []float64{4, 8}); err != nil {
		t.Fatalf("Expected no error, got '%v'.", err)
	}
	if !eq.Float64s(v.Block(1), []float64{4, 8}) {
		t.Errorf("Expected block 1 = [4 8], got %v.", v.Block(1))
	}
	if !eq.Float64s(v.Data(), []float64{0, 0, 4, 8, 0, 0}) {
		t.Errorf("Expected data [0 0 4 8 0 0], got %v.", v.Data())
	}

	v.Block(2)[0] = 15
	if !eq.Float64s(v.Block(2), []float64{15, 0}) {
		t.Errorf("Expected block 2 = [15 0], got %v.", v.Block(2))
	}

	if err := v.Set(0, []float64{1}); err == nil {
		t.Errorf("Expected an error for a mis-sized value block.")
	}
}

func TestBorrowGuard(t *testing.T) {
	s, err := NewStore(2, []Spec{{"weight", 1}})
	if err != nil {
		t.Fatalf("Expected no error, got '%v'.", err)
	}

	f, err := s.Acquire("weight")
	if err != nil {
		t.Fatalf("Expected no error, got '%v'.", err)
	}
	if _, err := s.Acquire("weight"); err == nil {
		t.Errorf("Expected an error on a second acquire.")
	}
	f.Set(0, []float64{3})
	if err := s.Release("weight"); err != nil {
		t.Errorf("Expected no error, got '%v'.", err)
	}
	if err := s.Release("weight"); err == nil {
		t.Errorf("Expected an error on a second release.")
	}
	if _, err := s.Acquire("weight"); err != nil {
		t.Errorf("Expected re-acquire to succeed, got '%v'.", err)
	}
	s.Release("weight")

	if _, err := s.Acquire("mass"); err == nil {
		t.Errorf("Expected an error acquiring an unknown field.")
	}
}

func TestWithReleases(t *testing.T) {
	s, err := NewStore(2, []Spec{{"weight", 1}})
	if err != nil {
		t.Fatalf("Expected no error, got '%v'.", err)
	}

	err = s.With("weight", func(f *Field) error {
		return f.Set(1, []float64{16})
	})
	if err != nil {
		t.Fatalf("Expected no error, got '%v'.", err)
	}
	f, _ := s.Get("weight")
	if !eq.Float64s(f.Data(), []float64{0, 16}) {
		t.Errorf("Expected data [0 16], got %v.", f.Data())
	}

	// The field must be released after With returns, even when the closure
	// fails or panics.
	err = s.With("weight", func(f *Field) error {
		return errors.New("closure failed")
	})
	if err == nil {
		t.Fatalf("Expected the closure's error to be returned.")
	}
	if _, err := s.Acquire("weight"); err != nil {
		t.Errorf("Expected the field to be released after an error, got '%v'.", err)
	}
	s.Release("weight")

	func() {
		defer func() { recover() }()
		s.With("weight", func(f *Field) error { panic("boom") })
	}()
	if _, err := s.Acquire("weight"); err != nil {
		t.Errorf("Expected the field to be released after a panic, got '%v'.", err)
	}
	s.Release("weight")

	if err := s.With("mass", func(f *Field) error { return nil }); err == nil {
		t.Errorf("Expected an error for an unknown field.")
	}
}
