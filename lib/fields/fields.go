/*package fields stores named per-point data blocks for a point cloud. Every
field in a Store has the same number of points, indexed in the same order as
the cloud's accepted points, and a fixed number of scalar components per
point (the "block size") chosen when the Store is created. Values start
zeroed and are filled in by the caller after construction.*/
package fields

import (
	"fmt"
)

// ErrUnknownField indicates an access to a field name that was not
// registered when the Store was created.
type ErrUnknownField struct {
	Name string
}

func (e *ErrUnknownField) Error() string {
	return fmt.Sprintf("no field named '%s' was registered", e.Name)
}

// ErrDuplicateField indicates that the same field name was requested twice.
type ErrDuplicateField struct {
	Name string
}

func (e *ErrDuplicateField) Error() string {
	return fmt.Sprintf("the field name '%s' was requested more than once", e.Name)
}

// Spec describes one requested field: its name and the number of scalar
// components stored per point.
type Spec struct {
	Name      string
	BlockSize int
}

// Field is one named block array. Its data has Len()*BlockSize() values,
// with point i's block at [i*BlockSize(), (i+1)*BlockSize()).
type Field struct {
	name      string
	blockSize int
	data      []float64
	borrowed  bool
}

// Name returns the field's registered name.
func (f *Field) Name() string { return f.name }

// Len returns the number of points the field stores blocks for.
func (f *Field) Len() int { return len(f.data) / f.blockSize }

// BlockSize returns the number of scalar components per point.
func (f *Field) BlockSize() int { return f.blockSize }

// Data returns the underlying flat array.
func (f *Field) Data() []float64 { return f.data }

// Block returns a mutable view of point i's block.
func (f *Field) Block(i int) []float64 {
	return f.data[i*f.blockSize : (i+1)*f.blockSize]
}

// Set copies vals into point i's block. vals must have exactly BlockSize()
// values.
func (f *Field) Set(i int, vals []float64) error {
	if len(vals) != f.blockSize {
		return fmt.Errorf("Field '%s' has a block size of %d, but %d values were given.", f.name, f.blockSize, len(vals))
	}
	copy(f.Block(i), vals)
	return nil
}

// Store is a collection of Fields of equal length. It belongs to a single
// point cloud and, like the cloud, is only ever mutated by the process that
// built it, so no internal locking is done.
type Store struct {
	n      int
	order  []string
	fields map[string]*Field
}

// NewStore creates a Store holding one field per spec, each with n zeroed
// blocks. Names must be unique and non-empty, and block sizes positive.
func NewStore(n int, specs []Spec) (*Store, error) {
	s := &Store{n: n, fields: map[string]*Field{}}
	for _, spec := range specs {
		if spec.Name == "" {
			return nil, fmt.Errorf("A field was requested with an empty name.")
		}
		if spec.BlockSize < 1 {
			return nil, fmt.Errorf("Field '%s' was requested with non-positive block size %d.", spec.Name, spec.BlockSize)
		}
		if _, ok := s.fields[spec.Name]; ok {
			return nil, &ErrDuplicateField{Name: spec.Name}
		}
		s.fields[spec.Name] = &Field{
			name:      spec.Name,
			blockSize: spec.BlockSize,
			data:      make([]float64, n*spec.BlockSize),
		}
		s.order = append(s.order, spec.Name)
	}
	return s, nil
}

// Len returns the number of points each field stores blocks for.
func (s *Store) Len() int { return s.n }

// Names returns the field names in registration order.
func (s *Store) Names() []string {
	return append([]string{}, s.order...)
}

// Get returns the named field without borrow tracking. Use With (or
// Acquire/Release) when access needs to be scoped.
func (s *Store) Get(name string) (*Field, error) {
	f, ok := s.fields[name]
	if !ok {
		return nil, &ErrUnknownField{Name: name}
	}
	return f, nil
}

// Acquire returns the named field and marks it borrowed. A field may only
// have one borrower at a time; Release returns it.
func (s *Store) Acquire(name string) (*Field, error) {
	f, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	if f.borrowed {
		return nil, fmt.Errorf("Field '%s' is already acquired.", name)
	}
	f.borrowed = true
	return f, nil
}

// Release returns a field previously obtained through Acquire.
func (s *Store) Release(name string) error {
	f, err := s.Get(name)
	if err != nil {
		return err
	}
	if !f.borrowed {
		return fmt.Errorf("Field '%s' is not acquired.", name)
	}
	f.borrowed = false
	return nil
}

// With acquires the named field, passes it to fn, and releases it on every
// exit path, including a panic inside fn.
func (s *Store) With(name string, fn func(f *Field) error) error {
	f, err := s.Acquire(name)
	if err != nil {
		return err
	}
	defer s.Release(name)
	return fn(f)
}
