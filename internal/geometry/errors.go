package geometry

import "fmt"

// IndexError reports a vertex or part index outside the current bounds.
type IndexError struct {
	What  string // "vertex" or "part"
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s index %d out of range [0,%d)", e.What, e.Index, e.Len)
}

// ErrInvalidRecord indicates a record whose part table violates the
// ordering rules.
type ErrInvalidRecord struct {
	Kind   Kind
	Reason string
}

func (e *ErrInvalidRecord) Error() string {
	return fmt.Sprintf("invalid %v record: %s", e.Kind, e.Reason)
}
