package shared

import "fmt"

// Turn is a value object representing a game turn number
type Turn struct {
	value int
}

// NewTurn creates a new Turn value object
func NewTurn(n int) (Turn, error) {
	if n <= 0 {
		return Turn{}, NewValidationError("turn", "must be positive")
	}
	return Turn{value: n}, nil
}

// MustNewTurn creates a new Turn value object, panicking if invalid
// Use this only when you're certain the number is valid (e.g., from database)
func MustNewTurn(n int) Turn {
	turn, err := NewTurn(n)
	if err != nil {
		panic(err)
	}
	return turn
}

// Value returns the integer value of the Turn
func (t Turn) Value() int {
	return t.value
}

// String returns a string representation of the Turn
func (t Turn) String() string {
	return fmt.Sprintf("%d", t.value)
}

// Next returns the following turn
func (t Turn) Next() Turn {
	return Turn{value: t.value + 1}
}

// IsZero checks if the Turn is the zero value (uninitialized)
func (t Turn) IsZero() bool {
	return t.value == 0
}
