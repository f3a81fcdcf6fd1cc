package grid

import (
	"errors"
	"fmt"

	"github.com/san-kum/ballpit/internal/body"
)

// ErrInvalidDimensions indicates non-positive bounds or cell size.
var ErrInvalidDimensions = errors.New("grid: width, height and cell size must be positive")

// InvariantError describes a broken body/cell back-reference. It signals a
// bug in grid maintenance, never a recoverable condition.
type InvariantError struct {
	Body    body.ID
	Cell    int32
	Slot    int32
	Message string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("grid: body %d (cell=%d slot=%d): %s", e.Body, e.Cell, e.Slot, e.Message)
}
