package pcf8563

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned, without any bus access, when an argument is outside the range of its register field.
var ErrInvalidInput = errors.New("pcf8563: invalid input")

// BusError wraps a failed I2C transaction. The register contents are unknown after a failed write.
type BusError struct {
	Op       string // "read" or "write"
	Register uint8  // first register of the transaction
	Err      error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("pcf8563: %s register 0x%02X: %v", e.Op, e.Register, e.Err)
}

func (e *BusError) Unwrap() error {
	return e.Err
}
