package asv

import "errors"

// ErrInvalidInput is returned when a vehicle is constructed with a
// non-finite or non-positive step duration or limit.
var ErrInvalidInput = errors.New("asv: invalid input")
