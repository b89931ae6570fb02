package service

import "errors"

// ErrInvalidInput is returned when a required field is missing or a value is
// outside its allowed set. Wrapped errors name the offending field.
var ErrInvalidInput = errors.New("invalid_input")
