package seating

import "errors"

var ErrValidation = errors.New("validation error")
