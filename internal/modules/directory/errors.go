package directory

import "errors"

var ErrValidation = errors.New("validation error")
