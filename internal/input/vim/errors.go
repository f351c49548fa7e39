package vim

import "errors"

// ErrInvalidKeys is returned when a key sequence does not form a command.
var ErrInvalidKeys = errors.New("invalid key sequence")
