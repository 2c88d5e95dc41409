package contract

import "errors"

// ErrDuplicate is returned by Create when a unique index rejects the row.
var ErrDuplicate = errors.New("duplicate record")
