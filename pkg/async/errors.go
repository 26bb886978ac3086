package async

import "errors"

// ErrPoolClosed is returned when submitting to a closed pool.
var ErrPoolClosed = errors.New("async: pool is closed")
