package search

import "errors"

// ErrUnsupportedMode is returned when an enabled mode name matches no known
// implementation. Unknown or disabled mode names never produce this error;
// they fall back to exact search instead.
var ErrUnsupportedMode = errors.New("unsupported search mode")
