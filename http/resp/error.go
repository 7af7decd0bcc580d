package resp

import "errors"

var (
	ErrNoApp       = errors.New("no app")
	ErrNotWritable = errors.New("response not writable")
)
