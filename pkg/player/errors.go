package player

import "emperror.dev/errors"

var (
	ErrResourceNotFound  = errors.New("resource not found")
	ErrSerialization     = errors.New("cannot serialize player parameters")
	ErrUnrecognizedEvent = errors.New("unrecognized player event")
)
