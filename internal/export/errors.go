package export

import "errors"

// Caller protocol errors. They indicate a broken scene walker and are not
// recoverable within the session.
var (
	ErrStackUnderflow       = errors.New("transform stack underflow: pop without matching push")
	ErrUnbalancedTransforms = errors.New("transform stack not balanced at end of export")
	ErrNotStarted           = errors.New("export session not started")
	ErrAlreadyStarted       = errors.New("export session already started")
	ErrSessionClosed        = errors.New("export session closed")
	ErrUnknownAttribute     = errors.New("unknown transform attribute")
	ErrAttributeArity       = errors.New("wrong number of attribute values")
)
