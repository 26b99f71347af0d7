package legs

import "errors"

var (
	// ErrMissingFix reports a leg variant whose required Fix/Start
	// pointer is nil at build time.
	ErrMissingFix = errors.New("legs: required fix is nil")
	// ErrMissingRadial reports a CR/VR leg with a nil Radial.Origin.
	ErrMissingRadial = errors.New("legs: required radial origin is nil")
	// ErrBadSequence reports a leg whose Seq does not strictly increase
	// over the previous leg in the same transition.
	ErrBadSequence = errors.New("legs: sequence number out of order")
)
