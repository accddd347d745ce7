package attendance

import "errors"

var (
	ErrUnknownShiftType  = errors.New("unknown shift type")
	ErrUnknownSalaryType = errors.New("unknown salary type")
	ErrUnknownStatus     = errors.New("unknown attendance status")
	ErrMalformedTime     = errors.New("malformed clock time")
)
