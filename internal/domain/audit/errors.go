package audit

import "errors"

var (
	ErrInvalidFieldName  = errors.New("audit record needs a fieldName")
	ErrInvalidFieldValue = errors.New("audit record needs a fieldValue")
	ErrMissingReference  = errors.New("audit record needs a timesheet entry and pay period")
)
