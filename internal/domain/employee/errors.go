package employee

import (
	"errors"
	"fmt"
)

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeNameExists = errors.New("employee name must be unique")
	ErrAidAlreadyLinked   = errors.New("aid is already connected to another driver")
	ErrAidNotFound        = errors.New("aid employee not found")
	ErrAidIsSelf          = errors.New("an employee cannot be their own aid")
	ErrAidNotAnAid        = errors.New("aid must reference an employee whose position is Aid")
	ErrInvalidEmployeeID  = errors.New("invalid employee id")
	ErrNoEmployees        = errors.New("provide at least one employee")
	ErrNoEmployeeIDs      = errors.New("provide ids: string[]")
)

// AidConflictError names the driver that already holds the requested aid.
type AidConflictError struct {
	DriverID   string
	DriverName string
}

func (e *AidConflictError) Error() string {
	return fmt.Sprintf("this aid is already connected to another driver named: %s", e.DriverName)
}

func (e *AidConflictError) Is(target error) bool {
	return target == ErrAidAlreadyLinked
}
