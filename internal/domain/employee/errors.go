package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee is not registered at this workplace")
	ErrMissingPayRate   = errors.New("no pay rate configured for this employee")
)
