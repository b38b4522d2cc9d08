package domain

import "errors"

var (
	ErrDateDuplicate  = errors.New("a report for this date already exists")
	ErrNotFound       = errors.New("not found")
	ErrIntegrity      = errors.New("data integrity violation")
	ErrPermDenied     = errors.New("not enough permissions to execute this action")
	ErrBadCredentials = errors.New("wrong employee code or password")
	ErrNoSession      = errors.New("no valid session")
	ErrWeakPasswd     = errors.New("weak password")
)
