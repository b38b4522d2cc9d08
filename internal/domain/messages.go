package domain

import "errors"

// ErrorMessage is a named, user facing message attached to a rendered form.
type ErrorMessage struct {
	Name  string
	Value string
}

var errorMessages = []struct {
	err error
	msg ErrorMessage
}{
	{ErrDateDuplicate, ErrorMessage{"reportDateError", "A report has already been registered for this date"}},
	{ErrIntegrity, ErrorMessage{"duplicateError", "The data is duplicated or refers to an employee that no longer exists"}},
	{ErrNotFound, ErrorMessage{"notFoundError", "The report does not exist"}},
	{ErrPermDenied, ErrorMessage{"permissionError", "You are not allowed to change this report"}},
	{ErrBadCredentials, ErrorMessage{"loginError", "Wrong employee code or password"}},
}

// MessageFor returns the message registered for err, if any.
func MessageFor(err error) (ErrorMessage, bool) {
	for _, m := range errorMessages {
		if errors.Is(err, m.err) {
			return m.msg, true
		}
	}
	return ErrorMessage{}, false
}
