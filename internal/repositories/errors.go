package repositories

import "errors"

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned by UserRepository.Create when the email
	// is already registered. No row is written.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials is returned for any failed login, without saying
	// whether the email, the credential or the active flag was the problem.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
