package application

import "errors"

var (
	ErrEmailTaken             = errors.New("user already exists")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrWrongPassword          = errors.New("current password is incorrect")
	ErrUserNotFound           = errors.New("user not found")
	ErrEntryNotFound          = errors.New("entry not found")
	ErrEducationNotFound      = entryNotFound("education entry not found")
	ErrWorkExperienceNotFound = entryNotFound("work experience entry not found")
	ErrInvalidDateRange       = errors.New("endDate must not be before startDate")
	ErrAvatarUnavailable      = errors.New("avatar storage is not configured")
	ErrInvalidAvatar          = errors.New("avatar must be an image within the size limit")
)

// notFoundError is a specific missing entry that still matches ErrEntryNotFound.
type notFoundError struct{ msg string }

func entryNotFound(msg string) error { return &notFoundError{msg: msg} }

func (e *notFoundError) Error() string        { return e.msg }
func (e *notFoundError) Is(target error) bool { return target == ErrEntryNotFound }
