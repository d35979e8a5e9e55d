package entity

import "errors"

// Sentinel errors shared across services. Handlers map these to HTTP statuses;
// anything not matched here is treated as an infrastructure failure.
var (
	ErrNotFound          = errors.New("not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrPathNotFound      = errors.New("learning path not found")
	ErrSessionNotFound   = errors.New("assessment session not found")
	ErrProgressNotFound  = errors.New("no game progress found")
	ErrForbidden         = errors.New("forbidden")
	ErrSelfRoleChange    = errors.New("users cannot change their own role")
	ErrSelfStatusChange  = errors.New("users cannot change their own account status")
	ErrSelfDelete        = errors.New("users cannot delete their own account")
	ErrSuperAdminGrant   = errors.New("only super-admins can grant the super-admin role")
	ErrInvalidRole       = errors.New("invalid role")
	ErrInvalidStatus     = errors.New("invalid account status")
	ErrInvalidTopic      = errors.New("invalid topic")
	ErrScoreOutOfRange   = errors.New("score must be between 0 and 1")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already registered")
)
