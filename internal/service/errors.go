package service

import "errors"

// Sentinel errors returned by the service layer. The API layer maps these
// to HTTP status codes with errors.Is.
var (
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrDefaultCategory     = errors.New("cannot delete default category")
	ErrSelfFriend          = errors.New("cannot add yourself")
	ErrDuplicateFriendship = errors.New("friend request already exists")
)
