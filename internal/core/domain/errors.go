package domain

import "errors"

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountLocked      = errors.New("account locked after too many failed attempts")
	ErrWrongPassword      = errors.New("current password does not match")
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("resource does not belong to requester")
	ErrListForbidden      = errors.New("list does not belong to requester")
	ErrInvalidInput       = errors.New("invalid input")
)
