package domain

import "errors"

var ErrInvalidInput = errors.New("invalid input")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrForbidden = errors.New("access forbidden")

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserInactive = errors.New("user account is inactive")

var ErrBookNotFound = errors.New("book not found")
var ErrBookExists = errors.New("book already exists")
var ErrBookUnavailable = errors.New("no copies available")

var ErrTransactionNotFound = errors.New("transaction not found")
var ErrFineNotFound = errors.New("fine not found")
var ErrReservationNotFound = errors.New("reservation not found")
var ErrNotificationNotFound = errors.New("notification not found")
