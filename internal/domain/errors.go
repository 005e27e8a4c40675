package domain

import "errors"

// Business rule rejections. Every failed operation leaves the store untouched;
// handlers map these onto HTTP statuses and a human-readable message.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrOutOfStock         = errors.New("item is out of stock")
	ErrInsufficientStock  = errors.New("not enough stock available")
	ErrNoActiveShift      = errors.New("no active shift")
	ErrShiftAlreadyActive = errors.New("a shift is already active")
	ErrEmptyCart          = errors.New("cart is empty")
)
