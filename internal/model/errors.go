package model

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
	ErrSaleNotFound    = errors.New("sale not found")

	// Sale engine
	ErrDuplicateItem     = errors.New("sale cannot contain duplicated items")
	ErrInsufficientStock = errors.New("not enough stock")
	ErrInvalidArgument   = errors.New("invalid argument")

	// Catalog / staff constraints
	ErrDescriptionInUse = errors.New("description already in use")
	ErrLoginInUse       = errors.New("login already in use")
	ErrPermissionDenied = errors.New("permission denied")

	// Auth
	ErrInvalidCredentials = errors.New("invalid login or password")
)
