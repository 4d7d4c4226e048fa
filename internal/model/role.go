package model

// Role codes as constants
const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RoleSeller  = "SELLER"
)
