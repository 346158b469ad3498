package user

import "fmt"

var (
	ErrUserNotFound      = fmt.Errorf("user not found")
	ErrUserAlreadyExists = fmt.Errorf("a user with this email already exists")
	ErrUserInactive      = fmt.Errorf("user account is inactive")
)
