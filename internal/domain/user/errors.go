package user

import "errors"

var (
	ErrAdminAccessRequired = errors.New("admin access required")
)
