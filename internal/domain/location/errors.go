package location

import "errors"

var (
	ErrNoActiveOfficeLocation = errors.New("no active office location configured")
)
