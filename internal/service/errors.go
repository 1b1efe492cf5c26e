// Package service holds the business logic between the HTTP layer and the
// database: home membership resolution and the bill/share workflow.
package service

import "errors"

// Sentinel errors returned by the services. Handlers map these onto HTTP
// status codes with errors.Is; anything else is treated as a server error
// and never shown to the client.
var (
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("not found")
	ErrNotInHome  = errors.New("user does not belong to a home")
)
