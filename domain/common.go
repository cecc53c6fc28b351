package domain

import (
	"errors"

	"github.com/google/uuid"
)

const (
	LocalsIdentity = "identity"
)

var (
	MessageFailedBodyRequest  = "failed to parse request body"
	MessageFailedGetToken     = "failed to get token"
	MessageFailedTokenInvalid = "failed to token invalid"

	ErrParseUUID     = errors.New("failed to parse UUID")
	ErrTokenNotFound = errors.New("failed to token not found")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("token invalid")
)

// Identity is the authenticated caller, resolved once per request by the
// auth middleware and passed explicitly to every service and repository call.
type Identity struct {
	UserID uuid.UUID
	Email  string
}
