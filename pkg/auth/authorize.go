package auth

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"taskapp/internal/core/domain"
)

// Guard compares the verified caller identity against the owner named in a
// request path. It runs before any store access on every operation.
type Guard struct {
	logger zerolog.Logger
}

func NewGuard(logger zerolog.Logger) *Guard {
	return &Guard{logger: logger}
}

// Authorize succeeds only when the path owner id parses as a UUID and equals
// the caller id. Comparison happens on canonical uuid.UUID values, never on
// raw strings, so formatting differences cannot produce false mismatches.
func (g *Guard) Authorize(callerID uuid.UUID, pathOwnerID string) error {
	ownerID, err := uuid.Parse(pathOwnerID)

	if err != nil {
		return &domain.AuthorizationError{Kind: domain.MalformedPathID, RequestedID: pathOwnerID}
	}

	if callerID != ownerID {
		g.logger.Warn().
			Str("security_event", "authorization_failed").
			Str("user_id", callerID.String()).
			Str("requested_user_id", pathOwnerID).
			Str("reason", "user id mismatch").
			Msg("security event")

		return &domain.AuthorizationError{Kind: domain.AccessDenied, RequestedID: pathOwnerID}
	}

	return nil
}
