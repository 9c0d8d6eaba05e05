package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"taskapp/internal/core/domain"
)

// JWT issues and verifies HS256 tokens carrying the caller identity.
// Every verification outcome, success or failure, is logged as a structured
// security event.
type JWT struct {
	secret []byte
	ttl    time.Duration
	logger zerolog.Logger
}

func NewJWT(secret string, ttl time.Duration, logger zerolog.Logger) *JWT {
	return &JWT{
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
	}
}

func (j *JWT) Issue(user domain.User) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"name":  user.Name,
		"iat":   now.Unix(),
		"exp":   now.Add(j.ttl).Unix(),
	})

	return token.SignedString(j.secret)
}

// Verify validates the signature and the required claims (sub, iat, exp) and
// returns the caller identity. Expiry maps to AuthenticationExpired, every
// other failure to AuthenticationInvalid.
func (j *JWT) Verify(tokenString string) (domain.Identity, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)

	token, err := parser.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return j.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			j.securityEvent("token_expired", "", map[string]string{"reason": "token has expired"})
			return domain.Identity{}, &domain.AuthenticationError{Kind: domain.AuthenticationExpired}
		}

		j.securityEvent("invalid_token", "", map[string]string{"reason": err.Error()})
		return domain.Identity{}, &domain.AuthenticationError{Kind: domain.AuthenticationInvalid, Reason: err.Error()}
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok || !token.Valid {
		j.securityEvent("invalid_token", "", map[string]string{"reason": "unexpected claims type"})
		return domain.Identity{}, &domain.AuthenticationError{Kind: domain.AuthenticationInvalid, Reason: "unexpected claims type"}
	}

	sub, err := claims.GetSubject()

	if err != nil || sub == "" {
		j.securityEvent("invalid_token", "", map[string]string{"reason": "missing sub claim"})
		return domain.Identity{}, &domain.AuthenticationError{Kind: domain.AuthenticationInvalid, Reason: "missing sub claim"}
	}

	if iat, err := claims.GetIssuedAt(); err != nil || iat == nil {
		j.securityEvent("invalid_token", "", map[string]string{"reason": "missing iat claim"})
		return domain.Identity{}, &domain.AuthenticationError{Kind: domain.AuthenticationInvalid, Reason: "missing iat claim"}
	}

	userID, err := uuid.Parse(sub)

	if err != nil {
		j.securityEvent("invalid_token", "", map[string]string{"reason": "sub claim is not a valid user id"})
		return domain.Identity{}, &domain.AuthenticationError{Kind: domain.AuthenticationInvalid, Reason: "invalid user id in token"}
	}

	identity := domain.Identity{
		ID:    userID,
		Email: stringClaim(claims, "email"),
		Name:  stringClaim(claims, "name"),
	}

	j.securityEvent("token_verified", identity.ID.String(), map[string]string{"email": identity.Email})

	return identity, nil
}

func (j *JWT) securityEvent(event string, userID string, details map[string]string) {
	entry := j.logger.Info()

	if event != "token_verified" {
		entry = j.logger.Warn()
	}

	entry = entry.Str("security_event", event)

	if userID != "" {
		entry = entry.Str("user_id", userID)
	}

	for key, value := range details {
		entry = entry.Str(key, value)
	}

	entry.Msg("security event")
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if value, ok := claims[key].(string); ok {
		return value
	}

	return ""
}
