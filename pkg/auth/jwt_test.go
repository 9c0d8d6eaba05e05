package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"

	"taskapp/internal/core/domain"
	"taskapp/pkg/auth"
)

const testSecret = "test-secret-key"

func newTestJWT(ttl time.Duration) *auth.JWT {
	return auth.NewJWT(testSecret, ttl, zerolog.Nop())
}

func TestJWT_IssueAndVerify_RoundTrip(t *testing.T) {
	RegisterTestingT(t)

	issuer := newTestJWT(time.Hour)

	user := domain.User{
		ID:    uuid.New(),
		Email: "round@example.com",
		Name:  "Round Trip",
	}

	token, err := issuer.Issue(user)

	Expect(err).To(BeNil())
	Expect(token).NotTo(BeEmpty())

	identity, err := issuer.Verify(token)

	Expect(err).To(BeNil())
	Expect(identity.ID).To(Equal(user.ID))
	Expect(identity.Email).To(Equal(user.Email))
	Expect(identity.Name).To(Equal(user.Name))
}

func TestJWT_Verify_ExpiredToken(t *testing.T) {
	RegisterTestingT(t)

	issuer := newTestJWT(-time.Minute)

	token, err := issuer.Issue(domain.User{ID: uuid.New()})
	Expect(err).To(BeNil())

	_, err = issuer.Verify(token)

	var authErr *domain.AuthenticationError

	Expect(errors.As(err, &authErr)).To(BeTrue())
	Expect(authErr.Kind).To(Equal(domain.AuthenticationExpired))
	Expect(authErr.Code()).To(Equal("TOKEN_EXPIRED"))
}

func TestJWT_Verify_WrongSecret(t *testing.T) {
	RegisterTestingT(t)

	other := auth.NewJWT("different-secret", time.Hour, zerolog.Nop())

	token, err := other.Issue(domain.User{ID: uuid.New()})
	Expect(err).To(BeNil())

	_, err = newTestJWT(time.Hour).Verify(token)

	var authErr *domain.AuthenticationError

	Expect(errors.As(err, &authErr)).To(BeTrue())
	Expect(authErr.Kind).To(Equal(domain.AuthenticationInvalid))
	Expect(authErr.Code()).To(Equal("INVALID_TOKEN"))
}

func TestJWT_Verify_GarbageToken(t *testing.T) {
	RegisterTestingT(t)

	_, err := newTestJWT(time.Hour).Verify("not-a-jwt")

	var authErr *domain.AuthenticationError

	Expect(errors.As(err, &authErr)).To(BeTrue())
	Expect(authErr.Kind).To(Equal(domain.AuthenticationInvalid))
}

func TestJWT_Verify_RejectsUnsignedAlg(t *testing.T) {
	RegisterTestingT(t)

	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": uuid.New().String(),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	Expect(err).To(BeNil())

	_, err = newTestJWT(time.Hour).Verify(signed)

	var authErr *domain.AuthenticationError

	Expect(errors.As(err, &authErr)).To(BeTrue())
	Expect(authErr.Kind).To(Equal(domain.AuthenticationInvalid))
}

func TestJWT_Verify_MissingExpiry(t *testing.T) {
	RegisterTestingT(t)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": uuid.New().String(),
		"iat": time.Now().Unix(),
	})

	signed, err := token.SignedString([]byte(testSecret))
	Expect(err).To(BeNil())

	_, err = newTestJWT(time.Hour).Verify(signed)

	var authErr *domain.AuthenticationError

	Expect(errors.As(err, &authErr)).To(BeTrue())
	Expect(authErr.Kind).To(Equal(domain.AuthenticationInvalid))
}

func TestJWT_Verify_NonUUIDSubject(t *testing.T) {
	RegisterTestingT(t)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "12345",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	signed, err := token.SignedString([]byte(testSecret))
	Expect(err).To(BeNil())

	_, err = newTestJWT(time.Hour).Verify(signed)

	var authErr *domain.AuthenticationError

	Expect(errors.As(err, &authErr)).To(BeTrue())
	Expect(authErr.Kind).To(Equal(domain.AuthenticationInvalid))
}
