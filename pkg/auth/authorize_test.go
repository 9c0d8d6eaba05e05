package auth_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"

	"taskapp/internal/core/domain"
	"taskapp/pkg/auth"
)

func TestGuard_Authorize_Match(t *testing.T) {
	RegisterTestingT(t)

	guard := auth.NewGuard(zerolog.Nop())
	callerID := uuid.New()

	err := guard.Authorize(callerID, callerID.String())

	Expect(err).To(BeNil())
}

func TestGuard_Authorize_CaseInsensitiveMatch(t *testing.T) {
	RegisterTestingT(t)

	guard := auth.NewGuard(zerolog.Nop())
	callerID := uuid.New()

	// Same identifier, different textual representation.
	err := guard.Authorize(callerID, strings.ToUpper(callerID.String()))

	Expect(err).To(BeNil())
}

func TestGuard_Authorize_Mismatch(t *testing.T) {
	RegisterTestingT(t)

	guard := auth.NewGuard(zerolog.Nop())

	err := guard.Authorize(uuid.New(), uuid.New().String())

	var authzErr *domain.AuthorizationError

	Expect(errors.As(err, &authzErr)).To(BeTrue())
	Expect(authzErr.Kind).To(Equal(domain.AccessDenied))
	Expect(authzErr.Code()).To(Equal("ACCESS_DENIED"))
}

func TestGuard_Authorize_MalformedPathID(t *testing.T) {
	RegisterTestingT(t)

	guard := auth.NewGuard(zerolog.Nop())

	err := guard.Authorize(uuid.New(), "not-a-uuid")

	var authzErr *domain.AuthorizationError

	Expect(errors.As(err, &authzErr)).To(BeTrue())
	Expect(authzErr.Kind).To(Equal(domain.MalformedPathID))
	Expect(authzErr.Code()).To(Equal("INVALID_PATH_ID"))
}
