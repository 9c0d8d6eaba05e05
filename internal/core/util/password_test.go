package util_test

import (
	"testing"

	. "github.com/onsi/gomega"

	"taskapp/internal/core/util"
)

func TestHashAndComparePassword(t *testing.T) {
	RegisterTestingT(t)

	hash, err := util.HashPassword("hunter22")

	Expect(err).To(BeNil())
	Expect(hash).NotTo(Equal("hunter22"))

	Expect(util.ComparePassword("hunter22", hash)).To(Succeed())
	Expect(util.ComparePassword("hunter23", hash)).NotTo(Succeed())
}
