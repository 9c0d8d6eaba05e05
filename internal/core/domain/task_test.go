package domain_test

import (
	"testing"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"

	"taskapp/internal/core/domain"
)

func TestNormalizeTitle(t *testing.T) {
	RegisterTestingT(t)

	trimmed, ok := domain.NormalizeTitle("  hello  ")

	Expect(ok).To(BeTrue())
	Expect(trimmed).To(Equal("hello"))

	_, ok = domain.NormalizeTitle("   ")

	Expect(ok).To(BeFalse())

	_, ok = domain.NormalizeTitle("")

	Expect(ok).To(BeFalse())
}

func TestParseStatusFilter(t *testing.T) {
	RegisterTestingT(t)

	status, ok := domain.ParseStatusFilter("")

	Expect(ok).To(BeTrue())
	Expect(status).To(Equal(domain.StatusAll))

	status, ok = domain.ParseStatusFilter("pending")

	Expect(ok).To(BeTrue())
	Expect(status).To(Equal(domain.StatusPending))

	status, ok = domain.ParseStatusFilter("completed")

	Expect(ok).To(BeTrue())
	Expect(status).To(Equal(domain.StatusCompleted))

	_, ok = domain.ParseStatusFilter("done")

	Expect(ok).To(BeFalse())
}

func TestParseSortOrder(t *testing.T) {
	RegisterTestingT(t)

	sort, ok := domain.ParseSortOrder("")

	Expect(ok).To(BeTrue())
	Expect(sort).To(Equal(domain.SortCreated))

	sort, ok = domain.ParseSortOrder("title")

	Expect(ok).To(BeTrue())
	Expect(sort).To(Equal(domain.SortTitle))

	_, ok = domain.ParseSortOrder("priority")

	Expect(ok).To(BeFalse())
}

func TestTaskPatch_Empty(t *testing.T) {
	RegisterTestingT(t)

	Expect(domain.TaskPatch{}.Empty()).To(BeTrue())

	title := ""

	Expect(domain.TaskPatch{Title: &title}.Empty()).To(BeFalse())
}

func TestTask_BelongsToUser(t *testing.T) {
	RegisterTestingT(t)

	ownerID := uuid.New()
	task := domain.Task{UserID: ownerID}

	Expect(task.BelongsToUser(ownerID)).To(BeTrue())
	Expect(task.BelongsToUser(uuid.New())).To(BeFalse())
}
