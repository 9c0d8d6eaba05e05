package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	TitleMaxLength       = 200
	DescriptionMaxLength = 1000
)

type Task struct {
	ID          int
	UserID      uuid.UUID
	Title       string `validate:"required,max=200"`
	Description string `validate:"max=1000"`
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t *Task) BelongsToUser(userID uuid.UUID) bool {
	return t.UserID == userID
}

// NormalizeTitle trims surrounding whitespace and reports whether anything
// is left. An empty result always fails validation upstream.
func NormalizeTitle(title string) (string, bool) {
	trimmed := strings.TrimSpace(title)
	return trimmed, trimmed != ""
}

type TaskStatusFilter string

const (
	StatusAll       TaskStatusFilter = "all"
	StatusPending   TaskStatusFilter = "pending"
	StatusCompleted TaskStatusFilter = "completed"
)

func ParseStatusFilter(s string) (TaskStatusFilter, bool) {
	switch s {
	case "", string(StatusAll):
		return StatusAll, true
	case string(StatusPending):
		return StatusPending, true
	case string(StatusCompleted):
		return StatusCompleted, true
	default:
		return "", false
	}
}

type TaskSortOrder string

const (
	SortCreated TaskSortOrder = "created"
	SortTitle   TaskSortOrder = "title"
	SortUpdated TaskSortOrder = "updated"
)

func ParseSortOrder(s string) (TaskSortOrder, bool) {
	switch s {
	case "", string(SortCreated):
		return SortCreated, true
	case string(SortTitle):
		return SortTitle, true
	case string(SortUpdated):
		return SortUpdated, true
	default:
		return "", false
	}
}

type ListOptions struct {
	Status TaskStatusFilter
	Sort   TaskSortOrder
}

// TaskPatch carries a partial update. A nil field means "leave untouched",
// which is distinct from an explicit empty string.
type TaskPatch struct {
	Title       *string
	Description *string
}

func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil
}
