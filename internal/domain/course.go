package domain

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Slug        string     `db:"slug" json:"slug"`
	Description string     `db:"description" json:"description"`
	Published   bool       `db:"published" json:"published"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}

// CourseModule, CourseSection and Lesson form the nested course tree.
// Position is a zero-based ordinal, kept contiguous among siblings.
type CourseModule struct {
	ID       uuid.UUID `db:"id" json:"id"`
	CourseID uuid.UUID `db:"course_id" json:"course_id"`
	Title    string    `db:"title" json:"title"`
	Position int       `db:"position" json:"position"`
}

type CourseSection struct {
	ID       uuid.UUID `db:"id" json:"id"`
	ModuleID uuid.UUID `db:"module_id" json:"module_id"`
	Title    string    `db:"title" json:"title"`
	Position int       `db:"position" json:"position"`
}

type Lesson struct {
	ID        uuid.UUID `db:"id" json:"id"`
	SectionID uuid.UUID `db:"section_id" json:"section_id"`
	Title     string    `db:"title" json:"title"`
	VideoURL  string    `db:"video_url" json:"video_url"`
	Content   string    `db:"content" json:"content"`
	Position  int       `db:"position" json:"position"`
}
