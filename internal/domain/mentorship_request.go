package domain

import (
	"time"

	"github.com/google/uuid"
)

type MentorshipStatus string

const (
	MentorshipPending  MentorshipStatus = "pending"
	MentorshipApproved MentorshipStatus = "approved"
	MentorshipRejected MentorshipStatus = "rejected"
)

type MentorshipRequest struct {
	ID         uuid.UUID        `db:"id" json:"id"`
	Name       string           `db:"name" json:"name"`
	Email      string           `db:"email" json:"email"`
	Goals      string           `db:"goals" json:"goals"`
	Experience string           `db:"experience" json:"experience"`
	Status     MentorshipStatus `db:"status" json:"status"`
	Note       string           `db:"note" json:"note"`
	CreatedAt  time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time        `db:"updated_at" json:"updated_at"`
	DeletedAt  *time.Time       `db:"deleted_at" json:"deleted_at,omitempty"`
}
