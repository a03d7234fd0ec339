package domain

import (
	"time"

	"github.com/google/uuid"
)

type Affiliate struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	Email     string     `db:"email" json:"email"`
	RefCode   string     `db:"ref_code" json:"ref_code"`
	Clicks    int        `db:"clicks" json:"clicks"`
	Signups   int        `db:"signups" json:"signups"`
	Active    bool       `db:"active" json:"active"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}
