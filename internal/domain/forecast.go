package domain

import (
	"time"

	"github.com/google/uuid"
)

type ForecastStatus string

const (
	ForecastPending  ForecastStatus = "pending"
	ForecastApproved ForecastStatus = "approved"
	ForecastRejected ForecastStatus = "rejected"
)

type Forecast struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	PublisherName string         `db:"publisher_name" json:"publisher_name"`
	Symbol        string         `db:"symbol" json:"symbol"`
	Direction     string         `db:"direction" json:"direction"`
	Analysis      string         `db:"analysis" json:"analysis"`
	Status        ForecastStatus `db:"status" json:"status"`
	ReviewedBy    *uuid.UUID     `db:"reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time     `db:"reviewed_at" json:"reviewed_at,omitempty"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
	DeletedAt     *time.Time     `db:"deleted_at" json:"deleted_at,omitempty"`
}
