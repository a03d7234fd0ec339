package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	StudentName string        `db:"student_name" json:"student_name"`
	Email       string        `db:"email" json:"email"`
	Topic       string        `db:"topic" json:"topic"`
	ScheduledAt time.Time     `db:"scheduled_at" json:"scheduled_at"`
	Status      BookingStatus `db:"status" json:"status"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
	DeletedAt   *time.Time    `db:"deleted_at" json:"deleted_at,omitempty"`
}
