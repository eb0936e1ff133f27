package domain

import (
	"context"
	"time"
)

type Reservation struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	ProviderID string `gorm:"size:36;index" json:"providerId"`
	Status     string `gorm:"size:32" json:"status"`
	Note       string `gorm:"type:text" json:"note"`

	// Stamped server-side when the caller leaves it zero.
	CreatedAt time.Time `json:"createdAt"`
}

type ReservationRepository interface {
	Create(ctx context.Context, r *Reservation) error
	FindByID(ctx context.Context, id string) (*Reservation, error)
	FindAll(ctx context.Context) ([]Reservation, error)
	Delete(ctx context.Context, id string) (bool, error)
}
