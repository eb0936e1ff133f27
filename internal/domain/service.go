package domain

import (
	"context"
	"time"
)

// Service offered by a provider. ProviderID records who created the
// service; membership in a provider's set is tracked separately in the
// provider_services join table, so attaching an existing service to
// another provider does not reassign ownership.
type Service struct {
	ID          string  `gorm:"primaryKey;size:36" json:"id"`
	Name        string  `gorm:"size:191;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `json:"price"`
	ProviderID  string  `gorm:"size:36;index" json:"providerId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ServiceRepository interface {
	Create(ctx context.Context, s *Service) error
	FindByID(ctx context.Context, id string) (*Service, error)
	FindAll(ctx context.Context) ([]Service, error)
	Delete(ctx context.Context, id string) (bool, error)
}
