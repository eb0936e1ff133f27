package domain

import (
	"context"
	"time"
)

// Specialty labels are unique case-insensitively: LabelNorm holds the
// lowercased label under a unique index, so two writers racing on the
// same new label collide in the database instead of both inserting.
type Specialty struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	Label     string `gorm:"size:191;not null" json:"label"`
	LabelNorm string `gorm:"uniqueIndex;size:191" json:"-"`

	CreatedAt time.Time `json:"createdAt"`

	Providers []Provider `gorm:"many2many:provider_specialties" json:"-"`
}

type SpecialtyRepository interface {
	Create(ctx context.Context, s *Specialty) error
	FindByID(ctx context.Context, id string) (*Specialty, error)
	FindByLabel(ctx context.Context, label string) (*Specialty, error)
	// FindByLabelFold matches the label case-insensitively, exact.
	FindByLabelFold(ctx context.Context, label string) (*Specialty, error)
	FindAll(ctx context.Context) ([]Specialty, error)
	Delete(ctx context.Context, id string) (bool, error)
}
