package domain

import (
	"context"
	"time"
)

// Address is embedded into the provider row (addr_* columns).
type Address struct {
	Street  string `gorm:"size:191" json:"street"`
	City    string `gorm:"size:64;index" json:"city"`
	Country string `gorm:"size:64" json:"country"`
	Zip     string `gorm:"size:16" json:"zip"`
}

// RoleProvider is the only role this aggregate ever writes.
const RoleProvider = "provider"

type Provider struct {
	ID           string  `gorm:"primaryKey;size:36" json:"id"`
	Email        string  `gorm:"uniqueIndex;size:191" json:"email"`
	FullName     string  `gorm:"size:64" json:"fullName"`
	PasswordHash string  `gorm:"size:191" json:"-"`
	Phone        string  `gorm:"size:32" json:"phone"`
	Role         string  `gorm:"size:16" json:"role"`
	Score        float64 `gorm:"default:0" json:"score"`
	Active       bool    `gorm:"default:false" json:"active"`
	Address      Address `gorm:"embedded;embeddedPrefix:addr_" json:"address"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Membership lives in join tables; both sides read the same edges.
	Specialties  []Specialty   `gorm:"many2many:provider_specialties" json:"specialties,omitempty"`
	Services     []Service     `gorm:"many2many:provider_services" json:"services,omitempty"`
	Reservations []Reservation `gorm:"many2many:provider_reservations" json:"reservations,omitempty"`
}

// SpecialtyCount is one row of the stats query (label → provider count).
type SpecialtyCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// ProviderRepository is the provider storage port. Lookups return
// (nil, nil) when no row matches; the service layer turns that into
// ErrNotFound.
type ProviderRepository interface {
	Create(ctx context.Context, p *Provider) error
	FindByID(ctx context.Context, id string) (*Provider, error)
	FindByEmail(ctx context.Context, email string) (*Provider, error)
	FindAll(ctx context.Context) ([]Provider, error)
	Update(ctx context.Context, p *Provider) error
	Delete(ctx context.Context, id string) (bool, error)

	FindByIDAndActive(ctx context.Context, id string) (*Provider, error)
	FindByAddressCity(ctx context.Context, city string) ([]Provider, error)
	FindByScoreGreaterThan(ctx context.Context, score float64) ([]Provider, error)
	SearchBySpecialtyLabel(ctx context.Context, term string) ([]Provider, error)
	CountBySpecialty(ctx context.Context) ([]SpecialtyCount, error)

	// Field-scoped writes: no load-modify-save of the whole row.
	// Existence is the caller's concern; MySQL reports zero affected
	// rows for same-value updates, so RowsAffected is not a liveness
	// signal here.
	SetActive(ctx context.Context, id string, active bool) error
	UpdateScore(ctx context.Context, id string, score float64) error
	UpdateAddress(ctx context.Context, id string, addr Address) error

	// Relationship edges. Add/Remove are idempotent on the edge table.
	AddSpecialty(ctx context.Context, p *Provider, s *Specialty) error
	RemoveSpecialty(ctx context.Context, p *Provider, s *Specialty) error
	Specialties(ctx context.Context, p *Provider) ([]Specialty, error)
	AddService(ctx context.Context, p *Provider, s *Service) error
	RemoveService(ctx context.Context, p *Provider, s *Service) error
	Services(ctx context.Context, p *Provider) ([]Service, error)
	AddReservation(ctx context.Context, p *Provider, r *Reservation) error
	RemoveReservation(ctx context.Context, p *Provider, r *Reservation) error
	Reservations(ctx context.Context, p *Provider) ([]Reservation, error)
}
