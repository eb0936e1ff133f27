package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"ligueylu-backend/internal/domain"
	"ligueylu-backend/pkg/utils"
)

type CreateProviderRequest struct {
	Email    string
	FullName string
	Password string
	Phone    string
}

type UpdateProviderRequest struct {
	Email    string
	FullName string
	Password string
	Phone    string
}

// ProviderService owns the provider aggregate: the provider row itself
// plus its specialty/service/reservation edge sets. Every mutation
// starts from a FindByID so a stale identifier fails fast with
// ErrNotFound. Concurrent writers against one provider are serialized
// by the database (unique indexes, edge-table upserts), not here.
type ProviderService struct {
	providers domain.ProviderRepository
	resolve   resolver
	log       *zap.Logger
}

func NewProviderService(
	providers domain.ProviderRepository,
	specialties domain.SpecialtyRepository,
	services domain.ServiceRepository,
	reservations domain.ReservationRepository,
	log *zap.Logger,
) *ProviderService {
	return &ProviderService{
		providers: providers,
		resolve: resolver{
			specialties:  specialties,
			services:     services,
			reservations: reservations,
		},
		log: log,
	}
}

func (s *ProviderService) requireProvider(ctx context.Context, id string) (*domain.Provider, error) {
	p, err := s.providers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("provider %q: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

// ---------- lifecycle ----------

func (s *ProviderService) Create(ctx context.Context, req CreateProviderRequest) (*domain.Provider, error) {
	email := strings.TrimSpace(req.Email)
	existing, err := s.providers.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("provider %s: %w", email, domain.ErrAlreadyExists)
	}

	p := &domain.Provider{
		ID:           utils.NewID(),
		Email:        email,
		FullName:     req.FullName,
		PasswordHash: utils.HashPassword(req.Password),
		Phone:        req.Phone,
		Role:         domain.RoleProvider,
	}
	if err := s.providers.Create(ctx, p); err != nil {
		if isDupKey(err) {
			return nil, fmt.Errorf("provider %s: %w", email, domain.ErrAlreadyExists)
		}
		return nil, err
	}
	s.log.Info("provider created", zap.String("id", p.ID), zap.String("email", p.Email))
	return p, nil
}

func (s *ProviderService) Update(ctx context.Context, id string, req UpdateProviderRequest) (*domain.Provider, error) {
	p, err := s.requireProvider(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Email = strings.TrimSpace(req.Email)
	p.FullName = req.FullName
	p.PasswordHash = utils.HashPassword(req.Password)
	p.Phone = req.Phone
	p.Role = domain.RoleProvider
	if err := s.providers.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProviderService) Delete(ctx context.Context, id string) error {
	ok, err := s.providers.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("provider %q: %w", id, domain.ErrNotFound)
	}
	s.log.Info("provider deleted", zap.String("id", id))
	return nil
}

// ---------- reads ----------

func (s *ProviderService) GetByID(ctx context.Context, id string) (*domain.Provider, error) {
	return s.requireProvider(ctx, id)
}

func (s *ProviderService) GetByEmail(ctx context.Context, email string) (*domain.Provider, error) {
	p, err := s.providers.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("provider %s: %w", email, domain.ErrNotFound)
	}
	return p, nil
}

func (s *ProviderService) List(ctx context.Context) ([]domain.Provider, error) {
	return s.providers.FindAll(ctx)
}

// IsActive returns the provider when it exists AND is active, nil
// otherwise. Absence is an answer here, not an error.
func (s *ProviderService) IsActive(ctx context.Context, id string) (*domain.Provider, error) {
	return s.providers.FindByIDAndActive(ctx, id)
}

func (s *ProviderService) SearchBySpecialty(ctx context.Context, term string) ([]domain.Provider, error) {
	if strings.TrimSpace(term) == "" {
		return nil, fmt.Errorf("specialty search term is empty: %w", domain.ErrInvalidArgument)
	}
	return s.providers.SearchBySpecialtyLabel(ctx, term)
}

func (s *ProviderService) FindByCity(ctx context.Context, city string) ([]domain.Provider, error) {
	return s.providers.FindByAddressCity(ctx, city)
}

func (s *ProviderService) FindByScoreGreaterThan(ctx context.Context, score float64) ([]domain.Provider, error) {
	return s.providers.FindByScoreGreaterThan(ctx, score)
}

func (s *ProviderService) CountBySpecialty(ctx context.Context) (map[string]int64, error) {
	rows, err := s.providers.CountBySpecialty(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Label] = row.Count
	}
	return counts, nil
}

// ---------- score & status ----------

func (s *ProviderService) Activate(ctx context.Context, id string) (bool, error) {
	if _, err := s.requireProvider(ctx, id); err != nil {
		return false, err
	}
	// Unconditional and idempotent: re-activating an active provider
	// is a no-op, never an error.
	if err := s.providers.SetActive(ctx, id, true); err != nil {
		return false, err
	}
	return true, nil
}

func (s *ProviderService) UpdateScore(ctx context.Context, id string, score float64) error {
	if _, err := s.requireProvider(ctx, id); err != nil {
		return err
	}
	// Last write wins; any value is accepted.
	return s.providers.UpdateScore(ctx, id, score)
}

func (s *ProviderService) GetScore(ctx context.Context, id string) (float64, error) {
	p, err := s.requireProvider(ctx, id)
	if err != nil {
		return 0, err
	}
	return p.Score, nil
}

func (s *ProviderService) UpdateAddress(ctx context.Context, id string, addr domain.Address) error {
	if _, err := s.requireProvider(ctx, id); err != nil {
		return err
	}
	return s.providers.UpdateAddress(ctx, id, addr)
}

func (s *ProviderService) GetAddress(ctx context.Context, id string) (domain.Address, error) {
	p, err := s.requireProvider(ctx, id)
	if err != nil {
		return domain.Address{}, err
	}
	return p.Address, nil
}

// ---------- specialties ----------

func (s *ProviderService) AttachSpecialty(ctx context.Context, providerID string, cand domain.Specialty) (*domain.Specialty, error) {
	p, err := s.requireProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	spec, err := s.resolve.resolveSpecialty(ctx, cand)
	if err != nil {
		return nil, err
	}
	if err := s.providers.AddSpecialty(ctx, p, spec); err != nil {
		return nil, err
	}
	s.log.Debug("specialty attached",
		zap.String("provider", providerID), zap.String("specialty", spec.ID))
	return spec, nil
}

func (s *ProviderService) DetachSpecialty(ctx context.Context, providerID, specialtyID string) error {
	p, err := s.requireProvider(ctx, providerID)
	if err != nil {
		return err
	}
	spec, err := s.resolve.specialties.FindByID(ctx, specialtyID)
	if err != nil {
		return err
	}
	if spec == nil {
		return fmt.Errorf("specialty %q: %w", specialtyID, domain.ErrNotFound)
	}
	// The specialty record itself is retained for other providers.
	return s.providers.RemoveSpecialty(ctx, p, spec)
}

func (s *ProviderService) SpecialtiesOf(ctx context.Context, providerID string) ([]domain.Specialty, error) {
	p, err := s.requireProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	return s.providers.Specialties(ctx, p)
}

// ---------- services ----------

func (s *ProviderService) AttachService(ctx context.Context, providerID string, cand domain.Service) (*domain.Service, error) {
	p, err := s.requireProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	svc, err := s.resolve.resolveService(ctx, providerID, cand)
	if err != nil {
		return nil, err
	}
	if err := s.providers.AddService(ctx, p, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *ProviderService) DetachService(ctx context.Context, providerID, serviceID string) error {
	p, err := s.requireProvider(ctx, providerID)
	if err != nil {
		return err
	}
	svc, err := s.resolve.services.FindByID(ctx, serviceID)
	if err != nil {
		return err
	}
	if svc == nil {
		return fmt.Errorf("service %q: %w", serviceID, domain.ErrNotFound)
	}
	return s.providers.RemoveService(ctx, p, svc)
}

func (s *ProviderService) ServicesOf(ctx context.Context, providerID string) ([]domain.Service, error) {
	p, err := s.requireProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	return s.providers.Services(ctx, p)
}

// ---------- reservations ----------

func (s *ProviderService) AttachReservation(ctx context.Context, providerID string, cand domain.Reservation) (*domain.Reservation, error) {
	p, err := s.requireProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	res, err := s.resolve.resolveReservation(ctx, providerID, cand)
	if err != nil {
		return nil, err
	}
	if err := s.providers.AddReservation(ctx, p, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *ProviderService) DetachReservation(ctx context.Context, providerID, reservationID string) error {
	p, err := s.requireProvider(ctx, providerID)
	if err != nil {
		return err
	}
	res, err := s.resolve.reservations.FindByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if res == nil {
		return fmt.Errorf("reservation %q: %w", reservationID, domain.ErrNotFound)
	}
	return s.providers.RemoveReservation(ctx, p, res)
}

func (s *ProviderService) ReservationsOf(ctx context.Context, providerID string) ([]domain.Reservation, error) {
	p, err := s.requireProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	return s.providers.Reservations(ctx, p)
}
