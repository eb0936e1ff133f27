package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ligueylu-backend/internal/domain"
	"ligueylu-backend/pkg/utils"
)

// resolver turns a caller-supplied specialty/service/reservation
// candidate into the canonical stored record. A candidate with an ID
// asserts existence and is looked up; a candidate without one is
// deduplicated (specialties, by case-insensitive label) or persisted.
type resolver struct {
	specialties  domain.SpecialtyRepository
	services     domain.ServiceRepository
	reservations domain.ReservationRepository
}

func (r *resolver) resolveSpecialty(ctx context.Context, cand domain.Specialty) (*domain.Specialty, error) {
	if id := strings.TrimSpace(cand.ID); id != "" {
		s, err := r.specialties.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, fmt.Errorf("specialty %q: %w", id, domain.ErrNotFound)
		}
		return s, nil
	}

	label := strings.TrimSpace(cand.Label)
	if label == "" {
		return nil, fmt.Errorf("specialty label is required: %w", domain.ErrInvalidArgument)
	}

	// Existing wins: the candidate's fields are discarded when a
	// record with the same label (any casing) is already stored.
	if s, err := r.specialties.FindByLabelFold(ctx, label); err != nil || s != nil {
		return s, err
	}

	s := &domain.Specialty{ID: utils.NewID(), Label: label}
	if err := r.specialties.Create(ctx, s); err != nil {
		if isDupKey(err) {
			// Concurrent attach with the same new label: the other
			// writer won the unique index, use their record.
			return r.requireByLabel(ctx, label)
		}
		return nil, err
	}
	return s, nil
}

func (r *resolver) requireByLabel(ctx context.Context, label string) (*domain.Specialty, error) {
	s, err := r.specialties.FindByLabelFold(ctx, label)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("specialty %q: %w", label, domain.ErrNotFound)
	}
	return s, nil
}

func (r *resolver) resolveService(ctx context.Context, providerID string, cand domain.Service) (*domain.Service, error) {
	if id := strings.TrimSpace(cand.ID); id != "" {
		s, err := r.services.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, fmt.Errorf("service %q: %w", id, domain.ErrNotFound)
		}
		return s, nil
	}

	s := cand
	s.ID = utils.NewID()
	s.ProviderID = providerID
	if err := r.services.Create(ctx, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *resolver) resolveReservation(ctx context.Context, providerID string, cand domain.Reservation) (*domain.Reservation, error) {
	if id := strings.TrimSpace(cand.ID); id != "" {
		res, err := r.reservations.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if res == nil {
			return nil, fmt.Errorf("reservation %q: %w", id, domain.ErrNotFound)
		}
		return res, nil
	}

	res := cand
	res.ID = utils.NewID()
	res.ProviderID = providerID
	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now()
	}
	if err := r.reservations.Create(ctx, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func isDupKey(err error) bool {
	// 不依赖 gorm.ErrDuplicatedKey，避免驱动差异导致误判
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "unique failed") ||
		strings.Contains(msg, "duplicate key")
}
