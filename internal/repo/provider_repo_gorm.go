package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"ligueylu-backend/internal/domain"
)

type ProviderRepo struct{ db *gorm.DB }

func NewProviderRepo(db *gorm.DB) *ProviderRepo { return &ProviderRepo{db: db} }

func (r *ProviderRepo) Create(ctx context.Context, p *domain.Provider) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProviderRepo) FindByID(ctx context.Context, id string) (*domain.Provider, error) {
	var p domain.Provider
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProviderRepo) FindByEmail(ctx context.Context, email string) (*domain.Provider, error) {
	var p domain.Provider
	err := r.db.WithContext(ctx).First(&p, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProviderRepo) FindAll(ctx context.Context) ([]domain.Provider, error) {
	var ps []domain.Provider
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&ps).Error
	return ps, err
}

func (r *ProviderRepo) Update(ctx context.Context, p *domain.Provider) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProviderRepo) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Provider{})
	return res.RowsAffected > 0, res.Error
}

func (r *ProviderRepo) FindByIDAndActive(ctx context.Context, id string) (*domain.Provider, error) {
	var p domain.Provider
	err := r.db.WithContext(ctx).First(&p, "id = ? AND active = ?", id, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProviderRepo) FindByAddressCity(ctx context.Context, city string) ([]domain.Provider, error) {
	var ps []domain.Provider
	err := r.db.WithContext(ctx).Where("addr_city = ?", city).Find(&ps).Error
	return ps, err
}

func (r *ProviderRepo) FindByScoreGreaterThan(ctx context.Context, score float64) ([]domain.Provider, error) {
	var ps []domain.Provider
	err := r.db.WithContext(ctx).Where("score > ?", score).Find(&ps).Error
	return ps, err
}

func (r *ProviderRepo) SearchBySpecialtyLabel(ctx context.Context, term string) ([]domain.Provider, error) {
	like := "%" + strings.ToLower(term) + "%"
	var ps []domain.Provider
	err := r.db.WithContext(ctx).
		Distinct("providers.*").
		Joins("JOIN provider_specialties ps ON ps.provider_id = providers.id").
		Joins("JOIN specialties s ON s.id = ps.specialty_id").
		Where("LOWER(s.label) LIKE ?", like).
		Find(&ps).Error
	return ps, err
}

func (r *ProviderRepo) CountBySpecialty(ctx context.Context) ([]domain.SpecialtyCount, error) {
	var rows []domain.SpecialtyCount
	err := r.db.WithContext(ctx).Raw(
		`SELECT s.label AS label, COUNT(ps.provider_id) AS count
		   FROM specialties s
		   JOIN provider_specialties ps ON ps.specialty_id = s.id
		  GROUP BY s.label`,
	).Scan(&rows).Error
	return rows, err
}

func (r *ProviderRepo) SetActive(ctx context.Context, id string, active bool) error {
	return r.db.WithContext(ctx).Model(&domain.Provider{}).
		Where("id = ?", id).Update("active", active).Error
}

func (r *ProviderRepo) UpdateScore(ctx context.Context, id string, score float64) error {
	return r.db.WithContext(ctx).Model(&domain.Provider{}).
		Where("id = ?", id).Update("score", score).Error
}

func (r *ProviderRepo) UpdateAddress(ctx context.Context, id string, addr domain.Address) error {
	return r.db.WithContext(ctx).Model(&domain.Provider{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"addr_street":  addr.Street,
			"addr_city":    addr.City,
			"addr_country": addr.Country,
			"addr_zip":     addr.Zip,
		}).Error
}

// Edge operations. gorm's many2many Append upserts the join row, so
// re-adding an existing member is a no-op; Delete removes the edge
// only, never the associated record.

func (r *ProviderRepo) AddSpecialty(ctx context.Context, p *domain.Provider, s *domain.Specialty) error {
	return r.db.WithContext(ctx).Model(p).Association("Specialties").Append(s)
}

func (r *ProviderRepo) RemoveSpecialty(ctx context.Context, p *domain.Provider, s *domain.Specialty) error {
	return r.db.WithContext(ctx).Model(p).Association("Specialties").Delete(s)
}

func (r *ProviderRepo) Specialties(ctx context.Context, p *domain.Provider) ([]domain.Specialty, error) {
	var out []domain.Specialty
	err := r.db.WithContext(ctx).Model(p).Association("Specialties").Find(&out)
	return out, err
}

func (r *ProviderRepo) AddService(ctx context.Context, p *domain.Provider, s *domain.Service) error {
	return r.db.WithContext(ctx).Model(p).Association("Services").Append(s)
}

func (r *ProviderRepo) RemoveService(ctx context.Context, p *domain.Provider, s *domain.Service) error {
	return r.db.WithContext(ctx).Model(p).Association("Services").Delete(s)
}

func (r *ProviderRepo) Services(ctx context.Context, p *domain.Provider) ([]domain.Service, error) {
	var out []domain.Service
	err := r.db.WithContext(ctx).Model(p).Association("Services").Find(&out)
	return out, err
}

func (r *ProviderRepo) AddReservation(ctx context.Context, p *domain.Provider, res *domain.Reservation) error {
	return r.db.WithContext(ctx).Model(p).Association("Reservations").Append(res)
}

func (r *ProviderRepo) RemoveReservation(ctx context.Context, p *domain.Provider, res *domain.Reservation) error {
	return r.db.WithContext(ctx).Model(p).Association("Reservations").Delete(res)
}

func (r *ProviderRepo) Reservations(ctx context.Context, p *domain.Provider) ([]domain.Reservation, error) {
	var out []domain.Reservation
	err := r.db.WithContext(ctx).Model(p).Association("Reservations").Find(&out)
	return out, err
}
