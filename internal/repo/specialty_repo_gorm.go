package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"ligueylu-backend/internal/domain"
)

type SpecialtyRepo struct{ db *gorm.DB }

func NewSpecialtyRepo(db *gorm.DB) *SpecialtyRepo { return &SpecialtyRepo{db: db} }

func (r *SpecialtyRepo) Create(ctx context.Context, s *domain.Specialty) error {
	// label_norm carries the unique index; two case-variants of one
	// label collide here instead of both inserting.
	s.LabelNorm = strings.ToLower(strings.TrimSpace(s.Label))
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SpecialtyRepo) FindByID(ctx context.Context, id string) (*domain.Specialty, error) {
	var s domain.Specialty
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SpecialtyRepo) FindByLabel(ctx context.Context, label string) (*domain.Specialty, error) {
	var s domain.Specialty
	err := r.db.WithContext(ctx).First(&s, "label = ?", label).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SpecialtyRepo) FindByLabelFold(ctx context.Context, label string) (*domain.Specialty, error) {
	var s domain.Specialty
	err := r.db.WithContext(ctx).
		First(&s, "label_norm = ?", strings.ToLower(strings.TrimSpace(label))).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SpecialtyRepo) FindAll(ctx context.Context) ([]domain.Specialty, error) {
	var ss []domain.Specialty
	err := r.db.WithContext(ctx).Order("label_norm").Find(&ss).Error
	return ss, err
}

func (r *SpecialtyRepo) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Specialty{})
	return res.RowsAffected > 0, res.Error
}
