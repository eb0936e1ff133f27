package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"ligueylu-backend/internal/domain"
)

type ServiceRepo struct{ db *gorm.DB }

func NewServiceRepo(db *gorm.DB) *ServiceRepo { return &ServiceRepo{db: db} }

func (r *ServiceRepo) Create(ctx context.Context, s *domain.Service) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ServiceRepo) FindByID(ctx context.Context, id string) (*domain.Service, error) {
	var s domain.Service
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ServiceRepo) FindAll(ctx context.Context) ([]domain.Service, error) {
	var ss []domain.Service
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&ss).Error
	return ss, err
}

func (r *ServiceRepo) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Service{})
	return res.RowsAffected > 0, res.Error
}
