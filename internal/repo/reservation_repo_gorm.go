package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"ligueylu-backend/internal/domain"
)

type ReservationRepo struct{ db *gorm.DB }

func NewReservationRepo(db *gorm.DB) *ReservationRepo { return &ReservationRepo{db: db} }

func (r *ReservationRepo) Create(ctx context.Context, res *domain.Reservation) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *ReservationRepo) FindByID(ctx context.Context, id string) (*domain.Reservation, error) {
	var res domain.Reservation
	err := r.db.WithContext(ctx).First(&res, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ReservationRepo) FindAll(ctx context.Context) ([]domain.Reservation, error) {
	var rs []domain.Reservation
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&rs).Error
	return rs, err
}

func (r *ReservationRepo) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Reservation{})
	return res.RowsAffected > 0, res.Error
}
