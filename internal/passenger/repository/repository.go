package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/skyops/pss/internal/passenger/domain"
)

// GormPassengerRepository persists passengers with GORM
type GormPassengerRepository struct {
	db *gorm.DB
}

func NewGormPassengerRepository(db *gorm.DB) *GormPassengerRepository {
	return &GormPassengerRepository{db: db}
}

func (r *GormPassengerRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Passenger{})
}

func (r *GormPassengerRepository) FindByID(ctx context.Context, id uint) (*domain.Passenger, error) {
	var passenger domain.Passenger
	err := r.db.WithContext(ctx).First(&passenger, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrPassengerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &passenger, nil
}

func (r *GormPassengerRepository) FindByFlightNumber(ctx context.Context, flightNumber string) ([]domain.Passenger, error) {
	var passengers []domain.Passenger
	err := r.db.WithContext(ctx).Where("flight_number = ?", flightNumber).Find(&passengers).Error
	return passengers, err
}

func (r *GormPassengerRepository) FindByPNR(ctx context.Context, pnr string) ([]domain.Passenger, error) {
	var passengers []domain.Passenger
	err := r.db.WithContext(ctx).Where("pnr = ?", pnr).Find(&passengers).Error
	return passengers, err
}

func (r *GormPassengerRepository) Update(ctx context.Context, passenger *domain.Passenger) error {
	return r.db.WithContext(ctx).Save(passenger).Error
}
