package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/skyops/pss/internal/flight/domain"
)

// GormScheduleRepository persists flight schedules with GORM
type GormScheduleRepository struct {
	db *gorm.DB
}

func NewGormScheduleRepository(db *gorm.DB) *GormScheduleRepository {
	return &GormScheduleRepository{db: db}
}

func (r *GormScheduleRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.FlightSchedule{})
}

// Upsert inserts the schedule or replaces the non-key fields of the existing
// row in a single ON CONFLICT statement, then refreshes the struct with the
// stored state.
func (r *GormScheduleRepository) Upsert(ctx context.Context, schedule *domain.FlightSchedule) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "flight_number"}, {Name: "departure_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"origin", "destination", "business_seat_capacity", "economy_seat_capacity", "updated_at",
		}),
	}).Create(schedule).Error
	if err != nil {
		return fmt.Errorf("failed to upsert schedule: %w", err)
	}

	// Refresh so the caller always sees identity and timestamps of the row
	// that actually won, insert or update alike.
	var stored domain.FlightSchedule
	err = r.db.WithContext(ctx).
		Where("flight_number = ? AND departure_date = ?", schedule.FlightNumber, schedule.DepartureDate.Time).
		First(&stored).Error
	if err != nil {
		return fmt.Errorf("failed to reload schedule: %w", err)
	}

	*schedule = stored
	return nil
}

func (r *GormScheduleRepository) FindByFlightAndDate(ctx context.Context, flightNumber string, departureDate domain.Date) (*domain.FlightSchedule, error) {
	var schedule domain.FlightSchedule
	err := r.db.WithContext(ctx).
		Where("flight_number = ? AND departure_date = ?", flightNumber, departureDate.Time).
		First(&schedule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrScheduleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

// FindByFlightNumber returns the oldest schedule carrying the flight number
func (r *GormScheduleRepository) FindByFlightNumber(ctx context.Context, flightNumber string) (*domain.FlightSchedule, error) {
	var schedule domain.FlightSchedule
	err := r.db.WithContext(ctx).
		Where("flight_number = ?", flightNumber).
		Order("id").
		First(&schedule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrScheduleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *GormScheduleRepository) FindAll(ctx context.Context) ([]domain.FlightSchedule, error) {
	var schedules []domain.FlightSchedule
	err := r.db.WithContext(ctx).Find(&schedules).Error
	return schedules, err
}

// GormInventoryRepository persists booked-seat counters with GORM
type GormInventoryRepository struct {
	db *gorm.DB
}

func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

func (r *GormInventoryRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Inventory{})
}

// Upsert resolves the schedule, validates capacity and writes the counters
// inside one transaction. The schedule row is locked FOR UPDATE so the
// capacity check cannot go stale before the write commits.
func (r *GormInventoryRepository) Upsert(ctx context.Context, flightNumber string, departureDate domain.Date, bookedBusiness, bookedEconomy int) (*domain.Inventory, *domain.FlightSchedule, error) {
	var inventory domain.Inventory
	var schedule domain.FlightSchedule

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("flight_number = ? AND departure_date = ?", flightNumber, departureDate.Time).
			First(&schedule).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrScheduleNotFound
		}
		if err != nil {
			return err
		}

		if err := domain.ValidateBookedSeats(&schedule, bookedBusiness, bookedEconomy); err != nil {
			return err
		}

		err = tx.Where("flight_id = ?", schedule.ID).First(&inventory).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			inventory = domain.Inventory{
				FlightID:            schedule.ID,
				BookedBusinessSeats: bookedBusiness,
				BookedEconomySeats:  bookedEconomy,
			}
			return tx.Create(&inventory).Error
		case err != nil:
			return err
		default:
			inventory.BookedBusinessSeats = bookedBusiness
			inventory.BookedEconomySeats = bookedEconomy
			return tx.Save(&inventory).Error
		}
	})
	if err != nil {
		return nil, nil, err
	}

	return &inventory, &schedule, nil
}

func (r *GormInventoryRepository) FindByFlightID(ctx context.Context, flightID uint) (*domain.Inventory, error) {
	var inventory domain.Inventory
	err := r.db.WithContext(ctx).Where("flight_id = ?", flightID).First(&inventory).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrInventoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inventory, nil
}
