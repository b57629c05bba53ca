package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/skyops/pss/internal/flight/domain"
)

var tracer = otel.Tracer("flight-repository")

// TracedScheduleRepository wraps GormScheduleRepository with tracing
type TracedScheduleRepository struct {
	*GormScheduleRepository
}

func NewTracedScheduleRepository(db *gorm.DB) *TracedScheduleRepository {
	return &TracedScheduleRepository{GormScheduleRepository: NewGormScheduleRepository(db)}
}

func (r *TracedScheduleRepository) Upsert(ctx context.Context, schedule *domain.FlightSchedule) error {
	ctx, span := tracer.Start(ctx, "repository.ScheduleUpsert",
		trace.WithAttributes(
			attribute.String("flight.number", schedule.FlightNumber),
			attribute.String("flight.departure_date", schedule.DepartureDate.String()),
		),
	)
	defer span.End()

	err := r.GormScheduleRepository.Upsert(ctx, schedule)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.Int("flight.id", int(schedule.ID)))
	return nil
}

func (r *TracedScheduleRepository) FindByFlightAndDate(ctx context.Context, flightNumber string, departureDate domain.Date) (*domain.FlightSchedule, error) {
	ctx, span := tracer.Start(ctx, "repository.ScheduleFindByFlightAndDate",
		trace.WithAttributes(
			attribute.String("flight.number", flightNumber),
			attribute.String("flight.departure_date", departureDate.String()),
		),
	)
	defer span.End()

	schedule, err := r.GormScheduleRepository.FindByFlightAndDate(ctx, flightNumber, departureDate)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return schedule, nil
}

func (r *TracedScheduleRepository) FindByFlightNumber(ctx context.Context, flightNumber string) (*domain.FlightSchedule, error) {
	ctx, span := tracer.Start(ctx, "repository.ScheduleFindByFlightNumber",
		trace.WithAttributes(attribute.String("flight.number", flightNumber)),
	)
	defer span.End()

	schedule, err := r.GormScheduleRepository.FindByFlightNumber(ctx, flightNumber)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return schedule, nil
}

func (r *TracedScheduleRepository) FindAll(ctx context.Context) ([]domain.FlightSchedule, error) {
	ctx, span := tracer.Start(ctx, "repository.ScheduleFindAll")
	defer span.End()

	schedules, err := r.GormScheduleRepository.FindAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(schedules)))
	return schedules, nil
}

// TracedInventoryRepository wraps GormInventoryRepository with tracing
type TracedInventoryRepository struct {
	*GormInventoryRepository
}

func NewTracedInventoryRepository(db *gorm.DB) *TracedInventoryRepository {
	return &TracedInventoryRepository{GormInventoryRepository: NewGormInventoryRepository(db)}
}

func (r *TracedInventoryRepository) Upsert(ctx context.Context, flightNumber string, departureDate domain.Date, bookedBusiness, bookedEconomy int) (*domain.Inventory, *domain.FlightSchedule, error) {
	ctx, span := tracer.Start(ctx, "repository.InventoryUpsert",
		trace.WithAttributes(
			attribute.String("flight.number", flightNumber),
			attribute.String("flight.departure_date", departureDate.String()),
			attribute.Int("inventory.booked_business", bookedBusiness),
			attribute.Int("inventory.booked_economy", bookedEconomy),
		),
	)
	defer span.End()

	inventory, schedule, err := r.GormInventoryRepository.Upsert(ctx, flightNumber, departureDate, bookedBusiness, bookedEconomy)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, err
	}

	span.SetAttributes(attribute.Int("inventory.id", int(inventory.ID)))
	return inventory, schedule, nil
}

func (r *TracedInventoryRepository) FindByFlightID(ctx context.Context, flightID uint) (*domain.Inventory, error) {
	ctx, span := tracer.Start(ctx, "repository.InventoryFindByFlightID",
		trace.WithAttributes(attribute.Int("flight.id", int(flightID))),
	)
	defer span.End()

	inventory, err := r.GormInventoryRepository.FindByFlightID(ctx, flightID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return inventory, nil
}
