package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/skyops/pss/events"
	"github.com/skyops/pss/internal/flight/domain"
)

type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) Upsert(ctx context.Context, flightNumber string, departureDate domain.Date, bookedBusiness, bookedEconomy int) (*domain.Inventory, *domain.FlightSchedule, error) {
	args := m.Called(ctx, flightNumber, departureDate, bookedBusiness, bookedEconomy)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Inventory), args.Get(1).(*domain.FlightSchedule), args.Error(2)
}

func (m *MockInventoryRepository) FindByFlightID(ctx context.Context, flightID uint) (*domain.Inventory, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inventory), args.Error(1)
}

func TestUpsertInventory_ComputesAvailability(t *testing.T) {
	mockRepo := &MockInventoryRepository{}
	mockPublisher := &MockPublisher{}

	handler := NewUpsertInventoryHandler(mockRepo, mockPublisher)
	ctx := context.Background()
	departureDate := domain.NewDate(2025, time.October, 1)

	schedule := &domain.FlightSchedule{
		ID:                   3,
		FlightNumber:         "AA100",
		DepartureDate:        departureDate,
		BusinessSeatCapacity: 10,
		EconomySeatCapacity:  100,
	}
	inventory := &domain.Inventory{
		ID:                  5,
		FlightID:            3,
		BookedBusinessSeats: 8,
		BookedEconomySeats:  50,
	}

	mockRepo.On("Upsert", ctx, "AA100", departureDate, 8, 50).
		Return(inventory, schedule, nil).Once()
	mockPublisher.On("Publish", ctx, events.EventInventoryUpdated, events.InventoryUpdatedEvent{
		InventoryID:            5,
		FlightID:               3,
		FlightNumber:           "AA100",
		DepartureDate:          "2025-10-01",
		BookedBusinessSeats:    8,
		BookedEconomySeats:     50,
		AvailableBusinessSeats: 2,
		AvailableEconomySeats:  50,
	}).Return(nil).Once()

	result, err := handler.Handle(ctx, UpsertInventoryCommand{
		FlightNumber:        "AA100",
		DepartureDate:       departureDate,
		BookedBusinessSeats: 8,
		BookedEconomySeats:  50,
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, result.AvailableBusinessSeats)
	assert.Equal(t, 50, result.AvailableEconomySeats)
	assert.Equal(t, 8, result.BookedBusinessSeats)

	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestUpsertInventory_FlightNotFound(t *testing.T) {
	mockRepo := &MockInventoryRepository{}
	mockPublisher := &MockPublisher{}

	handler := NewUpsertInventoryHandler(mockRepo, mockPublisher)
	ctx := context.Background()
	departureDate := domain.NewDate(2025, time.October, 1)

	mockRepo.On("Upsert", ctx, "ZZ999", departureDate, 1, 1).
		Return(nil, nil, domain.ErrScheduleNotFound).Once()

	_, err := handler.Handle(ctx, UpsertInventoryCommand{
		FlightNumber:        "ZZ999",
		DepartureDate:       departureDate,
		BookedBusinessSeats: 1,
		BookedEconomySeats:  1,
	})

	assert.True(t, errors.Is(err, domain.ErrScheduleNotFound))
	mockPublisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpsertInventory_CapacityExceeded(t *testing.T) {
	mockRepo := &MockInventoryRepository{}
	mockPublisher := &MockPublisher{}

	handler := NewUpsertInventoryHandler(mockRepo, mockPublisher)
	ctx := context.Background()
	departureDate := domain.NewDate(2025, time.October, 1)

	mockRepo.On("Upsert", ctx, "AA100", departureDate, 12, 50).
		Return(nil, nil, &domain.CapacityExceededError{Cabin: domain.CabinBusiness}).Once()

	_, err := handler.Handle(ctx, UpsertInventoryCommand{
		FlightNumber:        "AA100",
		DepartureDate:       departureDate,
		BookedBusinessSeats: 12,
		BookedEconomySeats:  50,
	})

	var capacityErr *domain.CapacityExceededError
	assert.True(t, errors.As(err, &capacityErr))
	assert.Equal(t, domain.CabinBusiness, capacityErr.Cabin)
	mockPublisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpsertInventory_MissingKey(t *testing.T) {
	handler := NewUpsertInventoryHandler(&MockInventoryRepository{}, &MockPublisher{})

	_, err := handler.Handle(context.Background(), UpsertInventoryCommand{
		DepartureDate: domain.NewDate(2025, time.October, 1),
	})
	assert.Error(t, err)

	_, err = handler.Handle(context.Background(), UpsertInventoryCommand{
		FlightNumber: "AA100",
	})
	assert.Error(t, err)
}

func TestUpsertInventory_PublishFailureSurfaces(t *testing.T) {
	mockRepo := &MockInventoryRepository{}
	mockPublisher := &MockPublisher{}

	handler := NewUpsertInventoryHandler(mockRepo, mockPublisher)
	ctx := context.Background()
	departureDate := domain.NewDate(2025, time.October, 1)

	schedule := &domain.FlightSchedule{ID: 3, FlightNumber: "AA100", DepartureDate: departureDate}
	inventory := &domain.Inventory{ID: 5, FlightID: 3}

	mockRepo.On("Upsert", ctx, "AA100", departureDate, 0, 0).
		Return(inventory, schedule, nil).Once()
	mockPublisher.On("Publish", ctx, events.EventInventoryUpdated, mock.Anything).
		Return(errors.New("broker down")).Once()

	_, err := handler.Handle(ctx, UpsertInventoryCommand{
		FlightNumber:  "AA100",
		DepartureDate: departureDate,
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "event publication failed")
}
