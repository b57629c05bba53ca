package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/skyops/pss/events"
	"github.com/skyops/pss/internal/passenger/domain"
)

type MockPassengerRepository struct {
	mock.Mock
}

func (m *MockPassengerRepository) FindByID(ctx context.Context, id uint) (*domain.Passenger, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

func (m *MockPassengerRepository) FindByFlightNumber(ctx context.Context, flightNumber string) ([]domain.Passenger, error) {
	args := m.Called(ctx, flightNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Passenger), args.Error(1)
}

func (m *MockPassengerRepository) FindByPNR(ctx context.Context, pnr string) ([]domain.Passenger, error) {
	args := m.Called(ctx, pnr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Passenger), args.Error(1)
}

func (m *MockPassengerRepository) Update(ctx context.Context, passenger *domain.Passenger) error {
	args := m.Called(ctx, passenger)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, eventName string, payload interface{}) error {
	args := m.Called(ctx, eventName, payload)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

func TestCheckIn(t *testing.T) {
	mockRepo := &MockPassengerRepository{}
	mockPublisher := &MockPublisher{}

	handler := NewCheckInPassengerHandler(mockRepo, mockPublisher)
	ctx := context.Background()

	passenger := &domain.Passenger{
		ID:           42,
		Name:         "Jane Doe",
		PNR:          "ABC123",
		FlightNumber: "AA100",
		Status:       domain.StatusBooked,
	}

	mockRepo.On("FindByID", ctx, uint(42)).Return(passenger, nil).Once()
	mockRepo.On("Update", ctx, mock.MatchedBy(func(p *domain.Passenger) bool {
		return p.ID == 42 && p.Status == domain.StatusCheckedIn
	})).Return(nil).Once()
	mockPublisher.On("Publish", ctx, events.EventPassengerCheckedIn, mock.AnythingOfType("events.Envelope")).
		Return(nil).Once()

	result, err := handler.Handle(ctx, CheckInPassengerCommand{PassengerID: 42})

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusCheckedIn, result.Status)

	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestBoard(t *testing.T) {
	mockRepo := &MockPassengerRepository{}
	mockPublisher := &MockPublisher{}

	handler := NewBoardPassengerHandler(mockRepo, mockPublisher)
	ctx := context.Background()

	passenger := &domain.Passenger{ID: 42, Status: domain.StatusCheckedIn}

	mockRepo.On("FindByID", ctx, uint(42)).Return(passenger, nil).Once()
	mockRepo.On("Update", ctx, mock.Anything).Return(nil).Once()
	mockPublisher.On("Publish", ctx, events.EventPassengerBoarded, mock.Anything).Return(nil).Once()

	result, err := handler.Handle(ctx, BoardPassengerCommand{PassengerID: 42})

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusBoarded, result.Status)
}

func TestOffload(t *testing.T) {
	mockRepo := &MockPassengerRepository{}
	mockPublisher := &MockPublisher{}

	handler := NewOffloadPassengerHandler(mockRepo, mockPublisher)
	ctx := context.Background()

	passenger := &domain.Passenger{ID: 42, Status: domain.StatusBoarded}

	mockRepo.On("FindByID", ctx, uint(42)).Return(passenger, nil).Once()
	mockRepo.On("Update", ctx, mock.Anything).Return(nil).Once()
	mockPublisher.On("Publish", ctx, events.EventPassengerOffloaded, mock.Anything).Return(nil).Once()

	result, err := handler.Handle(ctx, OffloadPassengerCommand{PassengerID: 42})

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusOffloaded, result.Status)
}

func TestCheckIn_PassengerNotFound(t *testing.T) {
	mockRepo := &MockPassengerRepository{}
	mockPublisher := &MockPublisher{}

	handler := NewCheckInPassengerHandler(mockRepo, mockPublisher)
	ctx := context.Background()

	mockRepo.On("FindByID", ctx, uint(99)).Return(nil, domain.ErrPassengerNotFound).Once()

	_, err := handler.Handle(ctx, CheckInPassengerCommand{PassengerID: 99})

	assert.True(t, errors.Is(err, domain.ErrPassengerNotFound))
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mockPublisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckIn_ZeroID(t *testing.T) {
	handler := NewCheckInPassengerHandler(&MockPassengerRepository{}, &MockPublisher{})

	_, err := handler.Handle(context.Background(), CheckInPassengerCommand{})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "passenger_id is required")
}

func TestCheckIn_PublishFailureSurfaces(t *testing.T) {
	mockRepo := &MockPassengerRepository{}
	mockPublisher := &MockPublisher{}

	handler := NewCheckInPassengerHandler(mockRepo, mockPublisher)
	ctx := context.Background()

	passenger := &domain.Passenger{ID: 42, Status: domain.StatusBooked}

	mockRepo.On("FindByID", ctx, uint(42)).Return(passenger, nil).Once()
	mockRepo.On("Update", ctx, mock.Anything).Return(nil).Once()
	mockPublisher.On("Publish", ctx, events.EventPassengerCheckedIn, mock.Anything).
		Return(errors.New("broker down")).Once()

	_, err := handler.Handle(ctx, CheckInPassengerCommand{PassengerID: 42})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "event publication failed")
}
