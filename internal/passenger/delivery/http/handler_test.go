package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

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

// The handler registers its metrics in the default Prometheus registry, so
// it can only be constructed once per test binary.
var (
	testOnce      sync.Once
	testRepo      *MockPassengerRepository
	testPublisher *MockPublisher
	testRouter    *mux.Router
)

func setupRouter() {
	testOnce.Do(func() {
		testRepo = &MockPassengerRepository{}
		testPublisher = &MockPublisher{}

		handler := NewPassengerHandler(testRepo, testPublisher)

		testRouter = mux.NewRouter()
		handler.RegisterRoutes(testRouter, nil)
	})
}

func doRequest(method, path string, body interface{}) *httptest.ResponseRecorder {
	setupRouter()

	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	testRouter.ServeHTTP(rec, req)
	return rec
}

func TestGetByFlight_OK(t *testing.T) {
	setupRouter()

	passengers := []domain.Passenger{
		{ID: 1, Name: "Jane Doe", PNR: "ABC123", FlightNumber: "AA100", Status: domain.StatusBooked},
	}
	testRepo.On("FindByFlightNumber", mock.Anything, "AA100").Return(passengers, nil).Once()

	rec := doRequest(http.MethodGet, "/api/passengers/flight/AA100", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []domain.Passenger
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
	assert.Equal(t, "Jane Doe", resp[0].Name)
}

func TestGetByPNR_OK(t *testing.T) {
	setupRouter()

	passengers := []domain.Passenger{
		{ID: 1, PNR: "ABC123", FlightNumber: "AA100"},
		{ID: 2, PNR: "ABC123", FlightNumber: "AA100"},
	}
	testRepo.On("FindByPNR", mock.Anything, "ABC123").Return(passengers, nil).Once()

	rec := doRequest(http.MethodGet, "/api/passengers/pnr/ABC123", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []domain.Passenger
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestGetByPNR_NotFound(t *testing.T) {
	setupRouter()

	testRepo.On("FindByPNR", mock.Anything, "NOPE42").Return([]domain.Passenger{}, nil).Once()

	rec := doRequest(http.MethodGet, "/api/passengers/pnr/NOPE42", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"No passengers found with PNR NOPE42"}`, rec.Body.String())
}

func TestCheckIn_OK(t *testing.T) {
	setupRouter()

	passenger := &domain.Passenger{ID: 42, Name: "Jane Doe", Status: domain.StatusBooked}

	testRepo.On("FindByID", mock.Anything, uint(42)).Return(passenger, nil).Once()
	testRepo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()
	testPublisher.On("Publish", mock.Anything, "PassengerCheckedIn", mock.Anything).Return(nil).Once()

	rec := doRequest(http.MethodPost, "/api/passengers/checkin", map[string]interface{}{
		"passenger_id": 42,
	})

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp domain.Passenger
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.StatusCheckedIn, resp.Status)
}

func TestCheckIn_NotFound(t *testing.T) {
	setupRouter()

	testRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, domain.ErrPassengerNotFound).Once()

	rec := doRequest(http.MethodPost, "/api/passengers/checkin", map[string]interface{}{
		"passenger_id": 99,
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Passenger with ID 99 not found"}`, rec.Body.String())
}

func TestCheckIn_InvalidID(t *testing.T) {
	rec := doRequest(http.MethodPost, "/api/passengers/checkin", map[string]interface{}{
		"passenger_id": 0,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(http.MethodPost, "/api/passengers/checkin", map[string]interface{}{
		"passenger_id": -3,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckIn_InvalidBody(t *testing.T) {
	setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/passengers/checkin",
		bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	testRouter.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBoard_OK(t *testing.T) {
	setupRouter()

	passenger := &domain.Passenger{ID: 43, Status: domain.StatusCheckedIn}

	testRepo.On("FindByID", mock.Anything, uint(43)).Return(passenger, nil).Once()
	testRepo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()
	testPublisher.On("Publish", mock.Anything, "PassengerBoarded", mock.Anything).Return(nil).Once()

	rec := doRequest(http.MethodPost, "/api/passengers/board", map[string]interface{}{
		"passenger_id": 43,
	})

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp domain.Passenger
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.StatusBoarded, resp.Status)
}

func TestOffload_OK(t *testing.T) {
	setupRouter()

	passenger := &domain.Passenger{ID: 44, Status: domain.StatusBoarded}

	testRepo.On("FindByID", mock.Anything, uint(44)).Return(passenger, nil).Once()
	testRepo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()
	testPublisher.On("Publish", mock.Anything, "PassengerOffloaded", mock.Anything).Return(nil).Once()

	rec := doRequest(http.MethodPost, "/api/passengers/offload", map[string]interface{}{
		"passenger_id": 44,
	})

	assert.Equal(t, http.StatusOK, rec.Code)
}
