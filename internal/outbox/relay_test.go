package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

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

func TestNewRelay_Defaults(t *testing.T) {
	relay := NewRelay(nil, nil, 0, 0)

	assert.Equal(t, 100, relay.batchSize)
	assert.Equal(t, 5*time.Second, relay.interval)
}

func TestNewRelay_Configured(t *testing.T) {
	relay := NewRelay(nil, nil, 25, time.Second)

	assert.Equal(t, 25, relay.batchSize)
	assert.Equal(t, time.Second, relay.interval)
}

func TestDrainOnce_PublishesClaimedRowsInOrder(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mockPublisher := &MockPublisher{}
	relay := NewRelay(db, mockPublisher, 10, time.Second)
	ctx := context.Background()

	firstPayload := []byte(`{"flight_number":"AA100","available_business_seats":2}`)
	secondPayload := []byte(`{"flight_number":"BA200","available_economy_seats":50}`)

	dbMock.ExpectBegin()
	dbMock.ExpectQuery("SELECT id, event_name, payload").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_name", "payload"}).
			AddRow(int64(1), "InventoryUpdated", firstPayload).
			AddRow(int64(2), "ScheduleCreated", secondPayload))
	dbMock.ExpectExec("UPDATE event_outbox SET published_at").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	dbMock.ExpectExec("UPDATE event_outbox SET published_at").
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	dbMock.ExpectCommit()

	var publishedOrder []string
	mockPublisher.On("Publish", ctx, "InventoryUpdated", json.RawMessage(firstPayload)).
		Run(func(args mock.Arguments) {
			publishedOrder = append(publishedOrder, "InventoryUpdated")
		}).Return(nil).Once()
	mockPublisher.On("Publish", ctx, "ScheduleCreated", json.RawMessage(secondPayload)).
		Run(func(args mock.Arguments) {
			publishedOrder = append(publishedOrder, "ScheduleCreated")
		}).Return(nil).Once()

	published, err := relay.DrainOnce(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 2, published)
	assert.Equal(t, []string{"InventoryUpdated", "ScheduleCreated"}, publishedOrder)

	mockPublisher.AssertExpectations(t)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestDrainOnce_PublishFailureLeavesRowsUnpublished(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mockPublisher := &MockPublisher{}
	relay := NewRelay(db, mockPublisher, 10, time.Second)
	ctx := context.Background()

	payload := []byte(`{"flight_number":"AA100"}`)

	dbMock.ExpectBegin()
	dbMock.ExpectQuery("SELECT id, event_name, payload").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_name", "payload"}).
			AddRow(int64(1), "InventoryUpdated", payload).
			AddRow(int64(2), "ScheduleCreated", payload))
	// No UPDATE and no COMMIT: the batch rolls back and the rows stay
	// claimed-but-unpublished for the next tick.
	dbMock.ExpectRollback()

	mockPublisher.On("Publish", ctx, "InventoryUpdated", json.RawMessage(payload)).
		Return(errors.New("broker down")).Once()

	published, err := relay.DrainOnce(ctx)

	assert.Error(t, err)
	assert.Equal(t, 0, published)
	mockPublisher.AssertNotCalled(t, "Publish", ctx, "ScheduleCreated", mock.Anything)

	mockPublisher.AssertExpectations(t)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestDrainOnce_EmptyOutbox(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mockPublisher := &MockPublisher{}
	relay := NewRelay(db, mockPublisher, 10, time.Second)

	dbMock.ExpectBegin()
	dbMock.ExpectQuery("SELECT id, event_name, payload").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_name", "payload"}))
	dbMock.ExpectRollback()

	published, err := relay.DrainOnce(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 0, published)
	mockPublisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}
