package events

import (
	"bytes"
	"context"
	"database/sql/driver"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// jsonArg matches a driver argument whose bytes equal the expected JSON.
type jsonArg struct {
	want []byte
}

func (a jsonArg) Match(v driver.Value) bool {
	switch b := v.(type) {
	case []byte:
		return bytes.Equal(b, a.want)
	case string:
		return b == string(a.want)
	default:
		return false
	}
}

func newOutboxTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{DisableAutomaticPing: true})
	assert.NoError(t, err)

	return gormDB, dbMock
}

func TestOutboxSink_PublishStoresEventPayload(t *testing.T) {
	gormDB, dbMock := newOutboxTestDB(t)
	sink := NewOutboxSink(gormDB)

	event := InventoryUpdatedEvent{
		InventoryID:            7,
		FlightID:               3,
		FlightNumber:           "AA100",
		DepartureDate:          "2026-09-15",
		BookedBusinessSeats:    4,
		BookedEconomySeats:     120,
		AvailableBusinessSeats: 6,
		AvailableEconomySeats:  30,
	}
	wantPayload, err := json.Marshal(event)
	assert.NoError(t, err)

	dbMock.ExpectBegin()
	dbMock.ExpectQuery(`INSERT INTO "event_outbox"`).
		WithArgs(sqlmock.AnyArg(), EventInventoryUpdated, jsonArg{want: wantPayload}, sqlmock.AnyArg(), nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	dbMock.ExpectCommit()

	err = sink.Publish(context.Background(), EventInventoryUpdated, event)

	assert.NoError(t, err)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestOutboxSink_PublishRejectsUnmarshalablePayload(t *testing.T) {
	gormDB, dbMock := newOutboxTestDB(t)
	sink := NewOutboxSink(gormDB)

	err := sink.Publish(context.Background(), EventInventoryUpdated, make(chan int))

	assert.Error(t, err)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}
