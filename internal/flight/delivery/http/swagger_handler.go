package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// UpsertSchedule godoc
// @Summary Create or update a flight schedule
// @Description Inserts a schedule or replaces the non-key fields of the schedule matching (flight_number, departure_date)
// @Tags Schedules
// @Accept json
// @Produce json
// @Param request body object{flight_number=string,departure_date=string,origin=string,destination=string,business_seat_capacity=int,economy_seat_capacity=int} true "Schedule data"
// @Success 200 {object} object{id=int,flight_number=string,departure_date=string,origin=string,destination=string,business_seat_capacity=int,economy_seat_capacity=int}
// @Failure 400 {object} object{error=string}
// @Router /api/flight-inventory/schedule [post]
func (h *FlightHandler) UpsertScheduleDoc() {}

// ListSchedules godoc
// @Summary List flight schedules
// @Description Returns every stored flight schedule
// @Tags Schedules
// @Produce json
// @Success 200 {object} object{}
// @Router /api/flight-inventory/schedule [get]
func (h *FlightHandler) ListSchedulesDoc() {}

// UpsertInventory godoc
// @Summary Create or replace booked-seat counts for a flight
// @Description Fully replaces both booked counts after validating them against the schedule's capacities
// @Tags Inventory
// @Accept json
// @Produce json
// @Param request body object{flight_number=string,departure_date=string,booked_business_seats=int,booked_economy_seats=int} true "Inventory data"
// @Success 200 {object} object{flight_number=string,departure_date=string,booked_business_seats=int,booked_economy_seats=int,available_business_seats=int,available_economy_seats=int}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/flight-inventory/inventory [put]
func (h *FlightHandler) UpsertInventoryDoc() {}

// GetInventory godoc
// @Summary Get seat availability for a flight
// @Description Returns live availability; missing flight or inventory is reported in the body with status 200
// @Tags Inventory
// @Produce json
// @Param flight_number path string true "Flight number"
// @Success 200 {object} object{flight_number=string,available_business_seats=int,available_economy_seats=int}
// @Router /api/flight-inventory/inventory/{flight_number} [get]
func (h *FlightHandler) GetInventoryDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{status=string}
// @Failure 503 {object} object{error=string}
// @Router /health [get]
func (h *FlightHandler) HealthCheckDoc() {}
