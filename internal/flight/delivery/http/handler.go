package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/skyops/pss/internal/flight/domain"
	"github.com/skyops/pss/internal/flight/usecase/command"
	"github.com/skyops/pss/internal/flight/usecase/query"
	"github.com/skyops/pss/pkg/logger"
)

// Guard wraps a handler with an authentication check. A nil Guard leaves the
// route open.
type Guard func(http.HandlerFunc) http.HandlerFunc

// FlightHandler handles HTTP requests for schedules and inventory
type FlightHandler struct {
	upsertScheduleHandler  *command.UpsertScheduleHandler
	upsertInventoryHandler *command.UpsertInventoryHandler
	listSchedulesHandler   *query.ListSchedulesHandler
	getAvailabilityHandler *query.GetAvailabilityHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewFlightHandler creates a new flight handler
func NewFlightHandler(
	upsertScheduleHandler *command.UpsertScheduleHandler,
	upsertInventoryHandler *command.UpsertInventoryHandler,
	listSchedulesHandler *query.ListSchedulesHandler,
	getAvailabilityHandler *query.GetAvailabilityHandler,
) *FlightHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flight_inventory_requests_total",
			Help: "Total number of requests to the flight inventory service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "flight_inventory_request_duration_seconds",
			Help:    "Duration of flight inventory requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &FlightHandler{
		upsertScheduleHandler:  upsertScheduleHandler,
		upsertInventoryHandler: upsertInventoryHandler,
		listSchedulesHandler:   listSchedulesHandler,
		getAvailabilityHandler: getAvailabilityHandler,
		requestCounter:         requestCounter,
		requestLatency:         requestLatency,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

type scheduleRequest struct {
	FlightNumber         string      `json:"flight_number"`
	DepartureDate        domain.Date `json:"departure_date"`
	Origin               string      `json:"origin"`
	Destination          string      `json:"destination"`
	BusinessSeatCapacity int         `json:"business_seat_capacity"`
	EconomySeatCapacity  int         `json:"economy_seat_capacity"`
}

type inventoryRequest struct {
	FlightNumber        string      `json:"flight_number"`
	DepartureDate       domain.Date `json:"departure_date"`
	BookedBusinessSeats int         `json:"booked_business_seats"`
	BookedEconomySeats  int         `json:"booked_economy_seats"`
}

// UpsertSchedule handles POST /api/flight-inventory/schedule
func (h *FlightHandler) UpsertSchedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}
	if req.FlightNumber == "" || req.DepartureDate.IsZero() {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "flight_number and departure_date are required"})
		return
	}

	schedule, err := h.upsertScheduleHandler.Handle(r.Context(), command.UpsertScheduleCommand{
		FlightNumber:         req.FlightNumber,
		DepartureDate:        req.DepartureDate,
		Origin:               req.Origin,
		Destination:          req.Destination,
		BusinessSeatCapacity: req.BusinessSeatCapacity,
		EconomySeatCapacity:  req.EconomySeatCapacity,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to upsert schedule")
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to upsert schedule"})
		return
	}

	respondJSON(w, http.StatusOK, schedule)
}

// ListSchedules handles GET /api/flight-inventory/schedule
func (h *FlightHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.listSchedulesHandler.Handle(r.Context())
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list schedules")
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to list schedules"})
		return
	}

	respondJSON(w, http.StatusOK, schedules)
}

// UpsertInventory handles PUT /api/flight-inventory/inventory
func (h *FlightHandler) UpsertInventory(w http.ResponseWriter, r *http.Request) {
	var req inventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}
	if req.FlightNumber == "" || req.DepartureDate.IsZero() {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "flight_number and departure_date are required"})
		return
	}

	result, err := h.upsertInventoryHandler.Handle(r.Context(), command.UpsertInventoryCommand{
		FlightNumber:        req.FlightNumber,
		DepartureDate:       req.DepartureDate,
		BookedBusinessSeats: req.BookedBusinessSeats,
		BookedEconomySeats:  req.BookedEconomySeats,
	})
	if err != nil {
		var capacityErr *domain.CapacityExceededError
		switch {
		case errors.Is(err, domain.ErrScheduleNotFound):
			respondJSON(w, http.StatusNotFound, errorResponse{Error: "Flight not found"})
		case errors.As(err, &capacityErr):
			respondJSON(w, http.StatusBadRequest, errorResponse{
				Error: fmt.Sprintf("Booked %s seats exceed capacity", capacityErr.Cabin),
			})
		default:
			logger.Error(r.Context()).Err(err).Msg("Failed to upsert inventory")
			respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to upsert inventory"})
		}
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetInventory handles GET /api/flight-inventory/inventory/{flight_number}.
// A missing flight or inventory is reported as a 200 with an error-shaped
// body, not a 404.
func (h *FlightHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	view, err := h.getAvailabilityHandler.Handle(r.Context(), query.GetAvailabilityQuery{
		FlightNumber: vars["flight_number"],
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrScheduleNotFound):
			respondJSON(w, http.StatusOK, errorResponse{Error: "Flight not found"})
		case errors.Is(err, domain.ErrInventoryNotFound):
			respondJSON(w, http.StatusOK, errorResponse{Error: "Inventory not found"})
		default:
			logger.Error(r.Context()).Err(err).Msg("Failed to get inventory")
			respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to get inventory"})
		}
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// RegisterRoutes registers all flight inventory routes. guard protects the
// mutating routes when non-nil.
func (h *FlightHandler) RegisterRoutes(router *mux.Router, guard Guard) {
	if guard == nil {
		guard = func(next http.HandlerFunc) http.HandlerFunc { return next }
	}

	router.HandleFunc("/api/flight-inventory/schedule",
		h.metricsMiddleware("/api/flight-inventory/schedule", guard(h.UpsertSchedule))).Methods("POST")
	router.HandleFunc("/api/flight-inventory/schedule",
		h.metricsMiddleware("/api/flight-inventory/schedule", h.ListSchedules)).Methods("GET")
	router.HandleFunc("/api/flight-inventory/inventory",
		h.metricsMiddleware("/api/flight-inventory/inventory", guard(h.UpsertInventory))).Methods("PUT")
	router.HandleFunc("/api/flight-inventory/inventory/{flight_number}",
		h.metricsMiddleware("/api/flight-inventory/inventory/{flight_number}", h.GetInventory)).Methods("GET")
}

// RegisterHealthCheck registers the health check endpoint
func (h *FlightHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "Database unavailable"})
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *FlightHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
