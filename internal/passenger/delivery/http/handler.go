package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/skyops/pss/events"
	"github.com/skyops/pss/internal/passenger/domain"
	"github.com/skyops/pss/internal/passenger/usecase/command"
	"github.com/skyops/pss/internal/passenger/usecase/query"
	"github.com/skyops/pss/pkg/logger"
)

// Guard wraps a handler with an authentication check. A nil Guard leaves the
// route open.
type Guard func(http.HandlerFunc) http.HandlerFunc

// PassengerHandler handles HTTP requests for passengers
type PassengerHandler struct {
	checkInHandler *command.CheckInPassengerHandler
	boardHandler   *command.BoardPassengerHandler
	offloadHandler *command.OffloadPassengerHandler

	byFlightHandler *query.GetByFlightHandler
	byPNRHandler    *query.GetByPNRHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewPassengerHandler creates a new passenger handler
func NewPassengerHandler(repo domain.PassengerRepository, publisher events.Publisher) *PassengerHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "passenger_service_requests_total",
			Help: "Total number of requests to the passenger service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "passenger_service_request_duration_seconds",
			Help:    "Duration of passenger service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &PassengerHandler{
		checkInHandler:  command.NewCheckInPassengerHandler(repo, publisher),
		boardHandler:    command.NewBoardPassengerHandler(repo, publisher),
		offloadHandler:  command.NewOffloadPassengerHandler(repo, publisher),
		byFlightHandler: query.NewGetByFlightHandler(repo),
		byPNRHandler:    query.NewGetByPNRHandler(repo),
		requestCounter:  requestCounter,
		requestLatency:  requestLatency,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

type actionRequest struct {
	PassengerID int `json:"passenger_id"`
}

// GetByFlight handles GET /api/passengers/flight/{flight_number}
func (h *PassengerHandler) GetByFlight(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	passengers, err := h.byFlightHandler.Handle(r.Context(), query.GetByFlightQuery{
		FlightNumber: vars["flight_number"],
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list passengers by flight")
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to list passengers"})
		return
	}

	respondJSON(w, http.StatusOK, passengers)
}

// GetByPNR handles GET /api/passengers/pnr/{pnr}
func (h *PassengerHandler) GetByPNR(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	pnr := vars["pnr"]

	passengers, err := h.byPNRHandler.Handle(r.Context(), query.GetByPNRQuery{PNR: pnr})
	if err != nil {
		if errors.Is(err, domain.ErrPassengerNotFound) {
			respondJSON(w, http.StatusNotFound, errorResponse{
				Error: fmt.Sprintf("No passengers found with PNR %s", pnr),
			})
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to list passengers by PNR")
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to list passengers"})
		return
	}

	respondJSON(w, http.StatusOK, passengers)
}

// CheckIn handles POST /api/passengers/checkin
func (h *PassengerHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, func(ctx context.Context, id uint) (*domain.Passenger, error) {
		return h.checkInHandler.Handle(ctx, command.CheckInPassengerCommand{PassengerID: id})
	})
}

// Board handles POST /api/passengers/board
func (h *PassengerHandler) Board(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, func(ctx context.Context, id uint) (*domain.Passenger, error) {
		return h.boardHandler.Handle(ctx, command.BoardPassengerCommand{PassengerID: id})
	})
}

// Offload handles POST /api/passengers/offload
func (h *PassengerHandler) Offload(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, func(ctx context.Context, id uint) (*domain.Passenger, error) {
		return h.offloadHandler.Handle(ctx, command.OffloadPassengerCommand{PassengerID: id})
	})
}

func (h *PassengerHandler) action(w http.ResponseWriter, r *http.Request, run func(context.Context, uint) (*domain.Passenger, error)) {
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}
	if req.PassengerID <= 0 {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "passenger_id is required and must be greater than 0"})
		return
	}

	passenger, err := run(r.Context(), uint(req.PassengerID))
	if err != nil {
		if errors.Is(err, domain.ErrPassengerNotFound) {
			respondJSON(w, http.StatusNotFound, errorResponse{
				Error: fmt.Sprintf("Passenger with ID %d not found", req.PassengerID),
			})
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to update passenger status")
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to update passenger"})
		return
	}

	respondJSON(w, http.StatusOK, passenger)
}

// RegisterRoutes registers all passenger routes. guard protects the mutating
// routes when non-nil.
func (h *PassengerHandler) RegisterRoutes(router *mux.Router, guard Guard) {
	if guard == nil {
		guard = func(next http.HandlerFunc) http.HandlerFunc { return next }
	}

	router.HandleFunc("/api/passengers/flight/{flight_number}",
		h.metricsMiddleware("/api/passengers/flight/{flight_number}", h.GetByFlight)).Methods("GET")
	router.HandleFunc("/api/passengers/pnr/{pnr}",
		h.metricsMiddleware("/api/passengers/pnr/{pnr}", h.GetByPNR)).Methods("GET")
	router.HandleFunc("/api/passengers/checkin",
		h.metricsMiddleware("/api/passengers/checkin", guard(h.CheckIn))).Methods("POST")
	router.HandleFunc("/api/passengers/board",
		h.metricsMiddleware("/api/passengers/board", guard(h.Board))).Methods("POST")
	router.HandleFunc("/api/passengers/offload",
		h.metricsMiddleware("/api/passengers/offload", guard(h.Offload))).Methods("POST")
}

// RegisterHealthCheck registers the health check endpoint
func (h *PassengerHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
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
func (h *PassengerHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
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
