package http

import (
	"fmt"
	"net/http"
	"strings"

	"rentals-service/internal/domain"
	"rentals-service/internal/logger"
	"rentals-service/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const (
	rentalBasePath = "/api/v1/rental"
	userNameKey    = "X-User-Name"
	maxBodyBytes   = 1 << 20
)

// RentalHandler exposes the rental lifecycle over HTTP
type RentalHandler struct {
	rentalSvc service.RentalService
}

func NewRentalHandler(rentalSvc service.RentalService) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc}
}

// RegisterRoutes registers the rental endpoints on router
func RegisterRoutes(router *mux.Router, h *RentalHandler) {
	api := router.PathPrefix(rentalBasePath).Subrouter()
	api.HandleFunc("", h.ListRentals).Methods(http.MethodGet)
	api.HandleFunc("", h.CreateRental).Methods(http.MethodPost)
	api.HandleFunc("/{rentalUid}", h.GetRental).Methods(http.MethodGet)
	api.HandleFunc("/{username}/{rentalUid}/{status}", h.ChangeRentalStatus).Methods(http.MethodPatch)
}

// ListRentals handles GET /api/v1/rental
func (h *RentalHandler) ListRentals(w http.ResponseWriter, r *http.Request) {
	username, err := requestUsername(r)
	if err != nil {
		writeError(w, r, "ListRentals", err)
		return
	}

	rentals, err := h.rentalSvc.GetRentalsByUser(r.Context(), username)
	if err != nil {
		writeError(w, r, "ListRentals", err)
		return
	}
	writeJSON(w, http.StatusOK, MapDomainListToDTO(rentals))
}

// GetRental handles GET /api/v1/rental/{rentalUid}
func (h *RentalHandler) GetRental(w http.ResponseWriter, r *http.Request) {
	username, err := requestUsername(r)
	if err != nil {
		writeError(w, r, "GetRental", err)
		return
	}
	rentalUID, err := pathUUID(r, "rentalUid")
	if err != nil {
		writeError(w, r, "GetRental", err)
		return
	}

	rental, err := h.rentalSvc.GetRental(r.Context(), username, rentalUID)
	if err != nil {
		writeError(w, r, "GetRental", err)
		return
	}
	writeJSON(w, http.StatusOK, MapDomainToDTO(rental))
}

// CreateRental handles POST /api/v1/rental
func (h *RentalHandler) CreateRental(w http.ResponseWriter, r *http.Request) {
	var dto RentalDTO
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&dto); err != nil {
		logger.DebugContext(r.Context(), "Rejected rental request body", "error", err)
		writeError(w, r, "CreateRental", domain.NewValidationError("", "invalid request body", nil))
		return
	}
	if strings.TrimSpace(dto.Username) == "" {
		// Clients that only send the user header still get their booking.
		if username, err := requestUsername(r); err == nil {
			dto.Username = username
		}
	}

	rental, err := h.rentalSvc.BookCar(r.Context(), MapDTOToBooking(&dto))
	if err != nil {
		writeError(w, r, "CreateRental", err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("%s/%s", rentalBasePath, rental.RentalUID))
	writeJSON(w, http.StatusCreated, MapDomainToDTO(rental))
}

// ChangeRentalStatus handles PATCH /api/v1/rental/{username}/{rentalUid}/{status}
func (h *RentalHandler) ChangeRentalStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	rentalUID, err := pathUUID(r, "rentalUid")
	if err != nil {
		writeError(w, r, "ChangeRentalStatus", err)
		return
	}
	status, err := domain.ParseRentalStatus(vars["status"])
	if err != nil {
		writeError(w, r, "ChangeRentalStatus", err)
		return
	}

	if _, err := h.rentalSvc.ChangeStatus(r.Context(), vars["username"], rentalUID, status); err != nil {
		writeError(w, r, "ChangeRentalStatus", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// requestUsername reads X-User-Name from the query string, falling back to
// the header of the same name.
func requestUsername(r *http.Request) (string, error) {
	username := strings.TrimSpace(r.URL.Query().Get(userNameKey))
	if username == "" {
		username = strings.TrimSpace(r.Header.Get(userNameKey))
	}
	if username == "" {
		return "", domain.NewValidationError(userNameKey, "is required", nil)
	}
	return username, nil
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, "must be a UUID", raw)
	}
	return id, nil
}
