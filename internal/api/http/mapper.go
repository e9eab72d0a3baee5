package http

import (
	"fmt"
	"strconv"
	"time"

	"rentals-service/internal/domain"

	"github.com/google/uuid"
)

// timestampLayouts are tried in order. Layouts without a zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Timestamp is an ISO-8601 instant on the wire, normalized to UTC.
type Timestamp struct {
	time.Time
}

func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(t.UTC().Format(time.RFC3339Nano))), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.Time = time.Time{}
		return nil
	}
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// RentalDTO is the external shape of a rental. It carries no internal id.
type RentalDTO struct {
	RentalUID  uuid.UUID `json:"rentalUid"`
	Username   string    `json:"username"`
	PaymentUID uuid.UUID `json:"paymentUid"`
	CarUID     uuid.UUID `json:"carUid"`
	DateFrom   Timestamp `json:"dateFrom"`
	DateTo     Timestamp `json:"dateTo"`
	Status     string    `json:"status"`
}

func MapDTOToDomain(dto *RentalDTO) domain.Rental {
	return domain.Rental{
		RentalUID:  dto.RentalUID,
		Username:   dto.Username,
		PaymentUID: dto.PaymentUID,
		CarUID:     dto.CarUID,
		DateFrom:   dto.DateFrom.UTC(),
		DateTo:     dto.DateTo.UTC(),
		Status:     domain.RentalStatus(dto.Status),
	}
}

// MapDTOToBooking drops the status: new rentals always start PENDING.
func MapDTOToBooking(dto *RentalDTO) domain.BookingRequest {
	return domain.BookingRequest{
		RentalUID:  dto.RentalUID,
		Username:   dto.Username,
		PaymentUID: dto.PaymentUID,
		CarUID:     dto.CarUID,
		DateFrom:   dto.DateFrom.UTC(),
		DateTo:     dto.DateTo.UTC(),
	}
}

func MapDomainToDTO(r *domain.Rental) *RentalDTO {
	if r == nil {
		return nil
	}
	return &RentalDTO{
		RentalUID:  r.RentalUID,
		Username:   r.Username,
		PaymentUID: r.PaymentUID,
		CarUID:     r.CarUID,
		DateFrom:   Timestamp{r.DateFrom.UTC()},
		DateTo:     Timestamp{r.DateTo.UTC()},
		Status:     string(r.Status),
	}
}

func MapDomainListToDTO(rentals []domain.Rental) []*RentalDTO {
	dtos := make([]*RentalDTO, len(rentals))
	for i := range rentals {
		dtos[i] = MapDomainToDTO(&rentals[i])
	}
	return dtos
}
