package http

import (
	"testing"
	"time"

	"rentals-service/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	inputs := []string{
		"2024-01-01T00:00Z",
		"2024-01-01T00:00:00Z",
		"2024-01-01T03:00:00+03:00",
		"2024-01-01T03:00+03:00",
		"2023-12-31T19:00:00.000-05:00",
		"2024-01-01T00:00:00",
		"2024-01-01",
	}
	for _, in := range inputs {
		got, err := ParseTimestamp(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%s parsed as %s", in, got)
		assert.Equal(t, time.UTC, got.Location(), in)
	}

	_, err := ParseTimestamp("yesterday")
	assert.Error(t, err)
}

func TestRentalDTO_JSON(t *testing.T) {
	body := `{"rentalUid":"5d0d9a3e-5b2a-4f4e-9b8e-3c7e5c8a1f00","username":"alice",
		"paymentUid":"238e4b4c-bd65-4e7c-9a46-0a5b1e7cf5a1","carUid":"109b42f3-198d-4c89-9276-a7520a7120ab",
		"dateFrom":"2024-01-01T03:00+03:00","dateTo":"2024-01-05T00:00Z","status":"PENDING","id":99}`

	var dto RentalDTO
	require.NoError(t, json.Unmarshal([]byte(body), &dto))

	r := MapDTOToDomain(&dto)
	assert.Equal(t, int64(0), r.ID, "internal id is never read from input")
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), r.DateFrom)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), r.DateTo)
	assert.Equal(t, "alice", r.Username)

	out, err := json.Marshal(MapDomainToDTO(&r))
	require.NoError(t, err)
	assert.Contains(t, string(out), `"dateFrom":"2024-01-01T00:00:00Z"`)
	assert.NotContains(t, string(out), `"id"`)
}

func TestMapper_RoundTrip(t *testing.T) {
	stored := domain.Rental{
		ID:         12,
		RentalUID:  uuid.New(),
		Username:   "alice",
		PaymentUID: uuid.New(),
		CarUID:     uuid.New(),
		DateFrom:   time.Date(2024, 1, 1, 10, 30, 0, 123456000, time.UTC),
		DateTo:     time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Status:     domain.RentalStatusInProgress,
	}

	raw, err := json.Marshal(MapDomainToDTO(&stored))
	require.NoError(t, err)
	var dto RentalDTO
	require.NoError(t, json.Unmarshal(raw, &dto))

	back := MapDTOToDomain(&dto)
	expected := stored
	expected.ID = 0
	assert.Equal(t, expected, back)
}

func TestMapDTOToBooking(t *testing.T) {
	dto := &RentalDTO{
		Username: "alice",
		CarUID:   uuid.New(),
		DateFrom: Timestamp{time.Date(2024, 1, 1, 3, 0, 0, 0, time.FixedZone("MSK", 3*60*60))},
		Status:   "FINISHED",
	}
	req := MapDTOToBooking(dto)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), req.DateFrom)
	assert.Equal(t, uuid.Nil, req.RentalUID)
	assert.Equal(t, dto.CarUID, req.CarUID)
}

func TestMapDomainListToDTO(t *testing.T) {
	assert.Empty(t, MapDomainListToDTO(nil))
	assert.NotNil(t, MapDomainListToDTO(nil))
	assert.Nil(t, MapDomainToDTO(nil))
}
