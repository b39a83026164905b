package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manpreet1462/bookit/internal/model"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", 2*time.Second)
}

func TestListExperiences(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/experiences", r.URL.Path)
		assert.Equal(t, "no-store", r.Header.Get("Cache-Control"))
		_, _ = w.Write([]byte(`[{"_id":"e1","title":"Kayaking","location":"Udupi","price":999,
			"slots":[{"_id":"s1","date":"2024-10-23T00:00:00.000Z","time":"07:00 am","capacity":10,"bookedCount":4,"price":999}]}]`))
	})

	exps, err := c.ListExperiences(context.Background())

	require.NoError(t, err)
	require.Len(t, exps, 1)
	assert.Equal(t, "e1", exps[0].ID)
	assert.Equal(t, 999, exps[0].Price)
	require.Len(t, exps[0].Slots, 1)
	assert.Equal(t, 4, exps[0].Slots[0].BookedCount)
}

func TestListExperiencesNullBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	})

	exps, err := c.ListExperiences(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, exps)
	assert.Empty(t, exps)
}

func TestListExperiencesFailureUsesFixedMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"mongo down"}`))
	})

	_, err := c.ListExperiences(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "Failed to fetch experiences", apiErr.Message)
}

func TestGetExperienceEscapesID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/experiences/a%2Fb", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{"_id":"a/b","title":"Sunrise trek","location":"Coorg","price":500,"slots":[]}`))
	})

	exp, err := c.GetExperience(context.Background(), "a/b")

	require.NoError(t, err)
	assert.Equal(t, "Sunrise trek", exp.Title)
}

func TestGetExperienceNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := c.GetExperience(context.Background(), "missing")

	assert.True(t, IsNotFound(err))
	assert.Equal(t, "Failed to fetch experience", Message(err))
}

func TestValidatePromo(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/promo/validate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"code": "SAVE10", "amount": float64(1000)}, body)

		_, _ = w.Write([]byte(`{"valid":true,"code":"SAVE10","discount":100,"finalTotal":900}`))
	})

	res, err := c.ValidatePromo(context.Background(), "SAVE10", 1000)

	require.NoError(t, err)
	assert.True(t, res.Valid)
	require.NotNil(t, res.FinalTotal)
	assert.Equal(t, 900, *res.FinalTotal)
	assert.True(t, res.Applies())
}

func TestValidatePromoRemoteMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Promo code expired"}`))
	})

	_, err := c.ValidatePromo(context.Background(), "OLD", 1000)

	assert.EqualError(t, err, "Promo code expired")
}

func TestCreateBooking(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bookings", r.URL.Path)

		var got model.BookingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "e1", got.ExperienceID)
		assert.Equal(t, "s1", got.SlotID)
		assert.Equal(t, "Asha", got.User.Name)
		assert.Equal(t, 2, got.Quantity)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"booking":{"referenceId":"HUF56&SO","experienceTitle":"Kayaking",
			"date":"2024-10-23","time":"07:00 am","total":1059,"status":"confirmed"}}`))
	})

	receipt, err := c.CreateBooking(context.Background(), model.BookingRequest{
		ExperienceID: "e1",
		SlotID:       "s1",
		User:         model.Customer{Name: "Asha", Email: "asha@example.com"},
		Quantity:     2,
	})

	require.NoError(t, err)
	assert.Equal(t, "HUF56&SO", receipt.Booking.ReferenceID)
	assert.Equal(t, 1059, receipt.Booking.Total)
	assert.JSONEq(t, `"confirmed"`, string(receipt.Booking.Extra["status"]))
}

func TestCreateBookingUndecodableSuccessIsLogged(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"booking":{"referenceId":"R1","total":959.5}}`))
	})

	_, err := c.CreateBooking(context.Background(), model.BookingRequest{Quantity: 1})

	var tErr *TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, "Failed to create booking", Message(err))
	assert.Contains(t, buf.String(), "201")
	assert.Contains(t, buf.String(), "POST /bookings")
	assert.Contains(t, buf.String(), `"referenceId":"R1"`)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate([]byte("abc"), 3))
	assert.Equal(t, "ab...(truncated)", truncate([]byte("abc"), 2))
}

func TestCreateBookingFailureMessages(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"remote message", http.StatusConflict, `{"message":"Slot is full"}`, "Slot is full"},
		{"empty body", http.StatusInternalServerError, ``, "Failed to create booking"},
		{"not json", http.StatusBadGateway, `<html>bad gateway</html>`, "Failed to create booking"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.CreateBooking(context.Background(), model.BookingRequest{Quantity: 1})

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
		})
	}
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	_, err := New(base, time.Second).ListExperiences(context.Background())

	var tErr *TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, "Failed to fetch experiences", Message(err))
	assert.False(t, IsNotFound(err))
}

func TestContextCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListExperiences(ctx)

	assert.True(t, errors.Is(err, context.Canceled))
}
