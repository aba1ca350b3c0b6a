package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/md-rashed-zaman/meetslots/services/slot-service/internal/availability"
)

func newTestHandler() *SlotsHandler {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewSlotsHandler(availability.DefaultCalendar(), availability.ISODayResolver{}, logger)
}

func decodeSlots(t *testing.T, rw *httptest.ResponseRecorder) slotsResponse {
	t.Helper()
	if rw.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rw.Code, rw.Body.String())
	}
	var resp slotsResponse
	if err := json.Unmarshal(rw.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestSlots_Post(t *testing.T) {
	body := `{"events":[{"start":"10:00","end":"11:00"}],"duration_minutes":30,"day":"2026-02-06"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/slots", strings.NewReader(body))
	rw := httptest.NewRecorder()
	newTestHandler().Slots(rw, req)

	resp := decodeSlots(t, rw)
	if !resp.Friday {
		t.Fatalf("expected 2026-02-06 to resolve to Friday")
	}
	if slices.Contains(resp.Slots, "10:00") || slices.Contains(resp.Slots, "15:00") {
		t.Fatalf("unexpected slots: %v", resp.Slots)
	}
	if !slices.Contains(resp.Slots, "11:30") || !slices.Contains(resp.Slots, "14:45") {
		t.Fatalf("missing expected slots: %v", resp.Slots)
	}
}

func TestSlots_GetFreeDay(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/slots?day=2026-02-02&duration_minutes=60", nil)
	rw := httptest.NewRecorder()
	newTestHandler().Slots(rw, req)

	resp := decodeSlots(t, rw)
	if resp.Friday || resp.DurationMinutes != 60 {
		t.Fatalf("unexpected response: %#v", resp)
	}
	if resp.Slots[len(resp.Slots)-1] != "16:00" {
		t.Fatalf("expected last slot 16:00, got %v", resp.Slots)
	}
}

func TestSlots_EmptyResultIsArray(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/slots?day=2026-02-02&duration_minutes=600", nil)
	rw := httptest.NewRecorder()
	newTestHandler().Slots(rw, req)
	if !strings.Contains(rw.Body.String(), `"slots":[]`) {
		t.Fatalf("expected empty slots array, got %s", rw.Body.String())
	}
}

func TestSlots_MaxIntDurationIsEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/slots?day=2026-02-02&duration_minutes=9223372036854775807", nil)
	rw := httptest.NewRecorder()
	newTestHandler().Slots(rw, req)

	resp := decodeSlots(t, rw)
	if len(resp.Slots) != 0 {
		t.Fatalf("expected no slots, got %v", resp.Slots)
	}
}

func TestSlots_BadRequests(t *testing.T) {
	cases := []struct {
		name   string
		method string
		target string
		body   string
		code   int
		substr string
	}{
		{"method", http.MethodDelete, "/api/v1/slots", "", http.StatusMethodNotAllowed, "method not allowed"},
		{"json", http.MethodPost, "/api/v1/slots", "{", http.StatusBadRequest, "invalid json"},
		{"missing day", http.MethodPost, "/api/v1/slots", `{"duration_minutes":30}`, http.StatusBadRequest, "required"},
		{"missing duration", http.MethodGet, "/api/v1/slots?day=2026-02-02", "", http.StatusBadRequest, "required"},
		{"duration", http.MethodGet, "/api/v1/slots?day=2026-02-02&duration_minutes=half", "", http.StatusBadRequest, "integer"},
		{"day", http.MethodPost, "/api/v1/slots", `{"duration_minutes":30,"day":"Friday"}`, http.StatusBadRequest, "invalid day"},
		{"clock", http.MethodPost, "/api/v1/slots", `{"events":[{"start":"10","end":"11:00"}],"duration_minutes":30,"day":"2026-02-02"}`, http.StatusBadRequest, `"10"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.target, strings.NewReader(tc.body))
			rw := httptest.NewRecorder()
			newTestHandler().Slots(rw, req)
			if rw.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rw.Code)
			}
			if !strings.Contains(rw.Body.String(), tc.substr) {
				t.Fatalf("expected body to contain %q, got %q", tc.substr, rw.Body.String())
			}
		})
	}
}
