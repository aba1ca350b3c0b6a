package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/md-rashed-zaman/meetslots/libs/httpx"
	"github.com/md-rashed-zaman/meetslots/services/slot-service/internal/availability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "github.com/md-rashed-zaman/meetslots/services/slot-service/internal/handlers"

type SlotsHandler struct {
	calendar availability.Calendar
	days     availability.DayResolver
	logger   *slog.Logger
}

func NewSlotsHandler(calendar availability.Calendar, days availability.DayResolver, logger *slog.Logger) *SlotsHandler {
	return &SlotsHandler{
		calendar: calendar,
		days:     days,
		logger:   logger,
	}
}

type slotsRequest struct {
	Events          []availability.Event `json:"events"`
	DurationMinutes *int                 `json:"duration_minutes"`
	Day             string               `json:"day"`
}

type slotsResponse struct {
	Day             string   `json:"day"`
	Friday          bool     `json:"friday"`
	DurationMinutes int      `json:"duration_minutes"`
	Slots           []string `json:"slots"`
}

// Slots serves POST with a JSON body of events, and GET with day/duration_minutes query
// parameters for a day without events.
func (h *SlotsHandler) Slots(w http.ResponseWriter, r *http.Request) {
	var req slotsRequest
	switch r.Method {
	case http.MethodPost:
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json body", http.StatusBadRequest)
			return
		}
	case http.MethodGet:
		q := r.URL.Query()
		req.Day = q.Get("day")
		if raw := strings.TrimSpace(q.Get("duration_minutes")); raw != "" {
			d, err := strconv.Atoi(raw)
			if err != nil {
				http.Error(w, "duration_minutes must be an integer", http.StatusBadRequest)
				return
			}
			req.DurationMinutes = &d
		}
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req.Day = strings.TrimSpace(req.Day)
	if req.Day == "" || req.DurationMinutes == nil {
		http.Error(w, "day and duration_minutes are required", http.StatusBadRequest)
		return
	}
	duration := *req.DurationMinutes

	ctx, span := otel.Tracer(tracerName).Start(r.Context(), "slots.suggest")
	defer span.End()
	span.SetAttributes(
		attribute.String("slots.day", req.Day),
		attribute.Int("slots.duration_minutes", duration),
		attribute.Int("slots.events", len(req.Events)),
	)

	friday, err := h.days.IsFriday(req.Day)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid day")
		h.logger.WarnContext(ctx, "invalid day", "request_id", httpx.RequestIDFromContext(ctx), "day", req.Day, "err", err)
		http.Error(w, "invalid day (expected YYYY-MM-DD)", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.Bool("slots.friday", friday))

	slots, err := h.calendar.SuggestSlots(req.Events, duration, friday)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid event time")
		h.logger.WarnContext(ctx, "invalid event time", "request_id", httpx.RequestIDFromContext(ctx), "err", err)
		var pe *availability.ParseError
		if errors.As(err, &pe) {
			http.Error(w, "invalid event time "+strconv.Quote(pe.Value)+" (expected HH:MM)", http.StatusBadRequest)
			return
		}
		http.Error(w, "invalid event time", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.Int("slots.count", len(slots)))

	body, err := json.Marshal(slotsResponse{
		Day:             req.Day,
		Friday:          friday,
		DurationMinutes: duration,
		Slots:           slots,
	})
	if err != nil {
		http.Error(w, "failed to build response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
