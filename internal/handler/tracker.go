package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"weekhours-service/internal/i18n"
	"weekhours-service/internal/model"
	"weekhours-service/internal/service"
	"weekhours-service/internal/timecalc"
)

type TrackerHandler struct {
	svc *service.Tracker
}

func NewTrackerHandler(svc *service.Tracker) *TrackerHandler {
	return &TrackerHandler{svc: svc}
}

// dayRequest is the body for registering or editing a day. A non-empty
// Kind marks a special day and the clock times are ignored; otherwise
// both times are required.
type dayRequest struct {
	Date      string        `json:"date"`
	EntryTime string        `json:"entryTime"`
	ExitTime  string        `json:"exitTime"`
	Kind      model.DayKind `json:"kind,omitempty"`
}

// weekResponse pairs a stored week rollup with its derived metrics.
type weekResponse struct {
	Week    *model.WeekRecord   `json:"week"`
	Summary service.WeekSummary `json:"summary"`
}

// dayResponse is returned by every day mutation: the affected record (nil
// after a delete) plus the refreshed week.
type dayResponse struct {
	Day     *model.DayRecord    `json:"day"`
	Week    *model.WeekRecord   `json:"week"`
	Summary service.WeekSummary `json:"summary"`
}

// weekDayView is one enumerated day of the current week window.
type weekDayView struct {
	Date      string `json:"date"`
	DayName   string `json:"dayName"`
	DayNumber int    `json:"dayNumber"`
	IsWeekend bool   `json:"isWeekend"`
	IsToday   bool   `json:"isToday"`
}

// HandleCurrentWeek returns the user's current week, creating an empty
// one on first access.
func (h *TrackerHandler) HandleCurrentWeek(w http.ResponseWriter, r *http.Request) {
	week, err := h.svc.CurrentWeek(r.Context(), UserID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, weekResponse{Week: week, Summary: service.Summarize(week, h.svc.Rules())})
}

// HandleWeekDays enumerates the 7 days of the current week window with
// localized day names.
func (h *TrackerHandler) HandleWeekDays(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	info := timecalc.CurrentWeekInfo(now)
	days, err := timecalc.WeekDays(info.StartDate)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	today := timecalc.TodayLocalDate(now)
	views := make([]weekDayView, 0, len(days))
	for _, d := range days {
		views = append(views, weekDayView{
			Date:      d.Date,
			DayName:   i18n.WeekdayName(r.Context(), d.Weekday),
			DayNumber: d.DayNumber,
			IsWeekend: d.IsWeekend,
			IsToday:   d.Date == today,
		})
	}
	writeJSON(w, views)
}

// HandleWeekHistory lists all of the user's weeks, most recent first.
func (h *TrackerHandler) HandleWeekHistory(w http.ResponseWriter, r *http.Request) {
	weeks, err := h.svc.History(r.Context(), UserID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if weeks == nil {
		weeks = []*model.WeekRecord{}
	}
	writeJSON(w, weeks)
}

// HandleDayByDate returns the record for a date; an unrecorded date is a
// 404, which the frontend shows as the registration form.
func (h *TrackerHandler) HandleDayByDate(w http.ResponseWriter, r *http.Request) {
	day, err := h.svc.DayByDate(r.Context(), UserID(r.Context()), r.PathValue("date"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if day == nil {
		writeErrorStatus(w, r, http.StatusNotFound, "error.day_not_found")
		return
	}
	writeJSON(w, day)
}

// HandleRegisterDay creates a day record — normal when the body carries
// clock times, special when it carries a kind — and returns the
// recomputed week.
func (h *TrackerHandler) HandleRegisterDay(w http.ResponseWriter, r *http.Request) {
	var req dayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	userID := UserID(r.Context())
	var (
		day  *model.DayRecord
		week *model.WeekRecord
		err  error
	)
	if req.Kind != "" {
		day, week, err = h.svc.RegisterSpecial(r.Context(), userID, req.Date, req.Kind)
	} else {
		day, week, err = h.svc.RegisterNormal(r.Context(), userID, req.Date, req.EntryTime, req.ExitTime)
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, dayResponse{
		Day:     day,
		Week:    week,
		Summary: service.Summarize(week, h.svc.Rules()),
	})
}

// HandleEditDay reclassifies an existing record in place, to normal or
// special depending on the body, and returns the recomputed week.
func (h *TrackerHandler) HandleEditDay(w http.ResponseWriter, r *http.Request) {
	id, err := bson.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	var req dayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	userID := UserID(r.Context())
	var (
		day  *model.DayRecord
		week *model.WeekRecord
	)
	if req.Kind != "" {
		day, week, err = h.svc.EditToSpecial(r.Context(), userID, id, req.Kind)
	} else {
		day, week, err = h.svc.EditToNormal(r.Context(), userID, id, req.EntryTime, req.ExitTime)
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, dayResponse{
		Day:     day,
		Week:    week,
		Summary: service.Summarize(week, h.svc.Rules()),
	})
}

// HandleDeleteDay removes a record, leaving its date unrecorded, and
// returns the recomputed week.
func (h *TrackerHandler) HandleDeleteDay(w http.ResponseWriter, r *http.Request) {
	id, err := bson.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	week, err := h.svc.Remove(r.Context(), UserID(r.Context()), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, dayResponse{
		Week:    week,
		Summary: service.Summarize(week, h.svc.Rules()),
	})
}

// RegisterRoutes registers all tracker routes on the given mux.
func (h *TrackerHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/week/current", h.HandleCurrentWeek)
	mux.HandleFunc("GET /api/week/current/days", h.HandleWeekDays)
	mux.HandleFunc("GET /api/weeks", h.HandleWeekHistory)
	mux.HandleFunc("GET /api/days/{date}", h.HandleDayByDate)
	mux.HandleFunc("POST /api/days", h.HandleRegisterDay)
	mux.HandleFunc("PUT /api/days/{id}", h.HandleEditDay)
	mux.HandleFunc("DELETE /api/days/{id}", h.HandleDeleteDay)
}

// writeError maps service errors to HTTP statuses with a localized
// message. Validation failures reach the user; anything else is logged
// and reported generically.
func (h *TrackerHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrDayExists):
		writeErrorStatus(w, r, http.StatusConflict, "error.day_exists")
	case errors.Is(err, service.ErrDayNotFound):
		writeErrorStatus(w, r, http.StatusNotFound, "error.day_not_found")
	case errors.Is(err, service.ErrInvalidDate):
		writeErrorStatus(w, r, http.StatusBadRequest, "error.invalid_date")
	case errors.Is(err, service.ErrWeekendDate):
		writeErrorStatus(w, r, http.StatusBadRequest, "error.weekend")
	case errors.Is(err, service.ErrInvalidTimeRange):
		writeErrorStatus(w, r, http.StatusBadRequest, "error.invalid_time_range")
	case errors.Is(err, service.ErrInvalidTime):
		writeErrorStatus(w, r, http.StatusBadRequest, "error.invalid_time")
	case errors.Is(err, service.ErrInvalidKind):
		writeErrorStatus(w, r, http.StatusBadRequest, "error.invalid_kind")
	default:
		log.Printf("ERROR %s %s: %v", r.Method, r.URL.Path, err)
		writeErrorStatus(w, r, http.StatusInternalServerError, "error.internal")
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR encoding response: %v", err)
	}
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR encoding response: %v", err)
	}
}
