package controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"eventdiscovery/internal/delivery/http/helpers"
	"eventdiscovery/internal/delivery/http/middleware"
	"eventdiscovery/internal/domain"
)

// SaveEventRequest is the request body for POST /v1/events/create. Without id a new
// event is created. With id the event is updated: omitted fields are left as they
// are and null clears a field. Subjects are only ever added.
type SaveEventRequest struct {
	ID        int64                             `json:"id"`
	Name      domain.Optional[string]           `json:"name" swaggertype:"string"`
	StartTime domain.Optional[string]           `json:"start_time" swaggertype:"string" example:"2025-06-01T18:00:00Z"`
	EndTime   domain.Optional[string]           `json:"end_time" swaggertype:"string" example:"2025-06-01T21:00:00Z"`
	City      domain.Optional[domain.CityInput] `json:"city" swaggertype:"object"`
	Subjects  []domain.SubjectInput             `json:"subjects"`
}

func (s SaveEventRequest) Validate() []string {
	if s.ID < 0 {
		return []string{"wrong event id"}
	}
	return nil
}

func (s SaveEventRequest) input() domain.EventInput {
	return domain.EventInput{
		ID:        s.ID,
		Name:      s.Name,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		City:      s.City,
		Subjects:  s.Subjects,
	}
}

// SubjectResponse is a subject as embedded in event and filter responses.
type SubjectResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// EventResponse is an event with its city name and full subject list.
type EventResponse struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	StartTime *time.Time        `json:"start_time"`
	EndTime   *time.Time        `json:"end_time"`
	City      *string           `json:"city"`
	Subjects  []SubjectResponse `json:"subjects"`
}

func newSubjectResponses(subjects []*domain.Subject) []SubjectResponse {
	out := make([]SubjectResponse, len(subjects))
	for i, s := range subjects {
		out[i] = SubjectResponse{ID: s.ID, Name: s.Name}
	}
	return out
}

func newEventResponse(d *domain.EventDetails) EventResponse {
	resp := EventResponse{
		ID:        d.Event.ID,
		Name:      d.Event.Name,
		StartTime: d.Event.StartTime,
		EndTime:   d.Event.EndTime,
		Subjects:  newSubjectResponses(d.Subjects),
	}
	if d.City != nil {
		resp.City = &d.City.Name
	}
	return resp
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// SaveEvent godoc
// @Summary Create or update an event
// @Description Creates an event owned by the caller, or updates one by id. Cities and subjects are referenced by id or created from a name. Updates of someone else's event are ignored.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body SaveEventRequest true "Event"
// @Success 200 {object} EventResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 406 {object} helpers.ErrorResponse "wrong user_type"
// @Router /v1/events/create [post]
func (c *EventController) SaveEvent(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, domain.ErrNoToken.Error())
		return
	}
	var req SaveEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	details, err := c.Service.Save(r.Context(), user, req.input())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, newEventResponse(details))
}

// ListEvents godoc
// @Summary List events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param city query int false "City id"
// @Param start_time query string false "Only events starting at or after this time"
// @Param end_time query string false "Only events ending at or before this time"
// @Param subjects query string false "Comma-separated subject ids; events with any of them match"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {array} EventResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Router /v1/events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	filter, reason := parseEventFilter(r)
	if reason != "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, reason)
		return
	}
	events, err := c.Service.List(r.Context(), filter)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	out := make([]EventResponse, len(events))
	for i, e := range events {
		out[i] = newEventResponse(e)
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

func parseEventFilter(r *http.Request) (domain.EventFilter, string) {
	var f domain.EventFilter
	page, err := helpers.ParsePagination(r)
	if err != nil {
		return f, err.Error()
	}
	f.Page = page

	q := r.URL.Query()
	if s := q.Get("city"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return f, "wrong city id"
		}
		f.CityID = &id
	}
	if s := q.Get("start_time"); s != "" {
		t, err := domain.ParseTimestamp(s)
		if err != nil {
			return f, "wrong start_time"
		}
		f.StartTime = &t
	}
	if s := q.Get("end_time"); s != "" {
		t, err := domain.ParseTimestamp(s)
		if err != nil {
			return f, "wrong end_time"
		}
		f.EndTime = &t
	}
	if s := q.Get("subjects"); s != "" {
		ids, ok := parseIDList(s)
		if !ok {
			return f, "wrong subject id"
		}
		f.SubjectIDs = ids
	}
	return f, ""
}

// parseIDList parses "1,2,3". Empty items are skipped.
func parseIDList(s string) ([]int64, bool) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
