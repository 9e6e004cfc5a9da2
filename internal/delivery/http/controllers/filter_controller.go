package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"eventdiscovery/internal/delivery/http/helpers"
	"eventdiscovery/internal/delivery/http/middleware"
	"eventdiscovery/internal/domain"
)

// SaveFilterRequest is the request body for POST /v1/events/filters/save.
type SaveFilterRequest struct {
	ID        int64                   `json:"id"`
	StartTime domain.Optional[string] `json:"start_time" swaggertype:"string"`
	EndTime   domain.Optional[string] `json:"end_time" swaggertype:"string"`
	City      domain.Optional[int64]  `json:"city" swaggertype:"integer"`
	Subjects  []int64                 `json:"subjects"`
}

func (s SaveFilterRequest) Validate() []string {
	if s.ID < 0 {
		return []string{"wrong filter id"}
	}
	return nil
}

// FilterResponse is a saved filter with its subjects.
type FilterResponse struct {
	ID        int64             `json:"id"`
	StartTime *time.Time        `json:"start_time"`
	EndTime   *time.Time        `json:"end_time"`
	City      *int64            `json:"city"`
	Subjects  []SubjectResponse `json:"subjects"`
}

func newFilterResponse(d *domain.FilterDetails) FilterResponse {
	return FilterResponse{
		ID:        d.Filter.ID,
		StartTime: d.Filter.StartTime,
		EndTime:   d.Filter.EndTime,
		City:      d.Filter.CityID,
		Subjects:  newSubjectResponses(d.Subjects),
	}
}

type FilterController struct {
	Logger  *slog.Logger
	Service domain.FilterService
}

func NewFilterController(logger *slog.Logger, svc domain.FilterService) *FilterController {
	return &FilterController{Logger: logger, Service: svc}
}

// SaveFilter godoc
// @Summary Create or update a saved filter
// @Tags filters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param filter body SaveFilterRequest true "Filter"
// @Success 200 {object} FilterResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Router /v1/events/filters/save [post]
func (c *FilterController) SaveFilter(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, domain.ErrNoToken.Error())
		return
	}
	var req SaveFilterRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	details, err := c.Service.Save(r.Context(), user, domain.FilterInput{
		ID:        req.ID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		City:      req.City,
		Subjects:  req.Subjects,
	})
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, newFilterResponse(details))
}

// ListFilters godoc
// @Summary List the caller's saved filters
// @Tags filters
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {array} FilterResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Router /v1/events/filters [get]
func (c *FilterController) ListFilters(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, domain.ErrNoToken.Error())
		return
	}
	page, err := helpers.ParsePagination(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	filters, err := c.Service.List(r.Context(), user.ID, page)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	out := make([]FilterResponse, len(filters))
	for i, f := range filters {
		out[i] = newFilterResponse(f)
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}
