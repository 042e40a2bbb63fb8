package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"meetupscheduler/internal/delivery/http/helpers"
	"meetupscheduler/internal/delivery/http/middleware"
	"meetupscheduler/internal/domain"
)

type MeetupController struct {
	Logger  *slog.Logger
	Service domain.MeetupService
}

func NewMeetupController(logger *slog.Logger, svc domain.MeetupService) *MeetupController {
	return &MeetupController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateMeetupRequest is the request body for POST /meetups.
type CreateMeetupRequest struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	Date         time.Time `json:"date"`
	AttachmentID *string   `json:"attachment_id"`
}

// Validate implements helpers.Validator.
func (m CreateMeetupRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(m.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(m.Description) == "" {
		errs = append(errs, "description is required")
	}
	if strings.TrimSpace(m.Location) == "" {
		errs = append(errs, "location is required")
	}
	if m.Date.IsZero() {
		errs = append(errs, "date is required")
	}
	return errs
}

// UpdateMeetupRequest is the request body for PUT /meetups/{meetupID}.
// All fields are optional; omitted fields are left unchanged.
type UpdateMeetupRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Location     *string    `json:"location"`
	Date         *time.Time `json:"date"`
	AttachmentID *string    `json:"attachment_id"`
}

// Validate implements helpers.Validator.
func (m UpdateMeetupRequest) Validate() []string {
	var errs []string
	if m.Title != nil && strings.TrimSpace(*m.Title) == "" {
		errs = append(errs, "title cannot be empty")
	}
	if m.Date != nil && m.Date.IsZero() {
		errs = append(errs, "date cannot be empty")
	}
	return errs
}

// Create godoc
// @Summary Create a meetup
// @Description Creates a meetup organized by the authenticated user. The date must be strictly in the future.
// @Tags meetups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateMeetupRequest true "Meetup data"
// @Success 201 {object} helpers.APIResponse "data contains the created meetup"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 422 {object} helpers.APIResponse "error.code: unprocessable_entity"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /meetups [post]
func (c *MeetupController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req CreateMeetupRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	meetup := domain.NewMeetup(req.Title, req.Description, req.Location, req.Date, userID, req.AttachmentID, time.Time{}, time.Time{})
	if err := c.Service.Create(r.Context(), meetup); err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, meetup)
}

// Get godoc
// @Summary Get a meetup
// @Tags meetups
// @Produce json
// @Security BearerAuth
// @Param meetupID path string true "Meetup ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the meetup"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /meetups/{meetupID} [get]
func (c *MeetupController) Get(w http.ResponseWriter, r *http.Request) {
	meetupID, ok := pathMeetupID(w, r)
	if !ok {
		return
	}
	meetup, err := c.Service.GetByID(r.Context(), meetupID)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, meetup)
}

// List godoc
// @Summary List meetups
// @Description Lists meetups ordered by date ascending, optionally filtered to a calendar day (date=YYYY-MM-DD). Paginated, 10 per page by default.
// @Tags meetups
// @Produce json
// @Security BearerAuth
// @Param date query string false "Calendar day filter (YYYY-MM-DD)"
// @Param page query int false "Page number (default 1)"
// @Success 200 {object} helpers.APIResponse "data contains the meetup list"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /meetups [get]
func (c *MeetupController) List(w http.ResponseWriter, r *http.Request) {
	var day *time.Time
	if s := r.URL.Query().Get("date"); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "date must be YYYY-MM-DD")
			return
		}
		day = &d
	}
	meetups, err := c.Service.ListByDay(r.Context(), day, helpers.ParsePagination(r))
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, meetups)
}

// Update godoc
// @Summary Update a meetup
// @Description Applies a partial update. Only the organizer may update, past meetups are immutable, and the date cannot be moved into the past.
// @Tags meetups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param meetupID path string true "Meetup ID (UUID)"
// @Param body body UpdateMeetupRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data contains the updated meetup"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} helpers.APIResponse "error.code: unprocessable_entity"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /meetups/{meetupID} [put]
func (c *MeetupController) Update(w http.ResponseWriter, r *http.Request) {
	meetupID, ok := pathMeetupID(w, r)
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req UpdateMeetupRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	upd := domain.MeetupUpdate{
		Title:        req.Title,
		Description:  req.Description,
		Location:     req.Location,
		Date:         req.Date,
		AttachmentID: req.AttachmentID,
	}
	meetup, err := c.Service.Update(r.Context(), meetupID, userID, upd)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, meetup)
}

// Delete godoc
// @Summary Delete a meetup
// @Description Deletes a meetup. Only the organizer may delete, and past meetups are immutable.
// @Tags meetups
// @Produce json
// @Security BearerAuth
// @Param meetupID path string true "Meetup ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} helpers.APIResponse "error.code: unprocessable_entity"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /meetups/{meetupID} [delete]
func (c *MeetupController) Delete(w http.ResponseWriter, r *http.Request) {
	meetupID, ok := pathMeetupID(w, r)
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.Delete(r.Context(), meetupID, userID); err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "meetup deleted"})
}

// pathMeetupID extracts and validates the meetupID path value. On failure it
// writes a 400 response and returns ok=false.
func pathMeetupID(w http.ResponseWriter, r *http.Request) (string, bool) {
	meetupID := r.PathValue("meetupID")
	if meetupID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing meetupID")
		return "", false
	}
	if !uuidRegex.MatchString(meetupID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid meetupID")
		return "", false
	}
	return meetupID, true
}
