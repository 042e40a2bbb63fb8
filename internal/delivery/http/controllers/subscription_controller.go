package controllers

import (
	"log/slog"
	"net/http"

	"meetupscheduler/internal/delivery/http/helpers"
	"meetupscheduler/internal/delivery/http/middleware"
	"meetupscheduler/internal/domain"
)

type SubscriptionController struct {
	Logger  *slog.Logger
	Service domain.SubscriptionService
}

func NewSubscriptionController(logger *slog.Logger, svc domain.SubscriptionService) *SubscriptionController {
	return &SubscriptionController{
		Logger:  logger,
		Service: svc,
	}
}

// Subscribe godoc
// @Summary Subscribe to a meetup
// @Description Subscribes the authenticated user to the meetup. Fails if the user organizes the meetup, the meetup is past, the user is already subscribed, or the user holds a subscription to another meetup at the same instant.
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param meetupID path string true "Meetup ID (UUID)"
// @Success 201 {object} helpers.APIResponse "data contains the created subscription"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 422 {object} helpers.APIResponse "error.code: unprocessable_entity"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /meetups/{meetupID}/subscriptions [post]
func (c *SubscriptionController) Subscribe(w http.ResponseWriter, r *http.Request) {
	meetupID, ok := pathMeetupID(w, r)
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	sub, err := c.Service.Subscribe(r.Context(), userID, meetupID)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, sub)
}

// ListUpcoming godoc
// @Summary List my upcoming subscriptions
// @Description Lists the authenticated user's subscriptions to meetups that have not happened yet, ordered by meetup date ascending.
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains subscriptions with their meetups"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /subscriptions [get]
func (c *SubscriptionController) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	subs, err := c.Service.ListUpcoming(r.Context(), userID)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, subs)
}
