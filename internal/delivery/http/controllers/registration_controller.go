package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"volunteerhub/internal/delivery/http/helpers"
	"volunteerhub/internal/delivery/http/middleware"
	"volunteerhub/internal/domain"
)

// maxTransientRetries bounds retries of storage contention failures.
// Business-rule rejections are never retried.
const maxTransientRetries = 3

// parseID parses a path value as a positive int64 ID. On failure it writes a
// 400 JSON error and returns false.
func parseID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.PathValue(name)
	if raw == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing "+name)
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// RegisterSuccessResponse is the success response envelope for POST /events/{eventID}/registrations (200 or 201).
type RegisterSuccessResponse struct {
	Data  *domain.RegistrationWithEvent `json:"data"`
	Error *helpers.APIError             `json:"error"`
}

// Register godoc
// @Summary Register the current user for an event
// @Description Registers the authenticated user for the specified event. Returns 201 when a new registration is created, 200 when a previously cancelled registration is reactivated. Rejected with 409 when the event is cancelled, already started, past its registration deadline, full, already registered, or when the event overlaps another event the user is registered for.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 200 {object} controllers.RegisterSuccessResponse "Reactivated"
// @Success 201 {object} controllers.RegisterSuccessResponse "New registration created"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict; message names the violated rule"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/registrations [post]
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	eventID, ok := parseID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	var (
		view    *domain.RegistrationWithEvent
		created bool
		err     error
	)
	for attempt := 0; attempt < maxTransientRetries; attempt++ {
		view, created, err = c.Service.RegisterForEvent(r.Context(), eventID, userID)
		if !errors.Is(err, domain.ErrTransientStore) {
			break
		}
	}
	if err != nil {
		c.writeServiceError(w, r, err, "event not found")
		return
	}
	if created {
		helpers.WriteJSONSuccess(w, http.StatusCreated, view)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, view)
}

// CancelRegistration godoc
// @Summary Cancel the current user's registration for an event
// @Description Cancels the authenticated user's registration. Always permitted once a confirmed registration exists, regardless of the event's current state. Returns 409 when the registration is already cancelled.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 200 {object} helpers.APIResponse "data is null"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/registrations [delete]
func (c *RegistrationController) CancelRegistration(w http.ResponseWriter, r *http.Request) {
	eventID, ok := parseID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	if err := c.Service.CancelRegistration(r.Context(), eventID, userID); err != nil {
		c.writeServiceError(w, r, err, "registration not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, nil)
}

// ListMyRegistrationsSuccessResponse is the success response envelope for GET /me/registrations (200).
type ListMyRegistrationsSuccessResponse struct {
	Data  []*domain.RegistrationWithEvent `json:"data"`
	Error *helpers.APIError               `json:"error"`
}

// ListMyRegistrations godoc
// @Summary List the current user's registrations
// @Description Returns every registration of the authenticated user, any status, most recently registered first. Cancelled registrations remain visible for history.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListMyRegistrationsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /me/registrations [get]
func (c *RegistrationController) ListMyRegistrations(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	items, err := c.Service.ListUserRegistrations(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if items == nil {
		items = []*domain.RegistrationWithEvent{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, items)
}

// ListEventRegistrationsSuccessResponse is the success response envelope for GET /events/{eventID}/registrations (200).
type ListEventRegistrationsSuccessResponse struct {
	Data  []*domain.RegistrationWithUser `json:"data"`
	Error *helpers.APIError              `json:"error"`
}

// ListEventRegistrations godoc
// @Summary List registrations for an event
// @Description Returns every registration for the event, any status, most recently registered first, each with the registrant's summary. Organizer or admin only.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 200 {object} controllers.ListEventRegistrationsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/registrations [get]
func (c *RegistrationController) ListEventRegistrations(w http.ResponseWriter, r *http.Request) {
	eventID, ok := parseID(w, r, "eventID")
	if !ok {
		return
	}

	items, err := c.Service.ListEventRegistrations(r.Context(), eventID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if items == nil {
		items = []*domain.RegistrationWithUser{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, items)
}

// writeServiceError maps registration service errors onto the response
// envelope. Conflict messages are surfaced verbatim: they are user-facing
// explanations of the violated rule.
func (c *RegistrationController) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	if errors.Is(err, domain.ErrNotFound) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, notFoundMsg)
		return
	}
	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, conflict.Message)
		return
	}
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
}
