package controllers

import (
	"log/slog"
	"net/http"

	"eventcrm/internal/delivery/http/helpers"
	"eventcrm/internal/delivery/http/middleware"
	"eventcrm/internal/domain"
)

// SendEmailsRequest is the request body for POST /send-emails. Filter fields select the
// recipients the same way GET /users does; without limit every match is emailed.
// An empty subject falls back to the default notification subject.
type SendEmailsRequest struct {
	domain.UserFilter
	SortBy  string `json:"sort_by,omitempty"`
	Skip    int    `json:"skip,omitempty"`
	Limit   *int   `json:"limit,omitempty"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Validate implements Validator.
func (s SendEmailsRequest) Validate() []string {
	if err := s.query().Validate(); err != nil {
		return []string{err.Error()}
	}
	return nil
}

func (s SendEmailsRequest) query() domain.UserQuery {
	return domain.UserQuery{Filter: s.UserFilter, SortBy: s.SortBy, Skip: s.Skip, Limit: s.Limit}
}

// DispatchSuccessResponse is the success response envelope for POST /send-emails (200).
type DispatchSuccessResponse struct {
	Data  *domain.DispatchReport `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// EmailLogsResponse is the data payload for GET /email-logs.
type EmailLogsResponse struct {
	Items      []*domain.NotificationLogEntry `json:"items"`
	Pagination helpers.PageMeta               `json:"pagination"`
}

// EmailLogsSuccessResponse is the success response envelope for GET /email-logs (200).
type EmailLogsSuccessResponse struct {
	Data  EmailLogsResponse `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// NotificationController handles email dispatch and the delivery log.
type NotificationController struct {
	Logger  *slog.Logger
	Service domain.NotificationService
}

// NewNotificationController creates a NotificationController with the given logger and service.
func NewNotificationController(logger *slog.Logger, svc domain.NotificationService) *NotificationController {
	return &NotificationController{
		Logger:  logger,
		Service: svc,
	}
}

// SendEmails godoc
// @Summary Email filtered users
// @Description Sends one email per user matching the filter and records one email log entry per attempt. Individual delivery failures are reported per recipient and do not fail the request. Requires a Bearer token when the server has a JWT secret configured.
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SendEmailsRequest true "Recipient filter and message"
// @Success 200 {object} controllers.DispatchSuccessResponse "data contains per-recipient results and count"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /send-emails [post]
func (c *NotificationController) SendEmails(w http.ResponseWriter, r *http.Request) {
	var req SendEmailsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	report, err := c.Service.Dispatch(r.Context(), &domain.NotificationRequest{
		Query:   req.query(),
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "not found")
		return
	}
	operator, _ := middleware.OperatorFromContext(r.Context())
	c.Logger.InfoContext(r.Context(), "emails dispatched", "operator", operator, "count", report.Count)
	helpers.WriteJSONSuccess(w, http.StatusOK, report)
}

// ListEmailLogs godoc
// @Summary List email logs
// @Description Returns the delivery log in store scan order, paginated. Requires a Bearer token when the server has a JWT secret configured.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size (max 100)" default(20)
// @Success 200 {object} controllers.EmailLogsSuccessResponse "data contains items and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /email-logs [get]
func (c *NotificationController) ListEmailLogs(w http.ResponseWriter, r *http.Request) {
	page := helpers.ParsePage(r)
	entries, total, err := c.Service.ListLogs(r.Context(), page)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EmailLogsResponse{
		Items:      entries,
		Pagination: helpers.NewPageMeta(page, total),
	})
}
