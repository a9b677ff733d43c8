package controllers

import (
	"log/slog"
	"net/http"

	"eventcrm/internal/delivery/http/helpers"
	"eventcrm/internal/domain"
)

// EngagementSuccessResponse is the success response envelope for GET /analytics/user-engagement (200).
type EngagementSuccessResponse struct {
	Data  []*domain.UserEngagement `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

type AnalyticsController struct {
	Logger  *slog.Logger
	Service domain.AnalyticsService
}

func NewAnalyticsController(logger *slog.Logger, svc domain.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{
		Logger:  logger,
		Service: svc,
	}
}

// UserEngagement godoc
// @Summary User engagement report
// @Description Returns hosted and attended event counts for every user, in store scan order.
// @Tags analytics
// @Produce json
// @Success 200 {object} controllers.EngagementSuccessResponse "data contains one row per user"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /analytics/user-engagement [get]
func (c *AnalyticsController) UserEngagement(w http.ResponseWriter, r *http.Request) {
	report, err := c.Service.EngagementReport(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, report)
}
