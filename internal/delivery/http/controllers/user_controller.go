package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventcrm/internal/delivery/http/helpers"
	"eventcrm/internal/domain"
)

// UserRequest is the request body for POST /users and PUT /users/{userID}.
// Relationship lists are not accepted; they are maintained by event creation and registration.
type UserRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Avatar      string `json:"avatar"`
	Gender      string `json:"gender"`
	JobTitle    string `json:"job_title"`
	Company     string `json:"company"`
	City        string `json:"city"`
	State       string `json:"state"`
}

// Validate implements Validator.
func (u UserRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(u.FirstName) == "" {
		errs = append(errs, "first_name is required")
	}
	if strings.TrimSpace(u.LastName) == "" {
		errs = append(errs, "last_name is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		errs = append(errs, "email is required")
	}
	return errs
}

func (u UserRequest) toUser(id string) *domain.User {
	return &domain.User{
		ID:          id,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Avatar:      u.Avatar,
		Gender:      u.Gender,
		JobTitle:    u.JobTitle,
		Company:     u.Company,
		City:        u.City,
		State:       u.State,
	}
}

// UserSuccessResponse is the success response envelope for single-user endpoints.
type UserSuccessResponse struct {
	Data  *domain.User      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UserListSuccessResponse is the success response envelope for user list endpoints.
type UserListSuccessResponse struct {
	Data  []*domain.User    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// DeleteResponse is the data payload for delete endpoints.
type DeleteResponse struct {
	Status string `json:"status"`
}

// DeleteSuccessResponse is the success response envelope for delete endpoints (200).
type DeleteSuccessResponse struct {
	Data  DeleteResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UserController handles user CRUD and the user filter endpoint.
type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
	Query   domain.QueryService
}

// NewUserController creates a UserController with the given logger and services.
func NewUserController(logger *slog.Logger, svc domain.UserService, query domain.QueryService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
		Query:   query,
	}
}

// CreateUser godoc
// @Summary Create a user
// @Description Create a CRM contact. first_name, last_name and email are required. The id is server-generated and relationship lists start empty.
// @Tags users
// @Accept json
// @Produce json
// @Param body body UserRequest true "User profile"
// @Success 201 {object} controllers.UserSuccessResponse "data contains the created user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users [post]
func (c *UserController) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user := req.toUser("")
	if err := c.Service.Create(r.Context(), user); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "user not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, user)
}

// FilterUsers godoc
// @Summary Filter users
// @Description Returns users matching every given predicate. String filters are exact matches; event count bounds are inclusive. Results are optionally sorted by sort_by and paginated with skip and limit.
// @Tags users
// @Produce json
// @Param company query string false "Exact company"
// @Param job_title query string false "Exact job title"
// @Param city query string false "Exact city"
// @Param state query string false "Exact state"
// @Param events_hosted_min query int false "Minimum hosted events"
// @Param events_hosted_max query int false "Maximum hosted events"
// @Param events_attended_min query int false "Minimum attended events"
// @Param events_attended_max query int false "Maximum attended events"
// @Param sort_by query string false "User field to sort by"
// @Param skip query int false "Number of matches to skip" default(0)
// @Param limit query int false "Maximum number of results" default(10)
// @Success 200 {object} controllers.UserListSuccessResponse "data contains the matching users"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users [get]
func (c *UserController) FilterUsers(w http.ResponseWriter, r *http.Request) {
	q, err := helpers.ParseUserQuery(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	users, err := c.Query.FilterUsers(r.Context(), q)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "user not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, users)
}

// ListUsers godoc
// @Summary List all users
// @Description Returns every user in store scan order.
// @Tags users
// @Produce json
// @Success 200 {object} controllers.UserListSuccessResponse "data contains all users"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/all [get]
func (c *UserController) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := c.Service.ListAll(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "user not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, users)
}

// GetUser godoc
// @Summary Get a user
// @Tags users
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} controllers.UserSuccessResponse "data contains the user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/{userID} [get]
func (c *UserController) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if userID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing userID")
		return
	}
	user, err := c.Service.GetByID(r.Context(), userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "user not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// UpdateUser godoc
// @Summary Replace a user profile
// @Description Replaces every profile field; omitted optional fields are cleared. hosted_events and attended_events are preserved.
// @Tags users
// @Accept json
// @Produce json
// @Param userID path string true "User ID"
// @Param body body UserRequest true "User profile"
// @Success 200 {object} controllers.UserSuccessResponse "data contains the updated user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/{userID} [put]
func (c *UserController) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if userID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing userID")
		return
	}
	var req UserRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.Update(r.Context(), req.toUser(userID))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "user not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Removes the user only. Events that reference the user keep their references.
// @Tags users
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} controllers.DeleteSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/{userID} [delete]
func (c *UserController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if userID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing userID")
		return
	}
	if err := c.Service.Delete(r.Context(), userID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "user not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteResponse{Status: "deleted"})
}
