package user

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/FACorreiaa/go-favorite-cities/internal/api"
	"github.com/FACorreiaa/go-favorite-cities/internal/api/auth"
	"github.com/FACorreiaa/go-favorite-cities/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	CreateUser(w http.ResponseWriter, r *http.Request)
	GetMe(w http.ResponseWriter, r *http.Request)
	ListUsers(w http.ResponseWriter, r *http.Request)
	GetUserByUsername(w http.ResponseWriter, r *http.Request)
	GetUserByID(w http.ResponseWriter, r *http.Request)
	DeleteUser(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	userService UserService
	logger      *slog.Logger
}

// NewHandlerImpl creates a new user HandlerImpl instance.
func NewHandlerImpl(userService UserService, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		userService: userService,
		logger:      logger,
	}
}

// writeServiceError maps the CRUD sentinels onto statuses. notFound is the
// message for types.ErrNotFound.
func (h *HandlerImpl) writeServiceError(w http.ResponseWriter, r *http.Request, l *slog.Logger, err error, notFound string) {
	switch {
	case errors.Is(err, types.ErrNotFound):
		api.ErrorResponse(w, r, http.StatusNotFound, notFound)
	case errors.Is(err, types.ErrConflict):
		api.ErrorResponse(w, r, http.StatusConflict, "Username or email already registered")
	case errors.Is(err, types.ErrForbidden):
		api.ErrorResponse(w, r, http.StatusForbidden, "Not allowed to modify another user")
	case errors.Is(err, types.ErrBadRequest):
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
	default:
		l.ErrorContext(r.Context(), "Request failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
	}
}

// CreateUser godoc
// @Summary      Register a user
// @Description  Creates a new account. The password is stored hashed.
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        user body types.CreateUserRequest true "New user"
// @Success      200 {object} types.CreateUserResponse
// @Failure      400 {object} types.Response "Invalid Input"
// @Failure      409 {object} types.Response "Username or email already registered"
// @Failure      500 {object} types.Response "Internal Server Error"
// @Router       /create_user [post]
func (h *HandlerImpl) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("HandlerImpl", "CreateUser"))

	var req types.CreateUserRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.userService.CreateUser(ctx, req)
	if err != nil {
		h.writeServiceError(w, r, l, err, "User not found")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// GetMe godoc
// @Summary      Current user
// @Description  Returns the account the bearer token belongs to.
// @Tags         User
// @Produce      json
// @Success      200 {object} types.UserResponse
// @Failure      400 {object} types.Response "Inactive user"
// @Failure      401 {object} types.Response "Could not validate credentials"
// @Security     BearerAuth
// @Router       /users/me [get]
func (h *HandlerImpl) GetMe(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.UserFromContext(r.Context())
	if !ok {
		api.AuthErrorResponse(w, r, types.ErrCouldNotValidate)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, types.NewUserResponse(caller))
}

// ListUsers godoc
// @Summary      List users
// @Tags         User
// @Produce      json
// @Success      200 {array} types.UserResponse
// @Failure      401 {object} types.Response "Could not validate credentials"
// @Failure      404 {object} types.Response "No users found"
// @Security     BearerAuth
// @Router       /allusers [get]
func (h *HandlerImpl) ListUsers(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("HandlerImpl", "ListUsers"))

	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		h.writeServiceError(w, r, l, err, "No users found")
		return
	}
	if len(users) == 0 {
		api.ErrorResponse(w, r, http.StatusNotFound, "No users found")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, users)
}

// GetUserByUsername godoc
// @Summary      Find a user by username
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request body types.UserByUsernameRequest true "Username"
// @Success      200 {object} types.UserResponse
// @Failure      404 {object} types.Response "User not found"
// @Security     BearerAuth
// @Router       /get_user_by_username [post]
func (h *HandlerImpl) GetUserByUsername(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("HandlerImpl", "GetUserByUsername"))

	var req types.UserByUsernameRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.userService.GetUserByUsername(ctx, req.Username)
	if err != nil {
		h.writeServiceError(w, r, l, err, "User not found")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// GetUserByID godoc
// @Summary      Find a user by id
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request body types.UserByIDRequest true "User id"
// @Success      200 {object} types.UserResponse
// @Failure      400 {object} types.Response "Invalid Input"
// @Failure      404 {object} types.Response "User not found"
// @Security     BearerAuth
// @Router       /get_user_by_id [post]
func (h *HandlerImpl) GetUserByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("HandlerImpl", "GetUserByID"))

	var req types.UserByIDRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.ID == uuid.Nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "id is required")
		return
	}

	resp, err := h.userService.GetUserByID(ctx, req.ID)
	if err != nil {
		h.writeServiceError(w, r, l, err, "User not found")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// DeleteUser godoc
// @Summary      Disable the caller's account
// @Description  Soft delete. The account remains but can no longer authenticate.
// @Tags         User
// @Produce      json
// @Param        id query string true "User id (must be the caller's own)"
// @Success      200 {object} types.Response
// @Failure      400 {object} types.Response "Invalid user ID format"
// @Failure      403 {object} types.Response "Not allowed to modify another user"
// @Failure      404 {object} types.Response "User not found"
// @Security     BearerAuth
// @Router       /users/delete_user [delete]
func (h *HandlerImpl) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("HandlerImpl", "DeleteUser"))

	caller, ok := auth.UserFromContext(ctx)
	if !ok {
		api.AuthErrorResponse(w, r, types.ErrCouldNotValidate)
		return
	}

	target, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	if err := h.userService.DisableUser(ctx, caller, target); err != nil {
		h.writeServiceError(w, r, l, err, "User not found")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.Response{
		Success: true,
		Message: "User disabled",
	})
}
