package auth

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/go-favorite-cities/internal/api"
	"github.com/FACorreiaa/go-favorite-cities/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	Login(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	authService AuthService
	logger      *slog.Logger
}

func NewAuthHandlerImpl(authService AuthService, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		authService: authService,
		logger:      logger,
	}
}

// Login godoc
// @Summary      Issue an access token
// @Description  OAuth2 password flow. Accepts a form-encoded or JSON body with username and password.
// @Tags         Auth
// @Accept       x-www-form-urlencoded
// @Accept       json
// @Produce      json
// @Param        username formData string true "Username"
// @Param        password formData string true "Password"
// @Success      200 {object} types.TokenResponse
// @Failure      401 {object} types.Response "Incorrect username or password"
// @Failure      422 {object} types.Response "Missing fields"
// @Failure      500 {object} types.Response "Internal Server Error"
// @Router       /token [post]
func (h *HandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AuthHandler").Start(r.Context(), "Login")
	defer span.End()
	l := h.logger.With(slog.String("HandlerImpl", "Login"))

	var req types.LoginRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := api.DecodeJSONBody(w, r, &req); err != nil {
			l.WarnContext(ctx, "Failed to decode login request", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			l.WarnContext(ctx, "Failed to parse login form", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid form body")
			return
		}
		req.Username = r.PostForm.Get("username")
		req.Password = r.PostForm.Get("password")
	}

	if req.Username == "" || req.Password == "" {
		api.ErrorResponse(w, r, http.StatusUnprocessableEntity, "username and password are required")
		return
	}

	resp, err := h.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		var authErr *types.AuthError
		if errors.As(err, &authErr) {
			span.SetStatus(codes.Error, authErr.Reason)
			api.AuthErrorResponse(w, r, authErr)
			return
		}
		l.ErrorContext(ctx, "Login failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Login failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	span.SetStatus(codes.Ok, "Token issued")
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}
