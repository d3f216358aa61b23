package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pantry-service/internal/domain/dto"
	"github.com/guttosm/pantry-service/internal/domain/model"
	"github.com/guttosm/pantry-service/internal/i18n"
	"github.com/guttosm/pantry-service/internal/middleware"
	"github.com/guttosm/pantry-service/internal/service"
)

// RefreshTokenHeader carries the refresh token on refresh and logout.
const RefreshTokenHeader = "X-Refresh-Token"

// AuthHandler provides HTTP handlers for authentication routes.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new authentication handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login handles POST /api/auth/login requests.
//
// @Summary      Login household
// @Description  Authenticates a household by name and password and returns JWT tokens. Unknown households and wrong passwords get the same answer.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Login credentials"
// @Success      200 {object} dto.SuccessResponse{data=dto.LoginResponse} "Successful login"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - invalid credentials"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, ok := bindBody[dto.LoginRequest](c, builder)
	if !ok {
		return
	}

	tokenPair, household, err := h.authService.Login(c.Request.Context(), req.Name, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			auditError(c, model.ActionLogin, "Failed login attempt", err, map[string]interface{}{
				"name": req.Name,
			})
		}
		builder.Fail(err)
		return
	}

	setHousehold(c, household)
	audit(c, model.ActionLogin, "Household logged in", nil)
	builder.SuccessOK(loginResponse(tokenPair, household))
}

// Register handles POST /api/auth/register requests.
//
// @Summary      Register household
// @Description  Creates a household with an empty pantry and returns JWT tokens.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "Registration information"
// @Success      201 {object} dto.SuccessResponse{data=dto.LoginResponse} "Successful registration"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      409 {object} dto.ErrorResponse "Conflict - household already exists"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, ok := bindBody[dto.RegisterRequest](c, builder)
	if !ok {
		return
	}

	tokenPair, household, err := h.authService.Register(c.Request.Context(), req.Name, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrHouseholdExists) {
			auditError(c, model.ActionRegister, "Registration rejected - household exists", err, map[string]interface{}{
				"name": req.Name,
			})
		}
		builder.Fail(err)
		return
	}

	setHousehold(c, household)
	audit(c, model.ActionRegister, "Household registered", nil)
	builder.SuccessCreated(loginResponse(tokenPair, household))
}

// RefreshToken handles POST /api/auth/refresh requests.
//
// @Summary      Refresh access token
// @Description  Generates a new token pair from a refresh token passed in the X-Refresh-Token header.
// @Tags         Auth
// @Produce      json
// @Param        X-Refresh-Token header string true "Refresh token"
// @Success      200 {object} dto.SuccessResponse{data=dto.TokenPair} "Successful token refresh"
// @Failure      400 {object} dto.ErrorResponse "Bad request - missing refresh token"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - invalid refresh token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	builder := NewResponseBuilder(c)

	refreshToken := strings.TrimSpace(c.GetHeader(RefreshTokenHeader))
	if refreshToken == "" {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyTokenRequired, nil)
		return
	}

	tokenPair, err := h.authService.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(tokenPair)
}

// Logout handles POST /api/auth/logout requests.
//
// @Summary      Logout household
// @Description  Blacklists the access token from the Authorization header and deletes the refresh token from the X-Refresh-Token header.
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Param        X-Refresh-Token header string true "Refresh token"
// @Success      204 "Logged out"
// @Failure      400 {object} dto.ErrorResponse "Bad request - missing refresh token"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	builder := NewResponseBuilder(c)

	// JWTAuth already validated the header.
	accessToken := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
	if accessToken == "" {
		builder.Error(http.StatusUnauthorized, i18n.ErrKeyTokenRequired, nil)
		return
	}

	refreshToken := strings.TrimSpace(c.GetHeader(RefreshTokenHeader))
	if refreshToken == "" {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyTokenRequired, nil)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), accessToken, refreshToken); err != nil {
		builder.Fail(err)
		return
	}

	audit(c, model.ActionLogout, "Household logged out", nil)
	c.Status(http.StatusNoContent)
}

// setHousehold exposes a freshly authenticated household to the request
// logger and audit entries of public routes.
func setHousehold(c *gin.Context, household *model.Household) {
	c.Set(middleware.ContextHouseholdID, household.ID)
	c.Set(middleware.ContextHouseholdName, household.Name)
}

func loginResponse(pair *dto.TokenPair, household *model.Household) dto.LoginResponse {
	return dto.LoginResponse{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		Household:    dto.NewHouseholdResponse(household),
	}
}
