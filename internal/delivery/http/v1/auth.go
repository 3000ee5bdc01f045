package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thenamakop/taskboard/internal/models"
	"github.com/thenamakop/taskboard/internal/services"
)

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func newUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type signupRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=255"`
}

func (h *handlerImpl) HandleSignup(c *gin.Context) {
	var req signupRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newValidationError(errInvalidRequestBody.Error()))
		return
	}

	result, err := h.auth.Signup(c, services.SignupParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to sign up")
		switch {
		case errors.Is(err, services.ErrUserAlreadyExists):
			abort(c, newConflictError(services.ErrUserAlreadyExists.Error()))
		default:
			abort(c, newInternalError())
		}
		return
	}

	setTokenCookie(c, result.Token, time.Until(result.ExpiresAt))
	c.JSON(http.StatusCreated, authResponse{
		Token: result.Token,
		User:  newUserResponse(&result.User),
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=255"`
}

func (h *handlerImpl) HandleLogin(c *gin.Context) {
	var req loginRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newValidationError(errInvalidRequestBody.Error()))
		return
	}

	result, err := h.auth.Login(c, services.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to login")
		switch {
		case errors.Is(err, services.ErrUserNotFound),
			errors.Is(err, services.ErrUserPasswordMismatch):
			// One message for both; don't reveal which part failed.
			abort(c, newUnauthorizedError("invalid credentials"))
		default:
			abort(c, newInternalError())
		}
		return
	}

	setTokenCookie(c, result.Token, time.Until(result.ExpiresAt))
	c.JSON(http.StatusOK, authResponse{
		Token: result.Token,
		User:  newUserResponse(&result.User),
	})
}

func (h *handlerImpl) HandleMe(c *gin.Context) {
	userID, exists := getStringFromContext(c, userIDCtxKey)
	if !exists {
		abort(c, newUnauthorizedError("authorization required"))
		return
	}

	user, err := h.auth.GetUser(c, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to get user")
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			abort(c, newNotFoundError(services.ErrUserNotFound.Error()))
		default:
			abort(c, newInternalError())
		}
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

func (h *handlerImpl) HandleLogout(c *gin.Context) {
	token, _ := getStringFromContext(c, sessionTokenCtxKey)

	err := h.auth.Logout(c, token)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to logout")
		abort(c, newInternalError())
		return
	}

	clearTokenCookie(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func setTokenCookie(c *gin.Context, token string, maxAge time.Duration) {
	// httpOnly must be false so the client script can read the
	// cookie and replay it in the Authorization header.
	const secure, httpOnly = false, false
	c.SetCookie(tokenCookie, token, int(maxAge.Seconds()),
		"/", "", secure, httpOnly)
}

func clearTokenCookie(c *gin.Context) {
	c.SetCookie(tokenCookie, "", -1,
		"/", "", false, false)
}
