package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/friendgraph/internal/service"
	"github.com/d60-Lab/friendgraph/pkg/response"
)

type registerRequest struct {
	Login       *string `json:"login"`
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	CountryCode *string `json:"countryCode"`
	IsPublic    *bool   `json:"isPublic"`
	Phone       *string `json:"phone"`
	Image       *string `json:"image"`
}

func (r registerRequest) complete() bool {
	return r.Login != nil && r.Email != nil && r.Password != nil && r.CountryCode != nil && r.IsPublic != nil
}

type signInRequest struct {
	Login    *string `json:"login"`
	Password *string `json:"password"`
}

// Register 注册
// @Summary 注册新用户
// @Tags 账号
// @Accept json
// @Produce json
// @Param request body registerRequest true "注册信息"
// @Success 201 {object} RegisterResponse
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Bad user data")
		return
	}
	if !req.complete() {
		response.BadRequest(c, "Missing fields")
		return
	}

	u, err := h.identity.Register(c.Request.Context(), service.RegisterInput{
		Login:       *req.Login,
		Email:       *req.Email,
		Password:    *req.Password,
		CountryCode: *req.CountryCode,
		IsPublic:    *req.IsPublic,
		Phone:       req.Phone,
		Image:       req.Image,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrUnknownCountry):
			response.BadRequest(c, "Bad user data")
		case errors.Is(err, service.ErrWeakPassword):
			response.BadRequest(c, "Bad password")
		case errors.Is(err, service.ErrConflict):
			response.Conflict(c, "User already exists")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Created(c, RegisterResponse{Profile: toProfile(u)})
}

// SignIn 登录
// @Summary 登录换取 token
// @Tags 账号
// @Accept json
// @Produce json
// @Param request body signInRequest true "登录信息"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /api/auth/sign-in/ [post]
func (h *Handler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Login == nil || req.Password == nil {
		h.authFailed("missing")
		response.Unauthorized(c, "Login and password are required")
		return
	}

	token, err := h.identity.SignIn(c.Request.Context(), *req.Login, *req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownUser):
			h.authFailed("unknown_user")
			response.Unauthorized(c, "User not registered")
		case errors.Is(err, service.ErrWrongPassword):
			h.authFailed("wrong_password")
			response.Unauthorized(c, "Incorrect password")
		case errors.Is(err, service.ErrTooManyAttempts):
			h.authFailed("throttled")
			response.Fail(c, http.StatusTooManyRequests, "Too many attempts")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Success(c, TokenResponse{Token: token})
}

// Ping 健康检查
// @Summary 健康检查
// @Tags 系统
// @Produce json
// @Success 200 {object} response.Status
// @Router /api/ping [get]
func (h *Handler) Ping(c *gin.Context) {
	response.OK(c)
}
