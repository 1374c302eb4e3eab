package handler

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/friendgraph/internal/api/middleware"
	"github.com/d60-Lab/friendgraph/internal/service"
	"github.com/d60-Lab/friendgraph/pkg/response"
)

const reasonPatchRejected = "Not allowed fields or not valid data"

type updatePasswordRequest struct {
	OldPassword *string `json:"oldPassword"`
	NewPassword *string `json:"newPassword"`
}

// GetMyProfile 当前用户资料
// @Summary 查看自己的资料
// @Tags 资料
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} response.Response
// @Router /api/me/profile/ [get]
func (h *Handler) GetMyProfile(c *gin.Context) {
	response.Success(c, toProfile(middleware.CurrentUser(c)))
}

// PatchMyProfile 修改资料（仅 countryCode/isPublic/phone/image）
// @Summary 修改自己的资料
// @Tags 资料
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body map[string]interface{} true "要修改的字段"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/me/profile/ [patch]
func (h *Handler) PatchMyProfile(c *gin.Context) {
	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "Bad data")
		return
	}
	patch, err := service.ParseProfilePatch(body)
	if err != nil {
		if errors.Is(err, service.ErrImmutableField) {
			response.Unauthorized(c, "Bad data")
			return
		}
		response.BadRequest(c, reasonPatchRejected)
		return
	}

	viewer := middleware.CurrentUser(c)
	u, err := h.identity.PatchProfile(c.Request.Context(), viewer.Login, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrUnknownCountry):
			response.BadRequest(c, reasonPatchRejected)
		case errors.Is(err, service.ErrConflict):
			response.Conflict(c, reasonPatchRejected)
		case errors.Is(err, service.ErrNotFound):
			response.Unauthorized(c, "User not found")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Success(c, toProfile(u))
}

// UpdatePassword 修改密码，旧 token 随之失效
// @Summary 修改密码
// @Tags 资料
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body updatePasswordRequest true "新旧密码"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/me/updatePassword/ [post]
func (h *Handler) UpdatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OldPassword == nil || req.NewPassword == nil {
		response.BadRequest(c, "Missing fields")
		return
	}

	viewer := middleware.CurrentUser(c)
	err := h.identity.ChangePassword(c.Request.Context(), viewer.Login, *req.OldPassword, *req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWeakPassword):
			response.BadRequest(c, "Password not valid")
		case errors.Is(err, service.ErrWrongPassword):
			response.Forbidden(c, "Incorrect password")
		case errors.Is(err, service.ErrNotFound):
			response.Unauthorized(c, "User not found")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Success(c, response.Response{Reason: "Password updated"})
}

// GetProfile 查看他人资料；不可见与不存在返回同一结果
// @Summary 按 login 查看资料
// @Tags 资料
// @Produce json
// @Security BearerAuth
// @Param login path string true "用户 login"
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/profiles/{login} [get]
func (h *Handler) GetProfile(c *gin.Context) {
	owner, err := h.policy.ResolveOwner(c.Request.Context(), middleware.CurrentUser(c), c.Param("login"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Forbidden(c, "User not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, toProfile(owner))
}
