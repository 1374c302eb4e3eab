package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/friendgraph/internal/api/middleware"
	"github.com/d60-Lab/friendgraph/internal/service"
	"github.com/d60-Lab/friendgraph/pkg/response"
)

type friendRequest struct {
	Login *string `json:"login"`
}

// AddFriend 添加好友（单向）
// @Summary 添加好友
// @Tags 好友
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body friendRequest true "好友 login"
// @Success 200 {object} response.Status
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/friends/add/ [post]
func (h *Handler) AddFriend(c *gin.Context) {
	var req friendRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Login == nil {
		response.BadRequest(c, "Login is required")
		return
	}
	if err := h.friends.Add(c.Request.Context(), middleware.CurrentUser(c), *req.Login); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c)
}

// RemoveFriend 删除好友；边不存在时同样成功
// @Summary 删除好友
// @Tags 好友
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body friendRequest true "好友 login"
// @Success 200 {object} response.Status
// @Failure 401 {object} response.Response
// @Router /api/friends/remove/ [post]
func (h *Handler) RemoveFriend(c *gin.Context) {
	var req friendRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Login == nil {
		response.Unauthorized(c, "Login is required")
		return
	}
	if err := h.friends.Remove(c.Request.Context(), middleware.CurrentUser(c), *req.Login); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Unauthorized(c, "User not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c)
}

// ListFriends 我添加的好友，按添加时间倒序
// @Summary 好友列表
// @Tags 好友
// @Produce json
// @Security BearerAuth
// @Param limit query int false "每页数量" default(5)
// @Param offset query int false "偏移量" default(0)
// @Success 200 {array} FriendResponse
// @Failure 401 {object} response.Response
// @Router /api/friends/ [post]
func (h *Handler) ListFriends(c *gin.Context) {
	list, err := h.friends.List(c.Request.Context(), middleware.CurrentUser(c), middleware.PageFrom(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, toFriends(list))
}
