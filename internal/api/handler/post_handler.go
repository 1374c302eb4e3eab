package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/friendgraph/internal/api/middleware"
	"github.com/d60-Lab/friendgraph/internal/model"
	"github.com/d60-Lab/friendgraph/internal/service"
	"github.com/d60-Lab/friendgraph/pkg/response"
)

const reasonPostNotFound = "Post not found"

type createPostRequest struct {
	Content *string  `json:"content"`
	Tags    []string `json:"tags"`
}

// CreatePost 发帖
// @Summary 发布帖子
// @Tags 帖子
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createPostRequest true "帖子内容"
// @Success 200 {object} PostResponse
// @Failure 401 {object} response.Response
// @Router /api/posts/new [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Content == nil {
		response.Unauthorized(c, "Bad data")
		return
	}
	p, err := h.posts.Create(c.Request.Context(), middleware.CurrentUser(c), *req.Content, req.Tags)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			response.Unauthorized(c, "Bad data")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, toPost(p))
}

// Feed 某用户的帖子，login 为 my 时表示自己
// @Summary 帖子流
// @Tags 帖子
// @Produce json
// @Security BearerAuth
// @Param login path string true "作者 login 或 my"
// @Param limit query int false "每页数量" default(5)
// @Param offset query int false "偏移量" default(0)
// @Success 200 {array} PostResponse
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/posts/feed/{login} [get]
func (h *Handler) Feed(c *gin.Context) {
	posts, err := h.posts.Feed(c.Request.Context(), middleware.CurrentUser(c), c.Param("login"), middleware.PageFrom(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, toPosts(posts))
}

// GetPost 按 ID 查看帖子；不可见与不存在返回同一结果
// @Summary 查看帖子
// @Tags 帖子
// @Produce json
// @Security BearerAuth
// @Param id path string true "帖子 ID"
// @Success 200 {object} PostResponse
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/posts/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	p, err := h.posts.Get(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, reasonPostNotFound)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, toPost(p))
}

// Like 点赞
// @Summary 点赞（覆盖之前的反应）
// @Tags 帖子
// @Produce json
// @Security BearerAuth
// @Param id path string true "帖子 ID"
// @Success 200 {object} PostResponse
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/posts/{id}/like [post]
func (h *Handler) Like(c *gin.Context) {
	h.react(c, model.ReactionLike)
}

// Dislike 点踩
// @Summary 点踩（覆盖之前的反应）
// @Tags 帖子
// @Produce json
// @Security BearerAuth
// @Param id path string true "帖子 ID"
// @Success 200 {object} PostResponse
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/posts/{id}/dislike [post]
func (h *Handler) Dislike(c *gin.Context) {
	h.react(c, model.ReactionDislike)
}

func (h *Handler) react(c *gin.Context, kind model.ReactionKind) {
	p, err := h.reactions.React(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), kind)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, reasonPostNotFound)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, toPost(p))
}
