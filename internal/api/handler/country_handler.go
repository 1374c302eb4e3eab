package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/friendgraph/internal/service"
	"github.com/d60-Lab/friendgraph/pkg/response"
)

// ListCountries 国家列表，可按 region 多值过滤
// @Summary 国家列表
// @Tags 国家
// @Produce json
// @Param region query []string false "地区，可重复" collectionFormat(multi)
// @Success 200 {array} CountryResponse
// @Failure 400 {object} response.Response
// @Router /api/countries [get]
func (h *Handler) ListCountries(c *gin.Context) {
	rows, err := h.countries.List(c.Request.Context(), c.QueryArray("region"))
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			response.BadRequest(c, "Bad data")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, toCountries(rows))
}

// GetCountry 按 alpha2 查询国家
// @Summary 查询国家
// @Tags 国家
// @Produce json
// @Param alpha2 path string true "两位国家代码"
// @Success 200 {object} CountryResponse
// @Failure 404 {object} response.Response
// @Router /api/countries/{alpha2} [get]
func (h *Handler) GetCountry(c *gin.Context) {
	country, err := h.countries.Get(c.Request.Context(), c.Param("alpha2"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "Country not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, toCountry(country))
}
