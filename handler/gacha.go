package handler

import (
	"Carnival/config"
	"Carnival/middleware"
	"Carnival/pkg/context"
	"Carnival/pkg/response"
	"Carnival/service"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Gacha struct {
	Config       *config.Config
	GachaService service.IGachaService
}

func (g *Gacha) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(g.Config.Jwt.Secret))
	group := r.Group("/v1/gacha")
	group.POST("/spin", authorize, context.Wrap(g.Spin))
	group.GET("/history", authorize, context.Wrap(g.History))
}

// Spin 抽一次奖
func (g *Gacha) Spin(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	result, err := g.GachaService.Spin(c.Request.Context(), userID)
	if err != nil {
		return bizErr(err)
	}
	response.Success(c, result)
	return nil
}

// History 我的抽奖历史
func (g *Gacha) History(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	records, err := g.GachaService.History(c.Request.Context(), userID, limit)
	if err != nil {
		return bizErr(err)
	}
	response.Success(c, records)
	return nil
}
