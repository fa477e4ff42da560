package handler

import (
	"Carnival/config"
	"Carnival/middleware"
	"Carnival/pkg/context"
	"Carnival/pkg/response"
	"Carnival/service"
	"Carnival/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Vote struct {
	Config        *config.Config
	VoteService   service.IVoteService
	RightsService service.IRightsService
}

func (v *Vote) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(v.Config.Jwt.Secret))

	g := r.Group("/v1/votes")
	g.POST("", authorize, context.Wrap(v.Cast))
	g.GET("/categories", context.Wrap(v.Categories))
	g.GET("/ranking/:category", context.Wrap(v.Ranking))
	g.POST("/rights/purchase", authorize, context.Wrap(v.PurchaseRights))

	admin := r.Group("/v1/admin/votes")
	admin.POST("/:category/toggle", authorize, middleware.Require(middleware.OpToggleVote), context.Wrap(v.Toggle))
	admin.POST("/:category/sync", authorize, middleware.Require(middleware.OpSyncVote), context.Wrap(v.Sync))
}

// Cast 投票
func (v *Vote) Cast(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	var req types.CastVoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "参数错误: "+err.Error())
	}

	if err := v.VoteService.CastVote(c.Request.Context(), userID, req.Category, req.CandidateID); err != nil {
		return bizErr(err)
	}
	response.Success(c, gin.H{"voted": true})
	return nil
}

func (v *Vote) Categories(c *gin.Context) error {
	resp, err := v.VoteService.ListCategories(c.Request.Context())
	if err != nil {
		return bizErr(err)
	}
	response.Success(c, resp)
	return nil
}

func (v *Vote) Ranking(c *gin.Context) error {
	category := c.Param("category")
	if category == "" {
		return response.NewError(http.StatusBadRequest, "缺少 category")
	}

	resp, err := v.VoteService.GetRanking(c.Request.Context(), category)
	if err != nil {
		return bizErr(err)
	}
	response.Success(c, resp)
	return nil
}

// PurchaseRights 积分购买投票券
func (v *Vote) PurchaseRights(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	var req types.PurchaseRightsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "参数错误: "+err.Error())
	}

	rights, err := v.RightsService.Purchase(c.Request.Context(), userID, req.Category, req.Quantity)
	if err != nil {
		return bizErr(err)
	}
	response.Success(c, gin.H{"rights": rights})
	return nil
}

// Toggle 开关投票场次
func (v *Vote) Toggle(c *gin.Context) error {
	actorID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	state, err := v.VoteService.ToggleCategory(c.Request.Context(), c.Param("category"), actorID)
	if err != nil {
		return bizErr(err)
	}
	response.Success(c, state)
	return nil
}

// Sync 手动触发票数重算
func (v *Vote) Sync(c *gin.Context) error {
	if err := v.VoteService.SyncVoteCounts(c.Request.Context(), c.Param("category")); err != nil {
		return bizErr(err)
	}
	response.Success(c, gin.H{"synced": true})
	return nil
}
