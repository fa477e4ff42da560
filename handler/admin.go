package handler

import (
	"Carnival/config"
	"Carnival/middleware"
	"Carnival/pkg/context"
	"Carnival/pkg/response"
	"Carnival/service"
	"Carnival/types"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Admin struct {
	Config       *config.Config
	AdminService service.IAdminService
}

func (a *Admin) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(a.Config.Jwt.Secret))

	g := r.Group("/v1/admin")
	g.POST("/points/adjust", authorize, middleware.Require(middleware.OpAdjustPoints), context.Wrap(a.AdjustPoints))
	g.POST("/attendance", authorize, middleware.Require(middleware.OpSetAttendance), context.Wrap(a.SetAttendance))
	g.POST("/role", authorize, middleware.Require(middleware.OpSetRole), context.Wrap(a.SetRole))
	g.PUT("/candidates/:id", authorize, middleware.Require(middleware.OpCandidate), context.Wrap(a.UpdateCandidate))
	g.POST("/podium", authorize, middleware.Require(middleware.OpPodium), context.Wrap(a.SetPodiumMode))
	g.POST("/announcement/toggle", authorize, middleware.Require(middleware.OpAnnouncement), context.Wrap(a.ToggleAnnouncement))
}

// AdjustPoints 后台直接设置余额
func (a *Admin) AdjustPoints(c *gin.Context) error {
	actorID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	var req types.AdjustPointsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "参数错误: "+err.Error())
	}

	if err := a.AdminService.AdjustPoints(c.Request.Context(), req.UserID, req.NewBalance, req.Reason, actorID); err != nil {
		return bizErr(err)
	}
	response.Success(c, gin.H{"adjusted": true})
	return nil
}

func (a *Admin) SetAttendance(c *gin.Context) error {
	actorID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	var req types.SetAttendanceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "参数错误: "+err.Error())
	}

	if err := a.AdminService.SetAttendance(c.Request.Context(), req.UserID, req.Day, req.Checked, actorID); err != nil {
		return bizErr(err)
	}
	response.Success(c, gin.H{"updated": true})
	return nil
}

func (a *Admin) SetRole(c *gin.Context) error {
	actorID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	var req types.SetRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "参数错误: "+err.Error())
	}

	if err := a.AdminService.SetRole(c.Request.Context(), req.UserID, req.Role, actorID); err != nil {
		return bizErr(err)
	}
	response.Success(c, gin.H{"updated": true})
	return nil
}

func (a *Admin) UpdateCandidate(c *gin.Context) error {
	actorID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	candidateID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return response.NewError(http.StatusBadRequest, "candidate id 格式错误")
	}

	var req types.UpdateCandidateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "参数错误: "+err.Error())
	}

	update := &service.CandidateUpdate{
		Visible:         req.Visible,
		Active:          req.Active,
		PurchasedPoints: req.PurchasedPoints,
	}
	if err := a.AdminService.UpdateCandidate(c.Request.Context(), candidateID, update, actorID); err != nil {
		return bizErr(err)
	}
	response.Success(c, gin.H{"updated": true})
	return nil
}

func (a *Admin) SetPodiumMode(c *gin.Context) error {
	actorID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	var req types.PodiumModeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "参数错误: "+err.Error())
	}

	if err := a.AdminService.SetPodiumMode(c.Request.Context(), req.Mode, actorID); err != nil {
		return bizErr(err)
	}
	response.Success(c, gin.H{"mode": req.Mode})
	return nil
}

func (a *Admin) ToggleAnnouncement(c *gin.Context) error {
	actorID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	visible, err := a.AdminService.ToggleAnnouncement(c.Request.Context(), actorID)
	if err != nil {
		return bizErr(err)
	}
	response.Success(c, gin.H{"visible": visible})
	return nil
}
