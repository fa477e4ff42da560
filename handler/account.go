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

type Account struct {
	Config         *config.Config
	AccountService service.IAccountService
}

func (a *Account) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(a.Config.Jwt.Secret))

	g := r.Group("/v1/account")
	g.GET("/dashboard", authorize, context.Wrap(a.Dashboard))
	g.GET("/audit", authorize, context.Wrap(a.MyAudit))

	staff := r.Group("/v1/staff")
	staff.POST("/checkin", authorize, middleware.Require(middleware.OpCheckin), context.Wrap(a.Checkin))
	staff.POST("/points/grant", authorize, middleware.Require(middleware.OpGrantPoints), context.Wrap(a.GrantPoints))

	admin := r.Group("/v1/admin")
	admin.GET("/audit", authorize, middleware.Require(middleware.OpListAudit), context.Wrap(a.ListAudit))
}

// Dashboard 我的积分、投票券、到场记录
func (a *Account) Dashboard(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	resp, err := a.AccountService.Dashboard(c.Request.Context(), userID)
	if err != nil {
		return bizErr(err)
	}
	response.Success(c, resp)
	return nil
}

// MyAudit 我自己的流水
func (a *Account) MyAudit(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	cursor, _ := strconv.ParseInt(c.Query("cursor"), 10, 64)
	limit, _ := strconv.Atoi(c.Query("limit"))

	resp, err := a.AccountService.ListAudit(c.Request.Context(), c.Query("kind"), userID, cursor, limit)
	if err != nil {
		return bizErr(err)
	}
	response.Success(c, resp)
	return nil
}

// Checkin 工作人员扫用户二维码签到发分
func (a *Account) Checkin(c *gin.Context) error {
	actorID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	var req types.CheckinReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "参数错误: "+err.Error())
	}

	if err := a.AccountService.Checkin(c.Request.Context(), req.UserID, req.Day, actorID); err != nil {
		return bizErr(err)
	}
	response.Success(c, gin.H{"checked": true})
	return nil
}

// GrantPoints 手动发积分
func (a *Account) GrantPoints(c *gin.Context) error {
	actorID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	var req types.GrantPointsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "参数错误: "+err.Error())
	}

	if err := a.AccountService.Grant(c.Request.Context(), req.UserID, req.Amount, req.Reason, actorID); err != nil {
		return bizErr(err)
	}
	response.Success(c, gin.H{"granted": true})
	return nil
}

// ListAudit 后台审计流水，CSV 导出走这个接口的数据
func (a *Account) ListAudit(c *gin.Context) error {
	cursor, _ := strconv.ParseInt(c.Query("cursor"), 10, 64)
	limit, _ := strconv.Atoi(c.Query("limit"))
	userID, _ := strconv.ParseUint(c.Query("user_id"), 10, 64)

	resp, err := a.AccountService.ListAudit(c.Request.Context(), c.Query("kind"), userID, cursor, limit)
	if err != nil {
		return bizErr(err)
	}
	response.Success(c, resp)
	return nil
}
