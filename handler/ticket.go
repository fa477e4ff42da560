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

type Ticket struct {
	Config        *config.Config
	RedeemService service.IRedeemService
}

func (t *Ticket) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(t.Config.Jwt.Secret))

	g := r.Group("/v1/tickets")
	g.GET("", authorize, context.Wrap(t.MyTickets))

	staff := r.Group("/v1/staff/tickets")
	staff.POST("/claim", authorize, middleware.Require(middleware.OpClaimTicket), context.Wrap(t.Claim))
}

// MyTickets 我的兑换券
func (t *Ticket) MyTickets(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	tickets, err := t.RedeemService.ListUserTickets(c.Request.Context(), userID)
	if err != nil {
		return bizErr(err)
	}
	response.Success(c, tickets)
	return nil
}

// Claim 工作人员扫码核销
func (t *Ticket) Claim(c *gin.Context) error {
	staffID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	var req types.ClaimTicketReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "参数错误: "+err.Error())
	}

	info, err := t.RedeemService.Claim(c.Request.Context(), req.Code, staffID)
	if err != nil {
		return bizErr(err)
	}
	response.Success(c, info)
	return nil
}
