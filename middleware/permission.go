package middleware

import (
	"net/http"

	"Carnival/models"
	"Carnival/pkg/context"
	"Carnival/pkg/response"

	"github.com/gin-gonic/gin"
)

// 操作权限表
// 角色是封闭枚举，按操作列白名单，不做任何继承关系
// superadmin 相关的角色变更在 service 里还会拿库里的角色再验一次
const (
	OpCheckin       = "checkin"
	OpGrantPoints   = "points.grant"
	OpClaimTicket   = "ticket.claim"
	OpToggleVote    = "vote.toggle"
	OpSyncVote      = "vote.sync"
	OpAdjustPoints  = "admin.adjust"
	OpSetAttendance = "admin.attendance"
	OpSetRole       = "admin.role"
	OpCandidate     = "admin.candidate"
	OpPodium        = "admin.podium"
	OpAnnouncement  = "admin.announcement"
	OpListAudit     = "admin.audit"
)

var permissions = map[string][]string{
	OpCheckin:       {models.RoleStaff, models.RoleRegister, models.RoleAdmin, models.RoleSuperAdmin},
	OpGrantPoints:   {models.RoleStaff, models.RoleAdmin, models.RoleSuperAdmin},
	OpClaimTicket:   {models.RoleStaff, models.RoleRegister, models.RoleAdmin, models.RoleSuperAdmin},
	OpToggleVote:    {models.RoleAdmin, models.RoleSuperAdmin},
	OpSyncVote:      {models.RoleAdmin, models.RoleSuperAdmin},
	OpAdjustPoints:  {models.RoleAdmin, models.RoleSuperAdmin},
	OpSetAttendance: {models.RoleAdmin, models.RoleSuperAdmin},
	OpSetRole:       {models.RoleAdmin, models.RoleSuperAdmin},
	OpCandidate:     {models.RoleAdmin, models.RoleSuperAdmin},
	OpPodium:        {models.RoleAdmin, models.RoleSuperAdmin},
	OpAnnouncement:  {models.RoleAdmin, models.RoleSuperAdmin},
	OpListAudit:     {models.RoleAdmin, models.RoleSuperAdmin},
}

// Allowed 权限表查询，测试直接打这个函数
func Allowed(op, role string) bool {
	for _, r := range permissions[op] {
		if r == role {
			return true
		}
	}
	return false
}

// Require 操作级权限校验，挂在 Auth 后面
func Require(op string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !Allowed(op, context.GetRole(c)) {
			response.Abort(c, http.StatusForbidden, "没有操作权限")
			return
		}
		c.Next()
	}
}
