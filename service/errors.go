package service

import "errors"

// 业务失败都是类型化错误，事务内检测到即整体回滚，不存在半截状态
var (
	ErrInsufficientFunds = errors.New("积分余额不足")
	ErrInvalidAmount     = errors.New("积分数量必须为正整数")
	ErrCategoryClosed    = errors.New("该分类投票未开放")
	ErrToggleConflict    = errors.New("场次状态已变化，请刷新后重试")
	ErrAlreadyVoted      = errors.New("本场次已投过票")
	ErrNoVoteRights      = errors.New("没有可用的投票券")
	ErrInvalidQuantity   = errors.New("购买数量必须为正整数")
	ErrAlreadyClaimed    = errors.New("兑换券已被核销")
	ErrTicketNotFound    = errors.New("兑换券不存在")
	ErrAlreadyChecked    = errors.New("当日已签到")
	ErrUnauthorized      = errors.New("没有操作权限")
	ErrCandidateInvalid  = errors.New("候选者不存在或不可投")
	ErrInvalidBalance    = errors.New("余额不允许为负数")
	ErrInvalidRole       = errors.New("非法的角色")
)
