package handler

import (
	"Carnival/pkg/response"
	"Carnival/service"
	"errors"
	"net/http"
)

// 业务错误码
// 4xxxx 是稳定对外的，客户端按码提示
const (
	CodeInsufficientFunds = 41001
	CodeInvalidQuantity   = 41002
	CodeInvalidAmount     = 41003
	CodeCategoryClosed    = 42001
	CodeAlreadyVoted      = 42002
	CodeNoVoteRights      = 42003
	CodeCandidateInvalid  = 42004
	CodeToggleConflict    = 42005
	CodeAlreadyClaimed    = 43001
	CodeTicketNotFound    = 43002
	CodeAlreadyChecked    = 44001
)

// bizErr 把 service 的类型化错误翻译成带码的业务错误
func bizErr(err error) error {
	switch {
	case errors.Is(err, service.ErrInsufficientFunds):
		return response.NewError(CodeInsufficientFunds, err.Error())
	case errors.Is(err, service.ErrInvalidQuantity):
		return response.NewError(CodeInvalidQuantity, err.Error())
	case errors.Is(err, service.ErrInvalidAmount):
		return response.NewError(CodeInvalidAmount, err.Error())
	case errors.Is(err, service.ErrCategoryClosed):
		return response.NewError(CodeCategoryClosed, err.Error())
	case errors.Is(err, service.ErrToggleConflict):
		return response.NewError(CodeToggleConflict, err.Error())
	case errors.Is(err, service.ErrAlreadyVoted):
		return response.NewError(CodeAlreadyVoted, err.Error())
	case errors.Is(err, service.ErrNoVoteRights):
		return response.NewError(CodeNoVoteRights, err.Error())
	case errors.Is(err, service.ErrCandidateInvalid):
		return response.NewError(CodeCandidateInvalid, err.Error())
	case errors.Is(err, service.ErrAlreadyClaimed):
		return response.NewError(CodeAlreadyClaimed, err.Error())
	case errors.Is(err, service.ErrTicketNotFound):
		return response.NewError(CodeTicketNotFound, err.Error())
	case errors.Is(err, service.ErrAlreadyChecked):
		return response.NewError(CodeAlreadyChecked, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		return response.NewError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidBalance), errors.Is(err, service.ErrInvalidRole):
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	return err
}
