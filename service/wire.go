package service

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	wire.Struct(new(AccountService), "*"),
	wire.Bind(new(IAccountService), new(*AccountService)),

	wire.Struct(new(GachaService), "*"),
	wire.Bind(new(IGachaService), new(*GachaService)),

	wire.Struct(new(VoteService), "*"),
	wire.Bind(new(IVoteService), new(*VoteService)),

	wire.Struct(new(RightsService), "*"),
	wire.Bind(new(IRightsService), new(*RightsService)),

	wire.Struct(new(RedeemService), "*"),
	wire.Bind(new(IRedeemService), new(*RedeemService)),

	wire.Struct(new(AdminService), "*"),
	wire.Bind(new(IAdminService), new(*AdminService)),
)
