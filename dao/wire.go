package dao

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewAccount,
	NewVote,
	NewCandidate,
	NewCategory,
	NewTicket,
	NewAudit,
	NewSetting,
)
