package server

import (
	"Carnival/handler"
)

type Handlers struct {
	Account *handler.Account
	Gacha   *handler.Gacha
	Vote    *handler.Vote
	Ticket  *handler.Ticket
	Admin   *handler.Admin
	Live    *handler.Live
}
