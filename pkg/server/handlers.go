package server

import (
	"Focus/handler"
)

type Handlers struct {
	Fragment *handler.Fragment
	Reward   *handler.Reward
	Lottery  *handler.Lottery
}
