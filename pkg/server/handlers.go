package server

import (
	"clipchain/handler"
)

type Handlers struct {
	Credits     *handler.Credits
	Templates   *handler.Templates
	Generate    *handler.Generate
	Leaderboard *handler.Leaderboard
}
