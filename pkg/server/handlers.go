package server

import (
	"LuckyChat/handler"
)

type Handlers struct {
	Auth      *handler.Auth
	Group     *handler.Group
	Affection *handler.Affection
	Persona   *handler.Persona
	Bank      *handler.Bank
	Chat      *handler.Chat
	WS        *handler.WebSocket
}
