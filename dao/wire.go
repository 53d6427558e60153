package dao

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewRedPacket,
	NewAffection,
	NewGroup,
	NewMessage,
	NewUser,
	NewCharacter,
	NewPersona,
	NewBank,
)
