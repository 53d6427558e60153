package service

import (
	"LuckyChat/dao"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewRedPacketService,
	wire.Bind(new(IRedPacketService), new(*RedPacketService)),
	wire.Bind(new(PacketStore), new(*dao.RedPacket)),

	NewAutoGrabScheduler,

	wire.Struct(new(MessageService), "*"),
	wire.Bind(new(IMessageService), new(*MessageService)),

	NewAffectionService,
	wire.Bind(new(IAffectionService), new(*AffectionService)),
	wire.Bind(new(AffectionStore), new(*dao.Affection)),

	NewBankService,
	wire.Bind(new(IBankService), new(*BankService)),
	wire.Bind(new(BankStore), new(*dao.Bank)),
	wire.Bind(new(PersonaStore), new(*dao.Persona)),

	NewPersonaService,
	wire.Bind(new(IPersonaService), new(*PersonaService)),
	wire.Bind(new(PersonaRepo), new(*dao.Persona)),

	NewGroupService,
	wire.Bind(new(IGroupService), new(*GroupService)),
	wire.Bind(new(GroupStore), new(*dao.Group)),

	NewCharacterService,
	wire.Bind(new(ICharacterService), new(*CharacterService)),

	NewChatService,
	wire.Bind(new(IChatService), new(*ChatService)),

	NewAuthService,
	wire.Bind(new(IAuthService), new(*AuthService)),
)
