package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"LuckyChat/config"
	"LuckyChat/models"
	"LuckyChat/pkg/keylock"
	"LuckyChat/pkg/log"
	"LuckyChat/pkg/response"
	"LuckyChat/pkg/strutil"
	"LuckyChat/pkg/utils"
	"LuckyChat/types"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrInvalidAmount   = response.NewError(40001, "红包金额无效")
	ErrInvalidCount    = response.NewError(40002, "红包个数无效")
	ErrPacketExpired   = response.NewError(40003, "红包已过期")
	ErrPacketExhausted = response.NewError(40004, "红包已被抢完")
	ErrPacketNotFound  = response.NewError(40401, "红包不存在")
)

// PacketStore 红包存取。gorm 实现见 dao.RedPacket，测试用内存实现。
type PacketStore interface {
	GetPacket(ctx context.Context, groupID, packetID string) (*models.RedPacket, error)
	CreatePacket(ctx context.Context, packet *models.RedPacket) error
	SavePacket(ctx context.Context, packet *models.RedPacket) error
	ListPackets(ctx context.Context, groupID string) ([]models.RedPacket, error)
	ListExpiredOpen(ctx context.Context, now time.Time) ([]models.RedPacket, error)
}

type IRedPacketService interface {
	Create(ctx context.Context, groupID string, req *types.SendRedPacketRequest) (*types.RedPacketInfo, error)
	Grab(ctx context.Context, groupID, packetID string, grabber *types.GrabRedPacketRequest) (*types.GrabResult, error)
	Get(ctx context.Context, groupID, packetID string) (*types.RedPacketInfo, error)
	ListByGroup(ctx context.Context, groupID string) ([]*types.RedPacketInfo, error)
	ExpireOverdue(ctx context.Context) (int, error)
}

var _ IRedPacketService = (*RedPacketService)(nil)

type RedPacketService struct {
	cfg      *config.RedPacket
	store    PacketStore
	messages IMessageService
	locks    *keylock.KeyLock
	rng      intSource
}

func NewRedPacketService(cfg *config.Config, store PacketStore, messages IMessageService, locks *keylock.KeyLock) *RedPacketService {
	return &RedPacketService{
		cfg:      cfg.RedPacket,
		store:    store,
		messages: messages,
		locks:    locks,
		rng:      newLockedRand(time.Now().UnixNano()),
	}
}

// Create 发红包：校验、落库、往群里追加一条红包消息。
// NPC 自动抢红包由上层在拿到群成员后另行调度，创建本身不被它阻塞。
func (s *RedPacketService) Create(ctx context.Context, groupID string, req *types.SendRedPacketRequest) (*types.RedPacketInfo, error) {
	totalAmount := utils.ToCents(req.TotalAmount)
	if totalAmount < minGrabCents {
		return nil, ErrInvalidAmount
	}
	if req.TotalNum < 1 {
		return nil, ErrInvalidCount
	}
	// 确保每个红包至少 0.01 元
	if totalAmount < int64(req.TotalNum)*minGrabCents {
		return nil, ErrInvalidAmount
	}

	senderID := req.SenderID
	if senderID == "" {
		senderID = "user"
	}
	senderName := req.SenderName
	if senderName == "" {
		senderName = "我"
	}
	wishes := req.Wishes
	if wishes == "" {
		wishes = "恭喜发财，大吉大利"
	}

	now := time.Now()
	packet := &models.RedPacket{
		ID:           strutil.NewPacketID(),
		GroupID:      groupID,
		SenderID:     senderID,
		SenderName:   senderName,
		SenderAvatar: req.SenderAvatar,
		TotalAmount:  totalAmount,
		TotalNum:     req.TotalNum,
		Wishes:       wishes,
		RemainAmount: totalAmount,
		RemainNum:    req.TotalNum,
		Records:      []models.ClaimRecord{},
		Status:       models.RedPacketStatusAvailable,
		CreatedAt:    now,
		ExpiredAt:    now.Add(time.Duration(s.cfg.ExpireHoursOrDefault()) * time.Hour),
	}

	if err := s.store.CreatePacket(ctx, packet); err != nil {
		return nil, err
	}

	msg := &models.GroupMessage{
		MsgID:        strutil.NewMsgID(),
		GroupID:      groupID,
		SenderID:     senderID,
		SenderName:   senderName,
		SenderAvatar: req.SenderAvatar,
		Text:         fmt.Sprintf("[红包] %s", wishes),
		Type:         models.MsgTypeRedPacket,
		RedPacketID:  packet.ID,
		Timestamp:    now.UnixMilli(),
	}
	if err := s.messages.Append(ctx, msg); err != nil {
		// 消息是展示用途，红包本身已经生效
		log.L.Warn("append red packet message", zap.String("packet_id", packet.ID), zap.Error(err))
	}

	return toPacketInfo(packet), nil
}

// Grab 领红包。同一红包的并发领取被 packet 级互斥锁串行化，
// 任意两次领取不会看到相同的领取前状态。
func (s *RedPacketService) Grab(ctx context.Context, groupID, packetID string, grabber *types.GrabRedPacketRequest) (*types.GrabResult, error) {
	unlock := s.locks.Lock("packet:" + packetID)
	defer unlock()

	packet, err := s.store.GetPacket(ctx, groupID, packetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPacketNotFound
		}
		return nil, err
	}

	now := time.Now()
	if packet.Expired(now) {
		return nil, ErrPacketExpired
	}

	userID := grabber.UserID
	if userID == "" {
		userID = "user"
	}

	// 幂等：重复领取返回首次领到的金额，对调用方不算错误
	if rec := packet.FindRecord(userID); rec != nil {
		return &types.GrabResult{
			Amount:         utils.ToYuan(rec.Amount),
			IsBest:         rec.IsBest,
			AlreadyClaimed: true,
			Packet:         toPacketInfo(packet),
		}, nil
	}

	if packet.RemainNum <= 0 {
		return nil, ErrPacketExhausted
	}

	amount := splitAmount(packet.RemainAmount, packet.RemainNum, s.rng)

	userName := grabber.UserName
	if userName == "" {
		userName = "我"
	}
	record := models.ClaimRecord{
		UserID:     userID,
		UserName:   userName,
		UserAvatar: grabber.UserAvatar,
		Amount:     amount,
		Time:       now.UnixMilli(),
	}

	packet.Records = append(packet.Records, record)
	packet.RemainAmount -= amount
	packet.RemainNum--

	// 边界保护：确保不会出现负数
	if packet.RemainAmount < 0 {
		packet.RemainAmount = 0
	}
	if packet.RemainNum < 0 {
		packet.RemainNum = 0
	}

	if packet.RemainNum == 0 {
		packet.MarkBestLuck()
		packet.Status = models.RedPacketStatusFinished
	}

	if err := s.store.SavePacket(ctx, packet); err != nil {
		return nil, err
	}

	// 手气最佳只有红包领完才能确定
	isBest := packet.RemainNum == 0 && packet.Records[len(packet.Records)-1].IsBest

	return &types.GrabResult{
		Amount: utils.ToYuan(amount),
		IsBest: isBest,
		Packet: toPacketInfo(packet),
	}, nil
}

func (s *RedPacketService) Get(ctx context.Context, groupID, packetID string) (*types.RedPacketInfo, error) {
	packet, err := s.store.GetPacket(ctx, groupID, packetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPacketNotFound
		}
		return nil, err
	}
	return toPacketInfo(packet), nil
}

func (s *RedPacketService) ListByGroup(ctx context.Context, groupID string) ([]*types.RedPacketInfo, error) {
	packets, err := s.store.ListPackets(ctx, groupID)
	if err != nil {
		return nil, err
	}

	infos := make([]*types.RedPacketInfo, 0, len(packets))
	for i := range packets {
		infos = append(infos, toPacketInfo(&packets[i]))
	}
	return infos, nil
}

// ExpireOverdue 将超过有效期的红包标记为已过期，剩余金额作废不退款。
// 由后台定时任务驱动。
func (s *RedPacketService) ExpireOverdue(ctx context.Context) (int, error) {
	packets, err := s.store.ListExpiredOpen(ctx, time.Now())
	if err != nil {
		return 0, err
	}

	count := 0
	for i := range packets {
		id, groupID := packets[i].ID, packets[i].GroupID

		unlock := s.locks.Lock("packet:" + id)
		// 在锁内重读，避免覆盖扫表之后发生的领取
		packet, err := s.store.GetPacket(ctx, groupID, id)
		if err == nil && packet.Status == models.RedPacketStatusAvailable && packet.Expired(time.Now()) {
			packet.Status = models.RedPacketStatusExpired
			if err := s.store.SavePacket(ctx, packet); err != nil {
				log.L.Error("expire red packet", zap.String("packet_id", id), zap.Error(err))
			} else {
				count++
			}
		}
		unlock()
	}
	return count, nil
}

func toPacketInfo(p *models.RedPacket) *types.RedPacketInfo {
	records := make([]types.ClaimRecordInfo, 0, len(p.Records))
	for _, r := range p.Records {
		records = append(records, types.ClaimRecordInfo{
			UserID:     r.UserID,
			UserName:   r.UserName,
			UserAvatar: r.UserAvatar,
			Amount:     utils.ToYuan(r.Amount),
			Time:       r.Time,
			IsBest:     r.IsBest,
		})
	}

	status := p.Status
	if status == models.RedPacketStatusAvailable && p.Expired(time.Now()) {
		status = models.RedPacketStatusExpired
	}

	return &types.RedPacketInfo{
		ID:           p.ID,
		GroupID:      p.GroupID,
		SenderID:     p.SenderID,
		SenderName:   p.SenderName,
		SenderAvatar: p.SenderAvatar,
		TotalAmount:  utils.ToYuan(p.TotalAmount),
		TotalNum:     p.TotalNum,
		Wishes:       p.Wishes,
		RemainAmount: utils.ToYuan(p.RemainAmount),
		RemainNum:    p.RemainNum,
		Records:      records,
		Status:       status,
		CreatedAt:    p.CreatedAt.UnixMilli(),
		ExpiredAt:    p.ExpiredAt.UnixMilli(),
	}
}
