package service

import (
	"context"
	"errors"
	"time"

	"LuckyChat/config"
	"LuckyChat/models"
	"LuckyChat/pkg/log"
	"LuckyChat/pkg/strutil"
	"LuckyChat/types"

	"github.com/sourcegraph/conc/panics"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// NPC 抢到红包后随机回复的感谢语
var thankMessages = []string{
	"谢谢老板！",
	"老板大气！",
	"发财发财~",
	"谢谢红包！",
	"运气不错嘿嘿",
	"收到！",
	"感谢感谢~",
	"老板威武！",
	"好耶！",
}

// AutoGrabScheduler 红包发出后驱动群里的 NPC 依次来抢。
// 整个序列在后台执行，任何失败都不会传回发红包的请求。
type AutoGrabScheduler struct {
	redPackets IRedPacketService
	messages   IMessageService
	workers    *pool.Pool
	delayMin   time.Duration
	delayMax   time.Duration
	rng        intSource
}

func NewAutoGrabScheduler(cfg *config.Config, redPackets IRedPacketService, messages IMessageService) *AutoGrabScheduler {
	delayMin, delayMax := cfg.RedPacket.GrabDelayRange()
	return &AutoGrabScheduler{
		redPackets: redPackets,
		messages:   messages,
		workers:    pool.New(),
		delayMin:   delayMin,
		delayMax:   delayMax,
		rng:        newLockedRand(time.Now().UnixNano() + 1),
	}
}

// Schedule 提交一个红包的 NPC 自动抢序列，立即返回。
// members 是群成员全量名单，发红包的人被排除。
func (s *AutoGrabScheduler) Schedule(groupID, packetID string, members []models.GroupMember, senderID string) {
	eligible := make([]models.GroupMember, 0, len(members))
	for _, m := range members {
		if m.ID != senderID {
			eligible = append(eligible, m)
		}
	}
	if len(eligible) == 0 {
		return
	}

	// 随机打乱顺序，避免固定位置的成员总是先抢
	for i := len(eligible) - 1; i > 0; i-- {
		j := s.rng.Int63n(int64(i + 1))
		eligible[i], eligible[j] = eligible[j], eligible[i]
	}

	s.workers.Go(func() {
		if recovered := panics.Try(func() { s.run(groupID, packetID, eligible) }); recovered != nil {
			log.L.Error("auto grab sequence panic",
				zap.String("packet_id", packetID),
				zap.Any("recovered", recovered.Value),
			)
		}
	})
}

func (s *AutoGrabScheduler) run(groupID, packetID string, members []models.GroupMember) {
	ctx := context.Background()

	for _, member := range members {
		time.Sleep(s.randomDelay())

		// 等待期间红包可能已被真人抢完或删除，领取内部会重新读取最新状态
		result, err := s.redPackets.Grab(ctx, groupID, packetID, &types.GrabRedPacketRequest{
			UserID:     member.ID,
			UserName:   member.Name,
			UserAvatar: member.Avatar,
		})
		if err != nil {
			if errors.Is(err, ErrPacketExhausted) || errors.Is(err, ErrPacketExpired) || errors.Is(err, ErrPacketNotFound) {
				return
			}
			// 单个成员失败不终止整个序列
			log.L.Warn("npc grab failed",
				zap.String("packet_id", packetID),
				zap.String("member_id", member.ID),
				zap.Error(err),
			)
			continue
		}

		if result.AlreadyClaimed {
			continue
		}

		// 50% 概率发一条感谢消息，纯展示
		if s.rng.Int63n(2) == 0 {
			s.sendThanks(ctx, groupID, member)
		}

		if result.Packet != nil && result.Packet.RemainNum == 0 {
			return
		}
	}
}

func (s *AutoGrabScheduler) randomDelay() time.Duration {
	span := int64(s.delayMax - s.delayMin)
	if span <= 0 {
		return s.delayMin
	}
	return s.delayMin + time.Duration(s.rng.Int63n(span))
}

func (s *AutoGrabScheduler) sendThanks(ctx context.Context, groupID string, member models.GroupMember) {
	msg := &models.GroupMessage{
		MsgID:        strutil.NewMsgID(),
		GroupID:      groupID,
		SenderID:     member.ID,
		SenderName:   member.Name,
		SenderAvatar: member.Avatar,
		Text:         thankMessages[s.rng.Int63n(int64(len(thankMessages)))],
		Type:         models.MsgTypeText,
		Timestamp:    time.Now().UnixMilli(),
	}
	if err := s.messages.Append(ctx, msg); err != nil {
		log.L.Warn("send thanks message", zap.String("group_id", groupID), zap.Error(err))
	}
}
