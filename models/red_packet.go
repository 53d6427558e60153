package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RedPacketStatusAvailable = "available" // 待领取
	RedPacketStatusFinished  = "finished"  // 已领完
	RedPacketStatusExpired   = "expired"   // 已过期
)

// ClaimRecord 单条领取记录，追加写入，不修改历史（is_best 标记除外）
type ClaimRecord struct {
	UserID     string `json:"user_id"`
	UserName   string `json:"user_name"`
	UserAvatar string `json:"user_avatar"`
	Amount     int64  `json:"amount"` // 分
	Time       int64  `json:"time"`   // 毫秒时间戳
	IsBest     bool   `json:"is_best"`
}

// RedPacket 拼手气红包。金额字段一律以分存储。
type RedPacket struct {
	ID           string                             `gorm:"primaryKey;column:id;size:64"`
	GroupID      string                             `gorm:"column:group_id;size:64;index:idx_group_id"`
	SenderID     string                             `gorm:"column:sender_id;size:64"`
	SenderName   string                             `gorm:"column:sender_name;size:64"`
	SenderAvatar string                             `gorm:"column:sender_avatar;size:255"`
	TotalAmount  int64                              `gorm:"column:total_amount"` // 创建后不可变
	TotalNum     int                                `gorm:"column:total_num"`
	Wishes       string                             `gorm:"column:wishes;size:255"`
	RemainAmount int64                              `gorm:"column:remain_amount"`
	RemainNum    int                                `gorm:"column:remain_num"`
	Records      datatypes.JSONSlice[ClaimRecord]   `gorm:"column:records"`
	Status       string                             `gorm:"column:status;size:16;index:idx_status"`
	CreatedAt    time.Time                          `gorm:"column:created_at"`
	ExpiredAt    time.Time                          `gorm:"column:expired_at"`
}

func (RedPacket) TableName() string {
	return "red_packets"
}

// FindRecord 返回该用户的领取记录，未领取过返回 nil
func (p *RedPacket) FindRecord(userID string) *ClaimRecord {
	for i := range p.Records {
		if p.Records[i].UserID == userID {
			return &p.Records[i]
		}
	}
	return nil
}

// Expired 是否已过期
func (p *RedPacket) Expired(now time.Time) bool {
	return now.After(p.ExpiredAt)
}

// MarkBestLuck 红包领完后标记手气最佳：金额严格最大者，相同金额先抢者优先
func (p *RedPacket) MarkBestLuck() {
	if len(p.Records) == 0 {
		return
	}

	bestIdx := 0
	for i := 1; i < len(p.Records); i++ {
		if p.Records[i].Amount > p.Records[bestIdx].Amount {
			bestIdx = i
		}
	}

	for i := range p.Records {
		p.Records[i].IsBest = i == bestIdx
	}
}
