package models

const (
	MsgTypeText      = "text"
	MsgTypeRedPacket = "red_packet"
)

// GroupMessage 群聊消息。红包消息通过 red_packet_id 关联红包。
type GroupMessage struct {
	MsgID        string `gorm:"primaryKey;column:msg_id;size:64" json:"msg_id"`
	GroupID      string `gorm:"column:group_id;size:64;index:idx_group_id" json:"group_id"`
	SenderID     string `gorm:"column:sender_id;size:64" json:"sender_id"`
	SenderName   string `gorm:"column:sender_name;size:64" json:"sender_name"`
	SenderAvatar string `gorm:"column:sender_avatar;size:255" json:"sender_avatar"`
	Text         string `gorm:"column:text;size:2048" json:"text"`
	Type         string `gorm:"column:type;size:16" json:"type"`
	RedPacketID  string `gorm:"column:red_packet_id;size:64" json:"red_packet_id,omitempty"`
	Timestamp    int64  `gorm:"column:timestamp" json:"timestamp"` // 毫秒
}

func (GroupMessage) TableName() string {
	return "group_messages"
}
