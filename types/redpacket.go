package types

// SendRedPacketRequest 发红包。金额为元（两位小数），个数为正整数。
// sender 可以是用户（"user"）也可以是 AI 驱动的角色。
type SendRedPacketRequest struct {
	SenderID     string  `json:"sender_id"`
	SenderName   string  `json:"sender_name"`
	SenderAvatar string  `json:"sender_avatar"`
	TotalAmount  float64 `json:"total_amount"`
	TotalNum     int     `json:"total_num"`
	Wishes       string  `json:"wishes"`
}

// GrabRedPacketRequest 抢红包的人
type GrabRedPacketRequest struct {
	UserID     string `json:"user_id"`
	UserName   string `json:"user_name"`
	UserAvatar string `json:"user_avatar"`
}

type ClaimRecordInfo struct {
	UserID     string  `json:"user_id"`
	UserName   string  `json:"user_name"`
	UserAvatar string  `json:"user_avatar"`
	Amount     float64 `json:"amount"`
	Time       int64   `json:"time"`
	IsBest     bool    `json:"is_best"`
}

type RedPacketInfo struct {
	ID           string            `json:"id"`
	GroupID      string            `json:"group_id"`
	SenderID     string            `json:"sender_id"`
	SenderName   string            `json:"sender_name"`
	SenderAvatar string            `json:"sender_avatar"`
	TotalAmount  float64           `json:"total_amount"`
	TotalNum     int               `json:"total_num"`
	Wishes       string            `json:"wishes"`
	RemainAmount float64           `json:"remain_amount"`
	RemainNum    int               `json:"remain_num"`
	Records      []ClaimRecordInfo `json:"records"`
	Status       string            `json:"status"`
	CreatedAt    int64             `json:"created_at"`  // 毫秒
	ExpiredAt    int64             `json:"expired_at"`  // 毫秒
}

// GrabResult 领取结果。重复领取返回首次领到的金额，AlreadyClaimed=true。
type GrabResult struct {
	Amount         float64        `json:"amount"`
	IsBest         bool           `json:"is_best"`
	AlreadyClaimed bool           `json:"already_claimed"`
	Packet         *RedPacketInfo `json:"packet"`
}
