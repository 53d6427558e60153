package strutil

import (
	"fmt"

	"LuckyChat/pkg/snowflake"

	"github.com/speps/go-hashids/v2"
)

var encoder *hashids.HashID

func init() {
	data := hashids.NewData()
	data.Salt = "luckychat.id"
	data.MinLength = 12
	encoder, _ = hashids.NewWithData(data)
}

func encode(prefix string) string {
	id, err := encoder.EncodeInt64([]int64{snowflake.GenID()})
	if err != nil {
		// hashids 只在字母表非法时报错，这里退回裸雪花ID
		return fmt.Sprintf("%s_%d", prefix, snowflake.GenID())
	}
	return fmt.Sprintf("%s_%s", prefix, id)
}

// NewPacketID 生成红包ID，形如 rp_xxx
func NewPacketID() string {
	return encode("rp")
}

// NewMsgID 生成消息ID，形如 msg_xxx
func NewMsgID() string {
	return encode("msg")
}

// NewTxID 生成交易流水ID，形如 tx_xxx
func NewTxID() string {
	return encode("tx")
}
