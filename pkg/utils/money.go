package utils

import "math"

// 金额在内部一律以分（int64）计算，只有进出 JSON 边界时才转成两位小数的元。
// 避免连续多次领取后浮点误差累积导致总额不守恒。

// ToCents 元转分，四舍五入到分
func ToCents(yuan float64) int64 {
	return int64(math.Round(yuan * 100))
}

// ToYuan 分转元，保证两位小数语义
func ToYuan(cents int64) float64 {
	return float64(cents) / 100
}
