package config

import "time"

// RedPacket 红包与 NPC 自动抢红包的调度参数
type RedPacket struct {
	ExpireHours   int `json:"expire_hours" yaml:"expire_hours"`     // 红包有效期，默认 24 小时
	GrabDelayMin  int `json:"grab_delay_min" yaml:"grab_delay_min"` // NPC 抢红包最小延迟（毫秒）
	GrabDelayMax  int `json:"grab_delay_max" yaml:"grab_delay_max"` // NPC 抢红包最大延迟（毫秒）
	SweepInterval int `json:"sweep_interval" yaml:"sweep_interval"` // 过期红包清扫间隔（秒）
}

func (r *RedPacket) GrabDelayRange() (time.Duration, time.Duration) {
	minMs, maxMs := 1000, 3000
	if r != nil {
		if r.GrabDelayMin > 0 {
			minMs = r.GrabDelayMin
		}
		if r.GrabDelayMax > 0 {
			maxMs = r.GrabDelayMax
		}
	}
	if maxMs < minMs {
		maxMs = minMs
	}
	return time.Duration(minMs) * time.Millisecond, time.Duration(maxMs) * time.Millisecond
}

func (r *RedPacket) ExpireHoursOrDefault() int {
	if r == nil || r.ExpireHours <= 0 {
		return 24
	}
	return r.ExpireHours
}

func (r *RedPacket) SweepIntervalOrDefault() time.Duration {
	if r == nil || r.SweepInterval <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(r.SweepInterval) * time.Second
}
