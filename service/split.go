package service

import (
	"math/rand"
	"sync"
)

// 单个红包的最低金额：1 分
const minGrabCents int64 = 1

// intSource 抽象随机源，测试注入固定种子即可复现分配序列。
// 统计意义上的公平即可，不需要密码学随机。
type intSource interface {
	Int63n(n int64) int64
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func newLockedRand(seed int64) *lockedRand {
	return &lockedRand{r: rand.New(rand.NewSource(seed))}
}

func (l *lockedRand) Int63n(n int64) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Int63n(n)
}

// splitAmount 二倍均值法计算下一个人抢到的金额（单位：分）。
// 每次领取调用一次，入参是当前剩余金额和剩余个数。
// 返回值保证 >= 1 分，且扣除后剩下的每个人仍至少能分到 1 分。
func splitAmount(remainAmount int64, remainNum int, rng intSource) int64 {
	// 最后一个人拿走全部剩余，保证分完无残留
	if remainNum <= 1 {
		return remainAmount
	}

	n := int64(remainNum)
	avg := remainAmount / n

	maxDraw := avg * 2
	if hi := remainAmount - (n-1)*minGrabCents; maxDraw > hi {
		maxDraw = hi
	}
	if maxDraw <= minGrabCents {
		return minGrabCents
	}

	amount := minGrabCents + rng.Int63n(maxDraw-minGrabCents)

	// 边界保护
	if amount < minGrabCents {
		amount = minGrabCents
	}
	if hi := remainAmount - (n-1)*minGrabCents; amount > hi {
		amount = hi
	}
	return amount
}
