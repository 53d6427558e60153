package service

import "testing"

// 按序模拟一整个红包被抢完，校验每一步的边界和最终守恒
func drainPacket(t *testing.T, total int64, num int, seed int64) []int64 {
	t.Helper()
	rng := newLockedRand(seed)

	remain := total
	amounts := make([]int64, 0, num)
	for i := num; i >= 1; i-- {
		got := splitAmount(remain, i, rng)
		if got < minGrabCents {
			t.Fatalf("draw %d: amount=%d below minimum", num-i+1, got)
		}
		// 剩下的每个人至少还能分到 1 分
		if rest := remain - got; rest < int64(i-1)*minGrabCents {
			t.Fatalf("draw %d: amount=%d leaves %d for %d claimants", num-i+1, got, rest, i-1)
		}
		remain -= got
		amounts = append(amounts, got)
	}
	if remain != 0 {
		t.Fatalf("expected zero remainder, got %d", remain)
	}
	return amounts
}

func TestSplitAmountConservation(t *testing.T) {
	cases := []struct {
		name  string
		total int64 // 分
		num   int
	}{
		{"ten yuan five people", 1000, 5},
		{"one fen one person", 1, 1},
		{"exact minimum per person", 5, 5},
		{"large packet", 20000, 100},
		{"two people", 200, 2},
		{"six fen five people", 6, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for seed := int64(1); seed <= 20; seed++ {
				amounts := drainPacket(t, tc.total, tc.num, seed)
				if len(amounts) != tc.num {
					t.Fatalf("expected %d amounts, got %d", tc.num, len(amounts))
				}
			}
		})
	}
}

// 总金额恰好等于人数时每个人都只能拿 1 分
func TestSplitAmountFloor(t *testing.T) {
	rng := newLockedRand(42)
	remain := int64(5)
	for i := 5; i > 1; i-- {
		got := splitAmount(remain, i, rng)
		if got != minGrabCents {
			t.Fatalf("remain=%d num=%d: expected %d, got %d", remain, i, minGrabCents, got)
		}
		remain -= got
	}
	if got := splitAmount(remain, 1, rng); got != 1 {
		t.Fatalf("last claimant should take remainder 1, got %d", got)
	}
}

func TestSplitAmountLastTakesAll(t *testing.T) {
	rng := newLockedRand(7)
	if got := splitAmount(377, 1, rng); got != 377 {
		t.Fatalf("last claimant should take all 377, got %d", got)
	}
}

// 上限不超过剩余均值的两倍
func TestSplitAmountDoubleAverageCap(t *testing.T) {
	rng := newLockedRand(99)
	for i := 0; i < 1000; i++ {
		remain, num := int64(10000), 10
		got := splitAmount(remain, num, rng)
		limit := (remain / int64(num)) * 2
		if got > limit {
			t.Fatalf("amount %d exceeds double average cap %d", got, limit)
		}
	}
}
