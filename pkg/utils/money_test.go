package utils

import "testing"

func TestToCents(t *testing.T) {
	cases := []struct {
		yuan float64
		want int64
	}{
		{0.01, 1},
		{0.03, 3},
		{10.00, 1000},
		{0.1, 10},
		{19.99, 1999},
		{100.005, 10001}, // 四舍五入
	}

	for _, c := range cases {
		if got := ToCents(c.yuan); got != c.want {
			t.Errorf("ToCents(%v) = %d, want %d", c.yuan, got, c.want)
		}
	}
}

func TestToYuanRoundTrip(t *testing.T) {
	for cents := int64(1); cents <= 10000; cents++ {
		if got := ToCents(ToYuan(cents)); got != cents {
			t.Fatalf("round trip failed at %d cents: got %d", cents, got)
		}
	}
}
