package quiz

import "testing"

func TestPrizeLadderStrictlyIncreasing(t *testing.T) {
	for i := 1; i < Steps; i++ {
		if PrizeLadder[i] <= PrizeLadder[i-1] {
			t.Fatalf("ladder not increasing at %d: %d <= %d", i, PrizeLadder[i], PrizeLadder[i-1])
		}
	}
}

func TestSafePayout(t *testing.T) {
	cases := []struct {
		position int
		want     int64
	}{
		{0, 0},
		{3, 0},
		{4, 0},       // safe zone question not answered yet
		{5, 7500},    // passed tier 5
		{6, 7500},    // loss at position 6 keeps the tier-5 prize
		{9, 7500},
		{10, 250000}, // passed tier 10
		{14, 250000},
	}
	for _, tc := range cases {
		if got := SafePayout(tc.position); got != tc.want {
			t.Fatalf("SafePayout(%d) = %d; want %d", tc.position, got, tc.want)
		}
	}
}

func TestWithdrawPayout(t *testing.T) {
	if got := WithdrawPayout(0); got != 0 {
		t.Fatalf("WithdrawPayout(0) = %d; want 0", got)
	}
	for p := 1; p < Steps; p++ {
		if got := WithdrawPayout(p); got != PrizeLadder[p-1] {
			t.Fatalf("WithdrawPayout(%d) = %d; want %d", p, got, PrizeLadder[p-1])
		}
	}
}

func TestIsSafeZone(t *testing.T) {
	for p := 0; p < Steps; p++ {
		want := p == 4 || p == 9
		if IsSafeZone(p) != want {
			t.Fatalf("IsSafeZone(%d) = %v; want %v", p, IsSafeZone(p), want)
		}
	}
}
