package cmsdkuart

import "testing"

func TestBauddivRounding(t *testing.T) {
	cases := []struct {
		clk, baud uint32
		want      uint32
		ok        bool
	}{
		{48_000_000, 115200, 417, true}, // 416.67 rounds up
		{96_000_000, 115200, 833, true}, // 833.33 rounds down
		{48_000_000, 921600, 52, true},  // 52.08 rounds down
		{50_000_000, 1_562_500, 32, true},
		{1_843_200, 115200, 16, true}, // exact, at the oversampler bound
		{33, 2, 17, true},             // 16.5: tie rounds up
		{4_700, 200, 24, true},        // 23.5: tie rounds up
		{31, 2, 16, true},             // 15.5 rounds up into the valid range
		{0xFFFFF, 1, 0xFFFFF, true},   // register maximum

		{48_000_000, 0, 0, false},     // zero rate
		{0, 115200, 0, false},         // zero clock yields divisor 0
		{48_000_000, 4_000_000, 0, false}, // divisor 12, below the oversampler
		{30, 2, 0, false},             // divisor 15
		{0x100000, 1, 0, false},       // one past the register maximum
		{2_097_151, 2, 0, false},      // 1048575.5 ties up past the maximum
		{0xFFFFFFFF, 1, 0, false},     // far out of range, no overflow
	}
	for _, c := range cases {
		got, ok := bauddivFor(c.clk, c.baud)
		if ok != c.ok || got != c.want {
			t.Errorf("bauddivFor(%d, %d) = %d, %v; want %d, %v",
				c.clk, c.baud, got, ok, c.want, c.ok)
		}
	}
}
