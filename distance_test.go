package em3071x

import "testing"

func TestComputeDistance_Scenarios(t *testing.T) {
	tests := []struct {
		name string
		raw  uint8
		want Distance
	}{
		{"below low", 5, 255},
		{"above high", 205, 0},
		{"between", 100, 155},
		{"at low", 10, 255},
		{"at high", 200, 0},
		{"just above low", 11, 244},
		{"just below high", 199, 56},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeDistance(tt.raw, 10, 200); got != tt.want {
				t.Fatalf("ComputeDistance(%d, 10, 200) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestComputeDistance_AllRaw(t *testing.T) {
	const lo, hi = 40, 180

	for r := 0; r <= 255; r++ {
		raw := uint8(r)
		got := ComputeDistance(raw, lo, hi)

		switch {
		case r >= hi:
			if got != 0 {
				t.Fatalf("raw %d: got %d, want 0", r, got)
			}
		case r <= lo:
			if got != 255 {
				t.Fatalf("raw %d: got %d, want 255", r, got)
			}
		default:
			if got != Distance(255-raw) {
				t.Fatalf("raw %d: got %d, want %d", r, got, 255-r)
			}
		}
	}
}

func TestComputeDistance_HighAboveByteRange(t *testing.T) {
	// no raw value can reach the high threshold
	if got := ComputeDistance(255, 10, 300); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
	if got := ComputeDistance(254, 10, 300); got != 1 {
		t.Fatalf("got %d, want 1", got)
	}
}

func TestComputeDistance_OutOfOrderThresholds(t *testing.T) {
	// high is checked first so everything at or above it reads far
	if got := ComputeDistance(50, 200, 10); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
	if got := ComputeDistance(5, 200, 10); got != 255 {
		t.Fatalf("got %d, want 255", got)
	}
}
