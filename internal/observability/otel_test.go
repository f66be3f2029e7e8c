package observability

import "testing"

func TestSampleRatio_ClampedToUnitInterval(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"0.5", 0.5},
		{"-1", 0},
		{"7", 1},
		{"not a number", 0.1},
		{"", 0.1},
	}
	for _, tc := range cases {
		t.Setenv("OTEL_SAMPLER_RATIO", tc.raw)
		if got := sampleRatio(); got != tc.want {
			t.Fatalf("sampleRatio(%q): got %v want %v", tc.raw, got, tc.want)
		}
	}
}
