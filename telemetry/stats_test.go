package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeDistStats(t *testing.T) {
	values := []float64{100, 20, 30, 40, 50, 60, 70, 80, 90, 10}
	mean, p10, p50, p90 := ComputeDistStats(values)

	if math.Abs(mean-55) > 1e-9 {
		t.Errorf("mean = %v, want 55", mean)
	}
	if math.Abs(p10-19) > 1e-9 {
		t.Errorf("p10 = %v, want 19", p10)
	}
	if math.Abs(p50-55) > 1e-9 {
		t.Errorf("p50 = %v, want 55", p50)
	}
	if math.Abs(p90-91) > 1e-9 {
		t.Errorf("p90 = %v, want 91", p90)
	}
	if values[0] != 100 {
		t.Error("ComputeDistStats sorted the caller's slice")
	}
}

func TestComputeMeanStd(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		mean     float64
		std      float64
	}{
		{"empty", nil, 0, 0},
		{"single", []float64{3}, 3, 0},
		{"constant", []float64{2, 2, 2}, 2, 0},
		{"spread", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std := ComputeMeanStd(tt.values)
			if math.Abs(mean-tt.mean) > 1e-9 || math.Abs(std-tt.std) > 1e-9 {
				t.Errorf("ComputeMeanStd(%v) = (%v, %v), want (%v, %v)", tt.values, mean, std, tt.mean, tt.std)
			}
		})
	}
}
