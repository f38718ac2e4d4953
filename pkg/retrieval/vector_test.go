package retrieval

import (
	"math"
	"testing"
)

func TestCoerceVector(t *testing.T) {
	tests := []struct {
		name   string
		raw    interface{}
		want   []float32
		wantOk bool
	}{
		{"float32 slice", []float32{0.1, 0.2}, []float32{0.1, 0.2}, true},
		{"float64 slice", []float64{0.5, 1.0}, []float32{0.5, 1.0}, true},
		{"interface slice", []interface{}{0.25, 0.75}, []float32{0.25, 0.75}, true},
		{"json string literal", "[0.5, 1.5, -2]", []float32{0.5, 1.5, -2}, true},
		{"string with whitespace", "  [1, 2]  ", []float32{1, 2}, true},
		{"nil", nil, nil, false},
		{"empty float32 slice", []float32{}, nil, false},
		{"empty string literal", "[]", nil, false},
		{"interface slice with junk", []interface{}{0.1, "x"}, nil, false},
		{"not a vector string", "hello", nil, false},
		{"unsupported type", 42, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CoerceVector(tt.raw)
			if ok != tt.wantOk {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOk)
			}
			if !ok {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if math.Abs(float64(got[i]-tt.want[i])) > 1e-6 {
					t.Errorf("got[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 0}, []float32{1, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"zero norm scores zero", []float32{0, 0}, []float32{1, 0}, 0},
		{"dimension mismatch scores zero", []float32{1, 0}, []float32{1, 0, 0}, 0},
		{"empty scores zero", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CosineSimilarity = %v, want %v", got, tt.want)
			}
		})
	}
}
