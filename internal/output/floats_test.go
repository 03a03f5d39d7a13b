package output

import "testing"

func TestRoundFloat(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"integer", 42, 42},
		{"short fraction kept", 0.5, 0.5},
		{"rounds down", 0.1234564, 0.123456},
		{"rounds up", 0.1234567, 0.123457},
		{"negative", -0.1234567, -0.123457},
		{"tiny underflows to zero", 0.0000001, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundFloat(tt.in); got != tt.want {
				t.Errorf("RoundFloat(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"zero", 0, "0"},
		{"integer", 3, "3"},
		{"trailing zeros trimmed", 0.5, "0.5"},
		{"six places", 0.123456, "0.123456"},
		{"rounded then trimmed", 0.1000004, "0.1"},
		{"negative", -2.25, "-2.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatFloat(tt.in); got != tt.want {
				t.Errorf("FormatFloat(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRoundVector(t *testing.T) {
	in := [4]float64{0.1234567, 1, 0, 0.9999999}
	want := [4]float64{0.123457, 1, 0, 1}

	if got := roundVector(in); got != want {
		t.Errorf("roundVector(%v) = %v, want %v", in, got, want)
	}
}
