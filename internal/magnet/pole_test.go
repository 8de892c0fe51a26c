package magnet

import "testing"

func TestParseCharge(t *testing.T) {
	tests := []struct {
		in       string
		expected Charge
		wantErr  bool
	}{
		{"+", Positive, false},
		{"positive", Positive, false},
		{"-", Negative, false},
		{"neg", Negative, false},
		{"north", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseCharge(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCharge(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.expected {
			t.Errorf("ParseCharge(%q) = %v, expected %v", tt.in, got, tt.expected)
		}
	}
}

func TestParsePoleKind(t *testing.T) {
	for _, k := range []PoleKind{PoleStandard, PoleSuper, PoleWeak, PoleTimed} {
		got, err := ParsePoleKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParsePoleKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if got, err := ParsePoleKind(""); err != nil || got != PoleStandard {
		t.Errorf("ParsePoleKind(\"\") = %v, %v, expected standard", got, err)
	}
	if _, err := ParsePoleKind("mega"); err == nil {
		t.Error("ParsePoleKind(\"mega\") should fail")
	}
}
