package models

import "testing"

func TestNumericScanCoercions(t *testing.T) {
	cases := []struct {
		in   interface{}
		want float64
	}{
		{nil, 0},
		{float64(12.5), 12.5},
		{int64(300), 300},
		{[]byte("240000.50"), 240000.5},
		{"75.0000", 75},
	}

	for _, c := range cases {
		var n Numeric
		if err := n.Scan(c.in); err != nil {
			t.Fatalf("Scan(%v): %v", c.in, err)
		}
		if n.Float64() != c.want {
			t.Errorf("Scan(%v) = %v, want %v", c.in, n, c.want)
		}
	}
}

func TestNumericScanRejectsGarbage(t *testing.T) {
	var n Numeric
	if err := n.Scan([]byte("twelve")); err == nil {
		t.Fatalf("expected error scanning non-numeric bytes")
	}
	if err := n.Scan(struct{}{}); err == nil {
		t.Fatalf("expected error scanning unsupported type")
	}
}
