package models

import "testing"

func TestCalculateTvaPerct(t *testing.T) {
	cases := []struct {
		name     string
		ht       string
		ttc      string
		expected string
	}{
		{"standard rate", "100", "120", "20"},
		{"reduced rate", "100", "110", "10"},
		{"restaurant rate", "200", "220", "10"},
		{"no tax", "100", "100", "0"},
		{"zero net amount", "0", "120", "0"},
		{"rounded rate", "92.59", "100", "8.0030"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculateTvaPerct(d(tc.ht), d(tc.ttc))
			if !got.Equal(d(tc.expected)) {
				t.Fatalf("tva_perct expected %s, got %s", tc.expected, got)
			}
		})
	}
}
