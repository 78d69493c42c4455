package logging

import (
	"math"
	"strings"
	"testing"
)

func TestFormatMetric(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		decimals int
		want     string
	}{
		{"zero", 0.0, 2, "0.00"},
		{"positive", 3.14159, 2, "3.14"},
		{"negative", -16.5, 1, "-16.5"},
		{"large", 12345.6789, 2, "12345.68"},
		{"small_normal", 0.001, 3, "0.001"},
		{"very_small_scientific", 0.00001, 2, "1.00e-05"},
		{"nan", math.NaN(), 2, MissingValue},
		{"inf", math.Inf(1), 2, MissingValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatMetric(tt.value, tt.decimals)
			if got != tt.want {
				t.Errorf("formatMetric(%v, %d) = %q, want %q", tt.value, tt.decimals, got, tt.want)
			}
		})
	}
}

func TestMetricTableStringAlignsColumns(t *testing.T) {
	table := &MetricTable{Headers: []string{"Track A", "Track B"}}
	table.AddRow("BPM", []string{"124.0", "126.0"}, "", "")
	table.AddRow("Key", []string{"8A", "9A"}, "", "")

	out := table.String()
	if out == "" {
		t.Fatal("expected non-empty table output")
	}
	if !containsAll(out, "BPM", "124.0", "126.0", "Key", "8A", "9A") {
		t.Fatalf("table output missing expected content: %q", out)
	}
}

func TestMetricTableEmptyRowsRendersEmpty(t *testing.T) {
	table := &MetricTable{Headers: []string{"Track A", "Track B"}}
	if table.String() != "" {
		t.Fatal("expected empty string for a table with no rows")
	}
}

func containsAll(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
