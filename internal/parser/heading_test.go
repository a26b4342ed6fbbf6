package parser

import "testing"

func TestDetectHeading(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{"1. Introduction", 1},
		{"1 Introduction", 1},
		{"3.2 Network Design", 2},
		{"3.2.1. Core Switches", 3},
		{"EXECUTIVE SUMMARY", 2},
		{"Background:", 2},
		{"1. The vendor shall supply all hardware.", 0},
		{"The vendor shall supply all hardware", 0},
		{"OK", 0},
		{"THIS LINE HAS FAR TOO MANY WORDS TO BE A HEADING", 0},
		{"", 0},
		{"line one\nline two", 0},
	}
	for _, tt := range tests {
		if got := DetectHeading(tt.line); got != tt.want {
			t.Errorf("DetectHeading(%q) = %d, want %d", tt.line, got, tt.want)
		}
	}
}

func TestStripNumbering(t *testing.T) {
	tests := map[string]string{
		"1. Introduction":     "Introduction",
		"  4.2.1 Data Plan  ": "Data Plan",
		"Budget":              "Budget",
	}
	for in, want := range tests {
		if got := StripNumbering(in); got != want {
			t.Errorf("StripNumbering(%q) = %q, want %q", in, got, want)
		}
	}
}
