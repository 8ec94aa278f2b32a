package core

import (
	"encoding/json"
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"1000", 100000, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"0", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{70000, "700.00"},
		{123, "1.23"},
		{5, "0.05"},
		{0, "0.00"},
		{-1250, "-12.50"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Fatalf("cents %d expected %q, got %q", tc.cents, tc.want, got)
		}
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(Money{Cents: 30050})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "300.50" {
		t.Fatalf("expected 300.50, got %s", data)
	}

	var m Money
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m.Cents != 30050 {
		t.Fatalf("expected 30050 cents, got %d", m.Cents)
	}
}

func TestMoneyUnmarshalLegacyForms(t *testing.T) {
	// Older backups store bare numbers and sometimes quoted strings.
	cases := []struct {
		in    string
		cents int64
	}{
		{"3000", 300000},
		{"45.5", 4550},
		{`"800"`, 80000},
		{"0", 0},
	}
	for _, tc := range cases {
		var m Money
		if err := json.Unmarshal([]byte(tc.in), &m); err != nil {
			t.Fatalf("%q unmarshal: %v", tc.in, err)
		}
		if m.Cents != tc.cents {
			t.Fatalf("%q expected %d cents, got %d", tc.in, tc.cents, m.Cents)
		}
	}
}
