// Copyright 2026 The Gemstone Authors
// SPDX-License-Identifier: Apache-2.0

package schedule

import (
	"slices"
	"testing"
	"time"
)

func mustPart(t *testing.T, text string, unit TimeUnit) *Part {
	t.Helper()
	part, err := NewPart(text, unit)
	if err != nil {
		t.Fatalf("NewPart(%q, %v): %v", text, unit, err)
	}
	return part
}

func TestPartValueSets(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		unit   TimeUnit
		syntax Syntax
		want   []int
	}{
		{"any_dow", "*", UnitDayOfWeek, SyntaxAny, []int{0, 1, 2, 3, 4, 5, 6}},
		{"any_month", "*", UnitMonth, SyntaxAny, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}},
		{"every_15_minute", "*/15", UnitMinute, SyntaxEveryN, []int{0, 15, 30, 45}},
		{"every_6_hour", "*/6", UnitHour, SyntaxEveryN, []int{0, 6, 12, 18}},
		{"every_n_from_unit_minimum", "*/10", UnitDay, SyntaxEveryN, []int{1, 11, 21, 31}},
		{"hour_range", "9-17", UnitHour, SyntaxRange, []int{9, 10, 11, 12, 13, 14, 15, 16, 17}},
		{"weekday_range", "1-5", UnitDayOfWeek, SyntaxRange, []int{1, 2, 3, 4, 5}},
		{"stepped_range", "0-30/5", UnitMinute, SyntaxRangeWithEveryN, []int{0, 5, 10, 15, 20, 25, 30}},
		{"stepped_range_short_of_high", "1-10/3", UnitMinute, SyntaxRangeWithEveryN, []int{1, 4, 7, 10}},
		{"specific_list", "1,15,30", UnitMinute, SyntaxSpecific, []int{1, 15, 30}},
		{"specific_single", "5", UnitMinute, SyntaxSpecific, []int{5}},
		{"specific_duplicates_collapse", "5,5,10,5", UnitMinute, SyntaxSpecific, []int{5, 10}},
		// Normalization reduces modulo the unit maximum: 60 mod 59.
		{"specific_wraps_past_maximum", "60", UnitMinute, SyntaxSpecific, []int{1}},
		// A range high bound equal to the maximum wraps too: 23 mod 23.
		{"range_high_wraps", "0-25", UnitHour, SyntaxRange, []int{0, 1, 2}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			part := mustPart(t, test.text, test.unit)
			if part.Syntax() != test.syntax {
				t.Errorf("Syntax = %v, want %v", part.Syntax(), test.syntax)
			}
			if got := part.Values(); !slices.Equal(got, test.want) {
				t.Errorf("Values = %v, want %v", got, test.want)
			}
			if part.Text() != test.text {
				t.Errorf("Text = %q, want %q", part.Text(), test.text)
			}
		})
	}
}

func TestPartInvalid(t *testing.T) {
	tests := []struct {
		name string
		text string
		unit TimeUnit
	}{
		{"empty", "", UnitMinute},
		{"letters", "abc", UnitMinute},
		{"list_with_letter", "1,2,a", UnitMinute},
		{"trailing_comma", "1,2,", UnitMinute},
		{"range_low_equals_high", "5-5", UnitMinute},
		{"range_low_above_high", "9-3", UnitHour},
		{"step_zero", "*/0", UnitMinute},
		// 59 mod 59 wraps the step to zero.
		{"step_wraps_to_zero", "*/59", UnitMinute},
		{"stepped_range_step_zero", "1-10/0", UnitMinute},
		// Day values normalize below the unit minimum: 0 and 31 mod 31.
		{"day_zero", "0", UnitDay},
		{"day_31_wraps_below_minimum", "31", UnitDay},
		// 59 wraps to 0, so low 0 is no longer below high.
		{"full_minute_range_wraps", "0-59", UnitMinute},
		{"negative", "-5", UnitMinute},
		{"spaces", "1, 2", UnitMinute},
		{"double_step", "1-5/2/3", UnitMinute},
		{"star_in_list", "*,5", UnitMinute},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if part, err := NewPart(test.text, test.unit); err == nil {
				t.Errorf("NewPart(%q, %v) = %v, want error", test.text, test.unit, part.Values())
			}
		})
	}
}

func TestPartValuesNeverEmpty(t *testing.T) {
	// Any successfully constructed part carries at least one value.
	texts := []string{"*", "*/15", "9-17", "0-30/5", "0", "1,2,3"}
	for _, text := range texts {
		part := mustPart(t, text, UnitMinute)
		if len(part.Values()) == 0 {
			t.Errorf("NewPart(%q): empty value set", text)
		}
	}
}

func TestPartValuesIsACopy(t *testing.T) {
	part := mustPart(t, "1,2,3", UnitMinute)
	values := part.Values()
	values[0] = 99
	if got := part.Values(); got[0] != 1 {
		t.Errorf("mutating the returned slice changed the part: %v", got)
	}
}

func TestPartMatches(t *testing.T) {
	// 2026-03-04 is a Wednesday (weekday 3).
	moment := time.Date(2026, time.March, 4, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		text  string
		unit  TimeUnit
		match bool
	}{
		{"minute_hit", "30", UnitMinute, true},
		{"minute_miss", "29", UnitMinute, false},
		{"hour_hit", "9-17", UnitHour, true},
		{"hour_miss", "15-20", UnitHour, false},
		{"day_hit", "*/3", UnitDay, true}, // 1,4,7,...
		{"day_miss", "5", UnitDay, false},
		{"month_hit", "3", UnitMonth, true},
		{"month_miss", "4", UnitMonth, false},
		{"dow_hit", "1-5", UnitDayOfWeek, true},
		{"dow_miss", "0,6", UnitDayOfWeek, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			part := mustPart(t, test.text, test.unit)
			if got := part.Matches(moment); got != test.match {
				t.Errorf("Matches(%v) = %v, want %v", moment, got, test.match)
			}
		})
	}
}

func TestPartMatchesUnknownUnit(t *testing.T) {
	part := &Part{unit: TimeUnit(42), values: []int{0, 1, 2, 3}}
	if part.Matches(time.Now()) {
		t.Error("Matches returned true for a unit outside the enum")
	}
}

func TestPartDescribeDistinguishesSyntaxes(t *testing.T) {
	descriptions := map[string]string{}
	for _, text := range []string{"*", "*/15", "9-17", "0-30/5", "1,15,30"} {
		part := mustPart(t, text, UnitHour)
		description := part.Describe()
		if description == "" {
			t.Errorf("Describe(%q) is empty", text)
		}
		if prior, ok := descriptions[description]; ok {
			t.Errorf("Describe(%q) == Describe(%q): %q", text, prior, description)
		}
		descriptions[description] = text
	}
}

func TestNewPartUnknownUnit(t *testing.T) {
	if _, err := NewPart("*", TimeUnit(42)); err == nil {
		t.Error("NewPart with an unknown unit succeeded")
	}
}
