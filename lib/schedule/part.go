// Copyright 2026 The Gemstone Authors
// SPDX-License-Identifier: Apache-2.0

package schedule

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// TimeUnit identifies which component of a timestamp a rule field
// constrains.
type TimeUnit int

const (
	UnitMinute TimeUnit = iota
	UnitHour
	UnitDay
	UnitMonth
	UnitDayOfWeek
)

// String returns the lowercase unit name used in error messages and
// descriptions.
func (u TimeUnit) String() string {
	switch u {
	case UnitMinute:
		return "minute"
	case UnitHour:
		return "hour"
	case UnitDay:
		return "day"
	case UnitMonth:
		return "month"
	case UnitDayOfWeek:
		return "day-of-week"
	}
	return fmt.Sprintf("TimeUnit(%d)", int(u))
}

// bounds returns the legal value range for the unit. ok is false for
// values outside the enum.
func (u TimeUnit) bounds() (minValue, maxValue int, ok bool) {
	switch u {
	case UnitMinute:
		return 0, 59, true
	case UnitHour:
		return 0, 23, true
	case UnitDay:
		return 1, 31, true
	case UnitMonth:
		return 1, 12, true
	case UnitDayOfWeek:
		return 0, 6, true
	}
	return 0, 0, false
}

// Syntax classifies the textual form of a rule field.
type Syntax int

const (
	// SyntaxAny is the bare wildcard: *
	SyntaxAny Syntax = iota
	// SyntaxEveryN is a stepped wildcard: */15
	SyntaxEveryN
	// SyntaxRange is an inclusive range: 9-17
	SyntaxRange
	// SyntaxSpecific is a comma-separated value list: 1,15,30
	SyntaxSpecific
	// SyntaxRangeWithEveryN is a stepped range: 0-30/5
	SyntaxRangeWithEveryN
)

// String returns a short name for the syntax kind.
func (s Syntax) String() string {
	switch s {
	case SyntaxAny:
		return "any"
	case SyntaxEveryN:
		return "every-n"
	case SyntaxRange:
		return "range"
	case SyntaxSpecific:
		return "specific"
	case SyntaxRangeWithEveryN:
		return "range-with-every-n"
	}
	return fmt.Sprintf("Syntax(%d)", int(s))
}

// Part is one parsed field of a 5-field rule: the set of legal integer
// values for a single time unit. A Part is immutable after
// construction and always holds at least one value.
//
// Value normalization is deliberately quirky and kept for rule-text
// compatibility: range high bounds, wildcard steps, and listed values
// reduce modulo the unit's maximum (not maximum+1) before the range
// check. "60" in a minute field therefore parses as 1, and "0-59"
// is rejected because 59 wraps to 0.
type Part struct {
	text        string
	unit        TimeUnit
	syntax      Syntax
	values      []int
	description string
}

// NewPart parses one rule field for the given unit. The full text must
// conform to exactly one of the five syntaxes; a field whose shape
// matches a syntax but whose numbers fail its range checks is an error,
// not a candidate for the remaining syntaxes.
func NewPart(text string, unit TimeUnit) (*Part, error) {
	minValue, maxValue, ok := unit.bounds()
	if !ok {
		return nil, fmt.Errorf("schedule: unknown time unit %d", int(unit))
	}

	part := &Part{text: text, unit: unit}

	switch {
	case text == "*":
		part.syntax = SyntaxAny
		for v := minValue; v <= maxValue; v++ {
			part.values = append(part.values, v)
		}
		part.description = fmt.Sprintf("every %s", unit)

	case isRangeWithStep(text):
		part.syntax = SyntaxRangeWithEveryN
		low, high, step := splitRangeWithStep(text)
		high %= maxValue
		if low >= high || low < minValue || high > maxValue || step <= 0 || step > maxValue {
			return nil, rangeError(unit, text)
		}
		for v := low; v <= high; v += step {
			part.values = append(part.values, v)
		}
		part.description = fmt.Sprintf("%s %d to %d every %d", unit, low, high, step)

	case isEveryN(text):
		part.syntax = SyntaxEveryN
		step := mustAtoi(text[len("*/"):]) % maxValue
		if step <= 0 || step > maxValue {
			return nil, rangeError(unit, text)
		}
		for v := minValue; v <= maxValue; v += step {
			part.values = append(part.values, v)
		}
		part.description = fmt.Sprintf("every %d %s(s)", step, unit)

	case isRange(text):
		part.syntax = SyntaxRange
		lowText, highText, _ := strings.Cut(text, "-")
		low, high := mustAtoi(lowText), mustAtoi(highText)%maxValue
		if low >= high || low < minValue || high > maxValue {
			return nil, rangeError(unit, text)
		}
		for v := low; v <= high; v++ {
			part.values = append(part.values, v)
		}
		part.description = fmt.Sprintf("%s %d to %d", unit, low, high)

	default:
		part.syntax = SyntaxSpecific
		seen := make(map[int]bool)
		for _, token := range strings.Split(text, ",") {
			if !isDigits(token) {
				return nil, fmt.Errorf("schedule: %s field %q: unrecognized syntax", unit, text)
			}
			v := mustAtoi(token) % maxValue
			if v < minValue || v > maxValue {
				return nil, rangeError(unit, text)
			}
			if !seen[v] {
				seen[v] = true
				part.values = append(part.values, v)
			}
		}
		part.description = fmt.Sprintf("%s %s", unit, joinValues(part.values))
	}

	return part, nil
}

func rangeError(unit TimeUnit, text string) error {
	return fmt.Errorf("schedule: %s field %q: value out of range", unit, text)
}

// Text returns the original field text.
func (p *Part) Text() string { return p.text }

// Unit returns the time unit this field constrains.
func (p *Part) Unit() TimeUnit { return p.unit }

// Syntax returns the classified syntax kind.
func (p *Part) Syntax() Syntax { return p.syntax }

// Values returns a copy of the legal values, in insertion order.
func (p *Part) Values() []int { return slices.Clone(p.values) }

// Describe returns a human-readable summary of the field.
func (p *Part) Describe() string { return p.description }

// Matches reports whether the timestamp's component for this unit is
// one of the field's legal values. Day-of-week follows time.Weekday:
// 0 is Sunday through 6 is Saturday.
func (p *Part) Matches(t time.Time) bool {
	var component int
	switch p.unit {
	case UnitMinute:
		component = t.Minute()
	case UnitHour:
		component = t.Hour()
	case UnitDay:
		component = t.Day()
	case UnitMonth:
		component = int(t.Month())
	case UnitDayOfWeek:
		component = int(t.Weekday())
	default:
		return false
	}
	return slices.Contains(p.values, component)
}

// isDigits reports whether s is one or more ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isRangeWithStep reports whether text has the shape <low>-<high>/<step>.
func isRangeWithStep(text string) bool {
	base, step, found := strings.Cut(text, "/")
	if !found || !isDigits(step) {
		return false
	}
	low, high, dashed := strings.Cut(base, "-")
	return dashed && isDigits(low) && isDigits(high)
}

// isEveryN reports whether text has the shape */<step>.
func isEveryN(text string) bool {
	step, found := strings.CutPrefix(text, "*/")
	return found && isDigits(step)
}

// isRange reports whether text has the shape <low>-<high>.
func isRange(text string) bool {
	low, high, dashed := strings.Cut(text, "-")
	return dashed && isDigits(low) && isDigits(high)
}

func splitRangeWithStep(text string) (low, high, step int) {
	base, stepText, _ := strings.Cut(text, "/")
	lowText, highText, _ := strings.Cut(base, "-")
	return mustAtoi(lowText), mustAtoi(highText), mustAtoi(stepText)
}

// mustAtoi converts a digits-only string checked by isDigits. Values
// too large for int saturate rather than panic; they fail the range
// checks anyway.
func mustAtoi(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return v
}

func joinValues(values []int) string {
	texts := make([]string, len(values))
	for i, v := range values {
		texts[i] = strconv.Itoa(v)
	}
	return strings.Join(texts, ",")
}
