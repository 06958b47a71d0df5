// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cron

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// field is one parsed cron field: a set of permitted values plus a
// flag recording whether the field was written as a bare "*". The
// flag matters only for the day fields, where standard cron gives
// restricted day-of-month and day-of-week OR semantics but treats a
// wildcard as unrestricted.
type field struct {
	allowed  uint64
	wildcard bool
}

func (f field) contains(value int) bool {
	return f.allowed&(1<<uint(value)) != 0
}

// fieldSpec describes the position and value range of one cron field.
type fieldSpec struct {
	name string
	min  int
	max  int
}

// fieldSpecs lists the five fields in expression order. Day-of-week
// admits 7 as an alias for Sunday, normalized during parsing.
var fieldSpecs = [5]fieldSpec{
	{name: "minute", min: 0, max: 59},
	{name: "hour", min: 0, max: 23},
	{name: "day-of-month", min: 1, max: 31},
	{name: "month", min: 1, max: 12},
	{name: "day-of-week", min: 0, max: 7},
}

// Schedule is a parsed 5-field cron expression. The zero value
// matches nothing; obtain one through Parse.
type Schedule struct {
	minute     field
	hour       field
	dayOfMonth field
	month      field
	dayOfWeek  field
}

// Parse parses a standard 5-field cron expression
// (minute hour day-of-month month day-of-week). Day-of-week accepts
// both 0 and 7 for Sunday.
func Parse(expression string) (Schedule, error) {
	parts := strings.Fields(expression)
	if len(parts) != len(fieldSpecs) {
		return Schedule{}, fmt.Errorf("cron: %q has %d fields, want %d", expression, len(parts), len(fieldSpecs))
	}

	var fields [5]field
	for i, spec := range fieldSpecs {
		parsed, err := parseField(parts[i], spec)
		if err != nil {
			return Schedule{}, fmt.Errorf("cron: %s field: %w", spec.name, err)
		}
		fields[i] = parsed
	}

	// Fold day-of-week 7 into 0 so the match test only ever looks at
	// Go's Weekday range.
	if fields[4].contains(7) {
		fields[4].allowed |= 1
		fields[4].allowed &^= 1 << 7
	}

	return Schedule{
		minute:     fields[0],
		hour:       fields[1],
		dayOfMonth: fields[2],
		month:      fields[3],
		dayOfWeek:  fields[4],
	}, nil
}

// parseField parses one comma-separated field against its spec.
func parseField(text string, spec fieldSpec) (field, error) {
	var result field
	for _, term := range strings.Split(text, ",") {
		if err := applyTerm(&result, term, spec); err != nil {
			return field{}, err
		}
	}
	if result.allowed == 0 {
		return field{}, fmt.Errorf("%q selects no values", text)
	}
	return result, nil
}

// applyTerm merges one term (*, */N, V, V-W, or V-W/N) into the field.
func applyTerm(result *field, term string, spec fieldSpec) error {
	body, stepText, hasStep := strings.Cut(term, "/")

	step := 1
	if hasStep {
		parsed, err := strconv.Atoi(stepText)
		if err != nil || parsed < 1 {
			return fmt.Errorf("bad step in %q", term)
		}
		step = parsed
	}

	lo, hi := spec.min, spec.max
	switch {
	case body == "*":
		if !hasStep {
			result.wildcard = true
		}
	case strings.Contains(body, "-"):
		loText, hiText, _ := strings.Cut(body, "-")
		var err error
		if lo, err = strconv.Atoi(loText); err != nil {
			return fmt.Errorf("bad range start in %q", term)
		}
		if hi, err = strconv.Atoi(hiText); err != nil {
			return fmt.Errorf("bad range end in %q", term)
		}
		if lo > hi {
			return fmt.Errorf("range %q runs backwards", term)
		}
	default:
		value, err := strconv.Atoi(body)
		if err != nil {
			return fmt.Errorf("bad value %q", term)
		}
		lo, hi = value, value
	}

	if lo < spec.min || hi > spec.max {
		return fmt.Errorf("%q outside %d-%d", term, spec.min, spec.max)
	}

	for value := lo; value <= hi; value += step {
		result.allowed |= 1 << uint(value)
	}
	return nil
}

// nextHorizon bounds the search in Next. Five years clears every
// leap-year alignment; a schedule with no occurrence inside it (say
// "0 0 30 2 *") has none at all.
const nextHorizon = 5

// Next returns the earliest time strictly after t at which the
// schedule fires. Evaluation is in UTC. An error means the schedule
// can never fire.
func (s Schedule) Next(t time.Time) (time.Time, error) {
	candidate := t.UTC().Truncate(time.Minute).Add(time.Minute)
	horizon := candidate.AddDate(nextHorizon, 0, 0)

	for candidate.Before(horizon) {
		if !s.month.contains(int(candidate.Month())) {
			candidate = time.Date(candidate.Year(), candidate.Month()+1, 1, 0, 0, 0, 0, time.UTC)
			continue
		}
		if !s.dayMatches(candidate) {
			candidate = time.Date(candidate.Year(), candidate.Month(), candidate.Day()+1, 0, 0, 0, 0, time.UTC)
			continue
		}
		if !s.hour.contains(candidate.Hour()) {
			candidate = time.Date(candidate.Year(), candidate.Month(), candidate.Day(), candidate.Hour()+1, 0, 0, 0, time.UTC)
			continue
		}
		if !s.minute.contains(candidate.Minute()) {
			candidate = candidate.Add(time.Minute)
			continue
		}
		return candidate, nil
	}

	return time.Time{}, fmt.Errorf("cron: no occurrence within %d years of %s", nextHorizon, t.UTC().Format(time.RFC3339))
}

// dayMatches applies the standard cron day rule: when both day
// fields are restricted, a date matches if EITHER accepts it; a
// wildcard field defers entirely to the other.
func (s Schedule) dayMatches(t time.Time) bool {
	byMonthDay := s.dayOfMonth.contains(t.Day())
	byWeekday := s.dayOfWeek.contains(int(t.Weekday()))

	switch {
	case s.dayOfMonth.wildcard && s.dayOfWeek.wildcard:
		return true
	case s.dayOfMonth.wildcard:
		return byWeekday
	case s.dayOfWeek.wildcard:
		return byMonthDay
	default:
		return byMonthDay || byWeekday
	}
}
