// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package timeframe

import (
	"sort"
	"time"

	"stockchart/chartval"
)

// Resolution is the granularity of an aggregated bar sequence.
type Resolution int32

const (
	Hourly Resolution = iota
	Daily
	Weekly
	Monthly
)

func (r Resolution) String() string {
	switch r {
	case Hourly:
		return "hourly"
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	default:
		return "unknown"
	}
}

// GroupStart returns the canonical UTC start time of the group containing t.
// Weeks start on Sunday; bars before the first Sunday of a year group with
// the last week of the prior year.
func (r Resolution) GroupStart(t time.Time) time.Time {
	t = t.UTC()
	switch r {
	case Hourly:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, time.UTC)
	case Daily:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	case Weekly:
		// Most recent Sunday at midnight UTC.
		return time.Date(t.Year(), t.Month(), t.Day()-int(t.Weekday()), 0, 0, 0, 0, time.UTC)
	case Monthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		panic("unsupported aggregation resolution")
	}
}

// WeekNumber returns the year and Sunday-start week number containing t.
// Week 1 begins on the first Sunday of the year, except when January 1st is
// a Sunday, in which case week 1 starts on January 1st. Days before the
// first Sunday belong to the last week of the prior year, which may thus be
// week 53.
func WeekNumber(t time.Time) (year int, week int) {
	t = t.UTC()
	start := Weekly.GroupStart(t)
	year = start.Year()
	firstSunday := firstSundayOfYear(year)
	week = int(start.Sub(firstSunday).Hours()/(24*7)) + 1
	return
}

func firstSundayOfYear(year int) time.Time {
	jan1 := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	offset := (7 - int(jan1.Weekday())) % 7
	return jan1.AddDate(0, 0, offset)
}

// Aggregate folds a finer-grained bar sequence into bars of resolution r.
// Per output bar: open of the first input bar, max of highs, min of lows,
// close of the last input bar, sum of volumes, canonical group start time.
// Auxiliary bar data of the first bar in each group is preserved, which
// makes aggregation at destination granularity the identity.
func Aggregate(bars []chartval.Bar, r Resolution) []chartval.Bar {
	var out []chartval.Bar
	for _, b := range bars {
		start := r.GroupStart(time.Unix(b.Time, 0)).Unix()
		if len(out) == 0 || out[len(out)-1].Time != start {
			nb := b
			nb.Time = start
			out = append(out, nb)
			continue
		}
		foldInto(&out[len(out)-1], b)
	}
	return out
}

// MergeInto folds finer bars into base, merging groups which already exist
// in base into the existing record instead of creating a new one. The
// result is sorted by time.
func MergeInto(base []chartval.Bar, finer []chartval.Bar, r Resolution) []chartval.Bar {
	byTime := make(map[int64]int, len(base))
	out := make([]chartval.Bar, len(base))
	copy(out, base)
	for i, b := range out {
		byTime[b.Time] = i
	}
	for _, b := range Aggregate(finer, r) {
		if i, ok := byTime[b.Time]; ok {
			foldInto(&out[i], b)
		} else {
			byTime[b.Time] = len(out)
			out = append(out, b)
		}
	}
	sort.Sort(chartval.BarList(out))
	return out
}

func foldInto(dst *chartval.Bar, b chartval.Bar) {
	if b.High > dst.High {
		dst.High = b.High
	}
	if b.Low < dst.Low {
		dst.Low = b.Low
	}
	dst.Close = b.Close
	dst.Volume += b.Volume
}
