// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package timeframe

import (
	"testing"
	"time"

	"stockchart/chartval"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func dayBar(t time.Time, o, h, l, c, v float64) chartval.Bar {
	return chartval.Bar{Time: t.Unix(), Open: o, High: h, Low: l, Close: c, Volume: v}
}

func TestAggregateDailyIdempotent(t *testing.T) {
	base := time.Date(2023, 6, 5, 0, 0, 0, 0, time.UTC)
	var days []chartval.Bar
	for i := 0; i < 5; i++ {
		days = append(days, dayBar(base.AddDate(0, 0, i), 10, 12, 9, 11, 100))
	}

	out := Aggregate(days, Daily)

	assert.Empty(t, cmp.Diff(days, out))
}

func TestAggregateHourlyToDaily(t *testing.T) {
	base := time.Date(2023, 6, 5, 9, 0, 0, 0, time.UTC)
	bars := []chartval.Bar{
		dayBar(base, 10, 11, 9, 10.5, 100),
		dayBar(base.Add(time.Hour), 10.5, 13, 10, 12, 150),
		dayBar(base.Add(2*time.Hour), 12, 12.5, 8, 9, 50),
	}

	out := Aggregate(bars, Daily)

	assert.Len(t, out, 1)
	assert.Equal(t, time.Date(2023, 6, 5, 0, 0, 0, 0, time.UTC).Unix(), out[0].Time)
	assert.Equal(t, 10.0, out[0].Open)
	assert.Equal(t, 13.0, out[0].High)
	assert.Equal(t, 8.0, out[0].Low)
	assert.Equal(t, 9.0, out[0].Close)
	assert.Equal(t, 300.0, out[0].Volume)
}

// January 1st 2015 is a Thursday. The first Sunday is January 4th, which
// opens week 1; January 1st to 3rd belong to the last week of 2014.
func TestAggregateWeeklyAroundNewYear(t *testing.T) {
	var days []chartval.Bar
	for i := 1; i <= 7; i++ {
		d := time.Date(2015, 1, i, 0, 0, 0, 0, time.UTC)
		days = append(days, dayBar(d, float64(i), float64(i)+0.5, float64(i)-0.5, float64(i)+0.25, 10))
	}

	out := Aggregate(days, Weekly)

	assert.Len(t, out, 2)
	assert.Equal(t, time.Date(2014, 12, 28, 0, 0, 0, 0, time.UTC).Unix(), out[0].Time)
	assert.Equal(t, 1.0, out[0].Open)
	assert.Equal(t, 3.25, out[0].Close)
	assert.Equal(t, time.Date(2015, 1, 4, 0, 0, 0, 0, time.UTC).Unix(), out[1].Time)
	assert.Equal(t, 4.0, out[1].Open)
	assert.Equal(t, 7.5, out[1].High)
	assert.Equal(t, 3.5, out[1].Low)
	assert.Equal(t, 7.25, out[1].Close)
}

func TestWeekNumber(t *testing.T) {
	y, w := WeekNumber(time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 2014, y)
	assert.Equal(t, 52, w)

	y, w = WeekNumber(time.Date(2015, 1, 4, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, 2015, y)
	assert.Equal(t, 1, w)

	// January 1st 2017 is a Sunday and opens week 1 itself.
	y, w = WeekNumber(time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 2017, y)
	assert.Equal(t, 1, w)
}

func TestAggregateMonthly(t *testing.T) {
	bars := []chartval.Bar{
		dayBar(time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC), 1, 2, 0.5, 1.5, 10),
		dayBar(time.Date(2023, 1, 25, 0, 0, 0, 0, time.UTC), 1.5, 3, 1, 2.5, 10),
		dayBar(time.Date(2023, 2, 2, 0, 0, 0, 0, time.UTC), 2.5, 4, 2, 3, 10),
	}

	out := Aggregate(bars, Monthly)

	assert.Len(t, out, 2)
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).Unix(), out[0].Time)
	assert.Equal(t, 3.0, out[0].High)
	assert.Equal(t, time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC).Unix(), out[1].Time)
}

func TestMergeIntoExistingRecord(t *testing.T) {
	day := time.Date(2023, 6, 5, 0, 0, 0, 0, time.UTC)
	existing := []chartval.Bar{
		{
			Time: day.Unix(), Open: 10, High: 11, Low: 9, Close: 10.5, Volume: 100,
			Signals: []chartval.SignalValue{{Type: "buy", Value: 10}},
		},
	}
	finer := []chartval.Bar{
		dayBar(day.Add(14*time.Hour), 10.5, 13, 9.5, 12, 50),
	}

	out := MergeInto(existing, finer, Daily)

	assert.Len(t, out, 1)
	// Identity of the existing record is preserved.
	assert.Equal(t, existing[0].Signals, out[0].Signals)
	assert.Equal(t, 10.0, out[0].Open)
	assert.Equal(t, 13.0, out[0].High)
	assert.Equal(t, 9.0, out[0].Low)
	assert.Equal(t, 12.0, out[0].Close)
	assert.Equal(t, 150.0, out[0].Volume)
}

func TestMergeIntoAppendsNewGroups(t *testing.T) {
	day1 := time.Date(2023, 6, 5, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	existing := []chartval.Bar{dayBar(day1, 10, 11, 9, 10.5, 100)}
	finer := []chartval.Bar{dayBar(day2.Add(10*time.Hour), 11, 12, 10, 11.5, 80)}

	out := MergeInto(existing, finer, Daily)

	assert.Len(t, out, 2)
	assert.Equal(t, day1.Unix(), out[0].Time)
	assert.Equal(t, day2.Unix(), out[1].Time)
}
