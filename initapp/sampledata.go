// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package initapp

import (
	"math"
	"math/rand"
	"time"

	"stockchart/chartval"
	"stockchart/timeframe"
)

// Hourly bars per simulated trading session.
const hoursPerSampleDay = 7

// sampleFeed serves deterministic demo bars so the chart can be used
// without a market data connection. The full hourly history is generated
// up front and folded to daily bars on the way out; RevealOlder uncovers
// more of it when the chart asks for older data.
type sampleFeed struct {
	reserve []chartval.Bar // hourly bars, oldest first
	exposed int            // trading days currently visible
	days    int
	r       *rand.Rand
}

func newSampleFeed(seed int64, reserveDays, initialDays int) *sampleFeed {
	if initialDays > reserveDays {
		initialDays = reserveDays
	}
	r := rand.New(rand.NewSource(seed))
	day := time.Now().UTC().Truncate(24 * time.Hour)
	days := make([]time.Time, 0, reserveDays)
	for len(days) < reserveDays {
		if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days = append(days, day)
		}
		day = day.AddDate(0, 0, -1)
	}

	price := 100.0
	reserve := make([]chartval.Bar, 0, len(days)*hoursPerSampleDay)
	for i := len(days) - 1; i >= 0; i-- {
		// Session opens 09:00 UTC.
		sessionOpen := days[i].Add(9 * time.Hour)
		for h := 0; h < hoursPerSampleDay; h++ {
			open := price
			price *= 1 + (r.Float64()-0.5)*0.01
			reserve = append(reserve, chartval.Bar{
				Time:   sessionOpen.Add(time.Duration(h) * time.Hour).Unix(),
				Open:   open,
				High:   math.Max(open, price) * (1 + r.Float64()*0.004),
				Low:    math.Min(open, price) * (1 - r.Float64()*0.004),
				Close:  price,
				Volume: float64(10000 + r.Intn(90000)),
			})
		}
	}
	return &sampleFeed{reserve: reserve, exposed: initialDays, days: reserveDays, r: r}
}

// Bars returns the currently exposed history folded to daily bars,
// oldest first.
func (f *sampleFeed) Bars() []chartval.Bar {
	hourly := f.reserve[len(f.reserve)-f.exposed*hoursPerSampleDay:]
	return timeframe.Aggregate(hourly, timeframe.Daily)
}

// RevealOlder uncovers up to count older trading days and reports whether
// any history was left to reveal.
func (f *sampleFeed) RevealOlder(count int) bool {
	if f.exposed >= f.days {
		return false
	}
	f.exposed += count
	if f.exposed > f.days {
		f.exposed = f.days
	}
	return true
}

// Tick revises the most recent hourly bar in place and returns the daily
// bar it folds into, simulating a live quote.
func (f *sampleFeed) Tick() chartval.Bar {
	last := &f.reserve[len(f.reserve)-1]
	last.Close *= 1 + (f.r.Float64()-0.5)*0.002
	last.High = math.Max(last.High, last.Close)
	last.Low = math.Min(last.Low, last.Close)
	last.Volume += float64(f.r.Intn(1000))
	day := timeframe.Aggregate(f.reserve[len(f.reserve)-hoursPerSampleDay:], timeframe.Daily)
	return day[len(day)-1]
}
