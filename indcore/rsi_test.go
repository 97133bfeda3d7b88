// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package indcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRsiFlatSeries(t *testing.T) {
	s := NewRSI(14)
	var val float64
	var ok bool
	for i := 0; i < 20; i++ {
		val, ok = s.Update(100, false)
	}

	assert.True(t, ok)
	assert.Equal(t, 0.0, s.AvgGain)
	assert.Equal(t, 0.0, s.AvgLoss)
	assert.Equal(t, 100.0, val)
}

func TestRsiWarmUpLength(t *testing.T) {
	s := NewRSI(3)
	prices := []float64{10, 11, 10.5, 12}
	var oks []bool
	for _, p := range prices {
		_, ok := s.Update(p, false)
		oks = append(oks, ok)
	}
	// One sample establishes the base price, three more fill the window.
	assert.Equal(t, []bool{false, false, false, true}, oks)
}

func TestRsiBounds(t *testing.T) {
	s := NewRSI(5)
	prices := []float64{50, 53, 49, 55, 48, 60, 42, 70, 30, 80, 80, 80.5}
	for i, p := range prices {
		val, ok := s.Update(p, i == len(prices)-1)
		if ok {
			assert.GreaterOrEqual(t, val, 0.0)
			assert.LessOrEqual(t, val, 100.0)
		}
	}
}

func TestRsiFirstBarRevisionRecordsNoChange(t *testing.T) {
	s := NewRSI(14)
	_, ok := s.Update(100, false)
	assert.False(t, ok)
	_, ok = s.Update(105, true)
	assert.False(t, ok)

	// The revised first bar moves only the forming close; no gain/loss
	// entry exists yet and the warm-up window must not shift.
	assert.Empty(t, s.Gains)
	assert.Empty(t, s.Losses)
	assert.Equal(t, 105.0, *s.LastPrice)

	// Warm-up still takes exactly period new bars from here.
	for i := 0; i < 13; i++ {
		_, ok = s.Update(105+float64(i), false)
		assert.False(t, ok)
	}
	_, ok = s.Update(120, false)
	assert.True(t, ok)
}

func TestRsiSamePeriodMatchesReplay(t *testing.T) {
	history := []float64{50, 52, 51, 54, 53, 55, 56}

	revised := NewRSI(3)
	for _, p := range history {
		revised.Update(p, false)
	}
	revised.Update(57, true)
	got, ok := revised.Update(52, true)
	assert.True(t, ok)

	replayed := NewRSI(3)
	for _, p := range history[:len(history)-1] {
		replayed.Update(p, false)
	}
	want, ok := replayed.Update(52, false)
	assert.True(t, ok)
	assert.InDelta(t, want, got, 1e-9)
}
