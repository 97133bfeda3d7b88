// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package indcore

// EMAState is a two-phase exponential moving average. During warm-up the
// first Period samples are accumulated and their arithmetic mean seeds the
// EMA; afterwards the usual recurrence with alpha = 2/(Period+1) applies.
type EMAState struct {
	Period     int      `json:"period"`
	Count      int      `json:"count"`
	InitialSum float64  `json:"initialSum"`
	EMA        *float64 `json:"ema"`
	LastValue  *float64 `json:"lastValue"`
}

func NewEMA(period int) *EMAState {
	return &EMAState{Period: period}
}

func (s *EMAState) alpha() float64 {
	return 2 / float64(s.Period+1)
}

func (s *EMAState) Update(v float64, samePeriod bool) (float64, bool) {
	if samePeriod && s.LastValue != nil {
		s.updateSamePeriod(v)
	} else {
		s.updateNewPeriod(v)
	}
	s.LastValue = floatPtr(v)
	if s.EMA == nil {
		return 0, false
	}
	return *s.EMA, true
}

func (s *EMAState) updateNewPeriod(v float64) {
	s.Count++
	if s.Count <= s.Period {
		s.InitialSum += v
		if s.Count == s.Period {
			s.EMA = floatPtr(s.InitialSum / float64(s.Period))
		}
		return
	}
	a := s.alpha()
	s.EMA = floatPtr(v*a + *s.EMA*(1-a))
}

func (s *EMAState) updateSamePeriod(v float64) {
	switch {
	case s.Count < s.Period:
		// Still warming up, swap the last accumulated sample.
		s.InitialSum += v - *s.LastValue
	case s.Count == s.Period:
		// The last sample seeded the EMA, re-seed with the revised value.
		s.InitialSum += v - *s.LastValue
		s.EMA = floatPtr(s.InitialSum / float64(s.Period))
	default:
		// Algebraically remove the last sample's contribution, then re-apply.
		a := s.alpha()
		prev := (*s.EMA - *s.LastValue*a) / (1 - a)
		s.EMA = floatPtr(v*a + prev*(1-a))
	}
}

func (s *EMAState) Serialize() (string, error) {
	return Serialize(s)
}

func DeserializeEMA(data string) (*EMAState, error) {
	return deserialize[EMAState](data)
}
