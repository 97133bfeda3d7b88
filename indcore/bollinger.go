// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package indcore

import "math"

// BollingerState computes Bollinger Bands from a running sum and sum of
// squares over a ring window. Variance uses the population formula unless
// Sample is set.
type BollingerState struct {
	Period     int       `json:"period"`
	Multiplier float64   `json:"multiplier"`
	Window     []float64 `json:"window"`
	Sum        float64   `json:"sum"`
	SumSquares float64   `json:"sumSquares"`
	Sample     bool      `json:"sample,omitempty"`
}

type BollingerValue struct {
	Upper  float64
	Middle float64
	Lower  float64
}

func NewBollinger(period int, multiplier float64) *BollingerState {
	return &BollingerState{Period: period, Multiplier: multiplier}
}

func (s *BollingerState) Update(v float64, samePeriod bool) (BollingerValue, bool) {
	if samePeriod && len(s.Window) > 0 {
		last := len(s.Window) - 1
		old := s.Window[last]
		s.Sum += v - old
		s.SumSquares += v*v - old*old
		s.Window[last] = v
	} else {
		s.Window = append(s.Window, v)
		s.Sum += v
		s.SumSquares += v * v
		if len(s.Window) > s.Period {
			old := s.Window[0]
			s.Sum -= old
			s.SumSquares -= old * old
			s.Window = s.Window[1:]
		}
	}
	if len(s.Window) < s.Period {
		return BollingerValue{}, false
	}
	n := float64(s.Period)
	middle := s.Sum / n
	variance := s.SumSquares/n - middle*middle
	if s.Sample && s.Period > 1 {
		variance = (s.SumSquares - n*middle*middle) / (n - 1)
	}
	// Guard against negative variance caused by floating point error.
	band := s.Multiplier * math.Sqrt(math.Max(0, variance))
	return BollingerValue{
		Upper:  middle + band,
		Middle: middle,
		Lower:  middle - band,
	}, true
}

func (s *BollingerState) Serialize() (string, error) {
	return Serialize(s)
}

func DeserializeBollinger(data string) (*BollingerState, error) {
	return deserialize[BollingerState](data)
}
