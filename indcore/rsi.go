// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package indcore

// RSIState is a relative strength index with Wilder smoothing. The first
// complete gain/loss window seeds the averages by arithmetic mean;
// afterwards avg = (avg*(period-1) + new) / period.
type RSIState struct {
	Period    int       `json:"period"`
	Gains     []float64 `json:"gains"`
	Losses    []float64 `json:"losses"`
	AvgGain   float64   `json:"avgGain"`
	AvgLoss   float64   `json:"avgLoss"`
	LastPrice *float64  `json:"lastPrice"`
	Warm      bool      `json:"warm"`
}

func NewRSI(period int) *RSIState {
	return &RSIState{Period: period}
}

func (s *RSIState) Update(price float64, samePeriod bool) (float64, bool) {
	if s.LastPrice == nil {
		s.LastPrice = floatPtr(price)
		return 0, false
	}
	if samePeriod {
		// A revision of the very first bar has no change entry to replace;
		// only the forming close moves.
		if len(s.Gains) > 0 {
			s.updateSamePeriod(price)
		}
	} else {
		s.updateNewPeriod(price)
	}
	s.LastPrice = floatPtr(price)
	if !s.Warm {
		return 0, false
	}
	return s.value(), true
}

func (s *RSIState) updateNewPeriod(price float64) {
	gain, loss := splitChange(price - *s.LastPrice)
	s.Gains = append(s.Gains, gain)
	s.Losses = append(s.Losses, loss)
	if len(s.Gains) > s.Period {
		s.Gains = s.Gains[1:]
		s.Losses = s.Losses[1:]
	}
	if s.Warm {
		p := float64(s.Period)
		s.AvgGain = (s.AvgGain*(p-1) + gain) / p
		s.AvgLoss = (s.AvgLoss*(p-1) + loss) / p
	} else if len(s.Gains) == s.Period {
		s.AvgGain = mean(s.Gains)
		s.AvgLoss = mean(s.Losses)
		s.Warm = true
	}
}

func (s *RSIState) updateSamePeriod(price float64) {
	last := len(s.Gains) - 1
	oldGain, oldLoss := s.Gains[last], s.Losses[last]
	// The base price of the forming bar is its last fed price minus the
	// change recorded for it.
	base := *s.LastPrice - (oldGain - oldLoss)
	gain, loss := splitChange(price - base)
	s.Gains[last] = gain
	s.Losses[last] = loss
	if s.Warm {
		// Replace the last contribution within the Wilder recurrence.
		p := float64(s.Period)
		s.AvgGain += (gain - oldGain) / p
		s.AvgLoss += (loss - oldLoss) / p
	} else if len(s.Gains) == s.Period {
		s.AvgGain = mean(s.Gains)
		s.AvgLoss = mean(s.Losses)
		s.Warm = true
	}
}

func (s *RSIState) value() float64 {
	if s.AvgLoss == 0 {
		return 100
	}
	return 100 - 100/(1+s.AvgGain/s.AvgLoss)
}

func splitChange(change float64) (gain, loss float64) {
	if change > 0 {
		return change, 0
	}
	return 0, -change
}

func mean(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

func (s *RSIState) Serialize() (string, error) {
	return Serialize(s)
}

func DeserializeRSI(data string) (*RSIState, error) {
	return deserialize[RSIState](data)
}
