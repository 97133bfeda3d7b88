// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package indcore

// SMAState is a simple moving average over a ring window of Period samples.
type SMAState struct {
	Period int       `json:"period"`
	Window []float64 `json:"window"`
	Sum    float64   `json:"sum"`
}

func NewSMA(period int) *SMAState {
	return &SMAState{Period: period}
}

// Update feeds the next sample. With samePeriod set, the last sample is
// replaced and the running sum adjusted by the difference. The value is
// valid once the window is full.
func (s *SMAState) Update(v float64, samePeriod bool) (float64, bool) {
	if samePeriod && len(s.Window) > 0 {
		last := len(s.Window) - 1
		s.Sum += v - s.Window[last]
		s.Window[last] = v
	} else {
		s.Window = append(s.Window, v)
		s.Sum += v
		if len(s.Window) > s.Period {
			s.Sum -= s.Window[0]
			s.Window = s.Window[1:]
		}
	}
	if len(s.Window) < s.Period {
		return 0, false
	}
	return s.Sum / float64(s.Period), true
}

func (s *SMAState) Serialize() (string, error) {
	return Serialize(s)
}

func DeserializeSMA(data string) (*SMAState, error) {
	return deserialize[SMAState](data)
}
