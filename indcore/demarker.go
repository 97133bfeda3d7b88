// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package indcore

import "math"

// DeMarkerState feeds the DeMax/DeMin series of a bar sequence through two
// internal SMAs of the same period. PrevHigh and PrevLow advance to the
// current bar's values on period boundaries only; same-period updates keep
// them as they are.
type DeMarkerState struct {
	Period   int       `json:"period"`
	PrevHigh *float64  `json:"prevHigh"`
	PrevLow  *float64  `json:"prevLow"`
	DeMaxSMA *SMAState `json:"demaxSMA"`
	DeMinSMA *SMAState `json:"deminSMA"`
}

func NewDeMarker(period int) *DeMarkerState {
	return &DeMarkerState{
		Period:   period,
		DeMaxSMA: NewSMA(period),
		DeMinSMA: NewSMA(period),
	}
}

// Update feeds the high/low of the next bar sample. Both SMAs are fed on
// every call; a neutral 0.5 is returned when both averages are zero.
func (s *DeMarkerState) Update(high, low float64, samePeriod bool) (float64, bool) {
	var deMax, deMin float64
	if s.PrevHigh != nil {
		deMax = math.Max(0, high-*s.PrevHigh)
	}
	if s.PrevLow != nil {
		deMin = math.Max(0, *s.PrevLow-low)
	}
	smaMax, maxOk := s.DeMaxSMA.Update(deMax, samePeriod)
	smaMin, minOk := s.DeMinSMA.Update(deMin, samePeriod)
	if !samePeriod {
		s.PrevHigh = floatPtr(high)
		s.PrevLow = floatPtr(low)
	}
	if !maxOk || !minOk {
		return 0, false
	}
	if smaMax+smaMin == 0 {
		return 0.5, true
	}
	return smaMax / (smaMax + smaMin), true
}

func (s *DeMarkerState) Serialize() (string, error) {
	return Serialize(s)
}

func DeserializeDeMarker(data string) (*DeMarkerState, error) {
	return deserialize[DeMarkerState](data)
}
