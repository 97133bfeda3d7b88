// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package indcore

// MACDState composes three EMAs: fast and slow over the raw series, and a
// signal EMA over the fast-slow difference. The signal EMA is only fed once
// both fast and slow are warm.
type MACDState struct {
	Fast   *EMAState `json:"fast"`
	Slow   *EMAState `json:"slow"`
	Signal *EMAState `json:"signal"`
}

type MACDValue struct {
	MACD        float64
	Signal      float64
	Histogram   float64
	SignalValid bool
}

func NewMACD(fastPeriod, slowPeriod, signalPeriod int) *MACDState {
	return &MACDState{
		Fast:   NewEMA(fastPeriod),
		Slow:   NewEMA(slowPeriod),
		Signal: NewEMA(signalPeriod),
	}
}

func (s *MACDState) Update(v float64, samePeriod bool) (MACDValue, bool) {
	fast, fastOk := s.Fast.Update(v, samePeriod)
	slow, slowOk := s.Slow.Update(v, samePeriod)
	if !fastOk || !slowOk {
		return MACDValue{}, false
	}
	macd := fast - slow
	signal, signalOk := s.Signal.Update(macd, samePeriod)
	val := MACDValue{MACD: macd}
	if signalOk {
		val.Signal = signal
		val.Histogram = macd - signal
		val.SignalValid = true
	}
	return val, true
}

func (s *MACDState) Serialize() (string, error) {
	return Serialize(s)
}

func DeserializeMACD(data string) (*MACDState, error) {
	return deserialize[MACDState](data)
}
