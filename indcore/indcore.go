// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

// Package indcore contains streaming indicator state machines.
//
// Each indicator is a plain record evolved by an Update function. Updates
// distinguish a new bar from a revision of the still-forming bar
// (samePeriod), in which case the contribution of the last sample is
// replaced instead of appended. All states round-trip losslessly through
// JSON; nested states (MACD, DeMarker) serialize their children recursively.
package indcore

import (
	"encoding/json"
	"fmt"
)

// Serialize returns the textual form of an indicator state.
func Serialize(state any) (string, error) {
	b, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("serializing indicator state: %w", err)
	}
	return string(b), nil
}

func deserialize[T any](data string) (*T, error) {
	state := new(T)
	if err := json.Unmarshal([]byte(data), state); err != nil {
		return nil, fmt.Errorf("deserializing indicator state: %w", err)
	}
	return state, nil
}

func floatPtr(v float64) *float64 {
	return &v
}
