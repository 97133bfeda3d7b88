// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

// Package indcache stores serialized indicator states so streaming
// computation can resume after a restart or data refresh instead of
// replaying the full history.
package indcache

import (
	"encoding/json"
	"log"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lotodore/localcache"
	"github.com/zhangyunhao116/skipmap"

	"stockchart/config"
)

// States older than this are dropped from the disk cache.
const maxEntryAge = 14 * 24 * time.Hour

// Entry is one cached indicator state, valid only for the exact bar it was
// computed up to.
type Entry struct {
	LastBarTime int64  `json:"lastBarTime"`
	State       string `json:"state"`
}

type Store struct {
	mem  *skipmap.StringMap[Entry]
	disk *localcache.Cache
}

// NewStore creates a cache backed by the local cache directory of the app.
// If the directory cannot be created the cache degrades to memory only.
func NewStore(appName string) *Store {
	s := NewMemoryStore()
	disk, err := localcache.New(filepath.Join(appName, "indicators"))
	if err != nil {
		log.Printf("indicator cache is memory only: %v", err)
		return s
	}
	s.disk = disk
	return s
}

// NewMemoryStore creates a cache without disk persistence.
func NewMemoryStore() *Store {
	return &Store{
		mem: skipmap.NewString[Entry](),
	}
}

// Key derives a stable cache key from an indicator reference. Settings are
// ordered so equivalent references share one key.
func Key(ref *config.IndicatorRef) string {
	var sb strings.Builder
	sb.WriteString(ref.Name)
	sb.WriteByte(':')
	sb.WriteString(ref.ID)
	names := make([]string, 0, len(ref.Settings))
	for name := range ref.Settings {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sb.WriteByte(':')
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(strconv.FormatFloat(ref.Settings[name], 'g', -1, 64))
	}
	return sb.String()
}

// Load returns the cached state for a key, but only when it was computed
// up to exactly the given bar time.
func (s *Store) Load(key string, lastBarTime int64) (string, bool) {
	if e, ok := s.mem.Load(key); ok && e.LastBarTime == lastBarTime {
		return e.State, true
	}
	if s.disk == nil {
		return "", false
	}
	raw, err := s.disk.ReadFile(key)
	if err != nil {
		return "", false
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		log.Printf("indicator cache entry %q is invalid, dropping it", key)
		if err := s.disk.Remove(key); err != nil {
			log.Printf("error deleting cache entry %q: %v", key, err)
		}
		return "", false
	}
	if e.LastBarTime != lastBarTime {
		return "", false
	}
	s.mem.Store(key, e)
	return e.State, true
}

// Save stores the state for a key in memory and, when available, on disk.
func (s *Store) Save(key string, lastBarTime int64, state string) {
	e := Entry{LastBarTime: lastBarTime, State: state}
	s.mem.Store(key, e)
	if s.disk == nil {
		return
	}
	if err := s.disk.PurgeKey(key, maxEntryAge); err != nil {
		log.Printf("error purging indicator cache %q: %v", key, err)
	}
	raw, err := json.Marshal(&e)
	if err != nil {
		return
	}
	if err := s.disk.WriteFile(key, raw); err != nil {
		log.Printf("error writing indicator cache %q: %v", key, err)
	}
}
