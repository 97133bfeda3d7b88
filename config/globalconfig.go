// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

const AppName = "stockchart"

const (
	configFileName    = "globalconfig.yaml"
	configFileVersion = 1
)

// configFile is the on-disk shape: a version marker with the app
// configuration inlined next to it, so an older release can recognize a
// file written by a newer one without touching it.
type configFile struct {
	FileVersion int       `yaml:"fileVersion"`
	AppConfig   AppConfig `yaml:",inline"`
}

// GlobalConfig persists the app configuration as a single YAML file in
// the user configuration directory. The file is loaded lazily on first
// access and written back only when Unlock detects a change.
type GlobalConfig struct {
	mu        sync.Mutex
	dir       string // empty means os.UserConfigDir()/AppName
	loaded    bool
	appConfig AppConfig
}

func NewGlobalConfig() Config {
	return &GlobalConfig{appConfig: NewAppConfig()}
}

func (g *GlobalConfig) GetAppName() string {
	return AppName
}

// Lock loads the configuration if needed and returns a copy which may be
// modified. Unlock must be called afterwards unless an error is returned.
func (g *GlobalConfig) Lock() (*AppConfig, error) {
	g.mu.Lock()
	if err := g.ensureLoaded(); err != nil {
		g.mu.Unlock()
		return nil, err
	}
	c := g.appConfig.deepCopy()
	return &c, nil
}

// Unlock adopts the given configuration and releases the lock. A changed
// configuration is written to disk before unlocking.
func (g *GlobalConfig) Unlock(c *AppConfig) error {
	var err error
	if !cmp.Equal(g.appConfig, *c) {
		g.appConfig = *c
		err = g.write()
	}
	g.mu.Unlock()
	return err
}

func (g *GlobalConfig) Copy() (AppConfig, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.ensureLoaded(); err != nil {
		return AppConfig{}, err
	}
	return g.appConfig.deepCopy(), nil
}

func (g *GlobalConfig) configPath() (string, error) {
	if g.dir == "" {
		userConfigDir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine configuration path: %w", err)
		}
		g.dir = filepath.Join(userConfigDir, AppName)
	}
	return filepath.Join(g.dir, configFileName), nil
}

func (g *GlobalConfig) ensureLoaded() error {
	if g.loaded {
		return nil
	}
	fileName, err := g.configPath()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(fileName)
	if os.IsNotExist(err) {
		// A missing file is fine, defaults apply.
		log.Printf("Configuration file %q does not yet exist, using defaults.", fileName)
		g.loaded = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read configuration file: %w", err)
	}
	var file configFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse configuration file: %w", err)
	}
	// Refuse files of newer releases instead of silently dropping their
	// unknown settings on the next write.
	if file.FileVersion > configFileVersion {
		return fmt.Errorf("configuration file version %d is newer than the supported version %d",
			file.FileVersion, configFileVersion)
	}
	file.AppConfig.Sanitize()
	g.appConfig = file.AppConfig
	g.loaded = true
	return nil
}

func (g *GlobalConfig) write() error {
	fileName, err := g.configPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fileName), 0700); err != nil {
		return fmt.Errorf("failed to create configuration directory: %w", err)
	}
	g.appConfig.Sanitize()
	data, err := yaml.Marshal(&configFile{
		FileVersion: configFileVersion,
		AppConfig:   g.appConfig,
	})
	if err != nil {
		return fmt.Errorf("error generating configuration file: %w", err)
	}
	// Writing may fail halfway, so write to a temporary file and rename.
	tmpFileName := fileName + ".tmp"
	if err := os.WriteFile(tmpFileName, data, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	if err := os.Rename(tmpFileName, fileName); err != nil {
		return fmt.Errorf("failed to replace configuration file: %w", err)
	}
	return nil
}
