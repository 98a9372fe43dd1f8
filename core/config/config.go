/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Rpncalc Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package config

import (
	"fmt"
	"os"
	"runtime"
)

// Environment variables that override flag defaults
const (
	EnvAddr    = "RPNCALC_ADDR"
	EnvNoColor = "NO_COLOR"
)

// Config holds the settings shared by the shells, the server and batch mode
type Config struct {
	Addr         string // Listen address of the web calculator
	HistoryLimit int    // Number of past expressions kept in history links
	CacheSize    int    // Number of parsed expressions the server keeps
	Workers      int    // Concurrent evaluations in batch mode
	Plain        bool   // Use the line shell even on a terminal
	NoColor      bool   // Disable coloured output
}

// DefaultConfig returns the configuration used when no flags are given
func DefaultConfig() Config {
	return Config{
		Addr:         "127.0.0.1:8097",
		HistoryLimit: 10,
		CacheSize:    1024,
		Workers:      runtime.NumCPU(),
	}
}

// ApplyEnv overrides fields from the environment.
// Any non-empty NO_COLOR disables colour, following no-color.org.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if addr, ok := lookup(EnvAddr); ok && addr != "" {
		c.Addr = addr
	}
	if v, ok := lookup(EnvNoColor); ok && v != "" {
		c.NoColor = true
	}
}

// Validate checks that the configuration is usable
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("history limit must be positive, got %d", c.HistoryLimit)
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("cache size must be positive, got %d", c.CacheSize)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	return nil
}
