package types

import (
	"errors"
	"fmt"
	"time"
)

// Config holds the parameters needed to open a store.
type Config struct {
	DataDir  string `json:"data_dir" yaml:"data_dir"`
	Timezone string `json:"timezone" yaml:"timezone"`
}

// Config validation errors.
var (
	ErrDataDirEmpty    = errors.New("data_dir must not be empty")
	ErrTimezoneInvalid = errors.New("unknown timezone")
)

// Validate checks that the Config is well-formed. An empty Timezone is
// accepted and means the process-local zone.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("%w: %q", ErrTimezoneInvalid, c.Timezone)
		}
	}
	return nil
}

// Location resolves the configured timezone, falling back to the local zone
// when unset. Call Validate first; an unknown zone here resolves to local.
func (c Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
