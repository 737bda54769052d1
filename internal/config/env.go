package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvSeed          = "FLORA_SEED"
	EnvStemHeight    = "FLORA_STEM_HEIGHT"
	EnvPetals        = "FLORA_PETALS"
	EnvLogLevel      = "FLORA_LOG_LEVEL"
	EnvLogFile       = "FLORA_LOG_FILE"
	EnvAmbientJitter = "FLORA_AMBIENT_JITTER"
)

// loadEnvFile merges a dotenv file into the process environment without
// overriding variables that are already set. A missing file is fine.
func loadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading %s: %w", path, err)
}

// applyEnv applies FLORA_* overrides read through lookup.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	var errs []error
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		return v, ok && v != ""
	}

	if v, ok := get(EnvSeed); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvSeed, err))
		} else {
			cfg.Plant.Seed = seed
		}
	}
	if v, ok := get(EnvStemHeight); ok {
		h, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvStemHeight, err))
		} else {
			cfg.Plant.Height = h
		}
	}
	if v, ok := get(EnvPetals); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvPetals, err))
		} else {
			cfg.Plant.PetalCount = n
		}
	}
	if v, ok := get(EnvAmbientJitter); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvAmbientJitter, err))
		} else {
			cfg.Animation.AmbientJitter = b
		}
	}
	if v, ok := get(EnvLogLevel); ok {
		cfg.Logging.Level = v
	}
	if v, ok := get(EnvLogFile); ok {
		cfg.Logging.LogFile = v
	}

	return errors.Join(errs...)
}
