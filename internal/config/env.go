package config

import (
	"os"
	"strconv"
	"strings"
)

// IntEnv reads an integer environment variable, falling back on absence or
// parse errors.
func IntEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func Int64Env(key string, fallback int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func FloatEnv(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func StringEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// LoadWorldGenFromEnv applies TILEWORLD_NOISE, TILEWORLD_WORKERS and
// TILEWORLD_DENSITY to the generation settings.
func LoadWorldGenFromEnv() error {
	if name := StringEnv("TILEWORLD_NOISE", ""); name != "" {
		if err := SetNoiseBackend(name); err != nil {
			return err
		}
	}
	SetTerrainWorkers(IntEnv("TILEWORLD_WORKERS", GetTerrainWorkers()))
	SetDensityScale(FloatEnv("TILEWORLD_DENSITY", GetDensityScale()))
	return nil
}
