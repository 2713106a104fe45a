// config.go - Konfiguration ueber Environment-Variablen
//
// Dieses Modul enthaelt:
// - LogLevel: Gibt Log-Level zurueck (TRANSDUCE_DEBUG)
// - Backend: Gibt das Tensor-Backend zurueck (TRANSDUCE_BACKEND)
// - Seed: Gibt den Gewichts-Seed zurueck (TRANSDUCE_SEED)
// - NumThreads: Gibt die Thread-Anzahl zurueck (TRANSDUCE_NUM_THREADS)
// - AsMap/Values: Export fuer die CLI-Dokumentation
package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// LogLevel gibt das Log-Level zurueck
// Konfigurierbar via TRANSDUCE_DEBUG
// Werte: 0/false = INFO (Default), 1/true = DEBUG, 2 = TRACE
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("TRANSDUCE_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

// Backend gibt den Namen des Tensor-Backends zurueck
// Konfigurierbar via TRANSDUCE_BACKEND
// Default: cpu
var Backend = StringWithDefault("TRANSDUCE_BACKEND", "cpu")

// Seed gibt den Seed fuer die Gewichts-Initialisierung zurueck
// Konfigurierbar via TRANSDUCE_SEED
var Seed = Uint("TRANSDUCE_SEED", 42)

// NumThreads gibt die Thread-Anzahl fuer das CPU-Backend zurueck
// Konfigurierbar via TRANSDUCE_NUM_THREADS (0 = alle Kerne)
var NumThreads = Uint("TRANSDUCE_NUM_THREADS", 0)

// StringWithDefault gibt eine Funktion zurueck, die einen String mit Default liest
func StringWithDefault(key, defaultValue string) func() string {
	return func() string {
		if s := Var(key); s != "" {
			return s
		}
		return defaultValue
	}
}

// Uint gibt eine Funktion zurueck, die einen uint mit Default-Wert liest
func Uint(key string, defaultValue uint) func() uint {
	return func() uint {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseUint(s, 10, 64); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return uint(n)
			}
		}
		return defaultValue
	}
}

// EnvVar repraesentiert eine Environment-Variable mit Metadaten
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap gibt alle Konfigurationen als Map zurueck
// Enthaelt Namen, aktuelle Werte und Beschreibungen
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"TRANSDUCE_DEBUG":       {"TRANSDUCE_DEBUG", LogLevel(), "Show additional debug information (e.g. TRANSDUCE_DEBUG=1)"},
		"TRANSDUCE_BACKEND":     {"TRANSDUCE_BACKEND", Backend(), "Tensor backend to run on (default \"cpu\")"},
		"TRANSDUCE_SEED":        {"TRANSDUCE_SEED", Seed(), "Seed for deterministic weight initialization (default 42)"},
		"TRANSDUCE_NUM_THREADS": {"TRANSDUCE_NUM_THREADS", NumThreads(), "Number of CPU threads (default: all cores)"},
	}
}

// Values gibt alle Konfigurationswerte als String-Map zurueck
func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}

// Var gibt eine Environment-Variable zurueck
// Entfernt fuehrende/trailing Quotes und Leerzeichen
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}
