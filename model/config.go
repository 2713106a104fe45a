// config.go - Modell-Konfiguration mit typisierten Gettern
package model

// Config enthaelt die Modell-Konfiguration als Key-Value-Paare
type Config map[string]any

// String gibt einen String-Wert zurueck
func (c Config) String(key string, defaultValue ...string) string {
	if v, ok := c[key].(string); ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}

	return ""
}

// Uint gibt einen Uint32-Wert zurueck
func (c Config) Uint(key string, defaultValue ...uint32) uint32 {
	switch v := c[key].(type) {
	case uint32:
		return v
	case int:
		return uint32(v)
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}

	return 0
}

// Float gibt einen Float32-Wert zurueck
func (c Config) Float(key string, defaultValue ...float32) float32 {
	switch v := c[key].(type) {
	case float32:
		return v
	case float64:
		return float32(v)
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}

	return 0
}

// Bool gibt einen Bool-Wert zurueck
func (c Config) Bool(key string, defaultValue ...bool) bool {
	if v, ok := c[key].(bool); ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}

	return false
}
