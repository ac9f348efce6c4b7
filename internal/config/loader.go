package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// SettingsGetter source de paramètres
type SettingsGetter interface {
	GetSetting(key string) (string, error)
}

// EnvSource lit les paramètres dans l'environnement du processus
type EnvSource struct{}

// GetSetting retourne la variable d'environnement, vide si absente
func (EnvSource) GetSetting(key string) (string, error) {
	return os.Getenv(key), nil
}

// MapSource source statique, utilisée par les tests
type MapSource map[string]string

// GetSetting retourne la valeur associée à key
func (m MapSource) GetSetting(key string) (string, error) {
	return m[key], nil
}

// Loader accès typé aux paramètres avec valeurs par défaut
type Loader struct {
	src SettingsGetter
}

// NewLoader crée un nouveau loader
func NewLoader(src SettingsGetter) *Loader {
	return &Loader{src: src}
}

// String retourne le paramètre, ou defaultVal s'il est absent ou vide
func (l *Loader) String(key, defaultVal string) string {
	if val, _ := l.src.GetSetting(key); val != "" {
		return val
	}
	return defaultVal
}

// Int retourne le paramètre entier, ou defaultVal s'il est absent ou invalide
func (l *Loader) Int(key string, defaultVal int) int {
	val, _ := l.src.GetSetting(key)
	if val == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(val)
	if err != nil {
		log.Warn().Str("key", key).Str("value", val).Int("default", defaultVal).Msg("Invalid integer setting, using default")
		return defaultVal
	}
	return v
}

// Bool retourne le paramètre booléen, ou defaultVal s'il est absent ou invalide
func (l *Loader) Bool(key string, defaultVal bool) bool {
	val, _ := l.src.GetSetting(key)
	if val == "" {
		return defaultVal
	}
	v, err := strconv.ParseBool(val)
	if err != nil {
		log.Warn().Str("key", key).Str("value", val).Bool("default", defaultVal).Msg("Invalid boolean setting, using default")
		return defaultVal
	}
	return v
}

// Duration retourne la durée, ou defaultVal si elle est absente ou invalide.
// Format time.ParseDuration (ex: "1h30m", "5s")
func (l *Loader) Duration(key string, defaultVal time.Duration) time.Duration {
	val, _ := l.src.GetSetting(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		log.Warn().Str("key", key).Str("value", val).Dur("default", defaultVal).Msg("Invalid duration setting, using default")
		return defaultVal
	}
	return d
}
