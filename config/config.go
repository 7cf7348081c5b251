package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/alejandrodnm/matbook/internal/domain"
)

// Config es la configuración completa del juego.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Player  string        `yaml:"player"` // nombre por defecto; el flag -player gana
	Roster  RosterConfig  `yaml:"roster"`
	Storage StorageConfig `yaml:"storage"`
	Export  ExportConfig  `yaml:"export"`
	Log     LogConfig     `yaml:"log"`
}

// GameConfig son las constantes del bankroll. Se fijan al arrancar la sesión
// y no cambian durante ella.
type GameConfig struct {
	Bankroll    float64 `yaml:"bankroll"`      // puntos totales a repartir
	MinWager    float64 `yaml:"min_wager"`     // mínimo por luchador
	MaxPerMatch float64 `yaml:"max_per_match"` // tope de puntos por combate
}

// RosterConfig apunta al CSV con los eventos y combates.
type RosterConfig struct {
	Path string `yaml:"path"`
}

// StorageConfig controla dónde se archiva el envío.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// ExportConfig controla dónde se escriben los documentos exportados.
type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Los valores del .env sobreescriben los del YAML para las keys que correspondan.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// Limits devuelve las constantes del juego como límites de dominio.
func (c *Config) Limits() domain.Limits {
	return domain.Limits{
		Bankroll:    c.Game.Bankroll,
		MinWager:    c.Game.MinWager,
		MaxPerMatch: c.Game.MaxPerMatch,
	}
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("MATBOOK_ROSTER"); v != "" {
		cfg.Roster.Path = v
	}
	if v := os.Getenv("MATBOOK_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("MATBOOK_PLAYER"); v != "" {
		cfg.Player = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Game.Bankroll <= 0 {
		cfg.Game.Bankroll = 100
	}
	if cfg.Game.MinWager <= 0 {
		cfg.Game.MinWager = 5
	}
	if cfg.Game.MaxPerMatch <= 0 {
		cfg.Game.MaxPerMatch = 25
	}
	if cfg.Roster.Path == "" {
		cfg.Roster.Path = "data.csv"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "matbook.db"
	}
	if cfg.Export.Dir == "" {
		cfg.Export.Dir = "."
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
