package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mind-engage/thesisgrade/internal/grading"
)

type Config struct {
	HTTPAddr       string
	RequestTimeout time.Duration
	LogLevel       string

	DBDriver string
	DBDSN    string

	BlobBasePath string // recap snapshots

	AuthSecret    string // empty: a random key per process
	TokenTTL      time.Duration
	AdminPassHash string // bcrypt; wins over AdminPassword
	AdminPassword string // plaintext, hashed at startup (LAN/dev)

	CORSOrigins []string

	WeightsFile string
	Weights     grading.WeightTable
}

// Load reads an optional .env file, then the environment, then the weight
// table file if WEIGHTS_FILE names one.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// existing env vars win over the file
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	cfg := FromEnv()
	if cfg.WeightsFile != "" {
		w, err := LoadWeights(cfg.WeightsFile)
		if err != nil {
			return Config{}, err
		}
		cfg.Weights = w
	}
	return cfg, nil
}

func FromEnv() Config {
	return Config{
		HTTPAddr:       envOr("HTTP_ADDR", ":8080"),
		RequestTimeout: envDuration("REQUEST_TIMEOUT", 30*time.Second),
		LogLevel:       envOr("LOG_LEVEL", "info"),
		DBDriver:       envOr("DB_DRIVER", "sqlite"),
		DBDSN:          envOr("DB_DSN", ""),
		BlobBasePath:   envOr("BLOB_BASE_PATH", "./data"),
		AuthSecret:     os.Getenv("AUTH_HMAC_SECRET"),
		TokenTTL:       envDuration("TOKEN_TTL", 8*time.Hour),
		AdminPassHash:  os.Getenv("ADMIN_PASS_HASH"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		CORSOrigins:    csvOr("CORS_ORIGINS", "http://localhost:3000"),
		WeightsFile:    os.Getenv("WEIGHTS_FILE"),
		Weights:        grading.DefaultWeights(),
	}
}

type weightsFile struct {
	Weights map[string]float64 `yaml:"weights"`
}

// LoadWeights reads a YAML weight table:
//
//	weights:
//	  Seminar: 1
//	  Pembimbing I: 2
//	  Pembimbing II: 2
//	  Penguji I: 1.5
//	  Penguji II: 1.5
func LoadWeights(path string) (grading.WeightTable, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("weights: %w", err)
	}
	return ParseWeights(b)
}

func ParseWeights(b []byte) (grading.WeightTable, error) {
	var wf weightsFile
	if err := yaml.Unmarshal(b, &wf); err != nil {
		return nil, fmt.Errorf("weights: %w", err)
	}
	w := grading.WeightTable{}
	for k, v := range wf.Weights {
		role, err := grading.ParseRole(k)
		if err != nil {
			return nil, fmt.Errorf("weights: %w", err)
		}
		w[role] = v
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envDuration(k string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(k)); err == nil && d > 0 {
		return d
	}
	return def
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
