package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds process-level settings shared by the TUI, the HTTP API and
// the operator commands. LLM settings live in the llm package.
type Config struct {
	// DBPath is the SQLite database file.
	DBPath string

	// LogFile is where the TUI writes its log. Empty means stderr.
	LogFile string

	// LogLevel is a logrus level name ("debug", "info", "warn", ...).
	LogLevel string

	// Addr is the listen address for `datapath serve`.
	Addr string

	// JWTSecret signs API session tokens.
	JWTSecret string

	// EphemeralSecret is set when JWTSecret was generated for this
	// process because DATAPATH_JWT_SECRET is unset. Tokens then do not
	// survive a restart.
	EphemeralSecret bool

	// CORSOrigins lists the origins allowed to call the API.
	CORSOrigins []string
}

const (
	defaultAddr     = ":8080"
	defaultLogLevel = "info"
)

// Load reads a .env file from the working directory (if any) and then
// builds a Config from DATAPATH_* environment variables.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		LogLevel:  getEnvOrDefault("DATAPATH_LOG_LEVEL", defaultLogLevel),
		Addr:      getEnvOrDefault("DATAPATH_ADDR", defaultAddr),
		JWTSecret: os.Getenv("DATAPATH_JWT_SECRET"),
		LogFile:   os.Getenv("DATAPATH_LOG_FILE"),
	}

	if cfg.JWTSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return Config{}, err
		}
		cfg.JWTSecret = secret
		cfg.EphemeralSecret = true
	}

	if origins := os.Getenv("DATAPATH_CORS_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	} else {
		cfg.CORSOrigins = []string{"http://localhost:3000"}
	}

	dbPath, err := DefaultDBPath()
	if err != nil {
		return Config{}, err
	}
	cfg.DBPath = dbPath

	if cfg.LogFile == "" {
		logPath, err := DefaultLogPath()
		if err != nil {
			return Config{}, err
		}
		cfg.LogFile = logPath
	}

	return cfg, nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. DATAPATH_DB environment variable
// 2. $XDG_DATA_HOME/datapath/datapath.db
// 3. ~/.local/share/datapath/datapath.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("DATAPATH_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "datapath", "datapath.db")
	return p, EnsureDir(p)
}

// DefaultLogPath returns $XDG_STATE_HOME/datapath/datapath.log, falling
// back to ~/.local/state.
func DefaultLogPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}

	p := filepath.Join(stateHome, "datapath", "datapath.log")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// randomSecret returns 32 random bytes, hex encoded.
func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate JWT secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
