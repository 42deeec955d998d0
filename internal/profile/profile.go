package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev"
	Mode string
	// Addr is the binding address for the server
	Addr string
	// Port is the binding port for the server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where mindcase stores its own data
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of the server
	Version string
	// Secret signs and verifies access tokens
	Secret string

	// AI Configuration
	AIAPIKey    string        // MINDCASE_AI_API_KEY
	AIBaseURL   string        // MINDCASE_AI_BASE_URL (default: https://api.openai.com/v1)
	AIChatModel string        // MINDCASE_AI_CHAT_MODEL (default: gpt-4o-mini)
	AITimeout   time.Duration // MINDCASE_AI_TIMEOUT seconds (default: 30)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsAIEnabled returns true if a completion service credential is configured.
func (p *Profile) IsAIEnabled() bool {
	return p.AIAPIKey != ""
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from MINDCASE_* environment variables.
// Values already set on the profile take precedence over environment values.
func (p *Profile) FromEnv() {
	if p.Secret == "" {
		p.Secret = os.Getenv("MINDCASE_JWT_SECRET")
	}
	if p.DSN == "" {
		p.DSN = os.Getenv("MINDCASE_DSN")
	}
	if p.Driver == "" {
		p.Driver = getEnvOrDefault("MINDCASE_DRIVER", "sqlite")
	}

	if p.AIAPIKey == "" {
		p.AIAPIKey = os.Getenv("MINDCASE_AI_API_KEY")
	}
	if p.AIBaseURL == "" {
		p.AIBaseURL = getEnvOrDefault("MINDCASE_AI_BASE_URL", "https://api.openai.com/v1")
	}
	if p.AIChatModel == "" {
		p.AIChatModel = getEnvOrDefault("MINDCASE_AI_CHAT_MODEL", "gpt-4o-mini")
	}
	if p.AITimeout == 0 {
		p.AITimeout = 30 * time.Second
		if raw := os.Getenv("MINDCASE_AI_TIMEOUT"); raw != "" {
			if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
				p.AITimeout = time.Duration(seconds) * time.Second
			}
		}
	}
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "dev"
	}

	if p.Data == "" {
		p.Data = "."
	}
	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		return err
	}
	p.Data = dataDir

	switch p.Driver {
	case "sqlite":
		if p.DSN == "" {
			dbFile := fmt.Sprintf("mindcase_%s.db", p.Mode)
			p.DSN = filepath.Join(p.Data, dbFile)
		}
	case "postgres":
		if p.DSN == "" {
			return errors.New("dsn is required for the postgres driver")
		}
	default:
		return errors.Errorf("unknown db driver %q: only 'sqlite' and 'postgres' are supported", p.Driver)
	}

	if p.Secret == "" {
		if !p.IsDev() {
			return errors.New("jwt secret is required in prod mode")
		}
		p.Secret = "mindcase-dev-secret"
	}

	if p.AITimeout <= 0 {
		p.AITimeout = 30 * time.Second
	}

	return nil
}
