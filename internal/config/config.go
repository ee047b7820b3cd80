package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/alexjbarnes/contact-sync/internal/contacts"
)

// Config holds all environment-based configuration for contact-sync.
type Config struct {
	// CardDAV account credentials.
	Username  string `env:"CARDDAV_USERNAME"`
	Password  string `env:"CARDDAV_PASSWORD"`
	ServerURL string `env:"CARDDAV_SERVER_URL" envDefault:"https://contacts.icloud.com"`

	// Vault directory contact notes are written into.
	VaultDir string `env:"VAULT_DIR"`

	// Folder inside the vault holding the contact notes.
	Folder string `env:"CONTACTS_FOLDER" envDefault:"Contacts"`

	// NameHeading controls whether each note body starts with a
	// "# Full Name" heading.
	NameHeading bool `env:"NAME_HEADING" envDefault:"true"`

	// Per-category toggles for labeled presentation values.
	TelLabels     bool `env:"TEL_LABELS" envDefault:"true"`
	EmailLabels   bool `env:"EMAIL_LABELS" envDefault:"true"`
	URLLabels     bool `env:"URL_LABELS" envDefault:"true"`
	RelatedLabels bool `env:"RELATED_LABELS" envDefault:"true"`
	AddressLabels bool `env:"ADDRESS_LABELS" envDefault:"true"`

	// ExcludedKeys is a space-delimited list of vCard keys left out of
	// note frontmatter. Empty means the built-in default set.
	ExcludedKeys string `env:"EXCLUDED_KEYS"`

	// Groups limits syncing to the named contact groups. Empty means
	// all contacts.
	Groups []string `env:"CONTACT_GROUPS" envSeparator:","`

	// SyncInterval is the pause between passes in daemon mode.
	SyncInterval time.Duration `env:"SYNC_INTERVAL" envDefault:"1h"`

	// Environment controls log format
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
}

// warnInsecureEnvFile checks whether the .env file (if present) has
// overly permissive permissions. On Unix systems, group or world
// readable files risk exposing credentials to other users.
func warnInsecureEnvFile() {
	if runtime.GOOS == "windows" {
		return
	}

	info, err := os.Stat(".env")
	if err != nil {
		return // file does not exist, nothing to check
	}

	mode := info.Mode().Perm()
	if mode&0o077 != 0 {
		log.Printf("WARNING: .env file has insecure permissions %04o; recommended 0600", mode)
	}
}

// Load reads configuration from environment variables.
// It first attempts to load a .env file if present, then parses env vars.
func Load() (*Config, error) {
	_ = godotenv.Load()

	warnInsecureEnvFile()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.ExcludedKeys == "" {
		cfg.ExcludedKeys = contacts.DefaultExcludedKeys
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	// Resolve VaultDir to an absolute path at startup. The store's
	// path escape checks rely on string prefix comparison, which only
	// works reliably with absolute paths.
	absDir, err := filepath.Abs(cfg.VaultDir)
	if err != nil {
		return nil, fmt.Errorf("resolving vault dir to absolute path: %w", err)
	}

	cfg.VaultDir = absDir

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Username == "" {
		return fmt.Errorf("CARDDAV_USERNAME is required")
	}

	if c.Password == "" {
		return fmt.Errorf("CARDDAV_PASSWORD is required")
	}

	if c.VaultDir == "" {
		return fmt.Errorf("VAULT_DIR is required")
	}

	if c.SyncInterval < time.Minute {
		return fmt.Errorf("SYNC_INTERVAL must be at least one minute")
	}

	return nil
}

// IsProduction returns true when the environment is set to production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Settings converts the configuration to the engine's settings
// surface, normalizing the folder and trimming group names.
func (c *Config) Settings() contacts.Settings {
	groups := make([]string, 0, len(c.Groups))

	for _, g := range c.Groups {
		if g = strings.TrimSpace(g); g != "" {
			groups = append(groups, g)
		}
	}

	if len(groups) == 0 {
		groups = nil
	}

	return contacts.Settings{
		Username:      c.Username,
		Password:      c.Password,
		ServerURL:     c.ServerURL,
		Folder:        contacts.NormalizeFolder(c.Folder),
		IsNameHeading: c.NameHeading,
		TelLabels:     c.TelLabels,
		EmailLabels:   c.EmailLabels,
		URLLabels:     c.URLLabels,
		RelatedLabels: c.RelatedLabels,
		AddressLabels: c.AddressLabels,
		ExcludedKeys:  c.ExcludedKeys,
		Groups:        groups,
	}
}
