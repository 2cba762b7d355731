package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/K4zzu/Nfc-PokeDex/internal/model"
)

// Default configuration values.
const (
	// DefaultAPIBaseURL is the species endpoint; records are fetched from
	// {base}/{id}.
	DefaultAPIBaseURL = "https://pokeapi.co/api/v2/pokemon"

	// DefaultAPITimeout bounds a single species fetch.
	DefaultAPITimeout = 10 * time.Second

	// DefaultUserAgent identifies the Pokédex in API requests.
	DefaultUserAgent = "PokeDex/1.0 (+https://github.com/K4zzu/Nfc-PokeDex)"

	// DefaultLogLimit caps the session log.
	DefaultLogLimit = 500

	// DefaultHighlightDuration is how long a card stays highlighted.
	DefaultHighlightDuration = 1500 * time.Millisecond

	// DefaultListenAddr is the address of the HTTP surface. It is bound to
	// loopback because the server has no authentication.
	DefaultListenAddr = "127.0.0.1:8080"

	// DefaultPrefetchConcurrency limits parallel fetches when a page of
	// captured cards is warmed.
	DefaultPrefetchConcurrency = 4

	// AppName is the application name used for XDG directory paths.
	AppName = "pokedex"
)

// Config holds all configuration options of the Pokédex.
// Fields tagged with env can be overridden from the environment.
type Config struct {
	// APIBaseURL is the species endpoint.
	APIBaseURL string `env:"POKEDEX_API_URL"`

	// APITimeout bounds each species fetch.
	APITimeout time.Duration `env:"POKEDEX_API_TIMEOUT"`

	// Proxy is an optional SOCKS5 proxy in "host:port" form.
	Proxy string `env:"POKEDEX_API_PROXY"`

	// UserAgent is sent with API requests.
	UserAgent string

	// DBDir holds the SQLite database with the captured set.
	// Defaults to the XDG data directory (~/.local/share/pokedex on Linux).
	DBDir string `env:"POKEDEX_DB_DIR"`

	// LogLimit is the maximum number of session log entries kept.
	LogLimit int

	// HighlightDuration is how long a card stays highlighted.
	HighlightDuration time.Duration

	// ListenAddr is the address used by the serve command.
	ListenAddr string `env:"POKEDEX_LISTEN"`

	// Sound enables terminal bell cues.
	Sound bool `env:"POKEDEX_SOUND"`

	// PrefetchConcurrency limits parallel fetches when warming a page.
	PrefetchConcurrency int

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is an explicit configuration file. When empty,
	// FindConfigFile searches the current and home directories.
	ConfigFilePath string

	// Serials maps tag serial numbers to species ids. It is consulted
	// before any payload record of a scanned tag.
	Serials map[string]model.ID
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		APIBaseURL:          DefaultAPIBaseURL,
		APITimeout:          DefaultAPITimeout,
		UserAgent:           DefaultUserAgent,
		DBDir:               XDGDataDir(),
		LogLimit:            DefaultLogLimit,
		HighlightDuration:   DefaultHighlightDuration,
		ListenAddr:          DefaultListenAddr,
		Sound:               true,
		PrefetchConcurrency: DefaultPrefetchConcurrency,
		Serials:             make(map[string]model.ID),
	}
}

// XDGDataDir returns the XDG data directory for the Pokédex.
// On Linux: ~/.local/share/pokedex
// On macOS: ~/Library/Application Support/pokedex
// On Windows: %LOCALAPPDATA%\pokedex
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for the Pokédex.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ApplyFile overlays the values set in f. Zero values in f leave the
// current setting unchanged.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	if f.API.BaseURL != "" {
		c.APIBaseURL = f.API.BaseURL
	}
	if f.API.Timeout != 0 {
		c.APITimeout = f.API.Timeout
	}
	if f.API.Proxy != "" {
		c.Proxy = f.API.Proxy
	}
	if f.API.UserAgent != "" {
		c.UserAgent = f.API.UserAgent
	}
	if f.DBDir != "" {
		c.DBDir = f.DBDir
	}
	if f.Sound != nil {
		c.Sound = *f.Sound
	}
	if f.LogLimit != 0 {
		c.LogLimit = f.LogLimit
	}
	if f.Highlight != 0 {
		c.HighlightDuration = f.Highlight
	}
	if f.Listen != "" {
		c.ListenAddr = f.Listen
	}
	if f.Prefetch != 0 {
		c.PrefetchConcurrency = f.Prefetch
	}
	if len(f.Serials) > 0 {
		if c.Serials == nil {
			c.Serials = make(map[string]model.ID, len(f.Serials))
		}
		for serial, id := range f.Serials {
			c.Serials[serial] = model.ID(id)
		}
	}
}

// Validate checks if the configuration is valid and returns the first
// problem found.
func (c *Config) Validate() error {
	if c.APITimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.LogLimit <= 0 {
		return ErrInvalidLogLimit
	}
	if c.HighlightDuration <= 0 {
		return ErrInvalidHighlight
	}
	if c.PrefetchConcurrency <= 0 {
		return ErrInvalidConcurrency
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidBaseURL
	}
	for serial, id := range c.Serials {
		if serial == "" || !id.Valid() {
			return ErrInvalidSerialMapping
		}
	}
	return nil
}
