package lobby

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config controls how the SDK connects and how much state it retains.
type Config struct {
	URL      string `env:"LOBBY_URL"`
	Username string `env:"LOBBY_USERNAME"`

	HandshakeTimeout time.Duration `env:"LOBBY_HANDSHAKE_TIMEOUT"`
	ReadTimeout      time.Duration `env:"LOBBY_READ_TIMEOUT"`
	WriteTimeout     time.Duration `env:"LOBBY_WRITE_TIMEOUT"`

	// SendBuffer is the outbound queue depth. Sends fail immediately with
	// ErrorSend when the queue is full; they never block.
	SendBuffer int `env:"LOBBY_SEND_BUFFER"`

	// HistoryLimit caps the retained message history. Zero keeps the full
	// history for the life of the session.
	HistoryLimit int `env:"LOBBY_HISTORY_LIMIT"`
}

// DefaultConfig returns sensible defaults.
// Set a timeout to 0 to disable it.
//
// ReadTimeout defaults to 0: it bounds each single read, and a chat
// connection routinely sits idle far longer than any reasonable per-read
// bound. Setting it kills the read loop on an idle connection.
func DefaultConfig() Config {
	return Config{
		HandshakeTimeout: 10 * time.Second,
		WriteTimeout:     10 * time.Second,
		SendBuffer:       16,
	}
}

// ConfigFromEnv loads configuration from LOBBY_* environment variables on
// top of the defaults.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, WrapError(ErrorInvalidConfig, "parse env", err)
	}
	return cfg, nil
}

// Validate reports whether the config can open a session.
func (c Config) Validate() error {
	if c.URL == "" {
		return NewError(ErrorInvalidConfig, "empty URL")
	}
	if c.Username == "" {
		return NewError(ErrorInvalidConfig, "empty username")
	}
	return nil
}
