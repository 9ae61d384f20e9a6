package agent

import (
	"log"
	"os"
	"time"

	"pkt.systems/pdfcreate"
)

// Config controls the tool server.
type Config struct {
	// PublicDir holds the generated and generated_user output directories.
	PublicDir string
	// Timeout bounds a single tool execution.
	Timeout time.Duration
	// Now stamps generated file names.
	Now func() time.Time
	// Options is passed to pdfcreate.Generate. A nil Warnf logs warnings.
	Options pdfcreate.Options
	Logger  *log.Logger
}

// DefaultConfig serves ./public with a one minute tool timeout.
func DefaultConfig() Config {
	return Config{
		PublicDir: "public",
		Timeout:   60 * time.Second,
		Now:       time.Now,
		Logger:    log.New(os.Stderr, "agent: ", log.LstdFlags),
	}
}

func applyConfig(dst *Config, src Config) {
	if src.PublicDir != "" {
		dst.PublicDir = src.PublicDir
	}
	if src.Timeout > 0 {
		dst.Timeout = src.Timeout
	}
	if src.Now != nil {
		dst.Now = src.Now
	}
	if src.Logger != nil {
		dst.Logger = src.Logger
	}
	dst.Options = src.Options
}
