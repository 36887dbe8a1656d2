package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Environment names accepted by WithEnvironment.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Format is the handler output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Config selects the logger setup from environment variables.
// Empty Level and Format mean the defaults of Env.
type Config struct {
	Env     string `env:"APP_ENV" envDefault:"development"`
	Service string `env:"APP_NAME" envDefault:"sessiond"`
	Level   string `env:"LOG_LEVEL"`
	Format  string `env:"LOG_FORMAT"`
}

// Option configures logger creation.
type Option func(*config)

type config struct {
	env        string
	service    string
	level      *slog.Level
	format     Format
	output     io.Writer
	extractors []ContextExtractor
}

// WithEnvironment applies the defaults of env and tags every record with env
// and service. Production and staging log JSON at info, everything else is
// development: text at debug.
func WithEnvironment(env, service string) Option {
	return func(c *config) {
		c.env = normalizeEnv(env)
		c.service = service
	}
}

// WithLevel overrides the minimum level.
func WithLevel(l slog.Level) Option {
	return func(c *config) { c.level = &l }
}

// WithFormat overrides the output format. It panics on unknown formats;
// use ParseFormat for untrusted input.
func WithFormat(f Format) Option {
	if f != FormatJSON && f != FormatText {
		panic(fmt.Errorf("logger: invalid format %q", f))
	}
	return func(c *config) { c.format = f }
}

// WithOutput sets the destination. Nil writers are ignored.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithContextExtractors registers functions that add attributes from the
// record's context. Nil extractors are skipped.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		for _, ex := range extractors {
			if ex != nil {
				c.extractors = append(c.extractors, ex)
			}
		}
	}
}

// SetAsDefault makes l the slog default logger.
func SetAsDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

// New creates a logger. Without options it writes JSON at info level to stdout.
func New(opts ...Option) *slog.Logger {
	cfg := &config{output: os.Stdout}
	for _, opt := range opts {
		opt(cfg)
	}

	level, format := slog.LevelInfo, FormatJSON
	if cfg.env == EnvDevelopment {
		level, format = slog.LevelDebug, FormatText
	}
	if cfg.level != nil {
		level = *cfg.level
	}
	if cfg.format != "" {
		format = cfg.format
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if format == FormatText {
		handler = slog.NewTextHandler(cfg.output, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(cfg.output, handlerOpts)
	}

	var attrs []slog.Attr
	if cfg.service != "" {
		attrs = append(attrs, slog.String("service", cfg.service))
	}
	if cfg.env != "" {
		attrs = append(attrs, slog.String("env", cfg.env))
	}
	if len(attrs) > 0 {
		handler = handler.WithAttrs(attrs)
	}

	return slog.New(NewLogHandlerDecorator(handler, cfg.extractors...))
}

// NewFromConfig creates a logger from cfg. Options run after the config,
// so they can override it.
func NewFromConfig(cfg Config, opts ...Option) (*slog.Logger, error) {
	base := []Option{WithEnvironment(cfg.Env, cfg.Service)}

	if cfg.Level != "" {
		level, err := ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		base = append(base, WithLevel(level))
	}
	if cfg.Format != "" {
		format, err := ParseFormat(cfg.Format)
		if err != nil {
			return nil, err
		}
		base = append(base, WithFormat(format))
	}

	return New(append(base, opts...)...), nil
}

// ParseLevel parses debug, info, warn or error, with optional offsets such as "info+2".
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, errors.Join(ErrInvalidLevel, err)
	}
	return l, nil
}

// ParseFormat parses "json" or "text", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatText:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
}

func normalizeEnv(env string) string {
	switch strings.ToLower(env) {
	case EnvProduction, "prod":
		return EnvProduction
	case EnvStaging, "stage":
		return EnvStaging
	default:
		return EnvDevelopment
	}
}
