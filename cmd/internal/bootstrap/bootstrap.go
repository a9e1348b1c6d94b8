package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-sitepub"
	"github.com/goliatone/go-sitepub/internal/di"
	"github.com/goliatone/go-sitepub/pkg/interfaces"
	"github.com/spf13/pflag"
)

// ErrUsage reports a wrong number of positional arguments.
var ErrUsage = errors.New("usage")

// Options captures configuration shared by the sitepub CLIs.
type Options struct {
	ConfigPath     string
	EnvFiles       []string
	LogLevel       string
	LogFormat      string
	LoggerProvider interfaces.LoggerProvider
	DIOptions      []di.Option
}

// BindFlags registers the flags every CLI accepts.
func (o *Options) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.ConfigPath, "config", "", "Path to a YAML configuration file")
	fs.StringSliceVar(&o.EnvFiles, "env-file", nil, "Dotenv files loaded before SITEPUB_* overrides (defaults to .env)")
	fs.StringVar(&o.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	fs.StringVar(&o.LogFormat, "log-format", "", "Log format for the gologger provider (console, json, pretty)")
}

// BuildModule loads configuration, applies flag overrides and constructs the module.
func BuildModule(opts Options) (*sitepub.Module, error) {
	cfg, err := sitepub.LoadConfig(strings.TrimSpace(opts.ConfigPath), opts.EnvFiles...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Logging.Level = level
	}
	if format := strings.TrimSpace(opts.LogFormat); format != "" {
		cfg.Logging.Format = format
		if cfg.Logging.Provider == "console" {
			cfg.Logging.Provider = "gologger"
		}
	}

	diOpts := append([]di.Option{}, opts.DIOptions...)
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := sitepub.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise sitepub module: %w", err)
	}
	return module, nil
}

// NewFlagSet returns a flag set that reports errors instead of exiting and
// prints usage to stderr.
func NewFlagSet(name, positional string, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: %s [flags] %s\n", name, positional)
		fs.PrintDefaults()
	}
	return fs
}

// Positional parses args and checks that exactly want positional arguments
// remain. On mismatch it prints usage and returns ErrUsage.
func Positional(fs *pflag.FlagSet, args []string, want int) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	rest := fs.Args()
	if len(rest) != want {
		fs.Usage()
		return nil, fmt.Errorf("%w: expected %d arguments, got %d", ErrUsage, want, len(rest))
	}
	return rest, nil
}

// Fail prints err prefixed with name and returns the process exit code.
func Fail(stderr io.Writer, name string, err error) int {
	if err == nil {
		return 0
	}
	if !errors.Is(err, ErrUsage) {
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
	}
	return 1
}
