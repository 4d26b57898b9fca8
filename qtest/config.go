package qtest

import (
	"fmt"
	"strconv"
	"time"

	"github.com/arloliu/go-qlist/logger"
	"github.com/arloliu/go-qlist/queue"
)

// Default option values.
const (
	DefaultStringLength = 1024
	DefaultErrorLimit   = 5
	DefaultTimeLimit    = 1 * time.Second
	DefaultVerbose      = 1
)

// Option range limits.
const (
	MinStringLength = 1
	MaxStringLength = 1 << 20

	MinErrorLimit = 1
	MaxErrorLimit = 1000

	MinTimeLimit = 1 * time.Millisecond
	MaxTimeLimit = 1 * time.Hour

	MaxVerbose = 3

	MaxSourceDepth = 16
)

// Config holds the interpreter settings. The "option" command changes them at runtime.
type Config struct {
	// stringLength is the maximum number of bytes of a value copied out on removal and shown.
	stringLength int
	// errorLimit is the number of errors after which the interpreter stops.
	errorLimit int
	// timeLimit bounds a single queue operation; zero disables it.
	timeLimit time.Duration
	// failPercent is the probability of an allocation failure.
	failPercent int

	verbose int
	echo    bool
	verify  bool
	seed    uint64

	logger logger.Logger
}

// NewConfig creates an interpreter configuration.
// opts are functional options applied in order; see With* functions.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		stringLength: DefaultStringLength,
		errorLimit:   DefaultErrorLimit,
		timeLimit:    DefaultTimeLimit,
		verbose:      DefaultVerbose,
		seed:         uint64(time.Now().UnixNano()), //nolint:gosec
		logger:       logger.GetLogger(),
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// StringLength returns the maximum copied and shown value length.
func (cfg *Config) StringLength() int { return cfg.stringLength }

// ErrorLimit returns the error budget.
func (cfg *Config) ErrorLimit() int { return cfg.errorLimit }

// TimeLimit returns the per-operation time limit, zero when disabled.
func (cfg *Config) TimeLimit() time.Duration { return cfg.timeLimit }

// FailPercent returns the allocation failure probability.
func (cfg *Config) FailPercent() int { return cfg.failPercent }

// Verbose returns the verbosity level.
func (cfg *Config) Verbose() int { return cfg.verbose }

// Echo reports whether commands are echoed before execution.
func (cfg *Config) Echo() bool { return cfg.echo }

// Verify reports whether queues are checked against the reference model.
func (cfg *Config) Verify() bool { return cfg.verify }

// Seed returns the seed of the random sources.
func (cfg *Config) Seed() uint64 { return cfg.seed }

// Logger returns the configured logger.
func (cfg *Config) Logger() logger.Logger { return cfg.logger }

// set applies the option called name from its textual value.
func (cfg *Config) set(name, value string) error {
	switch name {
	case "echo", "verify":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: option %s: %q is not a boolean", ErrInvalidArgument, name, value)
		}
		if name == "echo" {
			return WithEcho(b).apply(cfg)
		}
		return WithVerify(b).apply(cfg)
	case "limit":
		ms, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: option limit: %q is not a number", ErrInvalidArgument, value)
		}
		return WithTimeLimit(time.Duration(ms) * time.Millisecond).apply(cfg)
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%w: option %s: %q is not a number", ErrInvalidArgument, name, value)
	}
	switch name {
	case "length":
		return WithStringLength(n).apply(cfg)
	case "fail":
		return WithErrorLimit(n).apply(cfg)
	case "malloc":
		return WithFailPercent(n).apply(cfg)
	case "verbose":
		return WithVerbose(n).apply(cfg)
	}

	return fmt.Errorf("%w: %s", ErrUnknownOption, name)
}

// options lists the runtime option names and current values in display order.
func (cfg *Config) options() [][2]string {
	return [][2]string{
		{"echo", strconv.FormatBool(cfg.echo)},
		{"fail", strconv.Itoa(cfg.errorLimit)},
		{"length", strconv.Itoa(cfg.stringLength)},
		{"limit", strconv.FormatInt(cfg.timeLimit.Milliseconds(), 10)},
		{"malloc", strconv.Itoa(cfg.failPercent)},
		{"verbose", strconv.Itoa(cfg.verbose)},
		{"verify", strconv.FormatBool(cfg.verify)},
	}
}

// --- Option ---

// Option is a functional option for configuring a Config.
type Option interface {
	apply(*Config) error
}

type optFunc func(*Config) error

func (f optFunc) apply(cfg *Config) error { return f(cfg) }

// WithStringLength sets the maximum number of bytes copied out on removal and shown.
// Valid range: [1, 1048576]. Default: 1024.
func WithStringLength(n int) Option {
	return optFunc(func(cfg *Config) error {
		if n < MinStringLength || n > MaxStringLength {
			return fmt.Errorf("qtest: string length %d out of range [%d, %d]", n, MinStringLength, MaxStringLength)
		}
		cfg.stringLength = n

		return nil
	})
}

// WithErrorLimit sets the number of errors after which the interpreter stops.
// Valid range: [1, 1000]. Default: 5.
func WithErrorLimit(n int) Option {
	return optFunc(func(cfg *Config) error {
		if n < MinErrorLimit || n > MaxErrorLimit {
			return fmt.Errorf("qtest: error limit %d out of range [%d, %d]", n, MinErrorLimit, MaxErrorLimit)
		}
		cfg.errorLimit = n

		return nil
	})
}

// WithTimeLimit bounds every queue operation. Zero disables the limit.
// Valid range: 0 or [1ms, 1h]. Default: 1s.
func WithTimeLimit(d time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		if d != 0 && (d < MinTimeLimit || d > MaxTimeLimit) {
			return fmt.Errorf("qtest: time limit %v out of range [%v, %v]", d, MinTimeLimit, MaxTimeLimit)
		}
		cfg.timeLimit = d

		return nil
	})
}

// WithFailPercent sets the probability, in percent, of an allocation failure.
// Valid range: [0, 100]. Default: 0.
func WithFailPercent(p int) Option {
	return optFunc(func(cfg *Config) error {
		if p < queue.MinFailPercent || p > queue.MaxFailPercent {
			return fmt.Errorf("qtest: fail percent %d out of range [%d, %d]", p, queue.MinFailPercent, queue.MaxFailPercent)
		}
		cfg.failPercent = p

		return nil
	})
}

// WithVerbose sets the verbosity: 0 prints errors only, 1 prints command results,
// 2 and above also logs every command at debug level.
func WithVerbose(level int) Option {
	return optFunc(func(cfg *Config) error {
		if level < 0 || level > MaxVerbose {
			return fmt.Errorf("qtest: verbose level %d out of range [0, %d]", level, MaxVerbose)
		}
		cfg.verbose = level

		return nil
	})
}

// WithEcho echoes every command before executing it.
func WithEcho(enabled bool) Option {
	return optFunc(func(cfg *Config) error {
		cfg.echo = enabled
		return nil
	})
}

// WithVerify mirrors every command on a reference model and compares the queues after each one.
func WithVerify(enabled bool) Option {
	return optFunc(func(cfg *Config) error {
		cfg.verify = enabled
		return nil
	})
}

// WithSeed seeds random value generation and allocation fault injection.
func WithSeed(seed uint64) Option {
	return optFunc(func(cfg *Config) error {
		cfg.seed = seed
		return nil
	})
}

// WithLogger sets the logger of the interpreter and the queues it creates.
func WithLogger(l logger.Logger) Option {
	return optFunc(func(cfg *Config) error {
		if l == nil {
			return fmt.Errorf("qtest: logger is nil")
		}
		cfg.logger = l

		return nil
	})
}
