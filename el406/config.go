package el406

import (
	"errors"
	"fmt"
	"time"

	"github.com/biocule/go-el406/logger"
)

// Default timing values for the communication engine.
const (
	// DefaultTimeout is the fallback operation timeout for commands whose
	// builder does not compute its own budget.
	DefaultTimeout = 60 * time.Second

	// DefaultAckTimeout bounds the wait for the ACK/NAK handshake byte.
	DefaultAckTimeout = time.Second

	// DefaultReadyTimeout bounds the readiness wait before a step command
	// (the device must not be RUNNING when a new step starts).
	DefaultReadyTimeout = 10 * time.Second

	// DefaultSettleDelay is the fixed pause between a step command's
	// acknowledgement and the first completion poll.
	DefaultSettleDelay = 500 * time.Millisecond

	// DefaultPollInterval is the pause between completion polls.
	DefaultPollInterval = time.Second

	// DefaultInterWriteDelay is the gap between writing a frame header and
	// its payload. The device needs it to latch the header.
	DefaultInterWriteDelay = 10 * time.Millisecond
)

// Timing range limits.
const (
	MinTimeout = time.Second
	MaxTimeout = time.Hour

	MinAckTimeout = 100 * time.Millisecond
	MaxAckTimeout = 10 * time.Second

	MinReadyTimeout = time.Second
	MaxReadyTimeout = 60 * time.Second

	MaxSettleDelay = 5 * time.Second

	MinPollInterval = 100 * time.Millisecond
	MaxPollInterval = 10 * time.Second
)

// Config holds the device configuration. Create one through NewDevice's
// options; fields are read-only after construction.
type Config struct {
	plateType PlateType

	timeout         time.Duration
	ackTimeout      time.Duration
	readyTimeout    time.Duration
	settleDelay     time.Duration
	pollInterval    time.Duration
	interWriteDelay time.Duration

	logger logger.Logger
}

func newConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		plateType:       Plate96,
		timeout:         DefaultTimeout,
		ackTimeout:      DefaultAckTimeout,
		readyTimeout:    DefaultReadyTimeout,
		settleDelay:     DefaultSettleDelay,
		pollInterval:    DefaultPollInterval,
		interWriteDelay: DefaultInterWriteDelay,
		logger:          logger.GetLogger(),
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// --- Getters ---

// Timeout returns the fallback operation timeout.
func (cfg *Config) Timeout() time.Duration { return cfg.timeout }

// AckTimeout returns the ACK/NAK handshake timeout.
func (cfg *Config) AckTimeout() time.Duration { return cfg.ackTimeout }

// ReadyTimeout returns the pre-step readiness wait timeout.
func (cfg *Config) ReadyTimeout() time.Duration { return cfg.readyTimeout }

// SettleDelay returns the post-acknowledgement settle delay.
func (cfg *Config) SettleDelay() time.Duration { return cfg.settleDelay }

// PollInterval returns the completion poll interval.
func (cfg *Config) PollInterval() time.Duration { return cfg.pollInterval }

// GetLogger returns the configured logger.
func (cfg *Config) GetLogger() logger.Logger { return cfg.logger }

// --- Option ---

// Option is a functional option for configuring a Device.
type Option interface {
	apply(*Config) error
}

type optFunc func(*Config) error

func (f optFunc) apply(cfg *Config) error { return f(cfg) }

// WithPlateType sets the initial plate format. Default Plate96.
func WithPlateType(pt PlateType) Option {
	return optFunc(func(cfg *Config) error {
		if !pt.valid() {
			return fmt.Errorf("%w: plate type %d", ErrOutOfRange, uint8(pt))
		}
		cfg.plateType = pt

		return nil
	})
}

// WithTimeout sets the fallback operation timeout.
func WithTimeout(d time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		if d < MinTimeout || d > MaxTimeout {
			return fmt.Errorf("el406: timeout %v out of range [%v, %v]", d, MinTimeout, MaxTimeout)
		}
		cfg.timeout = d

		return nil
	})
}

// WithAckTimeout sets the ACK/NAK handshake timeout.
func WithAckTimeout(d time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		if d < MinAckTimeout || d > MaxAckTimeout {
			return fmt.Errorf("el406: ACK timeout %v out of range [%v, %v]", d, MinAckTimeout, MaxAckTimeout)
		}
		cfg.ackTimeout = d

		return nil
	})
}

// WithReadyTimeout sets the pre-step readiness wait timeout.
func WithReadyTimeout(d time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		if d < MinReadyTimeout || d > MaxReadyTimeout {
			return fmt.Errorf("el406: ready timeout %v out of range [%v, %v]", d, MinReadyTimeout, MaxReadyTimeout)
		}
		cfg.readyTimeout = d

		return nil
	})
}

// WithSettleDelay sets the pause between a step command's
// acknowledgement and the first completion poll.
func WithSettleDelay(d time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		if d < 0 || d > MaxSettleDelay {
			return fmt.Errorf("el406: settle delay %v out of range [0, %v]", d, MaxSettleDelay)
		}
		cfg.settleDelay = d

		return nil
	})
}

// WithPollInterval sets the completion poll interval.
func WithPollInterval(d time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		if d < MinPollInterval || d > MaxPollInterval {
			return fmt.Errorf("el406: poll interval %v out of range [%v, %v]", d, MinPollInterval, MaxPollInterval)
		}
		cfg.pollInterval = d

		return nil
	})
}

// WithLogger sets the logger for the device.
func WithLogger(l logger.Logger) Option {
	return optFunc(func(cfg *Config) error {
		if l == nil {
			return errors.New("el406: logger must not be nil")
		}
		cfg.logger = l

		return nil
	})
}
