package waveform

import (
	"github.com/arloliu/hspice/errs"
	"github.com/arloliu/hspice/internal/options"
	"go.uber.org/zap"
)

// DefaultChunkRows is the default minimum number of rows per streamed chunk.
const DefaultChunkRows = 10000

type config struct {
	signals    []string
	logger     *zap.Logger
	strict     bool
	sourceName string
}

func newConfig(opts []Option) (*config, error) {
	cfg := &config{logger: zap.NewNop()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Option configures a Decoder or Stream.
type Option = options.Option[*config]

// WithSignals restricts decoding to the named signals. Names are matched exactly
// against the lowercased header names; the scale is always included. Names that
// do not occur in the file are ignored.
//
// Returns ErrInvalidSignalName from the constructor if a name is empty.
func WithSignals(names ...string) Option {
	return options.New(func(c *config) error {
		for _, name := range names {
			if name == "" {
				return errs.ErrInvalidSignalName
			}
		}
		c.signals = append(c.signals, names...)

		return nil
	})
}

// WithLogger sets the logger used for decode diagnostics. A nil logger disables
// logging. The default logs nothing.
func WithLogger(logger *zap.Logger) Option {
	return options.NoError(func(c *config) {
		if logger == nil {
			logger = zap.NewNop()
		}
		c.logger = logger
	})
}

// WithStrict turns tolerated irregularities into errors: misaligned block
// lengths, trailing values that do not fill a row and, for streams, data that
// ends without the end-of-table sentinel.
func WithStrict(strict bool) Option {
	return options.NoError(func(c *config) {
		c.strict = strict
	})
}

// WithSourceName records the file name the data came from. The decoder uses its
// extension to infer the analysis type when the header does not reveal it.
func WithSourceName(name string) Option {
	return options.NoError(func(c *config) {
		c.sourceName = name
	})
}
