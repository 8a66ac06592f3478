// Package agent assembles a pass_persist engine for one deployment.
package agent

import (
	"context"
	"fmt"
	"io"

	"snmpagent/internal/config"
	"snmpagent/internal/logger"
	"snmpagent/internal/metrics"
	"snmpagent/internal/passpersist"
)

// Agent is a fully wired deployment: profile, metric source, state and engine
type Agent struct {
	profile metrics.Profile
	source  *metrics.Simulated
	state   *passpersist.AgentState
	engine  *passpersist.Engine
	log     *logger.Logger
}

type options struct {
	sampler    metrics.SystemSampler
	log        *logger.Logger
	sourceOpts []metrics.Option
}

// Option customizes agent construction
type Option func(*options)

// WithSampler replaces the gopsutil host sampler
func WithSampler(s metrics.SystemSampler) Option {
	return func(o *options) {
		o.sampler = s
	}
}

// WithLogger sets the logger whose level follows the logLevel OID
func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithSourceOptions passes options through to the simulated source
func WithSourceOptions(opts ...metrics.Option) Option {
	return func(o *options) {
		o.sourceOpts = append(o.sourceOpts, opts...)
	}
}

// New builds the agent described by cfg
func New(cfg *config.Config, opts ...Option) (*Agent, error) {
	profile, err := metrics.LookupProfile(cfg.Service)
	if err != nil {
		return nil, err
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = logger.Default()
	}
	if o.sampler == nil {
		o.sampler = metrics.NewHostSampler()
	}
	if cfg.Seed != 0 {
		o.sourceOpts = append([]metrics.Option{metrics.WithSeed(cfg.Seed)}, o.sourceOpts...)
	}

	level, ok := passpersist.ParseLogLevel(cfg.LogLevel)
	if !ok {
		return nil, fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}

	state := passpersist.NewAgentState(level)
	o.log.SetLevel(logger.Level(level))
	state.OnLogLevelChange(func(l passpersist.LogLevel) {
		o.log.SetLevel(logger.Level(l))
		o.log.Info("Log level changed to %s", l)
	})

	source := metrics.NewSimulated(profile, o.sampler, state, o.sourceOpts...)

	reg, err := BuildRegistry(source, state)
	if err != nil {
		return nil, err
	}

	return &Agent{
		profile: profile,
		source:  source,
		state:   state,
		engine:  passpersist.NewEngine(reg, state, passpersist.WithLogger(o.log)),
		log:     o.log,
	}, nil
}

// Profile returns the deployment profile
func (a *Agent) Profile() metrics.Profile {
	return a.profile
}

// State returns the agent counters
func (a *Agent) State() *passpersist.AgentState {
	return a.state
}

// Engine returns the protocol engine
func (a *Agent) Engine() *passpersist.Engine {
	return a.engine
}

// Serve runs the pass_persist loop until EOF or cancellation
func (a *Agent) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	a.log.Info("Serving %s (%s) with %d OIDs", a.profile.Name, a.profile.Key, a.engine.Registry().Len())
	err := a.engine.Serve(ctx, r, w)
	stats := a.state.Snapshot()
	a.log.Info("Stopped after %d requests, %d errors", stats.Requests, stats.Errors)
	return err
}

// Query performs a one-shot GET by metric name
func (a *Agent) Query(name string) (string, error) {
	return a.engine.Query(name)
}
