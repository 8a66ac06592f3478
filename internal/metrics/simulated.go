package metrics

import (
	"math/rand/v2"
	"sync"
	"time"

	constants "snmpagent/config"
	"snmpagent/pkg/utils"
)

// Simulated layers a deployment profile on top of live host metrics.
// It is safe for concurrent use.
type Simulated struct {
	profile  Profile
	sampler  SystemSampler
	requests RequestCounter
	now      func() time.Time
	started  time.Time

	mu      sync.Mutex
	rng     *rand.Rand
	counter int64
	active  int
}

// Option configures a Simulated source
type Option func(*Simulated)

// WithRand sets the random source used for simulated variation
func WithRand(r *rand.Rand) Option {
	return func(s *Simulated) {
		s.rng = r
	}
}

// WithSeed seeds the random source deterministically
func WithSeed(seed uint64) Option {
	return func(s *Simulated) {
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithClock overrides the time source used for uptime
func WithClock(now func() time.Time) Option {
	return func(s *Simulated) {
		s.now = now
	}
}

// NewSimulated creates the source for profile p. requests is consulted only
// when the profile's primary counter is the request count.
func NewSimulated(p Profile, sampler SystemSampler, requests RequestCounter, opts ...Option) *Simulated {
	s := &Simulated{
		profile:  p,
		sampler:  sampler,
		requests: requests,
		now:      time.Now,
		active:   p.ActiveServices,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		seed := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if p.ActiveDrift != nil {
		s.active = p.ActiveDrift.Start
	}
	s.started = s.now()
	return s
}

// Profile returns the deployment profile
func (s *Simulated) Profile() Profile {
	return s.profile
}

// ServiceName returns the deployment's display name
func (s *Simulated) ServiceName() string {
	return s.profile.Name
}

// Status is always UP; there is no health check behind it
func (s *Simulated) Status() string {
	return constants.STATUS_UP
}

// CPUPercent returns host CPU plus the deployment's simulated load, capped at 100
func (s *Simulated) CPUPercent() (float64, error) {
	base, err := s.sampler.CPUPercent()
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	load := s.uniform(s.profile.CPULoad)
	s.mu.Unlock()

	return utils.Round(utils.ClampPercent(base+load), 1), nil
}

// MemoryMB returns used host memory plus the deployment's simulated footprint
func (s *Simulated) MemoryMB() (float64, error) {
	used, err := s.sampler.MemoryUsedBytes()
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	extra := s.uniform(s.profile.MemoryExtraMB)
	s.mu.Unlock()

	return utils.Round(float64(used)/1024/1024+extra, 1), nil
}

// LatencyMs returns a simulated average response latency
func (s *Simulated) LatencyMs() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return utils.Round(s.profile.LatencyBase+s.uniform(s.profile.LatencyJitter), 1)
}

// Uptime returns time since the source was created
func (s *Simulated) Uptime() string {
	return FormatUptime(s.now().Sub(s.started))
}

// PrimaryCounter returns the deployment's headline counter. For stepping
// profiles every call advances it.
func (s *Simulated) PrimaryCounter() int64 {
	if s.profile.Counter == CounterRequests {
		if s.requests == nil {
			return 0
		}
		return s.requests.RequestCount()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter += s.intn(s.profile.CounterStep)
	return s.counter
}

// NetworkInKB returns cumulative KB received plus simulated traffic
func (s *Simulated) NetworkInKB() (int64, error) {
	recv, _, err := s.sampler.NetIOCounters()
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(recv/1024) + s.intn(s.profile.NetInExtraKB), nil
}

// NetworkOutKB returns cumulative KB sent plus simulated traffic
func (s *Simulated) NetworkOutKB() (int64, error) {
	_, sent, err := s.sampler.NetIOCounters()
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(sent/1024) + s.intn(s.profile.NetOutExtraKB), nil
}

// InterfaceCount returns the deployment's interface count
func (s *Simulated) InterfaceCount() int {
	return s.profile.Interfaces
}

// TotalServices returns the deployment's service count
func (s *Simulated) TotalServices() int {
	return s.profile.Services
}

// ActiveServices returns the active service count. With a drift model each
// call may drop one backend (down to Min) or recover one (up to Max).
func (s *Simulated) ActiveServices() int {
	d := s.profile.ActiveDrift
	if d == nil {
		return s.profile.ActiveServices
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rng.Float64() < d.FailProb {
		s.active = max(d.Min, s.active-1)
	} else if s.rng.Float64() < d.RecoverProb {
		s.active = min(d.Max, s.active+1)
	}
	return s.active
}

// uniform samples r; callers hold s.mu
func (s *Simulated) uniform(r Range) float64 {
	if r.Min == 0 && r.Max == 0 {
		return 0
	}
	return r.Min + s.rng.Float64()*(r.Max-r.Min)
}

// intn samples r inclusively; callers hold s.mu
func (s *Simulated) intn(r IntRange) int64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + s.rng.Int64N(r.Max-r.Min+1)
}
