package passpersist

import (
	"sync"
	"sync/atomic"
)

// LogLevel is the agent's writable verbosity setting
type LogLevel string

const (
	LogInfo  LogLevel = "INFO"
	LogDebug LogLevel = "DEBUG"
	LogError LogLevel = "ERROR"
)

// ParseLogLevel accepts only the literal values INFO, DEBUG and ERROR
func ParseLogLevel(s string) (LogLevel, bool) {
	switch LogLevel(s) {
	case LogInfo, LogDebug, LogError:
		return LogLevel(s), true
	}
	return "", false
}

// Stats is a point-in-time copy of AgentState
type Stats struct {
	Requests int64
	Errors   int64
	LogLevel LogLevel
}

// AgentState holds the per-process counters and the log level.
// The engine is the only writer of the counters; readers (providers,
// telemetry callbacks) may run on other goroutines.
type AgentState struct {
	requests atomic.Int64
	errors   atomic.Int64

	mu       sync.RWMutex
	logLevel LogLevel
	onLevel  []func(LogLevel)
}

// NewAgentState creates state with the given initial level
func NewAgentState(level LogLevel) *AgentState {
	if _, ok := ParseLogLevel(string(level)); !ok {
		level = LogInfo
	}
	return &AgentState{logLevel: level}
}

// RequestCount returns the number of GET/SET requests served
func (s *AgentState) RequestCount() int64 {
	return s.requests.Load()
}

// ErrorCount returns the number of runtime faults
func (s *AgentState) ErrorCount() int64 {
	return s.errors.Load()
}

// LogLevel returns the current level
func (s *AgentState) LogLevel() LogLevel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.logLevel
}

// SetLogLevel applies a new level if it is one of INFO, DEBUG, ERROR.
// Registered listeners run after the change.
func (s *AgentState) SetLogLevel(value string) bool {
	level, ok := ParseLogLevel(value)
	if !ok {
		return false
	}

	s.mu.Lock()
	s.logLevel = level
	listeners := append([]func(LogLevel){}, s.onLevel...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(level)
	}
	return true
}

// OnLogLevelChange registers fn to be called after every accepted level change
func (s *AgentState) OnLogLevelChange(fn func(LogLevel)) {
	s.mu.Lock()
	s.onLevel = append(s.onLevel, fn)
	s.mu.Unlock()
}

// Snapshot returns a consistent copy of the counters
func (s *AgentState) Snapshot() Stats {
	return Stats{
		Requests: s.RequestCount(),
		Errors:   s.ErrorCount(),
		LogLevel: s.LogLevel(),
	}
}

func (s *AgentState) countRequest() {
	s.requests.Add(1)
}

func (s *AgentState) countError() {
	s.errors.Add(1)
}
