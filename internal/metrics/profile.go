package metrics

import (
	"fmt"
	"sort"

	constants "snmpagent/config"
)

// Range is a closed float interval sampled uniformly
type Range struct {
	Min, Max float64
}

// IntRange is a closed integer interval sampled uniformly
type IntRange struct {
	Min, Max int64
}

// CounterMode selects what the primary counter OID reports
type CounterMode int

const (
	// CounterRequests reports the agent's own served-request count
	CounterRequests CounterMode = iota
	// CounterStep adds a random step from Profile.CounterStep on every read
	CounterStep
)

// Drift models backends failing and recovering between reads
type Drift struct {
	Start       int
	Min         int
	Max         int
	FailProb    float64
	RecoverProb float64
}

// Profile is the data that distinguishes one deployment from another
type Profile struct {
	Key  string
	Name string

	CPULoad       Range
	MemoryExtraMB Range
	LatencyBase   float64
	LatencyJitter Range
	NetInExtraKB  IntRange
	NetOutExtraKB IntRange

	Counter     CounterMode
	CounterStep IntRange
	CounterDesc string

	Interfaces     int
	Services       int
	ActiveServices int
	ActiveDrift    *Drift
}

var profiles = map[string]Profile{
	constants.SERVICE_AUTH: {
		Key:            constants.SERVICE_AUTH,
		Name:           "Authentication Service",
		LatencyBase:    8.0,
		LatencyJitter:  Range{-2.0, 5.0},
		Counter:        CounterRequests,
		CounterDesc:    "requests served",
		Interfaces:     2,
		Services:       3,
		ActiveServices: 2,
	},
	constants.SERVICE_CACHE: {
		Key:            constants.SERVICE_CACHE,
		Name:           "Cache Service",
		CPULoad:        Range{0, 5},
		MemoryExtraMB:  Range{800, 2000},
		LatencyBase:    1.0,
		LatencyJitter:  Range{-0.2, 0.5},
		NetInExtraKB:   IntRange{300, 800},
		NetOutExtraKB:  IntRange{200, 600},
		Counter:        CounterStep,
		CounterStep:    IntRange{1, 1},
		CounterDesc:    "cache operations",
		Interfaces:     2,
		Services:       5,
		ActiveServices: 5,
	},
	constants.SERVICE_DATABASE: {
		Key:            constants.SERVICE_DATABASE,
		Name:           "Database Service",
		CPULoad:        Range{5, 15},
		MemoryExtraMB:  Range{500, 1500},
		LatencyBase:    15.0,
		LatencyJitter:  Range{-3.0, 10.0},
		NetInExtraKB:   IntRange{100, 500},
		NetOutExtraKB:  IntRange{50, 300},
		Counter:        CounterStep,
		CounterStep:    IntRange{1, 10},
		CounterDesc:    "queries executed",
		Interfaces:     3,
		Services:       4,
		ActiveServices: 3,
	},
	constants.SERVICE_LOAD_BALANCER: {
		Key:           constants.SERVICE_LOAD_BALANCER,
		Name:          "Load Balancer",
		CPULoad:       Range{2, 8},
		MemoryExtraMB: Range{100, 300},
		LatencyBase:   3.0,
		LatencyJitter: Range{-0.5, 2.0},
		NetInExtraKB:  IntRange{200, 600},
		NetOutExtraKB: IntRange{150, 500},
		Counter:       CounterStep,
		CounterStep:   IntRange{1, 8},
		CounterDesc:   "connections accepted",
		Interfaces:    4,
		Services:      5,
		ActiveDrift: &Drift{
			Start:       2,
			Min:         1,
			Max:         3,
			FailProb:    0.05,
			RecoverProb: 0.02,
		},
	},
	constants.SERVICE_WEB_SERVER: {
		Key:            constants.SERVICE_WEB_SERVER,
		Name:           "Web Server",
		CPULoad:        Range{0, 20},
		MemoryExtraMB:  Range{200, 800},
		LatencyBase:    5.0,
		LatencyJitter:  Range{-1.0, 3.0},
		NetInExtraKB:   IntRange{50, 200},
		NetOutExtraKB:  IntRange{100, 400},
		Counter:        CounterStep,
		CounterStep:    IntRange{1, 5},
		CounterDesc:    "HTTP requests",
		Interfaces:     2,
		Services:       5,
		ActiveServices: 4,
	},
	constants.SERVICE_GENERIC: {
		Key:            constants.SERVICE_GENERIC,
		Name:           "SNMP Service",
		LatencyBase:    5.0,
		LatencyJitter:  Range{-1.0, 3.0},
		Counter:        CounterRequests,
		CounterDesc:    "requests served",
		Interfaces:     1,
		Services:       1,
		ActiveServices: 1,
	},
}

// LookupProfile returns the profile registered under key
func LookupProfile(key string) (Profile, error) {
	p, ok := profiles[key]
	if !ok {
		return Profile{}, fmt.Errorf("unknown service %q (known: %v)", key, ProfileKeys())
	}
	return p, nil
}

// ProfileKeys lists the known service keys in sorted order
func ProfileKeys() []string {
	keys := make([]string, 0, len(profiles))
	for k := range profiles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
