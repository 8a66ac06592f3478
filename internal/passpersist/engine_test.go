package passpersist

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snmpagent/internal/logger"
)

const (
	oidName    = "1.3.6.1.4.1.9999.1.1.0"
	oidStatus  = "1.3.6.1.4.1.9999.1.2.0"
	oidCPU     = "1.3.6.1.4.1.9999.1.3.0"
	oidErrors  = "1.3.6.1.4.1.9999.1.6.0"
	oidLevel   = "1.3.6.1.4.1.9999.1.7.0"
	oidCounter = "1.3.6.1.4.1.9999.1.9.0"
	oidFault   = "1.3.6.1.4.1.9999.1.10.0"
	oidPanic   = "1.3.6.1.4.1.9999.1.11.0"
)

type testAgent struct {
	engine  *Engine
	state   *AgentState
	counter int64
	logs    *bytes.Buffer
}

func newTestAgent(t *testing.T) *testAgent {
	t.Helper()

	ta := &testAgent{state: NewAgentState(LogInfo), logs: &bytes.Buffer{}}
	reg := NewRegistry()
	bindings := []Binding{
		{OID: oidName, Name: "sysName", Kind: KindString, Get: constProvider(StringValue("Web Server"))},
		{OID: oidStatus, Name: "sysStatus", Kind: KindString, Get: constProvider(StringValue("UP"))},
		{OID: oidCPU, Name: "cpuUsage", Kind: KindGauge, Get: constProvider(GaugeValue(42.31))},
		{OID: oidErrors, Name: "totalErrors", Kind: KindCounter, Get: func() (Value, error) {
			return CounterValue(ta.state.ErrorCount()), nil
		}},
		{OID: oidLevel, Name: "logLevel", Kind: KindString, Access: ReadWrite, Get: func() (Value, error) {
			return StringValue(string(ta.state.LogLevel())), nil
		}, Set: ta.state.SetLogLevel},
		{OID: oidCounter, Name: "requestsProcessed", Kind: KindCounter, Get: func() (Value, error) {
			ta.counter += 3
			return CounterValue(ta.counter), nil
		}},
		{OID: oidFault, Name: "networkInBytes", Kind: KindCounter, Get: func() (Value, error) {
			return Value{}, errors.New("net counters unavailable")
		}},
		{OID: oidPanic, Name: "networkOutBytes", Kind: KindCounter, Get: func() (Value, error) {
			panic("sampler exploded")
		}},
	}
	for _, b := range bindings {
		require.NoError(t, reg.Register(b))
	}

	ta.engine = NewEngine(reg, ta.state, WithLogger(logger.NewWithWriter(ta.logs)))
	return ta
}

func (ta *testAgent) handle(t *testing.T, line string) string {
	t.Helper()
	reply, ok := ta.engine.Handle(line)
	require.True(t, ok, "expected a reply for %q", line)
	return reply
}

func TestEngine_GetKnownOIDs(t *testing.T) {
	ta := newTestAgent(t)

	assert.Equal(t, oidName+" = Web Server", ta.handle(t, "GET "+oidName))
	assert.Equal(t, oidStatus+" = UP", ta.handle(t, "GET "+oidStatus))
	assert.Equal(t, oidCPU+" = 42.3", ta.handle(t, "GET "+oidCPU))
	assert.Equal(t, oidLevel+" = INFO", ta.handle(t, "GET "+oidLevel))
}

func TestEngine_GetUnknownOIDIsNotAnError(t *testing.T) {
	ta := newTestAgent(t)

	for _, oid := range []string{"1.3.6.1.4.1.9999.9.9.0", "1.3.6.1.4.1.9999.1.1", "garbage"} {
		assert.Equal(t, oid+" = No Such Instance", ta.handle(t, "GET "+oid))
	}
	assert.Equal(t, int64(0), ta.state.ErrorCount())
	assert.Equal(t, int64(3), ta.state.RequestCount())
}

func TestEngine_SetReadOnlyAlwaysRejected(t *testing.T) {
	ta := newTestAgent(t)

	for _, b := range ta.engine.Registry().Bindings() {
		if b.Access == ReadWrite {
			continue
		}
		reply := ta.handle(t, "SET "+b.OID+" INFO")
		assert.Equal(t, "Error: OID is read-only or invalid value", reply, b.Name)
	}

	assert.Equal(t, oidName+" = Web Server", ta.handle(t, "GET "+oidName))
	assert.Equal(t, int64(0), ta.state.ErrorCount(), "rejections are not faults")
}

func TestEngine_SetLogLevel(t *testing.T) {
	ta := newTestAgent(t)

	assert.Equal(t, oidLevel+" = DEBUG", ta.handle(t, "SET "+oidLevel+" DEBUG"))
	assert.Equal(t, LogDebug, ta.state.LogLevel())
	assert.Equal(t, oidLevel+" = DEBUG", ta.handle(t, "GET "+oidLevel))

	assert.Equal(t, "Error: OID is read-only or invalid value", ta.handle(t, "SET "+oidLevel+" BOGUS"))
	assert.Equal(t, LogDebug, ta.state.LogLevel())

	assert.Equal(t, "Error: OID is read-only or invalid value", ta.handle(t, "SET "+oidLevel))
	assert.Equal(t, "Error: OID is read-only or invalid value", ta.handle(t, "SET 1.3.6.1.4.1.9999.7.7.0 DEBUG"))
	assert.Equal(t, LogDebug, ta.state.LogLevel())
}

func TestEngine_InvalidRequests(t *testing.T) {
	ta := newTestAgent(t)

	assert.Equal(t, "Error: Invalid request", ta.handle(t, "FOO"))
	assert.Equal(t, "Error: Invalid request", ta.handle(t, "GET"))
	assert.Equal(t, "Error: Invalid request", ta.handle(t, "GETNEXT "+oidName))
	assert.Equal(t, "Error: Invalid request", ta.handle(t, "get "+oidName))
	assert.Equal(t, int64(0), ta.state.RequestCount())
	assert.Equal(t, int64(0), ta.state.ErrorCount())
}

func TestEngine_BlankLinesProduceNothing(t *testing.T) {
	ta := newTestAgent(t)

	for _, line := range []string{"", "   ", "\t"} {
		_, ok := ta.engine.Handle(line)
		assert.False(t, ok)
	}
	assert.Equal(t, int64(0), ta.state.RequestCount())
}

func TestEngine_Ping(t *testing.T) {
	ta := newTestAgent(t)
	assert.Equal(t, "PONG", ta.handle(t, "PING"))
	assert.Equal(t, int64(0), ta.state.RequestCount())
}

func TestEngine_RequestCountAccounting(t *testing.T) {
	ta := newTestAgent(t)

	lines := []struct {
		line  string
		delta int64
	}{
		{"GET " + oidName, 1},
		{"GET 1.2.3.4", 1},
		{"SET " + oidLevel + " ERROR", 1},
		{"SET " + oidName + " x", 1},
		{"SET " + oidLevel, 1},
		{"GET " + oidFault, 1},
		{"", 0},
		{"FOO", 0},
		{"PING", 0},
		{"NOPE 1.2.3", 0},
	}

	for _, l := range lines {
		before := ta.state.RequestCount()
		ta.engine.Handle(l.line)
		assert.Equal(t, before+l.delta, ta.state.RequestCount(), "line %q", l.line)
	}
}

func TestEngine_FaultsAreCountedAndReported(t *testing.T) {
	ta := newTestAgent(t)

	assert.Equal(t, "Error: net counters unavailable", ta.handle(t, "GET "+oidFault))
	assert.Equal(t, "Error: sampler exploded", ta.handle(t, "GET "+oidPanic))
	assert.Equal(t, int64(2), ta.state.ErrorCount())
	assert.Equal(t, oidErrors+" = 2", ta.handle(t, "GET "+oidErrors))

	// the engine keeps serving after a fault
	assert.Equal(t, oidStatus+" = UP", ta.handle(t, "GET "+oidStatus))
	assert.Contains(t, ta.logs.String(), "ERROR: GET "+oidFault+" failed: net counters unavailable")
}

func TestEngine_RepeatedGets(t *testing.T) {
	ta := newTestAgent(t)

	assert.Equal(t, ta.handle(t, "GET "+oidName), ta.handle(t, "GET "+oidName))

	first := ta.handle(t, "GET "+oidCounter)
	second := ta.handle(t, "GET "+oidCounter)
	assert.Equal(t, oidCounter+" = 3", first)
	assert.Equal(t, oidCounter+" = 6", second, "reading the counter advances it")
}

func TestEngine_Query(t *testing.T) {
	ta := newTestAgent(t)

	v, err := ta.engine.Query("sysStatus")
	require.NoError(t, err)
	assert.Equal(t, "UP", v)

	_, err = ta.engine.Query("bogusMetric")
	assert.ErrorIs(t, err, ErrUnknownMetric)
	assert.Equal(t, "Unknown metric", err.Error())

	_, err = ta.engine.Query("networkInBytes")
	assert.EqualError(t, err, "net counters unavailable")

	assert.Equal(t, int64(0), ta.state.RequestCount(), "one-shot queries are not protocol requests")
}

func TestEngine_DebugTracingFollowsLoggerLevel(t *testing.T) {
	ta := newTestAgent(t)

	ta.handle(t, "GET "+oidStatus)
	assert.NotContains(t, ta.logs.String(), "DEBUG:")

	ta.engine.log.SetLevel(logger.LevelDebug)
	ta.handle(t, "GET "+oidStatus)
	assert.Contains(t, ta.logs.String(), "DEBUG: GET "+oidStatus+" -> "+oidStatus+" = UP")
}

func TestEngine_ServeSession(t *testing.T) {
	ta := newTestAgent(t)

	input := strings.Join([]string{
		"PING",
		"GET " + oidName,
		"",
		"SET " + oidLevel + " DEBUG",
		"SET " + oidName + " Other",
		"FOO",
		"GET 1.3.6.1.4.1.9999.42.0",
		"GET " + oidFault,
	}, "\n") + "\n"

	var out bytes.Buffer
	err := ta.engine.Serve(context.Background(), strings.NewReader(input), &out)
	require.NoError(t, err)

	want := strings.Join([]string{
		"PONG",
		oidName + " = Web Server",
		oidLevel + " = DEBUG",
		"Error: OID is read-only or invalid value",
		"Error: Invalid request",
		"1.3.6.1.4.1.9999.42.0 = No Such Instance",
		"Error: net counters unavailable",
	}, "\n") + "\n"
	assert.Equal(t, want, out.String())
	assert.Equal(t, int64(5), ta.state.RequestCount())
	assert.Equal(t, int64(1), ta.state.ErrorCount())
}

func TestEngine_ServeStopsOnCancel(t *testing.T) {
	ta := newTestAgent(t)

	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	var out bytes.Buffer
	go func() {
		done <- ta.engine.Serve(ctx, pr, &out)
	}()

	_, err := pw.Write([]byte("PING\n"))
	require.NoError(t, err)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
}

func TestEngine_ServeSurvivesOversizedLines(t *testing.T) {
	ta := newTestAgent(t)

	huge := strings.Repeat("1.", 40000) + "0"
	input := "GET " + huge + "\n" +
		"FOO " + strings.Repeat("x", 100000) + "\n" +
		"GET " + oidName + "\r\n" +
		"GET " + oidStatus

	var out bytes.Buffer
	err := ta.engine.Serve(context.Background(), strings.NewReader(input), &out)
	require.NoError(t, err)

	want := strings.Join([]string{
		huge + " = No Such Instance",
		"Error: Invalid request",
		oidName + " = Web Server",
		oidStatus + " = UP",
	}, "\n") + "\n"
	assert.Equal(t, want, out.String())
	assert.Equal(t, int64(3), ta.state.RequestCount())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("stdin closed badly")
}

func TestEngine_ServeReportsReadErrors(t *testing.T) {
	ta := newTestAgent(t)
	err := ta.engine.Serve(context.Background(), failingReader{}, io.Discard)
	assert.ErrorContains(t, err, "stdin closed badly")
}
