package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snmpagent/internal/agent"
)

type stubSampler struct{}

func (stubSampler) CPUPercent() (float64, error)           { return 20, nil }
func (stubSampler) MemoryUsedBytes() (uint64, error)       { return 1 << 30, nil }
func (stubSampler) NetIOCounters() (uint64, uint64, error) { return 1 << 20, 1 << 20, nil }

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	logFile := filepath.Join(t.TempDir(), "agent.log")

	cmd := NewRootCmd(viper.New(), "v0.0.0-test", agent.WithSampler(stubSampler{}))
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-file", logFile}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestOneShot(t *testing.T) {
	out, err := execute(t, "", "sysStatus")
	require.NoError(t, err)
	assert.Equal(t, "UP\n", out)

	out, err = execute(t, "", "--service", "cache", "sysName")
	require.NoError(t, err)
	assert.Equal(t, "Cache Service\n", out)

	out, err = execute(t, "", "--service", "database", "ifNumber")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)
}

func TestOneShot_UnknownMetric(t *testing.T) {
	out, err := execute(t, "", "diskUsage")
	require.NoError(t, err)
	assert.Equal(t, "Unknown metric\n", out)
}

func TestOneShot_DoesNotCountAsRequest(t *testing.T) {
	out, err := execute(t, "", "--service", "auth", "requestsProcessed")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)
}

func TestRejectsExtraArguments(t *testing.T) {
	_, err := execute(t, "", "cpuUsage", "uptime")
	assert.Error(t, err)
}

func TestRejectsUnknownService(t *testing.T) {
	_, err := execute(t, "", "--service", "mail", "sysName")
	assert.ErrorContains(t, err, "unknown service")
}

func TestServe(t *testing.T) {
	in := "GET 1.3.6.1.4.1.9999.1.1.0\n" +
		"PING\n" +
		"SET 1.3.6.1.4.1.9999.1.1.0 x\n" +
		"SET 1.3.6.1.4.1.9999.1.7.0 DEBUG\n" +
		"GET 1.3.6.1.4.1.9999.1.7.0\n"

	out, err := execute(t, in, "--service", "web-server")
	require.NoError(t, err)
	assert.Equal(t, "1.3.6.1.4.1.9999.1.1.0 = Web Server\n"+
		"PONG\n"+
		"Error: OID is read-only or invalid value\n"+
		"1.3.6.1.4.1.9999.1.7.0 = DEBUG\n"+
		"1.3.6.1.4.1.9999.1.7.0 = DEBUG\n", out)
}

func TestServe_LogsToFileNotStdout(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "serve.log")
	cmd := NewRootCmd(viper.New(), "dev", agent.WithSampler(stubSampler{}))
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader("GET 1.3.6.1.4.1.9999.1.8.0\n"))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--log-file", logFile, "--log-level", "debug"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "1.3.6.1.4.1.9999.1.8.0 = 0d 0h 0m\n", out.String())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "DEBUG: GET 1.3.6.1.4.1.9999.1.8.0")
	assert.Contains(t, string(data), "Stopped after 1 requests, 0 errors")
}

func TestOIDsCmd(t *testing.T) {
	out, err := execute(t, "", "oids", "--service", "load-balancer")
	require.NoError(t, err)
	assert.Contains(t, out, "Load Balancer")
	assert.Contains(t, out, "1.3.6.1.4.1.9999.1.7.0")
	assert.Contains(t, out, "read-write")
	assert.Contains(t, out, "connections accepted")
}

func TestConfigCmd(t *testing.T) {
	out, err := execute(t, "", "config", "--service", "cache", "--log-level", "ERROR")
	require.NoError(t, err)
	assert.Contains(t, out, "cache")
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "OTLP export disabled")
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "v0.0.0-test")
}
