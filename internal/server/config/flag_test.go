package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags_Overrides(t *testing.T) {
	orig := os.Args
	os.Args = []string{"veritas", "-a", ":6060", "-d", "postgres://x", "-v", "48", "-i", "200000"}
	t.Cleanup(func() { os.Args = orig })

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, ":6060", c.EndpointAddr)
	assert.Equal(t, "postgres://x", c.DatabaseDSN)
	assert.Equal(t, 48*time.Hour, c.SessionValidityDuration)
	assert.Equal(t, 200000, c.DefaultIterations)
}

func TestParseFlags_IgnoresForeignFlags(t *testing.T) {
	orig := os.Args
	os.Args = []string{"veritas", "-test.v", "-a", ":6161"}
	t.Cleanup(func() { os.Args = orig })

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, ":6161", c.EndpointAddr)
}
