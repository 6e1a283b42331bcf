package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags_OverridesDefaults(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"app",
		"-d", "postgres://u:p@localhost:5432/other",
		"-e", "http://translator:8080",
		"-t", "30",
		"-w", "8",
		"-i", "2",
		"-l", "120",
		"-r", "5",
		"-b", "10",
	}

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, "postgres://u:p@localhost:5432/other", c.DatabaseDSN)
	assert.Equal(t, "http://translator:8080", c.TranslatorEndpoint)
	assert.Equal(t, 30*time.Second, c.TranslatorTimeout)
	assert.Equal(t, 8, c.WorkerCount)
	assert.Equal(t, 2*time.Second, c.PollInterval)
	assert.Equal(t, 120*time.Second, c.JobLease)
	assert.Equal(t, 5, c.RetryAttempts)
	assert.Equal(t, 10*time.Second, c.RetryBackoff)
}

func TestParseFlags_IgnoresForeignFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"app", "-x", "1", "-w", "2"}

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, 2, c.WorkerCount)
}
