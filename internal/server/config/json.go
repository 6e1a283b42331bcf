package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/NaFo61/BervinovAcademy/internal/flagx"
	"github.com/NaFo61/BervinovAcademy/internal/timex"
)

// JsonConfig is the intermediate DTO for reading JSON configuration files.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "5s" and integer nanoseconds. After unmarshalling,
// its fields are copied into the runtime Config struct.
type JsonConfig struct {
	DatabaseDSN        string         `json:"database_dsn"`
	TranslatorEndpoint string         `json:"translator_endpoint"`
	TranslatorTimeout  timex.Duration `json:"translator_timeout"`
	WorkerCount        int            `json:"worker_count"`
	PollInterval       timex.Duration `json:"poll_interval"`
	JobLease           timex.Duration `json:"job_lease"`
	RetryAttempts      int            `json:"retry_attempts"`
	RetryBackoff       timex.Duration `json:"retry_backoff"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path comes from the -c or -config command-line flags; if neither
// is set, no JSON file is loaded. If the file cannot be read or contains
// invalid JSON, the function panics.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.DatabaseDSN = c.DatabaseDSN
	config.TranslatorEndpoint = c.TranslatorEndpoint
	config.TranslatorTimeout = time.Duration(c.TranslatorTimeout.Duration)
	config.WorkerCount = c.WorkerCount
	config.PollInterval = time.Duration(c.PollInterval.Duration)
	config.JobLease = time.Duration(c.JobLease.Duration)
	config.RetryAttempts = c.RetryAttempts
	config.RetryBackoff = time.Duration(c.RetryBackoff.Duration)
}
