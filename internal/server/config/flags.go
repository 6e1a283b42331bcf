package config

import (
	"flag"
	"os"
	"time"

	"github.com/NaFo61/BervinovAcademy/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   PostgreSQL DSN
//	-e string   translator base endpoint (e.g., "http://127.0.0.1:5000")
//	-t int      translator call timeout, seconds
//	-w int      worker count
//	-i int      queue poll interval, seconds
//	-l int      job lease, seconds
//	-r int      translator retry attempts per delivery
//	-b int      delay between retry attempts, seconds
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes
//     using flagx.FilterArgs, avoiding collisions with other components.
//   - Duration flags are accepted as integers in seconds and then converted
//     to time.Duration values.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-e", "-t", "-w", "-i", "-l", "-r", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.TranslatorEndpoint, "e", config.TranslatorEndpoint, "translator endpoint")

	translatorTimeout := fs.Int("t", int(config.TranslatorTimeout.Seconds()), "translator timeout (in seconds)")
	fs.IntVar(&config.WorkerCount, "w", config.WorkerCount, "worker count")
	pollInterval := fs.Int("i", int(config.PollInterval.Seconds()), "queue poll interval (in seconds)")
	jobLease := fs.Int("l", int(config.JobLease.Seconds()), "job lease (in seconds)")
	fs.IntVar(&config.RetryAttempts, "r", config.RetryAttempts, "translator retry attempts")
	retryBackoff := fs.Int("b", int(config.RetryBackoff.Seconds()), "retry backoff (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TranslatorTimeout = time.Duration(*translatorTimeout) * time.Second
	config.PollInterval = time.Duration(*pollInterval) * time.Second
	config.JobLease = time.Duration(*jobLease) * time.Second
	config.RetryBackoff = time.Duration(*retryBackoff) * time.Second
}
