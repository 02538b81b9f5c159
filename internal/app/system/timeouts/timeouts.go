// internal/app/system/timeouts/timeouts.go

// Package timeouts provides the timeout values handlers use with
// context.WithTimeout around storage and upstream calls.
//
// Guidelines:
//   - Ping: health checks and connectivity verification
//   - Short: single-document reads and lookups
//   - Medium: list queries, moderate writes, the feed aggregation
//   - Long: the adopt transaction and file-upload batches
package timeouts

import "time"

const (
	ping   = 2 * time.Second
	short  = 5 * time.Second
	medium = 10 * time.Second
	long   = 30 * time.Second
)

// Ping returns the timeout for health checks.
func Ping() time.Duration { return ping }

// Short returns the timeout for single-document operations.
func Short() time.Duration { return short }

// Medium returns the timeout for list queries and multi-step reads.
func Medium() time.Duration { return medium }

// Long returns the timeout for transactional writes and upload batches.
func Long() time.Duration { return long }
