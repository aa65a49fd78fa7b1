// Package diag is the dashboard's diagnostic channel: a file-backed logger
// for failures the UI deliberately swallows (unreachable backend, rejected
// actions). Nothing here ever reaches the rendered view.
package diag

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/stagewatch-io/stagewatch/internal/config"
)

var (
	mu        sync.Mutex
	logger    *log.Logger
	sessionID string
)

// init falls back to a discard logger; Open upgrades it to the log file.
func init() {
	logger = log.New(io.Discard, "", log.LstdFlags)
}

// Open attaches the diagnostic channel to ~/.stagewatch/logs/dashboard.log.
// Failure to open is itself swallowed: diagnostics degrade to no-ops.
func Open() {
	mu.Lock()
	defer mu.Unlock()

	if err := config.EnsureLogsDir(); err != nil {
		return
	}
	path, err := config.DiagLogFile()
	if err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return
	}

	sessionID = uuid.New().String()
	logger = log.New(f, "", log.LstdFlags)
	logger.Printf("[session] start %s", sessionID)
}

// Logf writes one prefixed diagnostic line, e.g. Logf("client", "GET /queues: %v", err).
func Logf(component, format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	logger.Printf("[%s] %s", component, fmt.Sprintf(format, args...))
}

// SessionID returns the current diagnostic session id, empty before Open.
func SessionID() string {
	mu.Lock()
	defer mu.Unlock()
	return sessionID
}
