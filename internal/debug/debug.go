// Package debug provides optional file-based debug logging.
//
// When the RXTUI_DEBUG environment variable names a file path, messages
// are appended to that file. Otherwise logging is a no-op.
package debug

import (
	"fmt"
	"os"
	"sync"
	"time"
)

var (
	mu   sync.Mutex
	file *os.File
	once sync.Once
)

// Log writes a formatted message to the debug file, if enabled.
func Log(format string, args ...any) {
	once.Do(open)
	if file == nil {
		return
	}

	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(file, "%s ", time.Now().Format("15:04:05.000"))
	fmt.Fprintf(file, format, args...)
	fmt.Fprintln(file)
}

func open() {
	path := os.Getenv("RXTUI_DEBUG")
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	file = f
}
