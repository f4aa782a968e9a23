package logging

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

// Fields are the structured key/value pairs attached to a log line.
type Fields map[string]interface{}

var (
	mu     sync.Mutex
	logger = log.New(os.Stderr, "", 0)
	exit   = os.Exit
)

// SetOutput redirects log lines, mostly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger.SetOutput(w)
}

// line builds a fresh map so callers may reuse their Fields.
func line(level, msg string, fields Fields, err error) Fields {
	out := make(Fields, len(fields)+4)
	for k, v := range fields {
		out[k] = v
	}
	if err != nil {
		out["error"] = err.Error()
	}
	out["level"] = level
	out["ts"] = time.Now().UTC().Format(time.RFC3339)
	out["msg"] = msg
	return out
}

func output(level, msg string, fields Fields, err error) {
	entry := line(level, msg, fields, err)
	b, jerr := json.Marshal(entry)
	mu.Lock()
	defer mu.Unlock()
	if jerr != nil {
		logger.Printf("%s: %s (%v)", level, msg, entry)
		return
	}
	logger.Println(string(b))
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	output("info", msg, fields, nil)
}

// Warn logs a recoverable problem, such as a data lookup miss.
func Warn(msg string, fields Fields) {
	output("warn", msg, fields, nil)
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	output("error", msg, fields, err)
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	output("fatal", msg, fields, err)
	exit(1)
}
