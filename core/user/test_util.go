package user

import (
	"fmt"
	"sync"

	"github.com/trezcool/saynoretake/core"
)

// LogEntry is one call recorded by a TestLogger.
type LogEntry struct {
	Level string
	Msg   string
	Args  []interface{}
}

// TestLogger records log calls instead of printing them.
type TestLogger struct {
	mu      sync.Mutex
	Entries []LogEntry
}

var _ core.Logger = (*TestLogger)(nil)

func NewTestLogger() *TestLogger { return &TestLogger{} }

func (l *TestLogger) log(level, msg string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, LogEntry{Level: level, Msg: msg, Args: args})
}

// Messages returns the recorded messages of `level`.
func (l *TestLogger) Messages(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var msgs []string
	for _, e := range l.Entries {
		if e.Level == level {
			msgs = append(msgs, e.Msg)
		}
	}
	return msgs
}

func (l *TestLogger) Debug(msg string, args ...interface{}) { l.log("DEBUG", msg, args) }
func (l *TestLogger) Info(msg string, args ...interface{})  { l.log("INFO", msg, args) }
func (l *TestLogger) Warn(msg string, args ...interface{})  { l.log("WARN", msg, args) }
func (l *TestLogger) Error(msg string, args ...interface{}) { l.log("ERROR", msg, args) }
func (l *TestLogger) Fatal(msg string, args ...interface{}) {
	l.log("FATAL", msg, args)
	panic(fmt.Sprintf("fatal: %s", msg))
}
