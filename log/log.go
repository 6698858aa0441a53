package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	InfoLog    = log.New(io.Discard, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarningLog = log.New(io.Discard, "WARNING: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLog   = log.New(io.Discard, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
)

// DecorateFunc renders the "[debug]" label and the message of a debug line.
// The default leaves both untouched.
type DecorateFunc func(label, msg string) (string, string)

var (
	mu       sync.Mutex
	debug    bool
	stderr   io.Writer = os.Stderr
	decorate DecorateFunc
	rotator  *lumberjack.Logger
)

// Initialize wires the loggers. With debug set, warnings, errors and Debugf
// lines go to stderr. When logFile is non-empty every logger also appends to a
// size-rotated file.
func Initialize(debugMode bool, logFile string) {
	mu.Lock()
	defer mu.Unlock()

	debug = debugMode

	var sinks []io.Writer
	if logFile != "" {
		rotator = &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    1, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		sinks = append(sinks, rotator)
	}

	info := writerFor(sinks)
	InfoLog.SetOutput(info)

	if debug {
		sinks = append(sinks, stderr)
	}
	WarningLog.SetOutput(writerFor(sinks))
	ErrorLog.SetOutput(writerFor(sinks))
}

func writerFor(sinks []io.Writer) io.Writer {
	switch len(sinks) {
	case 0:
		return io.Discard
	case 1:
		return sinks[0]
	default:
		return io.MultiWriter(sinks...)
	}
}

// SetDecorator installs the styling used for Debugf lines on stderr.
func SetDecorator(fn DecorateFunc) {
	mu.Lock()
	defer mu.Unlock()
	decorate = fn
}

// SetStderr redirects debug output. Used by tests and by commands that
// capture their error stream.
func SetStderr(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	stderr = w
}

// Enabled reports whether debug output is on.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return debug
}

// Debugf prints a "[debug] ..." line to stderr when debug output is enabled,
// and always records the message in InfoLog.
func Debugf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	InfoLog.Output(2, msg)

	mu.Lock()
	defer mu.Unlock()
	if !debug {
		return
	}
	label := "[debug]"
	if decorate != nil {
		label, msg = decorate(label, msg)
	}
	fmt.Fprintf(stderr, "%s %s\n", label, msg)
}

// Close flushes and closes the rotating log file, if any.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if rotator != nil {
		if err := rotator.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
		}
		rotator = nil
	}
	InfoLog.SetOutput(io.Discard)
	WarningLog.SetOutput(io.Discard)
	ErrorLog.SetOutput(io.Discard)
	debug = false
}
