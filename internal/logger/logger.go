package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Category  string `json:"category"`
	Message   string `json:"message"`
	File      string `json:"file,omitempty"`
	Line      int    `json:"line,omitempty"`
}

type Logger struct {
	mu           sync.Mutex
	terminal     io.Writer
	jsonOut      io.Writer
	logFile      *os.File
	colorEnabled bool
	debugEnabled bool
	exit         func(int)
}

// Options controls where the logger writes.
type Options struct {
	// Dir is the directory holding the dated JSON log file. Empty disables the file.
	Dir string
	// Prefix names the log file: <Dir>/<Prefix>-<date>.log
	Prefix string
	Debug  bool
}

func NewLogger(opts Options) *Logger {
	logger := &Logger{
		terminal:     os.Stdout,
		colorEnabled: true,
		debugEnabled: opts.Debug,
		exit:         os.Exit,
	}

	if opts.Dir == "" {
		logger.Info("LOGGER", "File logging disabled, writing to stdout only")
		return logger
	}

	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		log.Fatal("Failed to create logs directory:", err)
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = "snow-tracker"
	}
	timestamp := time.Now().Format("2006-01-02")
	logFileName := filepath.Join(opts.Dir, fmt.Sprintf("%s-%s.log", prefix, timestamp))

	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Fatal("Failed to create log file:", err)
	}
	logger.logFile = logFile
	logger.jsonOut = logFile

	logger.Info("LOGGER", "Enhanced logging system initialized")
	logger.Info("LOGGER", fmt.Sprintf("Log file: %s", logFileName))

	return logger
}

// NewWriterLogger writes uncoloured terminal lines to w and skips the JSON file.
// Used by tests and by callers that capture output.
func NewWriterLogger(w io.Writer, debug bool) *Logger {
	return &Logger{
		terminal:     w,
		colorEnabled: false,
		debugEnabled: debug,
		exit:         os.Exit,
	}
}

func (l *Logger) log(level LogLevel, category, message string) {
	if l == nil {
		return
	}
	if level == DEBUG && !l.debugEnabled {
		return
	}

	_, file, line, ok := runtime.Caller(2)
	if ok {
		file = filepath.Base(file)
	}

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
		Level:     l.levelToString(level),
		Category:  strings.ToUpper(category),
		Message:   message,
		File:      file,
		Line:      line,
	}

	terminalOutput := l.formatTerminalOutput(entry)
	jsonOutput := l.formatJSONOutput(entry)

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(l.terminal, terminalOutput)
	if l.jsonOut != nil {
		io.WriteString(l.jsonOut, jsonOutput+"\n")
	}
}

func (l *Logger) formatTerminalOutput(entry LogEntry) string {
	timestamp := entry.Timestamp[11:19]

	if !l.colorEnabled {
		if entry.File != "" && entry.Line > 0 {
			return fmt.Sprintf("%s %-5s [%-10s] %s (%s:%d)\n", timestamp, entry.Level, entry.Category, entry.Message, entry.File, entry.Line)
		}
		return fmt.Sprintf("%s %-5s [%-10s] %s\n", timestamp, entry.Level, entry.Category, entry.Message)
	}

	var levelColor, categoryColor *color.Color

	switch entry.Level {
	case "DEBUG":
		levelColor = color.New(color.FgCyan)
		categoryColor = color.New(color.FgCyan, color.Bold)
	case "INFO":
		levelColor = color.New(color.FgGreen)
		categoryColor = color.New(color.FgGreen, color.Bold)
	case "WARN":
		levelColor = color.New(color.FgYellow)
		categoryColor = color.New(color.FgYellow, color.Bold)
	case "ERROR":
		levelColor = color.New(color.FgRed)
		categoryColor = color.New(color.FgRed, color.Bold)
	case "FATAL":
		levelColor = color.New(color.FgRed, color.Bold)
		categoryColor = color.New(color.FgRed, color.Bold)
	default:
		levelColor = color.New(color.FgWhite)
		categoryColor = color.New(color.FgWhite, color.Bold)
	}

	timeStr := color.New(color.FgBlue).Sprintf("%s", timestamp)
	levelStr := levelColor.Sprintf("%-5s", entry.Level)
	categoryStr := categoryColor.Sprintf("[%-10s]", entry.Category)

	if entry.File != "" && entry.Line > 0 {
		fileInfo := color.New(color.FgMagenta).Sprintf(" (%s:%d)", entry.File, entry.Line)
		return fmt.Sprintf("%s %s %s %s%s\n", timeStr, levelStr, categoryStr, entry.Message, fileInfo)
	}

	return fmt.Sprintf("%s %s %s %s\n", timeStr, levelStr, categoryStr, entry.Message)
}

func (l *Logger) formatJSONOutput(entry LogEntry) string {
	jsonBytes, _ := json.Marshal(entry)
	return string(jsonBytes)
}

func (l *Logger) levelToString(level LogLevel) string {
	switch level {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "INFO"
	}
}

// Public logging methods
func (l *Logger) Debug(category, message string) {
	l.log(DEBUG, category, message)
}

func (l *Logger) Info(category, message string) {
	l.log(INFO, category, message)
}

func (l *Logger) Warn(category, message string) {
	l.log(WARN, category, message)
}

func (l *Logger) Error(category, message string) {
	l.log(ERROR, category, message)
}

func (l *Logger) Fatal(category, message string) {
	l.log(FATAL, category, message)
	l.exit(1)
}

// Specialized logging methods for different components
func (l *Logger) LogAPI(method, path, status, duration string) {
	l.Info("API", fmt.Sprintf("%s %s - %s (%s)", method, path, status, duration))
}

func (l *Logger) LogCache(action, key, message string) {
	l.Debug("CACHE", fmt.Sprintf("[%s] %s - %s", action, key, message))
}

func (l *Logger) LogGateway(upstream, message string) {
	l.Info("GATEWAY", fmt.Sprintf("[%s] %s", upstream, message))
}

func (l *Logger) LogDatabase(operation, table, message string) {
	l.Info("DATABASE", fmt.Sprintf("[%s] %s - %s", operation, table, message))
}

func (l *Logger) Close() {
	if l != nil && l.logFile != nil {
		l.Info("LOGGER", "Closing log file")
		l.logFile.Close()
	}
}
