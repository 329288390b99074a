package logging

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLevel = zapcore.WarnLevel

// NamedLevel overrides the log level for loggers whose name matches Name.
// A trailing "*" in Name matches by prefix, "*" alone matches everything.
type NamedLevel struct {
	Name  string
	Level string
}

var (
	mu      sync.Mutex
	loggers = make(map[string]*zap.SugaredLogger)
	levels  []NamedLevel
)

func init() {
	levels = LevelsFromStr(os.Getenv("NOTEWEB_LOG_LEVEL"))
}

// Logger returns the named sugared logger for a subsystem, creating it on
// first use. Loggers write a console encoding to stderr; per-name levels come
// from the NOTEWEB_LOG_LEVEL env var.
func Logger(system string) *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()
	if lg, ok := loggers[system]; ok {
		return lg
	}
	lg := newLogger(system).Sugar()
	loggers[system] = lg
	return lg
}

// LoggerNotSugared returns the structured variant for hot paths.
func LoggerNotSugared(system string) *zap.Logger {
	return Logger(system).Desugar()
}

// SetLevels replaces the level overrides. Already created loggers keep their
// level; meant to be called before the first Logger call, mainly from tests.
func SetLevels(newLevels []NamedLevel) {
	mu.Lock()
	defer mu.Unlock()
	levels = newLevels
}

func newLogger(system string) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		zap.NewAtomicLevelAt(levelFor(system)),
	)
	return zap.New(core).Named(system)
}

func levelFor(system string) zapcore.Level {
	level := defaultLevel
	for _, nl := range levels {
		if !matchName(nl.Name, system) {
			continue
		}
		parsed, err := zapcore.ParseLevel(strings.ToLower(nl.Level))
		if err != nil {
			continue
		}
		level = parsed
	}
	return level
}

func matchName(pattern, name string) bool {
	if pattern == "*" {
		return true
	}
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(name, strings.TrimSuffix(pattern, "*"))
	}
	return pattern == name
}

// LevelsFromStr parses a string of the form "name1=DEBUG;prefix*=WARN;*=ERROR"
// into a slice of NamedLevel. Invalid entries are skipped.
func LevelsFromStr(s string) (levels []NamedLevel) {
	for _, kv := range strings.Split(s, ";") {
		if kv == "" {
			continue
		}
		parts := strings.Split(kv, "=")
		var key, value string
		if len(parts) == 1 {
			key = "*"
			value = strings.TrimSpace(parts[0])
		} else if len(parts) == 2 {
			key = strings.TrimSpace(parts[0])
			value = strings.TrimSpace(parts[1])
		} else {
			continue
		}
		if key == "" || value == "" {
			continue
		}
		if _, err := zapcore.ParseLevel(strings.ToLower(value)); err != nil {
			continue
		}
		levels = append(levels, NamedLevel{Name: key, Level: value})
	}
	return levels
}
