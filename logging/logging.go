package logging

import (
	"strings"

	"github.com/zeromicro/go-zero/core/logx"
)

// Setup configures the process-wide logx logger. plain selects
// human-readable lines instead of JSON, which the interactive modes use.
func Setup(level string, plain bool) {
	conf := logx.LogConf{Mode: "console", Encoding: "json"}
	if plain {
		conf.Encoding = "plain"
	}
	logx.MustSetup(conf)
	logx.DisableStat()
	logx.SetLevel(ParseLevel(level))
}

// Silence drops everything below error, for the terminal UI where log lines
// would corrupt the screen.
func Silence() {
	logx.SetLevel(logx.SevereLevel)
}

// ParseLevel maps a config string to a logx level; unknown values mean info.
func ParseLevel(level string) uint32 {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logx.DebugLevel
	case "info", "":
		return logx.InfoLevel
	case "error", "warn", "warning":
		return logx.ErrorLevel
	case "severe", "fatal":
		return logx.SevereLevel
	default:
		return logx.InfoLevel
	}
}
