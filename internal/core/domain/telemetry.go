package domain

// LogLevel ranks a line logged on a telemetry vertex. Values match slog's levels.
type LogLevel int

const (
	LogLevelDebug LogLevel = -4
	LogLevelInfo  LogLevel = 0
	LogLevelWarn  LogLevel = 4
	LogLevelError LogLevel = 8
)

var logLevelNames = map[LogLevel]string{
	LogLevelDebug: "DEBUG",
	LogLevelInfo:  "INFO",
	LogLevelWarn:  "WARN",
	LogLevelError: "ERROR",
}

// String returns the uppercase level name; unknown levels print as INFO.
func (l LogLevel) String() string {
	if name, ok := logLevelNames[l]; ok {
		return name
	}
	return logLevelNames[LogLevelInfo]
}

// LogLevel is the vertex level an issue of severity s is logged at.
func (s Severity) LogLevel() LogLevel {
	if s == SeverityError {
		return LogLevelError
	}
	return LogLevelWarn
}
