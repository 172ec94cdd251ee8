package audit

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType tags the kind of auth/security event being recorded.
type EventType string

const (
	EventLoginFailed        EventType = "login_failed"
	EventLoginSuccess       EventType = "login_success"
	EventTokenRejected      EventType = "token_rejected"
	EventRefreshReuse       EventType = "refresh_reuse"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
	EventForbidden          EventType = "forbidden"
)

// Logger emits structured audit events for authentication and access
// control. It is separate from the application logger so security events
// keep a stable, queryable shape.
type Logger struct {
	zap     *zap.Logger
	service string
}

func NewLogger(service string) *Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		logger, _ = zap.NewProduction()
	}

	return &Logger{zap: logger, service: service}
}

// Event records a single audit event. The subject is masked when it looks
// like an email address so raw PII never lands in the logs.
func (l *Logger) Event(event EventType, subject string, fields ...zap.Field) {
	all := append([]zap.Field{
		zap.String("service", l.service),
		zap.String("event", string(event)),
		zap.String("subject", MaskEmail(subject)),
	}, fields...)

	level := zapcore.InfoLevel
	if event != EventLoginSuccess {
		level = zapcore.WarnLevel
	}
	l.zap.Log(level, string(event), all...)
}

func (l *Logger) Sync() {
	_ = l.zap.Sync()
}

// MaskEmail hides the local part of an address: "alice@example.com" becomes
// "a***@example.com". Non-email subjects are returned unchanged.
func MaskEmail(s string) string {
	at := strings.IndexByte(s, '@')
	if at <= 0 {
		return s
	}
	return s[:1] + "***" + s[at:]
}
