package errors

import (
	"os"
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryConfig holds configuration for Sentry integration
type SentryConfig struct {
	DSN              string
	Environment      string
	Release          string
	ServerName       string
	Debug            bool
	AttachStacktrace bool
}

// DefaultSentryConfig returns a default Sentry configuration
func DefaultSentryConfig() *SentryConfig {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	return &SentryConfig{
		DSN:              os.Getenv("SENTRY_DSN"),
		Environment:      env,
		Release:          os.Getenv("SENTRY_RELEASE"),
		ServerName:       os.Getenv("SERVICE_NAME"),
		Debug:            os.Getenv("SENTRY_DEBUG") == "true",
		AttachStacktrace: true,
	}
}

// InitSentry initializes the Sentry SDK with the given configuration.
// A missing DSN disables error tracking without failing startup.
func InitSentry(config *SentryConfig) (bool, error) {
	if config.DSN == "" {
		return false, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              config.DSN,
		Environment:      config.Environment,
		Release:          config.Release,
		ServerName:       config.ServerName,
		Debug:            config.Debug,
		AttachStacktrace: config.AttachStacktrace,
		BeforeSend: func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
			if event.Level == sentry.LevelInfo || event.Level == sentry.LevelDebug {
				return nil
			}
			return event
		},
	})
	if err != nil {
		return false, err
	}

	return true, nil
}

// CaptureError captures an error and sends it to Sentry
func CaptureError(err error) *sentry.EventID {
	if err == nil {
		return nil
	}
	return sentry.CaptureException(err)
}

// Flush flushes the Sentry buffer
func Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}
