package launcher

import (
	"io"

	"github.com/evalphobia/logrus_sentry"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var verbosityLevels = []logrus.Level{
	logrus.FatalLevel,
	logrus.ErrorLevel,
	logrus.WarnLevel,
	logrus.InfoLevel,
	logrus.DebugLevel,
	logrus.TraceLevel,
}

// sentryLevels are forwarded to Sentry when a DSN is configured.
var sentryLevels = []logrus.Level{
	logrus.PanicLevel,
	logrus.FatalLevel,
	logrus.ErrorLevel,
}

// newLogger builds the command logger from the logging and sentry sections.
func newLogger(cfg Config, out io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(verbosityLevels[cfg.Logging.Verbosity])

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			ForceColors:   cfg.Logging.Color,
			DisableColors: !cfg.Logging.Color,
			FullTimestamp: true,
		})
	}

	if cfg.Sentry.DSN != "" {
		hook, err := logrus_sentry.NewSentryHook(cfg.Sentry.DSN, sentryLevels)
		if err != nil {
			return nil, errors.Wrap(err, "failed to set up sentry hook")
		}
		hook.StacktraceConfiguration.Enable = true
		logger.AddHook(hook)
	}
	return logger, nil
}
