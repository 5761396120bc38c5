package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// CommonFlags returns the base set of CLI flags shared across commands.

func CommonFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "YAML config file (logging, output, sentry sections)",
		},
		cli.StringFlag{
			Name:  "log.format",
			Usage: "Log output format (text|json)",
			Value: "text",
		},
		cli.IntFlag{
			Name:  "log.verbosity",
			Usage: "Logging verbosity (0=fatal,1=error,2=warn,3=info,4=debug,5=trace)",
			Value: 3,
		},
		cli.BoolFlag{
			Name:  "log.color",
			Usage: "Enable colored log output",
		},
		cli.StringFlag{
			Name:   "sentry.dsn",
			Usage:  "Report errors to this Sentry DSN",
			EnvVar: "DEPLOYARGS_SENTRY_DSN",
		},
		cli.StringFlag{
			Name:  "output",
			Usage: "Result format (hex|json)",
			Value: "hex",
		},
	}
}
