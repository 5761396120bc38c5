package launcher

// Defaults bundles the baseline configuration values the launcher uses
// before the config file and flags override them.

type Defaults struct {
	Logging LoggingDefaults
	Output  OutputDefaults
	Sentry  SentryDefaults
}

// LoggingDefaults controls log verbosity/format.
type LoggingDefaults struct {
	Verbosity int    //	Log level numeric (0=fatal, 1=error, 2=warn, 3=info, 4=debug, 5=trace).
	Format    string //	Log output format (text vs json).
	Color     bool   //	Whether to use ANSI color codes in logs (helpful on terminals, best disabled when piping to files).
}

// OutputDefaults controls how command results are printed.
type OutputDefaults struct {
	Format string //	hex prints bare 0x-prefixed bytes, json prints a document with the type, bytes and value.
}

// SentryDefaults configures error reporting.
type SentryDefaults struct {
	DSN string //	Sentry project DSN; empty disables the hook.
}

// DefaultConfig returns a fully populated Defaults instance.

func DefaultConfig() Defaults {
	return Defaults{
		Logging: LoggingDefaults{
			Verbosity: 3,
			Format:    "text",
			Color:     false,
		},
		Output: OutputDefaults{
			Format: "hex",
		},
		Sentry: SentryDefaults{},
	}
}
