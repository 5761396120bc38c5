package launcher

import (
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-deploy-args/flags"
)

// NewApp assembles the CLI with every command registered.
func NewApp() *cli.App {
	app := flags.NewApp()
	app.Commands = commands()
	return app
}

// Launch runs the CLI with the given os-style arguments.
func Launch(args []string) error {
	return NewApp().Run(args)
}
