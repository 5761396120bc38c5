package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// ArgFlags declare a single deploy argument on the command line.

func ArgFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "type",
			Usage: "Argument type, e.g. U512, List(U8), Map(String, Key)",
		},
		cli.StringFlag{
			Name:  "value",
			Usage: "Argument value as a JSON literal, e.g. '[1, 2]' or '\"00ff\"'",
		},
		cli.StringSliceFlag{
			Name:  "shape",
			Usage: "Key/URef slot shape (account|hash|uref:<rights>), once per slot in order",
		},
	}
}

// ArgsFileFlags select a YAML args file.
func ArgsFileFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "file",
			Usage: "YAML file with an args list of {name, type, value, shapes}",
		},
	}
}

// DecodeFlags describe canonical bytes to decode.
func DecodeFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "type",
			Usage: "Type of the encoded value",
		},
		cli.StringFlag{
			Name:  "data",
			Usage: "Hex encoded canonical bytes",
		},
	}
}
