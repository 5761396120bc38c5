package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// URefParseFlags take a formatted URef.
func URefParseFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "uref",
			Usage: "Formatted URef, uref-<64 hex chars>-<octal rights>",
		},
	}
}

// URefFormatFlags take the parts of a URef.
func URefFormatFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "address",
			Usage: "32-byte hex address",
		},
		cli.StringFlag{
			Name:  "rights",
			Usage: "Access rights, a name such as READ_ADD or an octal number",
			Value: "READ_ADD_WRITE",
		},
	}
}

// KeyFlags identify a public key for account hashing.
func KeyFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "key",
			Usage: "Hex public key; prefixed with its algorithm tag byte unless --algo is given",
		},
		cli.StringFlag{
			Name:  "algo",
			Usage: "Key algorithm of a raw --key (ed25519|secp256k1)",
		},
	}
}
