package utils

import (
	"gopkg.in/urfave/cli.v1"
)

var (
	ConfigFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "JSON configuration file",
	}
	DataDirFlag = cli.StringFlag{
		Name:  "datadir",
		Usage: "Data directory for the database, keystores and logs",
	}
	KeyStoreDirFlag = cli.StringFlag{
		Name:  "keystore",
		Usage: "Directory for the keystore files (default = inside the datadir)",
	}
	RPCListenAddrFlag = cli.StringFlag{
		Name:  "rpcaddr",
		Usage: "HTTP-RPC server listening address",
	}
	LogLvlFlag = cli.StringFlag{
		Name:  "loglevel",
		Usage: "Log level (trace|debug|info|warn|error|crit)",
	}
	URLFlag = cli.StringFlag{
		Name:  "url",
		Usage: "URL of the gvault rpc server",
	}
	PasswordFlag = cli.StringFlag{
		Name:  "password",
		Usage: "Password guarding the keystore file",
	}
	MnemonicFlag = cli.StringFlag{
		Name:  "mnemonic",
		Usage: "BIP-39 mnemonic to recover a key from",
	}
	OwnerFlag = cli.StringFlag{
		Name:  "owner",
		Usage: "Owner address of the deposit account",
	}
	AmountFlag = cli.Uint64Flag{
		Name:  "amount",
		Usage: "Amount in subunits",
	}
)

// MigrateFlags makes command-scoped flag values visible through the global
// context, so actions can read every flag the same way.
func MigrateFlags(action func(ctx *cli.Context) error) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		for _, name := range ctx.FlagNames() {
			if ctx.IsSet(name) {
				if err := ctx.GlobalSet(name, ctx.String(name)); err != nil {
					return err
				}
			}
		}
		return action(ctx)
	}
}
