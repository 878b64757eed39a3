// gvault is the command-line client for the vault deposit-ledger node.
package main

import (
	"fmt"
	"os"
	"runtime"
	"sort"

	"gopkg.in/urfave/cli.v1"

	"github.com/vaultlabs/go-vault/cmd/params"
	"github.com/vaultlabs/go-vault/cmd/utils"
	"github.com/vaultlabs/go-vault/config"
)

var (
	app = cli.NewApp()

	versionCommand = cli.Command{
		Action:    utils.MigrateFlags(versionAction),
		Name:      "version",
		Usage:     "Print version numbers",
		ArgsUsage: " ",
		Category:  "MISCELLANEOUS COMMANDS",
	}
)

func init() {
	app.Name = "gvault"
	app.Version = params.Version
	app.Usage = "deposit-ledger node and client"
	app.Flags = []cli.Flag{
		utils.ConfigFileFlag,
		utils.DataDirFlag,
		utils.KeyStoreDirFlag,
		utils.RPCListenAddrFlag,
		utils.LogLvlFlag,
		utils.URLFlag,
		utils.PasswordFlag,
		utils.MnemonicFlag,
		utils.OwnerFlag,
		utils.AmountFlag,
	}
	app.Commands = []cli.Command{
		runCommand,
		accountCommand,
		initCommand,
		balanceCommand,
		depositCommand,
		withdrawCommand,
		metricsCommand,
		versionCommand,
	}
	sort.Sort(cli.CommandsByName(app.Commands))
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func versionAction(_ *cli.Context) error {
	fmt.Println("GVault")
	fmt.Println("Version:", params.Version)
	fmt.Println("Architecture:", runtime.GOARCH)
	fmt.Println("Go Version:", runtime.Version())
	fmt.Println("Operating System:", runtime.GOOS)
	return nil
}

// loadConfig merges command-line flags over the configuration file.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx.GlobalString(utils.ConfigFileFlag.Name))
	if err != nil {
		return nil, err
	}
	if dataDir := ctx.GlobalString(utils.DataDirFlag.Name); dataDir != "" {
		cfg.DataDir = dataDir
		cfg.KeyStoreDir = ""
	}
	if keyStoreDir := ctx.GlobalString(utils.KeyStoreDirFlag.Name); keyStoreDir != "" {
		cfg.KeyStoreDir = keyStoreDir
	}
	if listenAddr := ctx.GlobalString(utils.RPCListenAddrFlag.Name); listenAddr != "" {
		cfg.RPCListenAddr = listenAddr
	}
	if lvl := ctx.GlobalString(utils.LogLvlFlag.Name); lvl != "" {
		cfg.LogLevel = lvl
	}
	if url := ctx.GlobalString(utils.URLFlag.Name); url != "" {
		cfg.RPCURL = url
	}
	cfg.FillDefaults()
	return cfg, nil
}
