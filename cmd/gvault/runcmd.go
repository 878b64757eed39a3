package main

import (
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/urfave/cli.v1"

	"github.com/vaultlabs/go-vault/cmd/utils"
	"github.com/vaultlabs/go-vault/node"
)

var runCommand = cli.Command{
	Action:    utils.MigrateFlags(runAction),
	Name:      "run",
	Usage:     "Run the deposit-ledger node",
	ArgsUsage: " ",
	Category:  "NODE COMMANDS",
	Description: `
Starts the node: opens the account database under the data directory and
serves the ledger operations over HTTP-RPC until interrupted.
`,
}

func runAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	n, err := node.New(cfg)
	if err != nil {
		return err
	}
	if err := n.Start(); err != nil {
		return err
	}

	go func() {
		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
		<-interrupt
		signal.Stop(interrupt)
		n.Stop()
	}()

	n.Wait()
	return nil
}
