package main

import (
	"fmt"

	"github.com/fatih/color"
	"gopkg.in/urfave/cli.v1"

	"github.com/vaultlabs/go-vault/cmd/utils"
	"github.com/vaultlabs/go-vault/wallet"
)

var accountCommand = cli.Command{
	Name:     "account",
	Usage:    "Manage keystore accounts",
	Category: "ACCOUNT COMMANDS",
	Subcommands: []cli.Command{
		{
			Action:    utils.MigrateFlags(accountNewAction),
			Name:      "new",
			Usage:     "Create a new mnemonic-backed key",
			ArgsUsage: " ",
			Flags:     []cli.Flag{utils.PasswordFlag},
		},
		{
			Action:    utils.MigrateFlags(accountRecoverAction),
			Name:      "recover",
			Usage:     "Recover a key from its mnemonic",
			ArgsUsage: " ",
			Flags:     []cli.Flag{utils.PasswordFlag, utils.MnemonicFlag},
		},
		{
			Action:    utils.MigrateFlags(accountListAction),
			Name:      "list",
			Usage:     "List keystore addresses",
			ArgsUsage: " ",
		},
	},
}

func accountNewAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	manager := wallet.NewManager(cfg.KeyStoreDir)
	addr, mnemonic, err := manager.CreateAccount(ctx.GlobalString(utils.PasswordFlag.Name))
	if err != nil {
		return err
	}

	fmt.Println("Address:", addr)
	color.Yellow("Mnemonic (write it down, it is shown only once):")
	fmt.Println(mnemonic)
	return nil
}

func accountRecoverAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	mnemonic := ctx.GlobalString(utils.MnemonicFlag.Name)
	if mnemonic == "" {
		return fmt.Errorf("--%s is required", utils.MnemonicFlag.Name)
	}

	manager := wallet.NewManager(cfg.KeyStoreDir)
	addr, err := manager.RecoverAccount(mnemonic, ctx.GlobalString(utils.PasswordFlag.Name))
	if err != nil {
		return err
	}

	fmt.Println("Address:", addr)
	return nil
}

func accountListAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	manager := wallet.NewManager(cfg.KeyStoreDir)
	addrs, err := manager.ListAddresses()
	if err != nil {
		return err
	}
	for _, addr := range addrs {
		fmt.Println(addr)
	}
	return nil
}
