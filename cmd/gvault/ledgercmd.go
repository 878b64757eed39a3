package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/fatih/color"
	"gopkg.in/urfave/cli.v1"

	"github.com/vaultlabs/go-vault/client"
	"github.com/vaultlabs/go-vault/cmd/utils"
	"github.com/vaultlabs/go-vault/common"
	"github.com/vaultlabs/go-vault/common/types"
	"github.com/vaultlabs/go-vault/config"
	"github.com/vaultlabs/go-vault/vault"
)

var (
	initCommand = cli.Command{
		Action:    utils.MigrateFlags(initAction),
		Name:      "init",
		Usage:     "Initialize the deposit account for an owner",
		ArgsUsage: " ",
		Category:  "LEDGER COMMANDS",
		Flags:     []cli.Flag{utils.URLFlag, utils.OwnerFlag},
	}
	balanceCommand = cli.Command{
		Action:    utils.MigrateFlags(balanceAction),
		Name:      "balance",
		Usage:     "Query deposit balances for the configured wallets",
		ArgsUsage: " ",
		Category:  "LEDGER COMMANDS",
		Flags:     []cli.Flag{utils.URLFlag, utils.OwnerFlag},
		Description: `
Queries every wallet from the config file concurrently, or a single owner
passed with --owner.
`,
	}
	depositCommand = cli.Command{
		Action:    utils.MigrateFlags(depositAction),
		Name:      "deposit",
		Usage:     "Deposit an amount into owners' accounts",
		ArgsUsage: " ",
		Category:  "LEDGER COMMANDS",
		Flags:     []cli.Flag{utils.URLFlag, utils.OwnerFlag, utils.AmountFlag},
	}
	withdrawCommand = cli.Command{
		Action:    utils.MigrateFlags(withdrawAction),
		Name:      "withdraw",
		Usage:     "Withdraw an amount from owners' accounts",
		ArgsUsage: " ",
		Category:  "LEDGER COMMANDS",
		Flags:     []cli.Flag{utils.URLFlag, utils.OwnerFlag, utils.AmountFlag},
	}
	metricsCommand = cli.Command{
		Action:    utils.MigrateFlags(metricsAction),
		Name:      "metrics",
		Usage:     "Print the node's operation counters",
		ArgsUsage: " ",
		Category:  "LEDGER COMMANDS",
		Flags:     []cli.Flag{utils.URLFlag},
	}
)

// owners resolves the target owner set: --owner wins, otherwise the
// config's wallet list.
func owners(ctx *cli.Context, cfg *config.Config) ([]types.Address, error) {
	if raw := ctx.GlobalString(utils.OwnerFlag.Name); raw != "" {
		addr, err := types.HexToAddress(raw)
		if err != nil {
			return nil, err
		}
		return []types.Address{addr}, nil
	}

	addrs, err := cfg.WalletAddresses()
	if err != nil {
		return nil, err
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("no owner given and no wallets configured")
	}
	return addrs, nil
}

func initAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	targets, err := owners(ctx, cfg)
	if err != nil {
		return err
	}

	c := client.New(cfg.RPCURL)
	for _, owner := range targets {
		account, err := c.InitializeAccount(owner)
		if err != nil {
			color.Red("%s: %v", owner, err)
			continue
		}
		fmt.Printf("owner %s\naccount %s\n", owner, account)
	}
	return nil
}

func balanceAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	targets, err := owners(ctx, cfg)
	if err != nil {
		return err
	}

	c := client.New(cfg.RPCURL)

	type walletBalance struct {
		owner   types.Address
		balance uint64
		err     error
	}

	results := make(chan walletBalance, len(targets))
	var wg sync.WaitGroup
	wg.Add(len(targets))
	for _, owner := range targets {
		go func(owner types.Address) {
			defer wg.Done()
			balance, err := c.GetBalance(vault.DepositAddress(owner), owner)
			results <- walletBalance{owner: owner, balance: balance, err: err}
		}(owner)
	}
	wg.Wait()
	close(results)

	for result := range results {
		if result.err != nil {
			color.Red("wallet: %s, error: %v", result.owner, result.err)
			continue
		}
		fmt.Printf("wallet: %s, balance %s COIN\n", result.owner, common.SubunitsToCoinString(result.balance))
	}
	return nil
}

func depositAction(ctx *cli.Context) error {
	return runAmountOp(ctx, "deposit", func(c *client.Client, owner types.Address, amount uint64) (uint64, error) {
		return c.Deposit(vault.DepositAddress(owner), owner, amount)
	})
}

func withdrawAction(ctx *cli.Context) error {
	return runAmountOp(ctx, "withdraw", func(c *client.Client, owner types.Address, amount uint64) (uint64, error) {
		return c.Withdraw(vault.DepositAddress(owner), owner, amount)
	})
}

func runAmountOp(ctx *cli.Context, name string, op func(*client.Client, types.Address, uint64) (uint64, error)) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	targets, err := owners(ctx, cfg)
	if err != nil {
		return err
	}

	amount := ctx.GlobalUint64(utils.AmountFlag.Name)
	if amount == 0 {
		return fmt.Errorf("--%s is required and must be greater than zero", utils.AmountFlag.Name)
	}

	c := client.New(cfg.RPCURL)
	for _, owner := range targets {
		start := time.Now()
		total, err := op(c, owner, amount)
		elapsed := time.Since(start)

		fmt.Printf("%s %s for %s\n", name, common.SubunitsToCoinString(amount), owner)
		fmt.Printf("processing time %v\n", elapsed)
		if err != nil {
			color.Red("status: %v", err)
		} else {
			color.Green("status: OK, total %s COIN", common.SubunitsToCoinString(total))
		}
		fmt.Println("--------------------------------------------------------------------------------------")
	}
	return nil
}

func metricsAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	snap, err := client.New(cfg.RPCURL).Metrics()
	if err != nil {
		return err
	}
	fmt.Printf("inits %d\ndeposits %d\nwithdrawals %d\nqueries %d\nfailures %d\n",
		snap.Inits, snap.Deposits, snap.Withdrawals, snap.Queries, snap.Failures)
	return nil
}
