package config

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/vaultlabs/go-vault/common"
	"github.com/vaultlabs/go-vault/common/types"
)

const DefaultConfigFileName = "gvault.config.json"

type Config struct {
	DataDir     string `json:"DataDir"`
	KeyStoreDir string `json:"KeyStoreDir"`

	RPCListenAddr  string   `json:"RPCListenAddr"`
	RPCCorsOrigins []string `json:"RPCCorsOrigins"`

	LogLevel string `json:"LogLevel"`

	// client-side settings, used by the balance/deposit/withdraw commands
	RPCURL  string   `json:"RPCURL"`
	Wallets []string `json:"Wallets"`
}

func DefaultConfig() *Config {
	dataDir := common.DefaultDataDir()
	return &Config{
		DataDir:       dataDir,
		KeyStoreDir:   filepath.Join(dataDir, "wallet"),
		RPCListenAddr: common.DefaultRPCListenAddr,
		LogLevel:      common.DefaultLogLevel,
		RPCURL:        "http://" + common.DefaultRPCListenAddr,
	}
}

// Load reads the JSON config file at path and fills unset fields with
// defaults. An empty path means the default file name in the working
// directory; a missing default file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFileName
	}

	text, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "read config file %s", path)
	}

	if err := json.Unmarshal(text, cfg); err != nil {
		return nil, errors.Wrapf(err, "unmarshal config file %s", path)
	}

	cfg.FillDefaults()
	return cfg, nil
}

func (c *Config) FillDefaults() {
	def := DefaultConfig()
	if c.DataDir == "" {
		c.DataDir = def.DataDir
	}
	if c.KeyStoreDir == "" {
		c.KeyStoreDir = filepath.Join(c.DataDir, "wallet")
	}
	if c.RPCListenAddr == "" {
		c.RPCListenAddr = def.RPCListenAddr
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.RPCURL == "" {
		c.RPCURL = "http://" + c.RPCListenAddr
	}
}

func (c *Config) DBDir() string {
	return filepath.Join(c.DataDir, "vaultdb")
}

// WalletAddresses parses the configured wallet list.
func (c *Config) WalletAddresses() ([]types.Address, error) {
	addrs := make([]types.Address, 0, len(c.Wallets))
	for _, raw := range c.Wallets {
		addr, err := types.HexToAddress(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "config wallet %q", raw)
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}
