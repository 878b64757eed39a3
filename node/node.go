package node

import (
	"os"
	"sync"

	"github.com/inconshreveable/log15"

	"github.com/vaultlabs/go-vault/common"
	"github.com/vaultlabs/go-vault/config"
	"github.com/vaultlabs/go-vault/rpc"
	"github.com/vaultlabs/go-vault/vault"
	"github.com/vaultlabs/go-vault/vaultdb"
	"github.com/vaultlabs/go-vault/wallet"
)

var log = log15.New("module", "gvault/node")

// Node is a container that manages the wallet, store, vault and rpc modules.
type Node struct {
	config *config.Config

	walletManager *wallet.Manager
	store         *vaultdb.Store
	vaultManager  *vault.Manager
	rpcServer     *rpc.Server

	stop    chan struct{}
	lock    sync.RWMutex
	running bool
}

func New(conf *config.Config) (*Node, error) {
	return &Node{
		config:        conf,
		walletManager: wallet.NewManager(conf.KeyStoreDir),
		stop:          make(chan struct{}),
	}, nil
}

func (node *Node) Start() error {
	node.lock.Lock()
	defer node.lock.Unlock()

	if node.running {
		return ErrNodeRunning
	}

	if err := node.openDataDir(); err != nil {
		return err
	}
	node.setupLog()

	log.Info("opening account database", "dir", node.config.DBDir())
	store, err := vaultdb.NewStore(node.config.DBDir())
	if err != nil {
		return err
	}
	node.store = store
	node.vaultManager = vault.NewManager(store)

	node.rpcServer = rpc.NewServer(node.vaultManager, node.config.RPCListenAddr, node.config.RPCCorsOrigins)
	if err := node.rpcServer.Start(); err != nil {
		node.store.Close()
		node.store = nil
		return err
	}

	node.running = true
	return nil
}

func (node *Node) Stop() error {
	node.lock.Lock()
	defer node.lock.Unlock()

	if !node.running {
		return ErrNodeStopped
	}
	defer close(node.stop)

	if err := node.rpcServer.Stop(); err != nil {
		log.Error("stop rpc server", "err", err)
	}
	if err := node.store.Close(); err != nil {
		log.Error("close account database", "err", err)
	}

	node.running = false
	return nil
}

// Wait blocks until the node has been stopped.
func (node *Node) Wait() {
	<-node.stop
}

func (node *Node) Wallet() *wallet.Manager {
	return node.walletManager
}

func (node *Node) Vault() *vault.Manager {
	node.lock.RLock()
	defer node.lock.RUnlock()
	return node.vaultManager
}

// RPCListenAddr reports the bound listen address, useful when the
// configured port is 0.
func (node *Node) RPCListenAddr() string {
	node.lock.RLock()
	defer node.lock.RUnlock()
	if node.rpcServer == nil {
		return ""
	}
	return node.rpcServer.ListenAddr()
}

func (node *Node) openDataDir() error {
	if err := os.MkdirAll(node.config.DataDir, 0700); err != nil {
		return err
	}
	return os.MkdirAll(node.config.KeyStoreDir, 0700)
}

func (node *Node) setupLog() {
	consoleLvl, err := log15.LvlFromString(node.config.LogLevel)
	if err != nil {
		consoleLvl = log15.LvlInfo
	}
	log15.Root().SetHandler(log15.MultiHandler(
		log15.LvlFilterHandler(consoleLvl, log15.StreamHandler(os.Stderr, log15.TerminalFormat())),
		common.LogHandler(node.config.DataDir, "log", "gvault.log", node.config.LogLevel),
	))
}
