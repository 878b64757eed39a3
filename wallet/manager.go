package wallet

import (
	"crypto/ed25519"
	"io/ioutil"
	"path/filepath"
	"sync"

	"github.com/inconshreveable/log15"
	"github.com/tyler-smith/go-bip39"

	"github.com/vaultlabs/go-vault/common/types"
	"github.com/vaultlabs/go-vault/wallet/walleterrors"
)

// Manager owns the keystore directory: one encrypted seed file per address,
// named by the address's hex form.
type Manager struct {
	keystoreDir string

	mutex sync.Mutex
	log   log15.Logger
}

func NewManager(keystoreDir string) *Manager {
	return &Manager{
		keystoreDir: keystoreDir,
		log:         log15.New("module", "wallet"),
	}
}

// CreateAccount generates a fresh mnemonic-backed keypair, persists the
// encrypted seed and returns the derived address together with the mnemonic
// the user must keep to recover the key.
func (m *Manager) CreateAccount(password string) (types.Address, string, error) {
	entropy, err := bip39.NewEntropy(128)
	if err != nil {
		return types.Address{}, "", err
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return types.Address{}, "", err
	}

	addr, err := m.storeMnemonicKey(mnemonic, password)
	if err != nil {
		return types.Address{}, "", err
	}
	return addr, mnemonic, nil
}

// RecoverAccount rebuilds the keystore file for the key a mnemonic encodes.
func (m *Manager) RecoverAccount(mnemonic, password string) (types.Address, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return types.Address{}, walleterrors.ErrInvalidMnemonic
	}
	return m.storeMnemonicKey(mnemonic, password)
}

func (m *Manager) storeMnemonicKey(mnemonic, password string) (types.Address, error) {
	seed := bip39.NewSeed(mnemonic, "")[:ed25519.SeedSize]
	key := ed25519.NewKeyFromSeed(seed)
	addr := types.PrikeyToAddress(key)

	m.mutex.Lock()
	defer m.mutex.Unlock()

	ks := CryptoStore{KeystoreFilename: m.keystoreFilename(addr)}
	if err := ks.StoreSeed(addr, seed, password); err != nil {
		return types.Address{}, err
	}

	m.log.Info("keystore written", "address", addr)
	return addr, nil
}

// ExtractKey unlocks the key for the given address.
func (m *Manager) ExtractKey(addr types.Address, password string) (ed25519.PrivateKey, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	filename := m.keystoreFilename(addr)
	ks := CryptoStore{KeystoreFilename: filename}
	stored, key, err := ks.ExtractKey(password)
	if err != nil {
		return nil, err
	}
	if stored != addr {
		return nil, walleterrors.ErrNotFound
	}
	return key, nil
}

// ListAddresses scans the keystore directory.
func (m *Manager) ListAddresses() ([]types.Address, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	files, err := ioutil.ReadDir(m.keystoreDir)
	if err != nil {
		return nil, err
	}

	var addrs []types.Address
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		addr, err := types.HexToAddress(file.Name())
		if err != nil {
			continue
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}

func (m *Manager) Find(addr types.Address) (bool, error) {
	addrs, err := m.ListAddresses()
	if err != nil {
		return false, err
	}
	for _, candidate := range addrs {
		if candidate == addr {
			return true, nil
		}
	}
	return false, nil
}

func (m *Manager) keystoreFilename(addr types.Address) string {
	return filepath.Join(m.keystoreDir, addr.Hex())
}
