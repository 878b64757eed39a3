package vault

import (
	"math"
	"sync"

	"github.com/inconshreveable/log15"

	"github.com/vaultlabs/go-vault/common/types"
	vcrypto "github.com/vaultlabs/go-vault/crypto"
	"github.com/vaultlabs/go-vault/ledger"
)

var depositAddressTag = []byte("deposit")

// DepositAddress derives the handle of the deposit account owned by the
// given identity. The derivation is deterministic, so re-initializing for
// the same owner always targets the same record.
func DepositAddress(owner types.Address) types.Address {
	addr, _ := types.BytesToAddress(vcrypto.Hash(types.AddressSize, depositAddressTag, owner.Bytes()))
	return addr
}

// Store is the persistence collaborator. Implementations must make Put
// atomic per record; the Manager takes care of serializing operations on
// the same account address.
type Store interface {
	Has(addr types.Address) (bool, error)
	Get(addr types.Address) ([]byte, error) // ErrAccountNotFound if no record exists
	Put(addr types.Address, record []byte) error
}

// Manager implements the four ledger operations over an injected Store.
//
// Identity checks all route through authorize, and every operation holds
// the per-account mutex for its whole read-modify-write, so operations on
// one account never interleave while different accounts proceed in
// parallel.
type Manager struct {
	store   Store
	locks   sync.Map // types.Address -> *sync.Mutex
	metrics Metrics
	log     log15.Logger
}

func NewManager(store Store) *Manager {
	return &Manager{
		store: store,
		log:   log15.New("module", "vault"),
	}
}

func (m *Manager) Metrics() *Metrics {
	return &m.metrics
}

// InitializeAccount creates the deposit account owned by owner with a zero
// total and returns its handle. A second call for the same owner fails with
// ErrAlreadyInitialized and leaves the existing record untouched.
func (m *Manager) InitializeAccount(owner types.Address) (types.Address, error) {
	addr := DepositAddress(owner)

	lock := m.accountLock(addr)
	lock.Lock()
	defer lock.Unlock()

	exists, err := m.store.Has(addr)
	if err != nil {
		m.metrics.Failures.Inc()
		return types.Address{}, err
	}
	if exists {
		m.metrics.Failures.Inc()
		return types.Address{}, ErrAlreadyInitialized
	}

	account := &ledger.Account{Owner: owner}
	if err := m.persist(addr, account); err != nil {
		m.metrics.Failures.Inc()
		return types.Address{}, err
	}

	m.metrics.Inits.Inc()
	m.log.Info("account initialized", "account", addr, "owner", owner)
	return addr, nil
}

// Deposit adds amount to the account's running total. The new total is
// persisted before it is returned.
func (m *Manager) Deposit(addr, caller types.Address, amount uint64) (uint64, error) {
	if amount == 0 {
		m.metrics.Failures.Inc()
		return 0, ErrInvalidAmount
	}

	lock := m.accountLock(addr)
	lock.Lock()
	defer lock.Unlock()

	account, err := m.loadAuthorized(addr, caller)
	if err != nil {
		m.metrics.Failures.Inc()
		return 0, err
	}

	newTotal, ok := safeAdd(account.TotalDeposits, amount)
	if !ok {
		m.metrics.Failures.Inc()
		return 0, ErrAmountOverflow
	}

	account.TotalDeposits = newTotal
	if err := m.persist(addr, account); err != nil {
		m.metrics.Failures.Inc()
		return 0, err
	}

	m.metrics.Deposits.Inc()
	m.log.Debug("deposit applied", "account", addr, "amount", amount, "total", newTotal)
	return newTotal, nil
}

// Withdraw subtracts amount from the account's running total. The total
// never goes negative: an amount above the current total is rejected with
// ErrInsufficientFunds and the record stays unchanged.
func (m *Manager) Withdraw(addr, caller types.Address, amount uint64) (uint64, error) {
	if amount == 0 {
		m.metrics.Failures.Inc()
		return 0, ErrInvalidAmount
	}

	lock := m.accountLock(addr)
	lock.Lock()
	defer lock.Unlock()

	account, err := m.loadAuthorized(addr, caller)
	if err != nil {
		m.metrics.Failures.Inc()
		return 0, err
	}

	if amount > account.TotalDeposits {
		m.metrics.Failures.Inc()
		return 0, ErrInsufficientFunds
	}

	account.TotalDeposits -= amount
	if err := m.persist(addr, account); err != nil {
		m.metrics.Failures.Inc()
		return 0, err
	}

	m.metrics.Withdrawals.Inc()
	m.log.Debug("withdrawal applied", "account", addr, "amount", amount, "total", account.TotalDeposits)
	return account.TotalDeposits, nil
}

// GetBalance returns the account's running total without mutating it.
// Only the owner may query.
func (m *Manager) GetBalance(addr, caller types.Address) (uint64, error) {
	lock := m.accountLock(addr)
	lock.Lock()
	defer lock.Unlock()

	account, err := m.loadAuthorized(addr, caller)
	if err != nil {
		m.metrics.Failures.Inc()
		return 0, err
	}

	m.metrics.Queries.Inc()
	return account.TotalDeposits, nil
}

// authorize is the only place identity comparison happens.
func (m *Manager) authorize(account *ledger.Account, caller types.Address) bool {
	return account.Owner == caller
}

func (m *Manager) loadAuthorized(addr, caller types.Address) (*ledger.Account, error) {
	buf, err := m.store.Get(addr)
	if err != nil {
		return nil, err
	}

	account := &ledger.Account{}
	if err := account.Deserialize(buf); err != nil {
		return nil, err
	}

	if !m.authorize(account, caller) {
		return nil, ErrUnauthorized
	}
	return account, nil
}

func (m *Manager) persist(addr types.Address, account *ledger.Account) error {
	buf, err := account.Serialize()
	if err != nil {
		return err
	}
	return m.store.Put(addr, buf)
}

func (m *Manager) accountLock(addr types.Address) *sync.Mutex {
	lock, _ := m.locks.LoadOrStore(addr, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

func safeAdd(a, b uint64) (uint64, bool) {
	if a > math.MaxUint64-b {
		return 0, false
	}
	return a + b, true
}
