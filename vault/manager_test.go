package vault

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultlabs/go-vault/common/types"
	"github.com/vaultlabs/go-vault/ledger"
)

// memStore is an in-memory Store used to exercise the manager without a
// database behind it.
type memStore struct {
	mu      sync.RWMutex
	records map[types.Address][]byte
}

func newMemStore() *memStore {
	return &memStore{records: make(map[types.Address][]byte)}
}

func (s *memStore) Has(addr types.Address) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[addr]
	return ok, nil
}

func (s *memStore) Get(addr types.Address) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[addr]
	if !ok {
		return nil, ErrAccountNotFound
	}
	out := make([]byte, len(record))
	copy(out, record)
	return out, nil
}

func (s *memStore) Put(addr types.Address, record []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(record))
	copy(buf, record)
	s.records[addr] = buf
	return nil
}

func newTestManager(t *testing.T) (*Manager, *memStore, types.Address, types.Address) {
	t.Helper()
	store := newMemStore()
	m := NewManager(store)
	owner, _, err := types.CreateAddress()
	require.NoError(t, err)
	addr, err := m.InitializeAccount(owner)
	require.NoError(t, err)
	return m, store, addr, owner
}

func TestInitializeStartsAtZero(t *testing.T) {
	m, _, addr, owner := newTestManager(t)

	balance, err := m.GetBalance(addr, owner)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)
}

func TestInitializeTwice(t *testing.T) {
	m, _, addr, owner := newTestManager(t)

	_, err := m.Deposit(addr, owner, 100000000)
	require.NoError(t, err)

	_, err = m.InitializeAccount(owner)
	assert.Equal(t, ErrAlreadyInitialized, err)

	// the failed re-initialization must not reset the record
	balance, err := m.GetBalance(addr, owner)
	require.NoError(t, err)
	assert.Equal(t, uint64(100000000), balance)
}

func TestDepositAccumulates(t *testing.T) {
	m, _, addr, owner := newTestManager(t)

	total, err := m.Deposit(addr, owner, 100000000)
	require.NoError(t, err)
	assert.Equal(t, uint64(100000000), total)

	total, err = m.Deposit(addr, owner, 100000000)
	require.NoError(t, err)
	assert.Equal(t, uint64(200000000), total)
}

func TestWithdraw(t *testing.T) {
	m, _, addr, owner := newTestManager(t)

	_, err := m.Deposit(addr, owner, 200000000)
	require.NoError(t, err)

	total, err := m.Withdraw(addr, owner, 100000000)
	require.NoError(t, err)
	assert.Equal(t, uint64(100000000), total)

	balance, err := m.GetBalance(addr, owner)
	require.NoError(t, err)
	assert.Equal(t, uint64(100000000), balance)

	// draining the account exactly is fine
	total, err = m.Withdraw(addr, owner, 100000000)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), total)
}

func TestWithdrawInsufficient(t *testing.T) {
	m, _, addr, owner := newTestManager(t)

	_, err := m.Deposit(addr, owner, 100000000)
	require.NoError(t, err)

	_, err = m.Withdraw(addr, owner, 200000000)
	assert.Equal(t, ErrInsufficientFunds, err)

	balance, err := m.GetBalance(addr, owner)
	require.NoError(t, err)
	assert.Equal(t, uint64(100000000), balance)
}

func TestZeroAmountRejected(t *testing.T) {
	m, _, addr, owner := newTestManager(t)

	_, err := m.Deposit(addr, owner, 0)
	assert.Equal(t, ErrInvalidAmount, err)

	_, err = m.Withdraw(addr, owner, 0)
	assert.Equal(t, ErrInvalidAmount, err)
}

func TestUnauthorized(t *testing.T) {
	m, _, addr, owner := newTestManager(t)

	_, err := m.Deposit(addr, owner, 100000000)
	require.NoError(t, err)

	other, _, err := types.CreateAddress()
	require.NoError(t, err)

	_, err = m.Deposit(addr, other, 1)
	assert.Equal(t, ErrUnauthorized, err)

	_, err = m.Withdraw(addr, other, 1)
	assert.Equal(t, ErrUnauthorized, err)

	_, err = m.GetBalance(addr, other)
	assert.Equal(t, ErrUnauthorized, err)

	balance, err := m.GetBalance(addr, owner)
	require.NoError(t, err)
	assert.Equal(t, uint64(100000000), balance)
}

func TestDepositOverflow(t *testing.T) {
	m, store, addr, owner := newTestManager(t)

	account := &ledger.Account{Owner: owner, TotalDeposits: math.MaxUint64 - 10}
	buf, err := account.Serialize()
	require.NoError(t, err)
	require.NoError(t, store.Put(addr, buf))

	_, err = m.Deposit(addr, owner, 11)
	assert.Equal(t, ErrAmountOverflow, err)

	balance, err := m.GetBalance(addr, owner)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64-10), balance)

	// saturating the range exactly is still a valid deposit
	total, err := m.Deposit(addr, owner, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), total)
}

func TestAccountNotFound(t *testing.T) {
	store := newMemStore()
	m := NewManager(store)
	owner, _, _ := types.CreateAddress()

	_, err := m.GetBalance(DepositAddress(owner), owner)
	assert.Equal(t, ErrAccountNotFound, err)

	_, err = m.Deposit(DepositAddress(owner), owner, 1)
	assert.Equal(t, ErrAccountNotFound, err)
}

func TestCorruptRecordSurfaced(t *testing.T) {
	m, store, addr, owner := newTestManager(t)

	require.NoError(t, store.Put(addr, []byte{1, 2, 3}))

	_, err := m.GetBalance(addr, owner)
	assert.Equal(t, ledger.ErrCorruptRecord, err)
}

func TestDepositAddressDeterministic(t *testing.T) {
	owner, _, _ := types.CreateAddress()
	assert.Equal(t, DepositAddress(owner), DepositAddress(owner))

	other, _, _ := types.CreateAddress()
	assert.NotEqual(t, DepositAddress(owner), DepositAddress(other))
}

func TestConcurrentDepositsOneAccount(t *testing.T) {
	m, _, addr, owner := newTestManager(t)

	const workers = 16
	const perWorker = 50

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				if _, err := m.Deposit(addr, owner, 1); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	balance, err := m.GetBalance(addr, owner)
	require.NoError(t, err)
	assert.Equal(t, uint64(workers*perWorker), balance)
}

func TestConcurrentIndependentAccounts(t *testing.T) {
	store := newMemStore()
	m := NewManager(store)

	const accounts = 8
	var wg sync.WaitGroup
	wg.Add(accounts)
	for i := 0; i < accounts; i++ {
		go func() {
			defer wg.Done()
			owner, _, err := types.CreateAddress()
			if err != nil {
				t.Error(err)
				return
			}
			addr, err := m.InitializeAccount(owner)
			if err != nil {
				t.Error(err)
				return
			}
			if _, err := m.Deposit(addr, owner, 42); err != nil {
				t.Error(err)
				return
			}
			balance, err := m.GetBalance(addr, owner)
			if err != nil {
				t.Error(err)
				return
			}
			if balance != 42 {
				t.Errorf("balance %d, want 42", balance)
			}
		}()
	}
	wg.Wait()
}

func TestMetricsCount(t *testing.T) {
	m, _, addr, owner := newTestManager(t)

	_, _ = m.Deposit(addr, owner, 5)
	_, _ = m.Withdraw(addr, owner, 5)
	_, _ = m.GetBalance(addr, owner)
	_, _ = m.Withdraw(addr, owner, 1) // insufficient

	snap := m.Metrics().Snapshot()
	assert.Equal(t, uint64(1), snap.Inits)
	assert.Equal(t, uint64(1), snap.Deposits)
	assert.Equal(t, uint64(1), snap.Withdrawals)
	assert.Equal(t, uint64(1), snap.Queries)
	assert.Equal(t, uint64(1), snap.Failures)
}
