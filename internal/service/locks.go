package service

import "sync"

// WalletLocks serializes balance mutations per wallet id. Every read-then-write
// of a wallet balance (ledger service and box service alike) must hold the
// same lock so no interleaving can overdraw.
type WalletLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewWalletLocks() *WalletLocks {
	return &WalletLocks{locks: make(map[uint]*sync.Mutex)}
}

func (l *WalletLocks) lockFor(walletID uint) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[walletID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[walletID] = m
	}
	return m
}

// With runs fn while holding the wallet's lock.
func (l *WalletLocks) With(walletID uint, fn func() error) error {
	m := l.lockFor(walletID)
	m.Lock()
	defer m.Unlock()
	return fn()
}
