// Package storage persists wallet state in a local SQLite-backed key-value
// store. Each wallet owns three independent keys:
//
//	wallet_{id}  JSON array of transactions
//	budget_{id}  decimal string, "0" or absent meaning unset
//	goals_{id}   JSON array of goals
//
// Global keys hold the PIN, the currency symbol, and the active wallet id.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"billetera/internal/core"
)

// Global keys and defaults.
const (
	KeyPIN          = "wallet_pin"
	KeyCurrency     = "wallet_currency"
	KeyActiveWallet = "wallet_active"

	DefaultPIN      = "1234"
	DefaultCurrency = "$"
)

// reservedSuffixes are wallet_ keys that do not name a wallet ledger.
var reservedSuffixes = map[string]bool{"pin": true, "currency": true, "active": true}

func ledgerKey(walletID string) string { return "wallet_" + walletID }
func budgetKey(walletID string) string { return "budget_" + walletID }
func goalsKey(walletID string) string  { return "goals_" + walletID }

// WalletStore bundles the per-wallet ledger, budget, and goals persistence
// plus the global settings, all over one KV database.
type WalletStore struct {
	kv *KV
}

func NewWalletStore(kv *KV) *WalletStore {
	return &WalletStore{kv: kv}
}

// LoadTransactions returns the wallet's ordered transaction sequence, empty
// when nothing has been persisted yet.
func (s *WalletStore) LoadTransactions(ctx context.Context, walletID string) ([]core.Transaction, error) {
	raw, ok, err := s.kv.Get(ctx, ledgerKey(walletID))
	if err != nil {
		return nil, fmt.Errorf("load transactions for %s: %w", walletID, err)
	}
	if !ok {
		return []core.Transaction{}, nil
	}
	var txns []core.Transaction
	if err := json.Unmarshal([]byte(raw), &txns); err != nil {
		return nil, fmt.Errorf("decode transactions for %s: %w", walletID, err)
	}
	return txns, nil
}

// SaveTransactions overwrites the wallet's full persisted sequence.
func (s *WalletStore) SaveTransactions(ctx context.Context, walletID string, txns []core.Transaction) error {
	if txns == nil {
		txns = []core.Transaction{}
	}
	data, err := json.Marshal(txns)
	if err != nil {
		return fmt.Errorf("encode transactions for %s: %w", walletID, err)
	}
	if err := s.kv.Put(ctx, ledgerKey(walletID), string(data)); err != nil {
		return fmt.Errorf("save transactions for %s: %w", walletID, err)
	}
	return nil
}

// LoadBudget returns the wallet budget; zero means unset.
func (s *WalletStore) LoadBudget(ctx context.Context, walletID string) (core.Money, error) {
	raw, ok, err := s.kv.Get(ctx, budgetKey(walletID))
	if err != nil {
		return core.Money{}, fmt.Errorf("load budget for %s: %w", walletID, err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return core.Money{}, nil
	}
	cents, err := core.ParseDecimalToCents(raw)
	if err != nil {
		// A stored "0" is a legitimate unset budget, not corruption.
		return core.Money{}, nil
	}
	return core.Money{Cents: cents}, nil
}

// SaveBudget overwrites the wallet budget, stored as a decimal string.
func (s *WalletStore) SaveBudget(ctx context.Context, walletID string, budget core.Money) error {
	if err := s.kv.Put(ctx, budgetKey(walletID), budget.String()); err != nil {
		return fmt.Errorf("save budget for %s: %w", walletID, err)
	}
	return nil
}

// LoadGoals returns the wallet's goals, empty when none are persisted.
func (s *WalletStore) LoadGoals(ctx context.Context, walletID string) ([]core.Goal, error) {
	raw, ok, err := s.kv.Get(ctx, goalsKey(walletID))
	if err != nil {
		return nil, fmt.Errorf("load goals for %s: %w", walletID, err)
	}
	if !ok {
		return []core.Goal{}, nil
	}
	var goals []core.Goal
	if err := json.Unmarshal([]byte(raw), &goals); err != nil {
		return nil, fmt.Errorf("decode goals for %s: %w", walletID, err)
	}
	return goals, nil
}

// SaveGoals overwrites the wallet's full goal list.
func (s *WalletStore) SaveGoals(ctx context.Context, walletID string, goals []core.Goal) error {
	if goals == nil {
		goals = []core.Goal{}
	}
	data, err := json.Marshal(goals)
	if err != nil {
		return fmt.Errorf("encode goals for %s: %w", walletID, err)
	}
	if err := s.kv.Put(ctx, goalsKey(walletID), string(data)); err != nil {
		return fmt.Errorf("save goals for %s: %w", walletID, err)
	}
	return nil
}

// PIN returns the stored PIN, falling back to the documented default.
func (s *WalletStore) PIN(ctx context.Context) (string, error) {
	raw, ok, err := s.kv.Get(ctx, KeyPIN)
	if err != nil {
		return "", fmt.Errorf("load pin: %w", err)
	}
	if !ok || raw == "" {
		return DefaultPIN, nil
	}
	return raw, nil
}

func (s *WalletStore) SetPIN(ctx context.Context, pin string) error {
	if err := s.kv.Put(ctx, KeyPIN, pin); err != nil {
		return fmt.Errorf("save pin: %w", err)
	}
	return nil
}

// Currency returns the stored currency symbol, defaulting to "$".
func (s *WalletStore) Currency(ctx context.Context) (string, error) {
	raw, ok, err := s.kv.Get(ctx, KeyCurrency)
	if err != nil {
		return "", fmt.Errorf("load currency: %w", err)
	}
	if !ok || raw == "" {
		return DefaultCurrency, nil
	}
	return raw, nil
}

func (s *WalletStore) SetCurrency(ctx context.Context, symbol string) error {
	if err := s.kv.Put(ctx, KeyCurrency, symbol); err != nil {
		return fmt.Errorf("save currency: %w", err)
	}
	return nil
}

// ActiveWallet returns the persisted active wallet id, or fallback when
// none has been stored yet.
func (s *WalletStore) ActiveWallet(ctx context.Context, fallback string) (string, error) {
	raw, ok, err := s.kv.Get(ctx, KeyActiveWallet)
	if err != nil {
		return "", fmt.Errorf("load active wallet: %w", err)
	}
	if !ok || raw == "" {
		return fallback, nil
	}
	return raw, nil
}

func (s *WalletStore) SetActiveWallet(ctx context.Context, walletID string) error {
	if err := s.kv.Put(ctx, KeyActiveWallet, walletID); err != nil {
		return fmt.Errorf("save active wallet: %w", err)
	}
	return nil
}

// Wallets lists every wallet id with a persisted ledger.
func (s *WalletStore) Wallets(ctx context.Context) ([]string, error) {
	keys, err := s.kv.Keys(ctx, "wallet_")
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	var ids []string
	for _, k := range keys {
		id := strings.TrimPrefix(k, "wallet_")
		if reservedSuffixes[id] {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// RawGet exposes the underlying value for backup export.
func (s *WalletStore) RawGet(ctx context.Context, key string) (string, bool, error) {
	return s.kv.Get(ctx, key)
}

// RawPut exposes the underlying store for backup restore.
func (s *WalletStore) RawPut(ctx context.Context, key, value string) error {
	return s.kv.Put(ctx, key, value)
}
