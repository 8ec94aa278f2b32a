// Package services holds the wallet session and the recurrence engine:
// everything that orchestrates stores and the pure core model.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"billetera/internal/core"
	"billetera/internal/log"
	"billetera/internal/storage"
)

// Session is the single owner of "which wallet is active". It keeps
// in-memory mirrors of the active wallet's transactions, budget, and goals,
// and routes every read and write through the wallet store. All process
// state rehydrates from storage on construction.
type Session struct {
	store     *storage.WalletStore
	recurring *RecurringProcessor
	logger    *log.Logger
	now       func() time.Time

	activeWallet string
	currency     string
	pin          string

	transactions []core.Transaction
	budget       core.Money
	goals        []core.Goal
}

// TransactionInput carries the user-submitted fields of a new transaction.
// The date is always the submission day; recurring day and time are only
// honored when Recurring is set.
type TransactionInput struct {
	Description   string
	Category      core.Category
	Amount        core.Money
	Kind          core.Kind
	Recurring     bool
	RecurringDay  int
	RecurringTime string
}

// Summary is the derived presentation state of the active wallet.
type Summary struct {
	Currency   string
	Totals     core.Totals
	ByCategory []core.CategoryAmount
	Advice     core.BudgetAdvice
	Goals      []core.GoalStatus
}

// NewSession rehydrates the persisted process state (active wallet,
// currency, PIN), loads the active wallet, and runs the recurrence engine
// once so the ledger is current before anything is displayed.
func NewSession(ctx context.Context, store *storage.WalletStore, logger *log.Logger, defaultWallet string) (*Session, error) {
	s := &Session{
		store:     store,
		recurring: NewRecurringProcessor(store, logger),
		logger:    logger.WithComponent(log.ComponentSession),
		now:       time.Now,
	}

	active, err := store.ActiveWallet(ctx, defaultWallet)
	if err != nil {
		return nil, fmt.Errorf("rehydrate active wallet: %w", err)
	}
	currency, err := store.Currency(ctx)
	if err != nil {
		return nil, fmt.Errorf("rehydrate currency: %w", err)
	}
	pin, err := store.PIN(ctx)
	if err != nil {
		return nil, fmt.Errorf("rehydrate pin: %w", err)
	}
	s.currency = currency
	s.pin = pin

	if err := s.Switch(ctx, active); err != nil {
		return nil, err
	}
	return s, nil
}

// Active returns the active wallet id.
func (s *Session) Active() string { return s.activeWallet }

// Currency returns the loaded currency symbol.
func (s *Session) Currency() string { return s.currency }

// Transactions returns the active wallet's in-memory ledger snapshot.
func (s *Session) Transactions() []core.Transaction {
	out := make([]core.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Budget returns the active wallet's budget; zero means unset.
func (s *Session) Budget() core.Money { return s.budget }

// Goals returns the active wallet's goals.
func (s *Session) Goals() []core.Goal {
	out := make([]core.Goal, len(s.goals))
	copy(out, s.goals)
	return out
}

// Switch makes walletID the active wallet: reloads its transactions,
// budget, and goals, runs the recurrence engine, and persists the active
// id so the next session starts on the same wallet.
func (s *Session) Switch(ctx context.Context, walletID string) error {
	if strings.TrimSpace(walletID) == "" {
		return fmt.Errorf("wallet id cannot be empty")
	}

	txns, err := s.store.LoadTransactions(ctx, walletID)
	if err != nil {
		return fmt.Errorf("switch wallet: %w", err)
	}
	budget, err := s.store.LoadBudget(ctx, walletID)
	if err != nil {
		return fmt.Errorf("switch wallet: %w", err)
	}
	goals, err := s.store.LoadGoals(ctx, walletID)
	if err != nil {
		return fmt.Errorf("switch wallet: %w", err)
	}

	s.activeWallet = walletID
	s.transactions = txns
	s.budget = budget
	s.goals = goals

	grown, added := s.recurring.Materialize(s.transactions, core.DateOf(s.now()))
	if added > 0 {
		if err := s.store.SaveTransactions(ctx, walletID, grown); err != nil {
			return fmt.Errorf("persist materialized ledger: %w", err)
		}
		s.transactions = grown
		s.logger.InfoContext(ctx, "Recurring transactions applied",
			log.FieldWallet, walletID, log.FieldCount, added)
	}

	if err := s.store.SetActiveWallet(ctx, walletID); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Wallet switched",
		log.FieldWallet, walletID,
		log.FieldCount, len(s.transactions))
	return nil
}

// AddTransaction validates the input, assigns a fresh id and today's date,
// appends to the active ledger, and persists the full sequence. Nothing is
// mutated when validation fails.
func (s *Session) AddTransaction(ctx context.Context, in TransactionInput) (core.Transaction, error) {
	t := core.Transaction{
		ID:          uuid.NewString(),
		Description: strings.TrimSpace(in.Description),
		Category:    in.Category.Normalize(),
		Amount:      in.Amount,
		Kind:        in.Kind,
		Date:        core.DateOf(s.now()),
	}
	if in.Recurring {
		t.IsRecurring = true
		t.RecurringDay = in.RecurringDay
		if t.RecurringDay == 0 {
			t.RecurringDay = t.Date.Day
		}
		t.RecurringTime = in.RecurringTime
		if t.RecurringTime == "" {
			t.RecurringTime = s.now().Format("15:04")
		}
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	grown := append(s.Transactions(), t)
	if err := s.store.SaveTransactions(ctx, s.activeWallet, grown); err != nil {
		return core.Transaction{}, err
	}
	s.transactions = grown

	s.logger.InfoContext(ctx, "Transaction recorded",
		log.FieldWallet, s.activeWallet,
		log.FieldDescription, t.Description,
		log.FieldAmountCents, t.Amount.Cents,
		log.FieldKind, string(t.Kind),
		log.FieldCategory, string(t.Category))
	return t, nil
}

// ClearLedger empties only the active wallet's persisted sequence.
func (s *Session) ClearLedger(ctx context.Context) error {
	if err := s.store.SaveTransactions(ctx, s.activeWallet, nil); err != nil {
		return err
	}
	s.transactions = []core.Transaction{}
	s.logger.InfoContext(ctx, "Ledger cleared", log.FieldWallet, s.activeWallet)
	return nil
}

// SetBudget overwrites the active wallet's budget in place.
func (s *Session) SetBudget(ctx context.Context, budget core.Money) error {
	if budget.Cents < 0 {
		return core.ErrInvalidAmount
	}
	if err := s.store.SaveBudget(ctx, s.activeWallet, budget); err != nil {
		return err
	}
	s.budget = budget
	return nil
}

// AddGoal creates a savings goal on the active wallet. The stored Current
// field starts at zero and stays unused by progress computation.
func (s *Session) AddGoal(ctx context.Context, name string, target core.Money) (core.Goal, error) {
	g := core.Goal{
		ID:     uuid.NewString(),
		Name:   strings.TrimSpace(name),
		Target: target,
	}
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}

	grown := append(s.Goals(), g)
	if err := s.store.SaveGoals(ctx, s.activeWallet, grown); err != nil {
		return core.Goal{}, err
	}
	s.goals = grown
	return g, nil
}

// DeleteGoal removes one goal by id; unknown ids are ignored.
func (s *Session) DeleteGoal(ctx context.Context, id string) error {
	kept := make([]core.Goal, 0, len(s.goals))
	for _, g := range s.goals {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	if err := s.store.SaveGoals(ctx, s.activeWallet, kept); err != nil {
		return err
	}
	s.goals = kept
	return nil
}

// SetCurrency changes the process-wide currency symbol.
func (s *Session) SetCurrency(ctx context.Context, symbol string) error {
	if strings.TrimSpace(symbol) == "" {
		return fmt.Errorf("currency symbol cannot be empty")
	}
	if err := s.store.SetCurrency(ctx, symbol); err != nil {
		return err
	}
	s.currency = symbol
	return nil
}

// VerifyPIN compares the candidate against the stored PIN. This is a plain
// local comparison; there is no real authentication here.
func (s *Session) VerifyPIN(candidate string) bool {
	return candidate == s.pin
}

// SetPIN overwrites the stored PIN.
func (s *Session) SetPIN(ctx context.Context, pin string) error {
	if strings.TrimSpace(pin) == "" {
		return fmt.Errorf("pin cannot be empty")
	}
	if err := s.store.SetPIN(ctx, pin); err != nil {
		return err
	}
	s.pin = pin
	return nil
}

// RunRecurring runs the recurrence engine on the active wallet and reports
// how many occurrences were created.
func (s *Session) RunRecurring(ctx context.Context) (int, error) {
	grown, added := s.recurring.Materialize(s.transactions, core.DateOf(s.now()))
	if added == 0 {
		return 0, nil
	}
	if err := s.store.SaveTransactions(ctx, s.activeWallet, grown); err != nil {
		return 0, fmt.Errorf("persist materialized ledger: %w", err)
	}
	s.transactions = grown
	return added, nil
}

// Append adds already-built transactions (demo data) to the active ledger.
func (s *Session) Append(ctx context.Context, txns []core.Transaction) error {
	grown := append(s.Transactions(), txns...)
	if err := s.store.SaveTransactions(ctx, s.activeWallet, grown); err != nil {
		return err
	}
	s.transactions = grown
	s.logger.InfoContext(ctx, "Transactions appended",
		log.FieldWallet, s.activeWallet, log.FieldCount, len(txns))
	return nil
}

// Summary derives the presentation state from the current snapshot.
func (s *Session) Summary() Summary {
	totals := core.Summarize(s.transactions)
	return Summary{
		Currency:   s.currency,
		Totals:     totals,
		ByCategory: core.ExpensesByCategory(s.transactions),
		Advice:     core.AdviseBudget(s.budget, totals.Expense),
		Goals:      core.GoalProgress(totals.Total, s.goals),
	}
}
