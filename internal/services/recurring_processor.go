package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"billetera/internal/core"
	"billetera/internal/log"
	"billetera/internal/storage"
)

// RecurringProcessor materializes monthly occurrences from recurring
// transaction templates. A transaction flagged IsRecurring is both a real
// occurrence on its own date and the pattern for future months.
type RecurringProcessor struct {
	store  *storage.WalletStore
	logger *log.Logger
	newID  func() string
}

// NewRecurringProcessor creates a processor writing through the given store.
func NewRecurringProcessor(store *storage.WalletStore, logger *log.Logger) *RecurringProcessor {
	return &RecurringProcessor{
		store:  store,
		logger: logger.WithComponent(log.ComponentRecurring),
		newID:  uuid.NewString,
	}
}

// Materialize appends one occurrence for every template that belongs to a
// past month and has no entry in the month of now. It returns the grown
// slice and the number of appended instances; callers persist when the
// count is positive.
//
// Only the month of now is filled. A template that skipped several months
// still yields a single occurrence per run; gaps are never backfilled.
func (p *RecurringProcessor) Materialize(txns []core.Transaction, now core.Date) ([]core.Transaction, int) {
	added := 0
	for _, t := range txns {
		if !t.IsRecurring {
			continue
		}
		if !t.Date.MonthBefore(now) {
			continue
		}
		if hasOccurrence(txns, t, now) {
			continue
		}

		day := t.RecurringDay
		if day < 1 || day > 31 {
			day = 1
		}
		instance := t
		instance.ID = p.newID()
		instance.Date = core.NewDate(now.Year, now.Month, day)
		instance.IsRecurring = true
		txns = append(txns, instance)
		added++
	}
	return txns, added
}

// hasOccurrence reports whether another transaction already fills the
// template's slot in the month of now: same description, same month and
// year, different id.
func hasOccurrence(txns []core.Transaction, template core.Transaction, now core.Date) bool {
	for _, existing := range txns {
		if existing.ID == template.ID {
			continue
		}
		if existing.Description == template.Description && existing.Date.SameMonth(now) {
			return true
		}
	}
	return false
}

// ProcessWallet loads a wallet's ledger, materializes due occurrences, and
// persists the grown sequence when anything was appended. It returns the
// number of created instances.
func (p *RecurringProcessor) ProcessWallet(ctx context.Context, walletID string, now time.Time) (int, error) {
	txns, err := p.store.LoadTransactions(ctx, walletID)
	if err != nil {
		return 0, fmt.Errorf("load ledger: %w", err)
	}

	today := core.DateOf(now)
	grown, added := p.Materialize(txns, today)
	if added == 0 {
		return 0, nil
	}

	if err := p.store.SaveTransactions(ctx, walletID, grown); err != nil {
		return 0, fmt.Errorf("persist materialized ledger: %w", err)
	}

	p.logger.InfoContext(ctx, "Recurring transactions applied",
		log.FieldWallet, walletID,
		log.FieldCount, added,
		"month", fmt.Sprintf("%02d/%04d", today.Month, today.Year))

	return added, nil
}
