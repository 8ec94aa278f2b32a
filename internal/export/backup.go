package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"billetera/internal/core"
	"billetera/internal/log"
	"billetera/internal/storage"
)

// BackupVersion is written into every backup file.
const BackupVersion = "1.1"

// ErrMalformedBackup means the backup file is not parseable JSON. Nothing
// is written when it is returned.
var ErrMalformedBackup = errors.New("malformed backup file")

// Backup is the on-disk backup format. Budgets are decimal strings, the
// same representation the store uses. Pointer fields distinguish "absent"
// from "present but empty" on restore: absent keys are left untouched.
type Backup struct {
	WalletPersonal *[]core.Transaction `json:"wallet_personal,omitempty"`
	WalletBusiness *[]core.Transaction `json:"wallet_business,omitempty"`
	BudgetPersonal json.RawMessage     `json:"budget_personal,omitempty"`
	BudgetBusiness json.RawMessage     `json:"budget_business,omitempty"`
	GoalsPersonal  *[]core.Goal        `json:"goals_personal,omitempty"`
	GoalsBusiness  *[]core.Goal        `json:"goals_business,omitempty"`
	Pin            *string             `json:"pin,omitempty"`
	Version        string              `json:"version"`
}

// Backupper exports and restores the full persisted state of the two
// standard wallets.
type Backupper struct {
	store  *storage.WalletStore
	logger *log.Logger
}

func NewBackupper(store *storage.WalletStore, logger *log.Logger) *Backupper {
	return &Backupper{store: store, logger: logger.WithComponent(log.ComponentExport)}
}

// Export serializes both wallets, their budgets and goals, and the PIN.
func (b *Backupper) Export(ctx context.Context) ([]byte, error) {
	backup := Backup{Version: BackupVersion}

	for _, w := range []struct {
		id     string
		txns   **[]core.Transaction
		budget *json.RawMessage
		goals  **[]core.Goal
	}{
		{"personal", &backup.WalletPersonal, &backup.BudgetPersonal, &backup.GoalsPersonal},
		{"business", &backup.WalletBusiness, &backup.BudgetBusiness, &backup.GoalsBusiness},
	} {
		txns, err := b.store.LoadTransactions(ctx, w.id)
		if err != nil {
			return nil, fmt.Errorf("export wallet %s: %w", w.id, err)
		}
		budget, err := b.store.LoadBudget(ctx, w.id)
		if err != nil {
			return nil, fmt.Errorf("export budget %s: %w", w.id, err)
		}
		goals, err := b.store.LoadGoals(ctx, w.id)
		if err != nil {
			return nil, fmt.Errorf("export goals %s: %w", w.id, err)
		}
		budgetRaw, err := json.Marshal(budget.String())
		if err != nil {
			return nil, fmt.Errorf("encode budget %s: %w", w.id, err)
		}
		*w.txns = &txns
		*w.budget = budgetRaw
		*w.goals = &goals
	}

	pin, err := b.store.PIN(ctx)
	if err != nil {
		return nil, fmt.Errorf("export pin: %w", err)
	}
	backup.Pin = &pin

	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}

	b.logger.InfoContext(ctx, "Backup created", "version", BackupVersion, "bytes", len(data))
	return data, nil
}

// Restore overwrites the persisted keys present in the backup. Absent keys
// keep their current values. When the file is not parseable JSON no key is
// written at all. Callers must rebuild session state afterwards.
func (b *Backupper) Restore(ctx context.Context, data []byte) error {
	var backup Backup
	if err := json.Unmarshal(data, &backup); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBackup, err)
	}

	if backup.WalletPersonal != nil {
		if err := b.store.SaveTransactions(ctx, "personal", *backup.WalletPersonal); err != nil {
			return fmt.Errorf("restore wallet personal: %w", err)
		}
	}
	if backup.WalletBusiness != nil {
		if err := b.store.SaveTransactions(ctx, "business", *backup.WalletBusiness); err != nil {
			return fmt.Errorf("restore wallet business: %w", err)
		}
	}
	if backup.BudgetPersonal != nil {
		if err := b.restoreBudget(ctx, "personal", backup.BudgetPersonal); err != nil {
			return err
		}
	}
	if backup.BudgetBusiness != nil {
		if err := b.restoreBudget(ctx, "business", backup.BudgetBusiness); err != nil {
			return err
		}
	}
	if backup.GoalsPersonal != nil {
		if err := b.store.SaveGoals(ctx, "personal", *backup.GoalsPersonal); err != nil {
			return fmt.Errorf("restore goals personal: %w", err)
		}
	}
	if backup.GoalsBusiness != nil {
		if err := b.store.SaveGoals(ctx, "business", *backup.GoalsBusiness); err != nil {
			return fmt.Errorf("restore goals business: %w", err)
		}
	}
	if backup.Pin != nil && *backup.Pin != "" {
		if err := b.store.SetPIN(ctx, *backup.Pin); err != nil {
			return fmt.Errorf("restore pin: %w", err)
		}
	}

	b.logger.InfoContext(ctx, "Backup restored", "version", backup.Version)
	return nil
}

// restoreBudget accepts both the decimal-string form this program writes
// and the bare-number form found in older backups.
func (b *Backupper) restoreBudget(ctx context.Context, walletID string, raw json.RawMessage) error {
	var budget core.Money
	if err := json.Unmarshal(raw, &budget); err != nil {
		// Unset or unparseable budgets restore as zero.
		budget = core.Money{}
	}
	if budget.Cents < 0 {
		budget = core.Money{}
	}
	if err := b.store.SaveBudget(ctx, walletID, budget); err != nil {
		return fmt.Errorf("restore budget %s: %w", walletID, err)
	}
	return nil
}
