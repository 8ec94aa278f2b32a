package demo

import "testing"

func TestTransactions(t *testing.T) {
	txns := Transactions()
	if len(txns) != 10 {
		t.Fatalf("expected 10 demo transactions, got %d", len(txns))
	}

	recurring := 0
	seen := map[string]bool{}
	for _, tx := range txns {
		if err := tx.Validate(); err != nil {
			t.Fatalf("demo transaction %s invalid: %v", tx.ID, err)
		}
		if seen[tx.ID] {
			t.Fatalf("duplicate demo id %s", tx.ID)
		}
		seen[tx.ID] = true
		if tx.IsRecurring {
			recurring++
		}
	}
	if recurring != 3 {
		t.Fatalf("expected 3 recurring templates, got %d", recurring)
	}
}
