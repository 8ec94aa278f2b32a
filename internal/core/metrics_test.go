package core

import "testing"

func txn(kind Kind, cents int64, cat Category) Transaction {
	return Transaction{
		ID:          "t",
		Description: "x",
		Category:    cat,
		Amount:      Money{Cents: cents},
		Kind:        kind,
		Date:        NewDate(2026, 2, 1),
	}
}

func TestSummarizeIdentity(t *testing.T) {
	cases := [][]Transaction{
		{},
		{txn(Income, 100000, CategoryWork)},
		{txn(Income, 100000, CategoryWork), txn(Expense, 30000, CategoryFood)},
		{txn(Expense, 5000, CategoryFood), txn(Expense, 7500, CategoryRent), txn(Income, 99, CategoryOther)},
	}
	for i, txns := range cases {
		totals := Summarize(txns)
		if totals.Total.Cents != totals.Income.Cents-totals.Expense.Cents {
			t.Fatalf("case %d: total %d != income %d - expense %d",
				i, totals.Total.Cents, totals.Income.Cents, totals.Expense.Cents)
		}
		if totals.Expense.Cents < 0 {
			t.Fatalf("case %d: expense magnitude went negative", i)
		}
	}
}

func TestSummarizeScenario(t *testing.T) {
	// Empty wallet, add income 1000, then expense 300 in the food category.
	txns := []Transaction{txn(Income, 100000, CategoryWork)}
	totals := Summarize(txns)
	if totals.Total.String() != "1000.00" || totals.Income.String() != "1000.00" || totals.Expense.String() != "0.00" {
		t.Fatalf("after income: %+v", totals)
	}

	txns = append(txns, txn(Expense, 30000, CategoryFood))
	totals = Summarize(txns)
	if totals.Total.String() != "700.00" {
		t.Fatalf("expected total 700.00, got %s", totals.Total)
	}
	if totals.Expense.String() != "300.00" {
		t.Fatalf("expected expense 300.00, got %s", totals.Expense)
	}

	byCat := ExpensesByCategory(txns)
	if len(byCat) != 1 {
		t.Fatalf("expected one category, got %d", len(byCat))
	}
	if byCat[0].Category != CategoryFood || byCat[0].Amount.Cents != 30000 {
		t.Fatalf("unexpected aggregate: %+v", byCat[0])
	}
}

func TestExpensesByCategoryFallback(t *testing.T) {
	txns := []Transaction{
		txn(Expense, 1000, Category("🎮 Juegos")),
		txn(Expense, 2000, Category("")),
		txn(Expense, 500, CategoryOther),
		txn(Income, 9999, Category("🎮 Juegos")), // income never aggregates
	}
	byCat := ExpensesByCategory(txns)
	if len(byCat) != 1 {
		t.Fatalf("expected everything in the default bucket, got %d buckets", len(byCat))
	}
	if byCat[0].Category != CategoryOther || byCat[0].Amount.Cents != 3500 {
		t.Fatalf("unexpected default bucket: %+v", byCat[0])
	}
	if byCat[0].Color != DefaultCategoryColor {
		t.Fatalf("unexpected color: %s", byCat[0].Color)
	}
}

func TestAdviseBudget(t *testing.T) {
	cases := []struct {
		name        string
		budget      int64
		expense     int64
		wantTier    AdviceTier
		wantPercent int
	}{
		{"unset budget", 0, 12345, TierUnset, 0},
		{"negative budget", -100, 12345, TierUnset, 0},
		{"warning at 80", 10000, 8000, TierWarning, 80},
		{"warning below 100", 10000, 9999, TierWarning, 99},
		{"exceeded at 100", 10000, 10000, TierExceeded, 0},
		{"exceeded above", 10000, 12000, TierExceeded, 0},
		{"ok with remaining", 10000, 5000, TierOK, 50},
		{"ok rounds down remaining", 10000, 333, TierOK, 96},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AdviseBudget(Money{Cents: tc.budget}, Money{Cents: tc.expense})
			if got.Tier != tc.wantTier {
				t.Fatalf("tier = %s, want %s", got.Tier, tc.wantTier)
			}
			if got.Percent != tc.wantPercent {
				t.Fatalf("percent = %d, want %d", got.Percent, tc.wantPercent)
			}
			if got.Message == "" {
				t.Fatal("message must never be empty")
			}
		})
	}
}

func TestGoalProgress(t *testing.T) {
	goals := []Goal{
		{ID: "g1", Name: "Viaje", Target: Money{Cents: 10000}},
		{ID: "g2", Name: "Laptop", Target: Money{Cents: 20000}},
	}

	statuses := GoalProgress(Money{Cents: 5000}, goals)
	if statuses[0].Percent != 50 {
		t.Fatalf("expected 50%%, got %v", statuses[0].Percent)
	}
	if statuses[1].Percent != 25 {
		t.Fatalf("expected 25%%, got %v", statuses[1].Percent)
	}

	// Balance above target clamps at 100.
	statuses = GoalProgress(Money{Cents: 15000}, goals[:1])
	if statuses[0].Percent != 100 {
		t.Fatalf("expected clamp at 100%%, got %v", statuses[0].Percent)
	}

	// Negative balance yields negative percent; the formula permits it.
	statuses = GoalProgress(Money{Cents: -5000}, goals[:1])
	if statuses[0].Percent != -50 {
		t.Fatalf("expected -50%%, got %v", statuses[0].Percent)
	}

	// The stored Current field never feeds progress.
	withCurrent := []Goal{{ID: "g3", Name: "Casa", Target: Money{Cents: 10000}, Current: Money{Cents: 9999}}}
	statuses = GoalProgress(Money{Cents: 1000}, withCurrent)
	if statuses[0].Percent != 10 {
		t.Fatalf("expected 10%% from balance, got %v", statuses[0].Percent)
	}
}
