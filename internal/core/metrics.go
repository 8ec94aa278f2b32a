package core

import "fmt"

// Budget advice tiers.
const (
	TierUnset    AdviceTier = "unset"
	TierOK       AdviceTier = "ok"
	TierWarning  AdviceTier = "warning"
	TierExceeded AdviceTier = "exceeded"
)

type (
	// AdviceTier is the categorical budget-health state.
	AdviceTier string

	// Totals summarizes a transaction snapshot. Total is always exactly
	// Income minus Expense; Expense is a non-negative magnitude.
	Totals struct {
		Total   Money
		Income  Money
		Expense Money
	}

	// CategoryAmount is an expense sum for one palette category.
	CategoryAmount struct {
		Category Category
		Color    string
		Amount   Money
	}

	// BudgetAdvice is the outcome of comparing expenses against the budget.
	// Percent carries floor(spent%) for the warning tier and
	// floor(remaining%) for the ok tier; it is zero otherwise.
	BudgetAdvice struct {
		Tier    AdviceTier
		Percent int
		Message string
	}

	// GoalStatus is the derived progress of one savings goal. Percent is
	// computed from the wallet's total balance against the target, capped
	// at 100. A negative balance yields a negative percent.
	GoalStatus struct {
		Goal    Goal
		Percent float64
	}
)

// Summarize computes total, income, and expense from a snapshot.
func Summarize(txns []Transaction) Totals {
	var income, expense int64
	for _, t := range txns {
		if t.Kind == Income {
			income += t.Amount.Cents
		} else {
			expense += t.Amount.Cents
		}
	}
	return Totals{
		Total:   Money{Cents: income - expense},
		Income:  Money{Cents: income},
		Expense: Money{Cents: expense},
	}
}

// ExpensesByCategory aggregates expense amounts per category. Categories
// outside the palette fold into CategoryOther. The result follows palette
// order and omits empty buckets.
func ExpensesByCategory(txns []Transaction) []CategoryAmount {
	sums := make(map[Category]int64)
	for _, t := range txns {
		if t.Kind != Expense {
			continue
		}
		cat := t.Category.Normalize()
		sums[cat] += t.Amount.Cents
	}

	var out []CategoryAmount
	for _, cat := range Palette() {
		cents, ok := sums[cat]
		if !ok {
			continue
		}
		out = append(out, CategoryAmount{
			Category: cat,
			Color:    cat.Color(),
			Amount:   Money{Cents: cents},
		})
	}
	return out
}

// AdviseBudget classifies spending against the wallet budget.
//
// budget <= 0 means no budget is set. Otherwise the spent percentage picks
// the tier: >= 100 exceeded, >= 80 warning, else ok.
func AdviseBudget(budget, expense Money) BudgetAdvice {
	if budget.Cents <= 0 {
		return BudgetAdvice{
			Tier:    TierUnset,
			Message: "Introduce un presupuesto para recibir consejos.",
		}
	}

	percent := float64(expense.Cents) / float64(budget.Cents) * 100

	switch {
	case percent >= 100:
		return BudgetAdvice{
			Tier:    TierExceeded,
			Message: "¡Cuidado! Has agotado tu presupuesto mensual. Detén los gastos no esenciales.",
		}
	case percent >= 80:
		spent := int(percent)
		return BudgetAdvice{
			Tier:    TierWarning,
			Percent: spent,
			Message: fmt.Sprintf("Atención: Has gastado el %d%% de tu presupuesto. Es hora de ahorrar.", spent),
		}
	default:
		left := int(100 - percent)
		return BudgetAdvice{
			Tier:    TierOK,
			Percent: left,
			Message: fmt.Sprintf("Vas por buen camino. Te queda un %d%% de presupuesto.", left),
		}
	}
}

// GoalProgress computes the progress of each goal against the wallet's
// current total balance. The goal's stored Current field is ignored.
func GoalProgress(balance Money, goals []Goal) []GoalStatus {
	out := make([]GoalStatus, 0, len(goals))
	for _, g := range goals {
		percent := float64(balance.Cents) / float64(g.Target.Cents) * 100
		if percent > 100 {
			percent = 100
		}
		out = append(out, GoalStatus{Goal: g, Percent: percent})
	}
	return out
}
