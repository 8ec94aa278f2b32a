package services

import (
	"fmt"
	"testing"

	"billetera/internal/core"
	"billetera/internal/log"
)

func testProcessor() *RecurringProcessor {
	p := NewRecurringProcessor(nil, log.New(log.DefaultConfig()))
	n := 0
	p.newID = func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	}
	return p
}

func template(id, desc string, date core.Date, day int) core.Transaction {
	return core.Transaction{
		ID:           id,
		Description:  desc,
		Category:     core.CategoryRent,
		Amount:       core.Money{Cents: 80000},
		Kind:         core.Expense,
		Date:         date,
		IsRecurring:  true,
		RecurringDay: day,
	}
}

func TestMaterializeCreatesInstanceForNewMonth(t *testing.T) {
	p := testProcessor()
	now := core.NewDate(2026, 2, 20)
	txns := []core.Transaction{template("t1", "Pago de Renta", core.NewDate(2026, 1, 2), 2)}

	grown, added := p.Materialize(txns, now)
	if added != 1 {
		t.Fatalf("expected 1 instance, got %d", added)
	}
	inst := grown[len(grown)-1]
	if inst.ID == "t1" {
		t.Fatal("instance must get a fresh id")
	}
	if inst.Date != core.NewDate(2026, 2, 2) {
		t.Fatalf("expected date 02/02/2026, got %v", inst.Date)
	}
	if !inst.IsRecurring {
		t.Fatal("instance must stay recurring")
	}
	if inst.Description != "Pago de Renta" || inst.Amount.Cents != 80000 {
		t.Fatalf("instance lost template fields: %+v", inst)
	}
}

func TestMaterializeIdempotentWithinMonth(t *testing.T) {
	p := testProcessor()
	now := core.NewDate(2026, 2, 20)
	txns := []core.Transaction{template("t1", "Pago de Renta", core.NewDate(2026, 1, 2), 2)}

	grown, added := p.Materialize(txns, now)
	if added != 1 {
		t.Fatalf("first run expected 1 instance, got %d", added)
	}
	again, added := p.Materialize(grown, now)
	if added != 0 {
		t.Fatalf("second run expected 0 instances, got %d", added)
	}
	if len(again) != len(grown) {
		t.Fatalf("second run grew the ledger: %d -> %d", len(grown), len(again))
	}
}

func TestMaterializeSkipsCurrentMonthTemplate(t *testing.T) {
	p := testProcessor()
	now := core.NewDate(2026, 2, 20)
	txns := []core.Transaction{template("t1", "Suscripción Gym", core.NewDate(2026, 2, 16), 16)}

	_, added := p.Materialize(txns, now)
	if added != 0 {
		t.Fatalf("template from the current month must not materialize, got %d", added)
	}
}

func TestMaterializeAcrossYearBoundary(t *testing.T) {
	// December template, January run: months compare 12 vs 1, years 2025
	// vs 2026. The chronological comparison must still see it as past.
	p := testProcessor()
	now := core.NewDate(2026, 1, 5)
	txns := []core.Transaction{template("t1", "Salario Mensual", core.NewDate(2025, 12, 1), 1)}

	grown, added := p.Materialize(txns, now)
	if added != 1 {
		t.Fatalf("expected 1 instance across year boundary, got %d", added)
	}
	if got := grown[len(grown)-1].Date; got != core.NewDate(2026, 1, 1) {
		t.Fatalf("expected 01/01/2026, got %v", got)
	}
}

func TestMaterializeNoBackfill(t *testing.T) {
	// A template three months old yields exactly one instance per run, in
	// the current month only. Skipped months stay empty.
	p := testProcessor()
	now := core.NewDate(2026, 4, 10)
	txns := []core.Transaction{template("t1", "Pago de Renta", core.NewDate(2026, 1, 2), 2)}

	grown, added := p.Materialize(txns, now)
	if added != 1 {
		t.Fatalf("expected a single instance, got %d", added)
	}
	if got := grown[len(grown)-1].Date; got != core.NewDate(2026, 4, 2) {
		t.Fatalf("expected 02/04/2026, got %v", got)
	}
}

func TestMaterializeDefaultsDayToFirst(t *testing.T) {
	p := testProcessor()
	now := core.NewDate(2026, 2, 20)
	tpl := template("t1", "Suscripción", core.NewDate(2026, 1, 16), 0)

	grown, added := p.Materialize([]core.Transaction{tpl}, now)
	if added != 1 {
		t.Fatalf("expected 1 instance, got %d", added)
	}
	if got := grown[len(grown)-1].Date; got != core.NewDate(2026, 2, 1) {
		t.Fatalf("expected day to default to 1, got %v", got)
	}
}

func TestMaterializeSeesManualEntryAsOccurrence(t *testing.T) {
	// A manually recorded movement with the template's description counts
	// as this month's occurrence.
	p := testProcessor()
	now := core.NewDate(2026, 2, 20)
	txns := []core.Transaction{
		template("t1", "Pago de Renta", core.NewDate(2026, 1, 2), 2),
		{
			ID:          "manual",
			Description: "Pago de Renta",
			Category:    core.CategoryRent,
			Amount:      core.Money{Cents: 80000},
			Kind:        core.Expense,
			Date:        core.NewDate(2026, 2, 3),
		},
	}

	_, added := p.Materialize(txns, now)
	if added != 0 {
		t.Fatalf("manual entry should block materialization, got %d", added)
	}
}

func TestMaterializeMultipleTemplates(t *testing.T) {
	p := testProcessor()
	now := core.NewDate(2026, 2, 20)
	txns := []core.Transaction{
		template("t1", "Salario Mensual", core.NewDate(2026, 1, 1), 1),
		template("t2", "Pago de Renta", core.NewDate(2026, 1, 2), 2),
		template("t3", "Suscripción Gym", core.NewDate(2026, 1, 16), 16),
		{
			ID:          "t4",
			Description: "Gasolina",
			Category:    core.CategoryTransport,
			Amount:      core.Money{Cents: 6000},
			Kind:        core.Expense,
			Date:        core.NewDate(2026, 1, 7),
		},
	}

	grown, added := p.Materialize(txns, now)
	if added != 3 {
		t.Fatalf("expected 3 instances, got %d", added)
	}
	if len(grown) != 7 {
		t.Fatalf("expected 7 transactions, got %d", len(grown))
	}
}
