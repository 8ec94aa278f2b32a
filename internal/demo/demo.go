// Package demo provides a fixed dataset for seeding a wallet.
package demo

import "billetera/internal/core"

// Transactions returns the demo dataset: ten movements, three of them
// recurring templates. Callers append it to the current ledger.
func Transactions() []core.Transaction {
	return []core.Transaction{
		{ID: "demo-1", Description: "Salario Mensual", Amount: core.Money{Cents: 300000}, Kind: core.Income, Category: core.CategoryWork, Date: core.NewDate(2026, 1, 1), IsRecurring: true, RecurringDay: 1, RecurringTime: "08:00"},
		{ID: "demo-2", Description: "Pago de Renta", Amount: core.Money{Cents: 80000}, Kind: core.Expense, Category: core.CategoryRent, Date: core.NewDate(2026, 1, 2), IsRecurring: true, RecurringDay: 2, RecurringTime: "10:00"},
		{ID: "demo-3", Description: "Supermercado", Amount: core.Money{Cents: 15000}, Kind: core.Expense, Category: core.CategoryFood, Date: core.NewDate(2026, 2, 5)},
		{ID: "demo-4", Description: "Gasolina", Amount: core.Money{Cents: 6000}, Kind: core.Expense, Category: core.CategoryTransport, Date: core.NewDate(2026, 2, 7)},
		{ID: "demo-5", Description: "Freelance Web", Amount: core.Money{Cents: 50000}, Kind: core.Income, Category: core.CategoryWork, Date: core.NewDate(2026, 2, 10)},
		{ID: "demo-6", Description: "Cena Restaurante", Amount: core.Money{Cents: 4500}, Kind: core.Expense, Category: core.CategoryFood, Date: core.NewDate(2026, 2, 12)},
		{ID: "demo-7", Description: "Servicios (Luz/Agua)", Amount: core.Money{Cents: 12000}, Kind: core.Expense, Category: core.CategoryOther, Date: core.NewDate(2026, 2, 14)},
		{ID: "demo-8", Description: "Mantenimiento Auto", Amount: core.Money{Cents: 20000}, Kind: core.Expense, Category: core.CategoryTransport, Date: core.NewDate(2026, 2, 15)},
		{ID: "demo-9", Description: "Venta Artículo Usado", Amount: core.Money{Cents: 8000}, Kind: core.Income, Category: core.CategoryOther, Date: core.NewDate(2026, 2, 16)},
		{ID: "demo-10", Description: "Suscripción Gym", Amount: core.Money{Cents: 3500}, Kind: core.Expense, Category: core.CategoryOther, Date: core.NewDate(2026, 1, 16), IsRecurring: true, RecurringDay: 16, RecurringTime: "07:00"},
	}
}
