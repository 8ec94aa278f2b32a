package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"billetera/internal/cli"
	"billetera/internal/config"
	"billetera/internal/core"
	"billetera/internal/demo"
	"billetera/internal/export"
	applog "billetera/internal/log"
	"billetera/internal/services"
	"billetera/internal/storage"
)

// app holds everything a command needs to run.
type app struct {
	ctx       context.Context
	cfg       *config.Config
	logger    *applog.Logger
	store     *storage.WalletStore
	session   *services.Session
	backupper *export.Backupper
}

var root struct {
	Add      addCmd      `cmd:"" help:"Record a new transaction in the active wallet."`
	List     listCmd     `cmd:"" help:"List the active wallet's transactions."`
	Summary  summaryCmd  `cmd:"" help:"Show balance, income, expenses, budget advice, and goal progress."`
	Budget   budgetCmd   `cmd:"" help:"Manage the active wallet's budget."`
	Goal     goalCmd     `cmd:"" help:"Manage savings goals."`
	Wallet   walletCmd   `cmd:"" help:"Show or switch the active wallet."`
	Clear    clearCmd    `cmd:"" help:"Erase the active wallet's transaction history."`
	Export   exportCmd   `cmd:"" help:"Export the active wallet's transactions as CSV."`
	Backup   backupCmd   `cmd:"" help:"Create or restore a full backup."`
	Demo     demoCmd     `cmd:"" help:"Append the demo dataset to the active wallet."`
	Recur    recurCmd    `cmd:"" help:"Materialize due recurring transactions now."`
	Currency currencyCmd `cmd:"" help:"Change the currency symbol."`
	Pin      pinCmd      `cmd:"" help:"Manage the wallet PIN."`
}

type addCmd struct {
	Description string `arg:"" help:"What the movement was."`
	Amount      string `arg:"" help:"Positive decimal amount, e.g. 12.50."`
	Kind        string `enum:"income,expense" default:"expense" help:"income or expense."`
	Category    string `default:"💡 Otros" help:"Category label; unknown labels fall into the default bucket."`
	Recurring   bool   `help:"Repeat this movement automatically every month."`
	Day         int    `help:"Day of month for recurring instances (defaults to today)."`
	Time        string `help:"Time of day for recurring instances, HH:MM (defaults to now)."`
}

func (c *addCmd) Run(a *app) error {
	cents, err := core.ParseDecimalToCents(c.Amount)
	if err != nil {
		return fmt.Errorf("amount %q: %w", c.Amount, err)
	}
	t, err := a.session.AddTransaction(a.ctx, services.TransactionInput{
		Description:   c.Description,
		Category:      core.Category(c.Category),
		Amount:        core.Money{Cents: cents},
		Kind:          core.Kind(c.Kind),
		Recurring:     c.Recurring,
		RecurringDay:  c.Day,
		RecurringTime: c.Time,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Movimiento registrado: %s %s%s (%s)\n",
		t.Description, a.session.Currency(), t.Amount, t.Date)
	return nil
}

type listCmd struct{}

func (c *listCmd) Run(a *app) error {
	txns := a.session.Transactions()
	if len(txns) == 0 {
		fmt.Println("No hay transacciones registradas.")
		return nil
	}
	currency := a.session.Currency()
	for _, t := range txns {
		sign := "-"
		if t.Kind == core.Income {
			sign = "+"
		}
		recur := ""
		if t.IsRecurring {
			recur = fmt.Sprintf(" 🔄 Día %d", t.RecurringDay)
		}
		fmt.Printf("%s  %-30s %-14s %s%s%s%s\n",
			t.Date, t.Description, t.Category.Normalize(), sign, currency, t.Amount, recur)
	}
	return nil
}

type summaryCmd struct{}

func (c *summaryCmd) Run(a *app) error {
	s := a.session.Summary()
	fmt.Printf("Billetera: %s\n", a.session.Active())
	fmt.Printf("Balance total: %s%s\n", s.Currency, s.Totals.Total)
	fmt.Printf("Ingresos:      %s%s\n", s.Currency, s.Totals.Income)
	fmt.Printf("Gastos:        %s%s\n", s.Currency, s.Totals.Expense)
	if len(s.ByCategory) > 0 {
		fmt.Println("Gastos por categoría:")
		for _, c := range s.ByCategory {
			fmt.Printf("  %-14s %s%s\n", c.Category, s.Currency, c.Amount)
		}
	}
	fmt.Println(s.Advice.Message)
	for _, g := range s.Goals {
		fmt.Printf("Meta %q: %.1f%% completado (objetivo %s%s)\n",
			g.Goal.Name, g.Percent, s.Currency, g.Goal.Target)
	}
	return nil
}

type budgetCmd struct {
	Set  budgetSetCmd  `cmd:"" help:"Set the monthly budget."`
	Show budgetShowCmd `cmd:"" default:"1" help:"Show the current budget."`
}

type budgetSetCmd struct {
	Amount string `arg:"" help:"Positive decimal budget amount."`
}

func (c *budgetSetCmd) Run(a *app) error {
	cents, err := core.ParseDecimalToCents(c.Amount)
	if err != nil {
		return fmt.Errorf("budget %q: %w", c.Amount, err)
	}
	if err := a.session.SetBudget(a.ctx, core.Money{Cents: cents}); err != nil {
		return err
	}
	fmt.Printf("Presupuesto actualizado: %s%s\n", a.session.Currency(), core.Money{Cents: cents})
	return nil
}

type budgetShowCmd struct{}

func (c *budgetShowCmd) Run(a *app) error {
	b := a.session.Budget()
	if b.Cents <= 0 {
		fmt.Println("Sin presupuesto definido.")
		return nil
	}
	fmt.Printf("Presupuesto: %s%s\n", a.session.Currency(), b)
	return nil
}

type goalCmd struct {
	Add    goalAddCmd    `cmd:"" help:"Add a savings goal."`
	Delete goalDeleteCmd `cmd:"" help:"Delete a savings goal by id."`
	List   goalListCmd   `cmd:"" default:"1" help:"List savings goals with progress."`
}

type goalAddCmd struct {
	Name   string `arg:"" help:"Goal name."`
	Target string `arg:"" help:"Positive decimal target amount."`
}

func (c *goalAddCmd) Run(a *app) error {
	cents, err := core.ParseDecimalToCents(c.Target)
	if err != nil {
		return fmt.Errorf("target %q: %w", c.Target, err)
	}
	g, err := a.session.AddGoal(a.ctx, c.Name, core.Money{Cents: cents})
	if err != nil {
		return err
	}
	fmt.Printf("Meta de ahorro añadida: %s (%s)\n", g.Name, g.ID)
	return nil
}

type goalDeleteCmd struct {
	ID string `arg:"" help:"Goal id."`
}

func (c *goalDeleteCmd) Run(a *app) error {
	if err := a.session.DeleteGoal(a.ctx, c.ID); err != nil {
		return err
	}
	fmt.Println("Meta eliminada.")
	return nil
}

type goalListCmd struct{}

func (c *goalListCmd) Run(a *app) error {
	s := a.session.Summary()
	if len(s.Goals) == 0 {
		fmt.Println("No tienes metas activas.")
		return nil
	}
	for _, g := range s.Goals {
		fmt.Printf("%s  %-20s objetivo %s%s  %.1f%% completado\n",
			g.Goal.ID, g.Goal.Name, s.Currency, g.Goal.Target, g.Percent)
	}
	return nil
}

type walletCmd struct {
	Use  walletUseCmd  `cmd:"" help:"Switch the active wallet."`
	Show walletShowCmd `cmd:"" default:"1" help:"Show the active wallet."`
}

type walletUseCmd struct {
	ID string `arg:"" help:"Wallet id, e.g. personal or business."`
}

func (c *walletUseCmd) Run(a *app) error {
	if err := a.session.Switch(a.ctx, c.ID); err != nil {
		return err
	}
	fmt.Printf("Billetera activa: %s\n", c.ID)
	return nil
}

type walletShowCmd struct{}

func (c *walletShowCmd) Run(a *app) error {
	fmt.Printf("Billetera activa: %s\n", a.session.Active())
	return nil
}

type clearCmd struct {
	Yes bool `help:"Confirm erasing the active wallet's history."`
}

func (c *clearCmd) Run(a *app) error {
	if !c.Yes {
		return fmt.Errorf("refusing to erase %s without --yes", a.session.Active())
	}
	if err := a.session.ClearLedger(a.ctx); err != nil {
		return err
	}
	fmt.Println("Historial limpiado.")
	return nil
}

type exportCmd struct {
	Csv exportCSVCmd `cmd:"" default:"1" help:"Write the CSV report."`
}

type exportCSVCmd struct {
	Out string `help:"Output file (defaults to Reporte_Billetera_<date>.csv)."`
}

func (c *exportCSVCmd) Run(a *app) error {
	out := c.Out
	if out == "" {
		out = fmt.Sprintf("Reporte_Billetera_%s.csv", time.Now().Format("2006-01-02"))
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	if err := export.WriteCSV(f, a.session.Transactions()); err != nil {
		return err
	}
	fmt.Printf("Reporte CSV generado: %s\n", out)
	return nil
}

type backupCmd struct {
	Create  backupCreateCmd  `cmd:"" help:"Write a full backup file."`
	Restore backupRestoreCmd `cmd:"" help:"Restore state from a backup file."`
}

type backupCreateCmd struct {
	Out string `help:"Output file (defaults to Billetera_Backup_<date>.json)."`
}

func (c *backupCreateCmd) Run(a *app) error {
	data, err := a.backupper.Export(a.ctx)
	if err != nil {
		return err
	}
	out := c.Out
	if out == "" {
		out = fmt.Sprintf("Billetera_Backup_%s.json", time.Now().Format("2006-01-02"))
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("write backup file: %w", err)
	}
	fmt.Printf("Copia de seguridad creada: %s\n", out)
	return nil
}

type backupRestoreCmd struct {
	File string `arg:"" type:"existingfile" help:"Backup file to restore."`
}

func (c *backupRestoreCmd) Run(a *app) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("read backup file: %w", err)
	}
	if err := a.backupper.Restore(a.ctx, data); err != nil {
		return err
	}
	// The restore may have replaced the active wallet's data.
	if err := a.session.Switch(a.ctx, a.session.Active()); err != nil {
		return err
	}
	fmt.Println("Copia de seguridad restaurada con éxito.")
	return nil
}

type demoCmd struct{}

func (c *demoCmd) Run(a *app) error {
	txns := demo.Transactions()
	if err := a.session.Append(a.ctx, txns); err != nil {
		return err
	}
	fmt.Printf("Datos demo cargados: %d transacciones.\n", len(txns))
	return nil
}

type recurCmd struct{}

func (c *recurCmd) Run(a *app) error {
	added, err := a.session.RunRecurring(a.ctx)
	if err != nil {
		return err
	}
	if added == 0 {
		fmt.Println("Sin transacciones recurrentes pendientes.")
		return nil
	}
	fmt.Printf("Transacciones recurrentes aplicadas: %d\n", added)
	return nil
}

type currencyCmd struct {
	Symbol string `arg:"" help:"Currency symbol, e.g. $ or €."`
}

func (c *currencyCmd) Run(a *app) error {
	if err := a.session.SetCurrency(a.ctx, c.Symbol); err != nil {
		return err
	}
	fmt.Printf("Moneda cambiada a %s\n", c.Symbol)
	return nil
}

type pinCmd struct {
	Set    pinSetCmd    `cmd:"" help:"Change the wallet PIN."`
	Verify pinVerifyCmd `cmd:"" help:"Check a PIN against the stored one."`
}

type pinSetCmd struct {
	Pin string `arg:"" help:"New PIN."`
}

func (c *pinSetCmd) Run(a *app) error {
	if err := a.session.SetPIN(a.ctx, c.Pin); err != nil {
		return err
	}
	fmt.Println("PIN actualizado.")
	return nil
}

type pinVerifyCmd struct {
	Pin string `arg:"" help:"PIN to verify."`
}

func (c *pinVerifyCmd) Run(a *app) error {
	if !a.session.VerifyPIN(c.Pin) {
		return fmt.Errorf("PIN incorrecto")
	}
	fmt.Println("PIN correcto.")
	return nil
}

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	store, kv := cli.InitStore(logger, cfg.DBPath)
	defer kv.Close()

	ctx := context.Background()
	session, err := services.NewSession(ctx, store, logger, cfg.DefaultWallet)
	if err != nil {
		logger.Error("Failed to start wallet session", applog.FieldError, err)
		os.Exit(1)
	}

	a := &app{
		ctx:       ctx,
		cfg:       cfg,
		logger:    logger,
		store:     store,
		session:   session,
		backupper: export.NewBackupper(store, logger),
	}

	kctx := kong.Parse(&root,
		kong.Name("billetera"),
		kong.Description("Personal and business wallet tracker with budgets, goals, and recurring movements."),
		kong.UsageOnError(),
	)
	kctx.FatalIfErrorf(kctx.Run(a))
}
