// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/momeni/liblend/pkg/adapter/db/gormdb"
	"github.com/momeni/liblend/pkg/adapter/db/gormdb/loansrp"
	"github.com/momeni/liblend/pkg/adapter/db/gormdb/patronsrp"
	"github.com/momeni/liblend/pkg/adapter/db/gormdb/schemarp"
	"github.com/momeni/liblend/pkg/adapter/db/gormdb/worksrp"
	"github.com/momeni/liblend/pkg/core/repo"
	"github.com/momeni/liblend/pkg/core/usecase/lendinguc"
	"github.com/spf13/cobra"
)

var demoDBPath string

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run an end-to-end lending scenario on a SQLite database",
	Long: `Run an end-to-end lending scenario on an embedded SQLite
database, without requiring a PostgreSQL server or a config file.
A work is catalogued, a patron is registered, one copy is lent with an
already passed due date, its late fee is assessed, and the copy is
returned. The inventory, debtors, and patron history reports are
printed as text tables afterwards.`,
	RunE: demo,
	Args: cobra.NoArgs,
}

func demo(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	p, err := gormdb.NewSQLitePool(ctx, demoDBPath)
	if err != nil {
		return fmt.Errorf("opening %q database: %w", demoDBPath, err)
	}
	defer p.Close()
	schemaRepo := schemarp.New("", nil)
	err = p.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		return schemaRepo.Conn(conn).InitSchema(ctx)
	})
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	col, err := lendinguc.New(
		p, worksrp.New(), patronsrp.New(), loansrp.New(),
	)
	if err != nil {
		return fmt.Errorf("creating lending use case: %w", err)
	}
	if err := runScenario(ctx, col); err != nil {
		return err
	}
	return printReports(ctx, col)
}

// runScenario drives one lending round trip with a late return.
func runScenario(ctx context.Context, col *lendinguc.UseCase) error {
	work, err := col.AddWork(
		ctx, "Dom Casmurro", "Machado de Assis", 1899, "Romance", 2,
	)
	if err != nil {
		return fmt.Errorf("cataloguing work: %w", err)
	}
	patron, err := col.RegisterPatron(
		ctx, "Ana Silva", "ana.silva@example.com",
	)
	if err != nil {
		return fmt.Errorf("registering patron: %w", err)
	}
	// a negative period yields an already overdue loan, so the late
	// fee assessment has something to charge
	loan, err := col.Lend(ctx, work, patron, -3)
	if err != nil {
		return fmt.Errorf("lending work: %w", err)
	}
	fee, err := col.AssessLateFee(ctx, loan.ID, time.Now())
	if err != nil {
		return fmt.Errorf("assessing late fee: %w", err)
	}
	fmt.Printf("assessed late fee: %g\n", fee)
	if _, err := col.TryReturnByID(ctx, loan.ID, time.Now()); err != nil {
		return fmt.Errorf("returning loan: %w", err)
	}
	return nil
}

// printReports renders the three reports as text tables.
func printReports(ctx context.Context, col *lendinguc.UseCase) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	works, err := col.InventoryReport(ctx)
	if err != nil {
		return fmt.Errorf("fetching inventory report: %w", err)
	}
	fmt.Fprintln(w, "\nINVENTORY")
	fmt.Fprintln(w, "TITLE\tAUTHOR\tYEAR\tCATEGORY\tQUANTITY")
	for _, wk := range works {
		fmt.Fprintf(
			w, "%s\t%s\t%d\t%s\t%d\n",
			wk.Title, wk.Author, wk.Year, wk.Category, wk.Quantity,
		)
	}
	debtors, err := col.DebtReport(ctx)
	if err != nil {
		return fmt.Errorf("fetching debtors report: %w", err)
	}
	fmt.Fprintln(w, "\nDEBTORS")
	fmt.Fprintln(w, "NAME\tEMAIL\tDEBT")
	for _, p := range debtors {
		fmt.Fprintf(w, "%s\t%s\t%g\n", p.Name, p.Email, p.Debt)
		history, err := col.PatronHistory(ctx, p.ID)
		if err != nil {
			return fmt.Errorf(
				"fetching %q patron history: %w", p.Name, err,
			)
		}
		fmt.Fprintf(w, "\nHISTORY OF %s\n", p.Name)
		fmt.Fprintln(w, "TITLE\tLOANED\tDUE\tRETURNED\tSTATUS")
		for _, l := range history {
			returned := "-"
			if l.ReturnedAt != nil {
				returned = l.ReturnedAt.Format("2006-01-02")
			}
			fmt.Fprintf(
				w, "%s\t%s\t%s\t%s\t%s\n",
				l.WorkTitle,
				l.LoanedOn.Format("2006-01-02"),
				l.DueOn.Format("2006-01-02"),
				returned,
				l.Status(),
			)
		}
	}
	return w.Flush()
}

func init() {
	demoCmd.Flags().StringVar(
		&demoDBPath, "db", "liblend.db", "demo SQLite database path",
	)
	rootCmd.AddCommand(demoCmd)
}
