package models

import (
	"fmt"
	"io"
	"sort"

	"gorm.io/gen"
	"gorm.io/gorm"
)

/*
Column Mismatch Report Usage:

	site-backend schema-report

The report lists, for each model table, database columns that no field of the
Go model maps to. Tables not created yet are reported as missing.

Example output:
=== COLUMN MISMATCH REPORT ===
--- Table: projects ---
Found 1 columns not accounted for in model:
  - legacy_rank

=== SUMMARY ===
Total mismatched columns across all tables: 1
*/

// GenerateModels writes typed query helpers for every model into outPath.
func GenerateModels(db *gorm.DB, outPath string) {
	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})

	g.UseDB(db)
	g.ApplyBasic(All()...)
	g.Execute()
}

// TableReport is the outcome of comparing one model with its table
type TableReport struct {
	Table      string
	Missing    bool
	Unmapped   []string
	LookupFail error
}

// ColumnMismatchReport compares the live schema with the model definitions.
func ColumnMismatchReport(db *gorm.DB) []TableReport {
	var reports []TableReport
	for _, model := range All() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			reports = append(reports, TableReport{Table: fmt.Sprintf("%T", model), LookupFail: err})
			continue
		}
		report := TableReport{Table: stmt.Schema.Table}

		if !db.Migrator().HasTable(model) {
			report.Missing = true
			reports = append(reports, report)
			continue
		}

		columnTypes, err := db.Migrator().ColumnTypes(model)
		if err != nil {
			report.LookupFail = err
			reports = append(reports, report)
			continue
		}

		var dbColumns []string
		for _, ct := range columnTypes {
			dbColumns = append(dbColumns, ct.Name())
		}
		report.Unmapped = findColumnMismatches(dbColumns, stmt.Schema.DBNames)
		reports = append(reports, report)
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].Table < reports[j].Table })
	return reports
}

// PrintColumnMismatchReport writes the report in a human readable form and
// returns the total number of unmapped columns.
func PrintColumnMismatchReport(w io.Writer, reports []TableReport) int {
	fmt.Fprintln(w, "=== COLUMN MISMATCH REPORT ===")

	total := 0
	for _, r := range reports {
		fmt.Fprintf(w, "\n--- Table: %s ---\n", r.Table)
		switch {
		case r.LookupFail != nil:
			fmt.Fprintf(w, "Error getting columns: %v\n", r.LookupFail)
		case r.Missing:
			fmt.Fprintln(w, "Table does not exist yet (run migrate first)")
		case len(r.Unmapped) > 0:
			fmt.Fprintf(w, "Found %d columns not accounted for in model:\n", len(r.Unmapped))
			for _, col := range r.Unmapped {
				fmt.Fprintf(w, "  - %s\n", col)
			}
			total += len(r.Unmapped)
		default:
			fmt.Fprintln(w, "All columns are accounted for in the model.")
		}
	}

	fmt.Fprintf(w, "\n=== SUMMARY ===\n")
	fmt.Fprintf(w, "Total mismatched columns across all tables: %d\n", total)
	return total
}

// findColumnMismatches finds columns that exist in the database but not in the model
func findColumnMismatches(dbColumns, modelFields []string) []string {
	modelFieldSet := make(map[string]bool)
	for _, field := range modelFields {
		modelFieldSet[field] = true
	}

	var mismatches []string
	for _, col := range dbColumns {
		if !modelFieldSet[col] {
			mismatches = append(mismatches, col)
		}
	}

	return mismatches
}
