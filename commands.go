package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"flexdb/pkg/database"
	dberr "flexdb/pkg/error"
	"flexdb/pkg/tuple"
	"flexdb/pkg/ui"
)

func newTablesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the tables in the registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.database(cmd.Context())
			if err != nil {
				return err
			}

			result := database.QueryResult{
				Columns: []string{"FILE", "ROOT", "ALIAS", "DESCRIPTION", "SIZE", "RECORDS"},
			}
			for _, e := range db.Entries() {
				size, records := "missing", "-"
				if path, err := db.TablePath(e); err == nil {
					size = humanize.Bytes(uint64(path.Size()))
				}
				if t, err := db.Table(e.Number); err == nil {
					records = humanize.Comma(t.RecordCount())
				} else if size != "missing" {
					records = "unreadable"
				}
				result.Rows = append(result.Rows, []string{
					strconv.Itoa(int(e.Number)), e.RootName, e.Alias, e.Description, size, records,
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.RenderResult(result))
			fmt.Fprintf(cmd.OutOrStdout(), "%d table(s) in %s\n", len(result.Rows), db.Path())
			return nil
		},
	}
}

func newSchemaCmd(a *app) *cobra.Command {
	var asSQL bool
	cmd := &cobra.Command{
		Use:   "schema <table>",
		Short: "Show the columns of a table and their SQL types",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := a.tableName(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			sch, err := a.store.FetchSchema(cmd.Context(), name)
			if err != nil {
				return err
			}
			if sch == nil {
				return dberr.NotFound("table %s does not exist or cannot be read", args[0]).
					WithHint("run 'flexdb tables' to list readable tables")
			}

			if asSQL {
				fmt.Fprintln(cmd.OutOrStdout(), sch.String())
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.RenderResult(database.NewResultFormatter().FormatSchema(sch)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asSQL, "sql", false, "print a CREATE TABLE statement")
	return cmd
}

func newHeaderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "header <table>",
		Short: "Dump the decoded header of a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.table(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), ui.RenderHeader(t.Header()))
			return nil
		},
	}
}

func newScanCmd(a *app) *cobra.Command {
	var (
		offset int
		limit  int
		where  string
	)
	cmd := &cobra.Command{
		Use:   "scan <table>",
		Short: "Print the records of a table",
		Example: `  flexdb scan customer --limit 20
  flexdb scan customer --where "BALANCE >= 100"
  flexdb scan customer --where "NAME like acme"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name, err := a.tableName(ctx, args[0])
			if err != nil {
				return err
			}

			sch, err := a.store.FetchSchema(ctx, name)
			if err != nil {
				return err
			}
			if sch == nil {
				return dberr.NotFound("table %s does not exist or cannot be read", args[0])
			}

			var match func(*tuple.Tuple) (bool, error)
			if where != "" {
				filter, err := tuple.ParseFilter(sch.TupleDesc, where)
				if err != nil {
					return fmt.Errorf("invalid --where: %w", err)
				}
				match = filter.Match
			}

			page, err := a.store.ScanPage(ctx, name, match, offset, limit)
			if err != nil {
				return err
			}
			rows := make([]*tuple.Tuple, len(page))
			for i, r := range page {
				rows[i] = r.Row
			}

			formatter := &database.ResultFormatter{WithRecordNumber: true}
			result := formatter.FormatRows(sch.TupleDesc, rows)
			fmt.Fprintln(cmd.OutOrStdout(), ui.RenderResult(result))
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
	cmd.Flags().IntVar(&offset, "offset", 0, "skip this many matching records")
	cmd.Flags().IntVar(&limit, "limit", 0, "print at most this many records (0 prints all)")
	cmd.Flags().StringVar(&where, "where", "", `filter such as "ID > 10" or "NAME like acme"`)
	return cmd
}

func newRecordCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "record <table> <n>",
		Short: "Print one record; negative numbers count from the end",
		Example: `  flexdb record customer 0
  flexdb record customer -- -1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid record number %q", args[1])
			}
			t, err := a.table(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			row, err := t.NthRecord(n)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), ui.RenderRecord(row, ui.NewValueHighlighter()))
			return nil
		},
	}
}

func newBrowseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse tables interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.database(cmd.Context())
			if err != nil {
				return err
			}
			return ui.Run(db, a.cfg.Browse.PageSize)
		},
	}
	cmd.Flags().Int("page-size", 0, "records per page")
	return cmd
}
