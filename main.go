// Command flexdb reads DataFlex-style flat-file databases: it lists the
// registry, dumps table headers and schemas, scans records and runs an
// interactive browser.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"flexdb/pkg/config"
	"flexdb/pkg/database"
	dberr "flexdb/pkg/error"
	"flexdb/pkg/logging"
	"flexdb/pkg/primitives"
	"flexdb/pkg/store"
	"flexdb/pkg/tables"
)

// app carries state shared by every subcommand for one invocation.
type app struct {
	cfg   *config.Config
	db    *database.Database
	store *store.DatabaseStore

	configFile string
	quietLogs  bool
	logOut     io.Writer
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)

		var dbErr *dberr.DBError
		if errors.As(err, &dbErr) && dbErr.Hint != "" {
			fmt.Fprintln(os.Stderr, "Hint:", dbErr.Hint)
		}
		os.Exit(1)
	}
}

// run executes one command line and releases everything it opened.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{logOut: stderr}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "flexdb",
		Short:         "Read DataFlex flat-file databases",
		Version:       store.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// The browser owns the terminal.
			a.quietLogs = cmd.Name() == "browse"
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default ./flexdb.yaml if present)")
	flags.String("db", "", "database directory or its filelist.cfg")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("log-format", "", "log format: text or json")
	flags.String("log-file", "", "write logs to this file instead of stderr")
	flags.Bool("preload", false, "open every table before running the command")
	flags.Int("workers", 0, "number of tables opened concurrently by --preload")

	root.AddCommand(
		newTablesCmd(a),
		newSchemaCmd(a),
		newHeaderCmd(a),
		newScanCmd(a),
		newRecordCmd(a),
		newBrowseCmd(a),
	)
	return root
}

// setup loads the configuration and starts logging.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	lc := cfg.LoggingConfig()
	lc.Writer = a.logOut
	if a.quietLogs && lc.OutputPath == "" {
		lc.Writer = io.Discard
	}
	if err := logging.Init(lc); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	return nil
}

// database opens the configured database on first use.
func (a *app) database(ctx context.Context) (*database.Database, error) {
	if a.db != nil {
		return a.db, nil
	}

	db, err := database.Open(a.cfg.DataDir)
	if err != nil {
		return nil, err
	}
	a.db = db
	a.store = store.NewDatabaseStore(db)

	if a.cfg.Preload.Enabled {
		if err := db.Preload(ctx, a.cfg.Preload.Workers); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// table resolves a registry file number or a table name.
func (a *app) table(ctx context.Context, ref string) (*tables.Table, error) {
	db, err := a.database(ctx)
	if err != nil {
		return nil, err
	}
	if n, err := strconv.ParseUint(ref, 10, 32); err == nil {
		return db.Table(primitives.FileNumber(n))
	}
	return db.TableByName(ref)
}

// tableName maps a file number to the registry root name; names pass through.
func (a *app) tableName(ctx context.Context, ref string) (string, error) {
	db, err := a.database(ctx)
	if err != nil {
		return "", err
	}
	n, err := strconv.ParseUint(ref, 10, 32)
	if err != nil {
		return ref, nil
	}
	entry, ok := db.FileList().Get(primitives.FileNumber(n))
	if !ok || entry.Number.IsRegistry() {
		return "", dberr.NotFound("no table is registered as file %d", n)
	}
	return entry.RootName, nil
}

func (a *app) close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			logging.Warn("failed to close database", "error", err)
		}
	}
	_ = logging.Close()
}
