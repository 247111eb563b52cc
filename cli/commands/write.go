package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/satishbabariya/pure-orm/cli/internal/config"
	"github.com/satishbabariya/pure-orm/cli/internal/script"
	"github.com/satishbabariya/pure-orm/cli/internal/ui"
	"github.com/satishbabariya/pure-orm/cli/internal/watch"
	"github.com/satishbabariya/pure-orm/database"
	"github.com/satishbabariya/pure-orm/query"
)

var errAborted = errors.New("aborted")

// confirm asks before a destructive command unless --yes was given.
func confirm(yes bool, format string, args ...any) error {
	if yes {
		return nil
	}
	ok, err := ui.Confirm(fmt.Sprintf(format, args...))
	if err != nil {
		return err
	}
	if !ok {
		return errAborted
	}
	return nil
}

func newDropCommand(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "drop <table>",
		Short: "Drop a table if it exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := args[0]
			if err := confirm(yes, "Drop table %s and all of its rows?", table); err != nil {
				return err
			}
			db, err := a.open(cmd.Context())
			if err != nil {
				return err
			}

			if _, err := query.New(db).Drop(table).Execute(cmd.Context()); err != nil {
				return err
			}
			a.printer.Success("dropped %s", table)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newClearCommand(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear <table>",
		Short: "Delete every row of a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := args[0]
			if err := confirm(yes, "Delete every row of %s?", table); err != nil {
				return err
			}
			db, err := a.open(cmd.Context())
			if err != nil {
				return err
			}

			res, err := query.New(db).DeleteAll(table).Execute(cmd.Context())
			if err != nil {
				return err
			}
			a.printer.Success("deleted %d rows from %s", res.RowsAffected, table)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newExecCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <sql> [args...]",
		Short: "Run one statement, binding args to its ? placeholders",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.open(cmd.Context())
			if err != nil {
				return err
			}

			binds := make([]any, len(args)-1)
			for i, v := range args[1:] {
				binds[i] = v
			}
			return a.runStatement(cmd.Context(), db, args[0], binds...)
		},
	}
}

func newRunCommand(a *app) *cobra.Command {
	var watchFile bool

	cmd := &cobra.Command{
		Use:   "run <file.sql>",
		Short: "Run the statements of a SQL script",
		Long: `Run the statements of a SQL script in order, stopping at the first
failure. With --watch the script runs again whenever it is saved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]
			db, err := a.open(cmd.Context())
			if err != nil {
				return err
			}

			if !watchFile {
				return a.runScript(cmd.Context(), db, file)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			w, err := watch.New(file, func(ctx context.Context) error {
				return a.runScript(ctx, db, file)
			}, func(err error) {
				a.printer.Error("%v", err)
			})
			if err != nil {
				return err
			}
			a.printer.Info("watching %s, press Ctrl+C to stop", file)
			return w.Run(ctx)
		},
	}

	cmd.Flags().BoolVar(&watchFile, "watch", false, "run again whenever the file changes")
	return cmd
}

func (a *app) runScript(ctx context.Context, db *database.Database, file string) error {
	src, err := afero.ReadFile(config.AppFs, file)
	if err != nil {
		return err
	}
	stmts, err := script.Split(string(src))
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	for i, stmt := range stmts {
		if err := a.runStatement(ctx, db, stmt); err != nil {
			return fmt.Errorf("%s: statement %d: %w", file, i+1, err)
		}
	}
	a.printer.Success("ran %d statements from %s", len(stmts), file)
	return nil
}

func (a *app) runStatement(ctx context.Context, db *database.Database, sql string, args ...any) error {
	q := query.NewRaw(db, sql, args...)
	if !q.IsValid() {
		return fmt.Errorf("empty statement")
	}
	res, err := q.Execute(ctx)
	if err != nil {
		return err
	}

	if res.Rows != nil {
		return a.printer.Records(res.Rows)
	}
	a.printer.Success("%d rows affected", res.RowsAffected)
	return nil
}
