// Package commands implements the pure-orm command-line tool.
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/pure-orm/cli/internal/config"
	"github.com/satishbabariya/pure-orm/cli/internal/ui"
	"github.com/satishbabariya/pure-orm/database"
	"github.com/satishbabariya/pure-orm/internal/debug"
	"github.com/satishbabariya/pure-orm/query"
	"github.com/satishbabariya/pure-orm/query/parse"
)

// app is the state shared by the subcommands of one invocation.
type app struct {
	configFile string
	debug      bool

	cfg      *config.Config
	printer  *ui.Printer
	provider *database.Provider
}

// Execute runs the root command with the process arguments.
func Execute() error {
	a := &app{}
	defer a.teardown()
	return a.rootCommand().Execute()
}

// NewRootCommand builds the pure-orm command tree.
func NewRootCommand() *cobra.Command {
	return (&app{}).rootCommand()
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "pure-orm",
		Short: "Inspect and query MySQL and SQLite databases",
		Long: `pure-orm talks to the database configured in .pure-orm.yaml, the
PURE_ORM_DATABASE_* environment variables or a .env file.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.teardown()
		},
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default is .pure-orm.yaml)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "log every statement to stderr")

	root.AddCommand(
		newInitCommand(a),
		newPingCommand(a),
		newDSNCommand(a),
		newCountCommand(a),
		newExistsCommand(a),
		newSelectCommand(a),
		newDropCommand(a),
		newClearCommand(a),
		newExecCommand(a),
		newRunCommand(a),
		newVersionCommand(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.printer = ui.New(cmd.OutOrStdout(), cmd.ErrOrStderr())

	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	debug.InitWriter(a.debug || cfg.Debug, cmd.ErrOrStderr())
	if cfg.File != "" {
		debug.Debug("config loaded", "file", cfg.File)
	}

	a.provider = database.NewProvider(database.LoggingMiddleware(func(format string, args ...any) {
		debug.Debug(fmt.Sprintf(format, args...))
	}))
	a.provider.Prepare(cfg.Database)
	return nil
}

// teardown closes the database opened by the command, if any.
func (a *app) teardown() error {
	if a.provider == nil {
		return nil
	}
	return a.provider.End()
}

// open returns the connected database of this invocation.
func (a *app) open(ctx context.Context) (*database.Database, error) {
	db := a.provider.Main(ctx)
	if !db.IsConnected() {
		return nil, fmt.Errorf("failed to connect to %s: %s", a.cfg.Database, db.Err())
	}
	return db, nil
}

// where parses a --where flag; an empty flag matches every row.
func where(text string) (query.Condition, error) {
	cond, err := parse.Condition(text)
	if err != nil {
		return query.Condition{}, fmt.Errorf("invalid --where: %w", err)
	}
	return cond, nil
}
