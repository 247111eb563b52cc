package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/pure-orm/cli/internal/compat"
	"github.com/satishbabariya/pure-orm/cli/internal/config"
	"github.com/satishbabariya/pure-orm/cli/internal/ui"
	"github.com/satishbabariya/pure-orm/connection"
	"github.com/satishbabariya/pure-orm/driver"
)

func newInitCommand(a *app) *cobra.Command {
	s := &connection.Settings{}
	var dialect string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the connection settings to ~/.config/pure-orm",
		Long: `Write the connection settings to ~/.config/pure-orm/.pure-orm.yaml.
The engine is asked for when --type is not given. Passwords are never
stored; set PURE_ORM_DATABASE_PASSWORD instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("type") {
				answer, err := ui.Select("Database engine", dialectNames(), string(driver.MySQL))
				if err != nil {
					return err
				}
				dialect = answer
			}
			if err := s.Set(connection.KeyType, dialect); err != nil {
				return err
			}
			if err := s.Validate(); err != nil {
				return err
			}

			file, err := config.Save(s)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			a.printer.Success("wrote %s", file)
			a.printer.Info("connection: %s", s.ConnectionString())
			return nil
		},
	}

	cmd.Flags().StringVar(&dialect, "type", string(driver.MySQL), "engine: mysql or sqlite")
	cmd.Flags().StringVar(&s.Host, "host", "", "server host")
	cmd.Flags().IntVar(&s.Port, "port", 0, "server port")
	cmd.Flags().StringVar(&s.Name, "name", "", "database name")
	cmd.Flags().StringVar(&s.Username, "username", "", "user name")
	cmd.Flags().StringVar(&s.Filename, "filename", "", "SQLite database file")
	cmd.Flags().StringVar(&s.Charset, "charset", "", "character set")
	return cmd
}

func dialectNames() []string {
	dialects := driver.Dialects()
	names := make([]string, len(dialects))
	for i, d := range dialects {
		names[i] = string(d)
	}
	return names
}

func newPingCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Connect and report the server version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.open(cmd.Context())
			if err != nil {
				return err
			}

			raw, err := db.Connection().ServerVersion(cmd.Context())
			if err != nil {
				return err
			}
			report, err := compat.Check(db.Dialect(), raw)
			if err != nil {
				return err
			}

			a.printer.KeyValue(
				[2]string{"engine", string(db.Dialect())},
				[2]string{"connection", a.cfg.Database.ConnectionString()},
				[2]string{"server", raw},
			)
			if !report.Supported {
				a.printer.Warning("%s", report)
				return nil
			}
			a.printer.Success("connected to %s", report)
			return nil
		},
	}
}

func newDSNCommand(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "dsn",
		Short: "Print the configured connection string",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := a.cfg.Database
			if err := s.Validate(); err != nil {
				if errors.Is(err, driver.ErrUnknownDialect) {
					return fmt.Errorf("%w (supported: %v)", err, dialectNames())
				}
				return err
			}

			if asJSON {
				out, err := s.JSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(a.printer.Out(), string(out))
				return nil
			}

			pairs := [][2]string{
				{"connection", s.ConnectionString()},
				{"engine", string(s.Dialect())},
			}
			if a.cfg.File != "" {
				pairs = append(pairs, [2]string{"config", a.cfg.File})
			}
			if s.Port != 0 {
				pairs = append(pairs, [2]string{"port", strconv.Itoa(s.Port)})
			}
			a.printer.KeyValue(pairs...)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the settings as JSON with the password masked")
	return cmd
}
