package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/pure-orm/query"
	"github.com/satishbabariya/pure-orm/runtime/types"
)

func newCountCommand(a *app) *cobra.Command {
	var cond string

	cmd := &cobra.Command{
		Use:   "count <table>",
		Short: "Count the rows of a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := where(cond)
			if err != nil {
				return err
			}
			db, err := a.open(cmd.Context())
			if err != nil {
				return err
			}

			res, err := query.New(db).Count(args[0]).Where(c).Execute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(a.printer.Out(), res.Count)
			return nil
		},
	}

	cmd.Flags().StringVarP(&cond, "where", "w", "", `filter, e.g. "age >= 18 AND name LIKE 'a%'"`)
	return cmd
}

func newExistsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "exists <table>",
		Short: "Report whether a table exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.open(cmd.Context())
			if err != nil {
				return err
			}

			res, err := query.New(db).Exists(args[0]).Execute(cmd.Context())
			if err != nil {
				return err
			}
			if res.OK {
				a.printer.Success("table %s exists", args[0])
			} else {
				a.printer.Warning("table %s does not exist", args[0])
			}
			return nil
		},
	}
}

type selectOptions struct {
	fields  string
	where   string
	order   string
	desc    bool
	limit   int
	offset  int
	all     bool
	asJSON  bool
	showSQL bool
}

func newSelectCommand(a *app) *cobra.Command {
	opts := &selectOptions{}

	cmd := &cobra.Command{
		Use:   "select <table>",
		Short: "Print rows of a table",
		Long: `Print rows of a table. Only the first matching row is printed unless
--all or --limit is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limited := cmd.Flags().Changed("limit")
			if cmd.Flags().Changed("offset") && !limited {
				return fmt.Errorf("--offset requires --limit")
			}
			cond, err := where(opts.where)
			if err != nil {
				return err
			}

			var fields []string
			for _, f := range strings.Split(opts.fields, ",") {
				if f = strings.TrimSpace(f); f != "" {
					fields = append(fields, f)
				}
			}

			db, err := a.open(cmd.Context())
			if err != nil {
				return err
			}

			q := query.New(db).Select(args[0], fields...).Where(cond)
			if opts.all || limited {
				q.All()
			}
			if opts.order != "" {
				q.Order(opts.order, !opts.desc)
			}
			if limited {
				q.Limit(opts.limit, opts.offset)
			}

			if opts.showSQL {
				text, binds, err := q.SQL()
				if err != nil {
					return err
				}
				a.printer.SQL(text, binds)
			}

			res, err := q.Execute(cmd.Context())
			if err != nil {
				return err
			}

			rows := res.Rows
			if rows == nil && res.Row != nil {
				rows = []types.Record{res.Row}
			}
			if opts.asJSON {
				if rows == nil {
					rows = []types.Record{}
				}
				return a.printer.JSON(rows)
			}
			return a.printer.Records(rows)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.fields, "fields", "", "comma separated columns (default all)")
	f.StringVarP(&opts.where, "where", "w", "", "filter expression")
	f.StringVar(&opts.order, "order", "", "column to sort by")
	f.BoolVar(&opts.desc, "desc", false, "sort descending")
	f.IntVar(&opts.limit, "limit", 0, "maximum number of rows")
	f.IntVar(&opts.offset, "offset", 0, "rows to skip")
	f.BoolVarP(&opts.all, "all", "a", false, "print every matching row")
	f.BoolVar(&opts.asJSON, "json", false, "print rows as JSON")
	f.BoolVar(&opts.showSQL, "sql", false, "echo the statement before running it")
	return cmd
}
