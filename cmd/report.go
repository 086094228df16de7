package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"ledgerview"
	"ledgerview/renderer"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	convert bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display a ledger report in the terminal" }
func (*reportCmd) Usage() string {
	return `lv report [-raw] <monthly|cashflow|balance|split> <account>

  Computes one of the four reports for a slash-delimited account path and
  renders it as a table.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	c.convert = true
	f.BoolFunc("raw", "Report original commodities without currency conversion", func(string) error {
		c.convert = false
		return nil
	})
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	kind, account := f.Arg(0), f.Arg(1)

	model, err := loadModel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var rows []ledgerview.Row
	switch kind {
	case "monthly":
		rows, err = model.Monthly(account, c.convert)
	case "cashflow":
		rows, err = model.Cashflow(account, c.convert)
	case "balance":
		var row ledgerview.Row
		if row, err = model.Balance(account, c.convert); err == nil {
			rows = []ledgerview.Row{row}
		}
	case "split":
		rows, err = model.Split(account, c.convert)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown report %q\n", kind)
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ReportMarkdown(kind+" "+account, model.NativeCurrency(), rows))
	return subcommands.ExitSuccess
}
