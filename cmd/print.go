package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// printCmd implements the 'print' subcommand.
type printCmd struct{}

func (*printCmd) Name() string     { return "print" }
func (*printCmd) Synopsis() string { return "print the merged ledger document" }
func (*printCmd) Usage() string {
	return `lv print [-l <ledger>]

  Resolves all includes and prints the merged document as ledger text.
`
}

func (*printCmd) SetFlags(f *flag.FlagSet) {}

func (*printCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	model, err := loadModel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	text, err := model.Print()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Print(text)
	return subcommands.ExitSuccess
}
