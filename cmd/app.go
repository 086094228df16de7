// Package cmd implements the CLI application to serve and inspect a ledger.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"

	"ledgerview"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&serveCmd{}, "server")
	c.Register(&reportCmd{}, "reports")
	c.Register(&printCmd{}, "reports")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("l", "", "Path to the root ledger file (defaults to $LEDGER_FILE)")
var nativeCurrency = flag.String("currency", "INR", "Native currency every report is expressed in")
var foreignCurrencies = flag.String("foreign", ledgerview.ForeignAll, "Comma-separated commodities to convert, or * for all")

// loadModel builds the shared model from the global flags. A .env file in the
// working directory is honored for LEDGER_FILE.
func loadModel() (*ledgerview.Model, error) {
	godotenv.Load()

	path := *ledgerFile
	if path == "" {
		path = os.Getenv("LEDGER_FILE")
	}
	if path == "" {
		return nil, fmt.Errorf("no ledger file: pass -l or set LEDGER_FILE")
	}
	return ledgerview.NewModel(path, *nativeCurrency, splitForeign(*foreignCurrencies))
}

func splitForeign(list string) []string {
	var foreign []string
	for _, code := range strings.Split(list, ",") {
		if code = strings.TrimSpace(code); code != "" {
			foreign = append(foreign, code)
		}
	}
	return foreign
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the renderer cannot initialize.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
