package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/agiangrant/arbor/properties"
)

// Defaults implements the 'arbor defaults' command: it validates a
// default-property table and prints what it resolved to.
func Defaults(args []string) error {
	fs := flag.NewFlagSet("defaults", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: arbor defaults <file>")
	}

	table, err := properties.LoadTable(fs.Arg(0))
	if err != nil {
		return err
	}
	printTable(os.Stdout, table)
	return nil
}

func printTable(w io.Writer, t *properties.Table) {
	kinds := t.Kinds()
	slices.Sort(kinds)
	for _, kind := range kinds {
		fmt.Fprintf(w, "%s\n", kind)
		props := t.For(kind)
		names := make([]string, 0, len(props))
		for k := range props {
			names = append(names, string(k))
		}
		slices.Sort(names)
		for _, name := range names {
			fmt.Fprintf(w, "  %-14s %+v\n", name, props[properties.Kind(name)])
		}
	}
}
