// Command parsley renders and runs the bundled example grammars.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/repr"
	"go.uber.org/zap"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/alecthomas/parsley"
	"github.com/alecthomas/parsley/internal/grammars"
)

var (
	traceFlag = kingpin.Flag("trace", "Log traced productions to stderr.").Bool()

	listCmd = kingpin.Command("list", "List bundled grammars.")

	bnfCmd     = kingpin.Command("bnf", "Print the BNF of a grammar.")
	bnfGrammar = bnfCmd.Arg("grammar", "Grammar name.").Required().String()

	parseCmd     = kingpin.Command("parse", "Parse a file, or stdin, with a grammar.")
	parseGrammar = parseCmd.Arg("grammar", "Grammar name.").Required().String()
	parseFile    = parseCmd.Arg("file", "File to parse.").File()
)

func main() {
	switch kingpin.Parse() {
	case listCmd.FullCommand():
		for _, g := range grammars.All() {
			fmt.Printf("%-12s %s\n", g.Name, g.Description)
		}

	case bnfCmd.FullCommand():
		g, err := grammars.Find(*bnfGrammar)
		kingpin.FatalIfError(err, "")
		fmt.Println(parsley.BNF(g.Root))

	case parseCmd.FullCommand():
		g, err := grammars.Find(*parseGrammar)
		kingpin.FatalIfError(err, "")
		r := os.Stdin
		if *parseFile != nil {
			r = *parseFile
			defer r.Close()
		}
		options := []parsley.Option{parsley.RequireEnd()}
		if *traceFlag {
			logger, err := zap.NewDevelopment()
			kingpin.FatalIfError(err, "")
			defer logger.Sync() // nolint: errcheck
			options = append(options, parsley.Trace(logger))
		}
		value, err := g.Parse(r, options...)
		kingpin.FatalIfError(err, "%s", g.Name)
		repr.Println(value, repr.Indent("  "), repr.OmitEmpty(true))
	}
}
