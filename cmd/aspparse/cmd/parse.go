package cmd

import (
	"errors"
	"fmt"

	"github.com/dannbuckley/go-aspparse/internal/ast"
	"github.com/dannbuckley/go-aspparse/internal/parser"
	"github.com/dannbuckley/go-aspparse/pkg/aspparse"
	"github.com/spf13/cobra"
)

var (
	parseEvalExpr string
	parseColor    bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse an ASP/VBScript document and print its statement tree",
	Long: `Parse an ASP/VBScript document into a Program AST and print the
resulting top-level statements, including any non-fatal diagnostics
collected along the way (e.g. an unresolved include directive).

Examples:
  aspparse parse page.asp
  aspparse parse -e "<% x = 1 + 2 %>"`,
	Args: cobra.MaximumNArgs(1),
	RunE: parseDocument,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "parse inline source instead of reading from a file")
	parseCmd.Flags().BoolVar(&parseColor, "color", false, "render a fatal parse error with ANSI color")
}

func parseDocument(cmd *cobra.Command, args []string) error {
	input, filename, err := readInput(parseEvalExpr, args)
	if err != nil {
		return err
	}

	res, err := aspparse.Parse(input, aspparse.WithFilename(filename))
	if err != nil {
		var perr *parser.ParserError
		if errors.As(err, &perr) {
			return fmt.Errorf("%s", perr.Report(parseColor))
		}
		return fmt.Errorf("%s: %w", filename, err)
	}

	for i, stmt := range res.Program.Stmts {
		printStmt(i, stmt)
	}

	if len(res.Diagnostics) > 0 {
		fmt.Println("---")
		for _, d := range res.Diagnostics {
			fmt.Printf("warning: %s: %s\n", d.Pos, d.Message)
		}
	}
	return nil
}

func printStmt(i int, n ast.GlobalStmt) {
	fmt.Printf("%3d  %-28T %s\n", i, n, n.Span())
}
