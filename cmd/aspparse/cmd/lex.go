package cmd

import (
	"fmt"

	"github.com/dannbuckley/go-aspparse/internal/lexer"
	"github.com/spf13/cobra"
)

var (
	lexEvalExpr string
	showPos     bool
	showType    bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize an ASP/VBScript document and print the resulting tokens",
	Long: `Tokenize (lex) an ASP/VBScript document and print the resulting tokens.

This command is useful for debugging the tokenizer's template/script mode
switching and understanding how a document's delimiters are recognized.

Examples:
  # Tokenize a file
  aspparse lex page.asp

  # Tokenize inline source
  aspparse lex -e "<% Response.Write 1 %>"

  # Show token kinds and positions
  aspparse lex --show-type --show-pos page.asp`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexDocument,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline source instead of reading from a file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showType, "show-type", false, "show token kind names")
}

func lexDocument(cmd *cobra.Command, args []string) error {
	input, filename, err := readInput(lexEvalExpr, args)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Printf("Tokenizing: %s\n", filename)
		fmt.Printf("Input length: %d bytes\n", len(input))
		fmt.Println("---")
	}

	t := lexer.New(input)
	defer t.Close(nil)

	count := 0
	for {
		tok, err := t.Advance()
		if err != nil {
			return fmt.Errorf("%s: %w", filename, err)
		}
		count++
		printToken(tok, input)
		if tok.Kind == lexer.EOF {
			break
		}
	}

	if verbose {
		fmt.Println("---")
		fmt.Printf("Total tokens: %d\n", count)
	}
	return nil
}

func printToken(tok lexer.Token, source string) {
	var out string
	if showType {
		out = fmt.Sprintf("[%-24s]", tok.Kind)
	}
	if tok.Kind == lexer.EOF {
		out += " EOF"
	} else {
		out += fmt.Sprintf(" %q", tok.Text(source))
	}
	if showPos && tok.Debug != nil {
		out += fmt.Sprintf(" @%s", tok.Debug)
	}
	fmt.Println(out)
}
