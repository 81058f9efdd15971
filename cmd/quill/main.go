// quill - command line front end for the Quill narrative scripting language.
//
// Provides syntax checking and tree dumps for script authors and build
// pipelines. All commands parse only; nothing is executed.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/questlang/quill"
	"github.com/questlang/quill/ast"
	"github.com/questlang/quill/internal/lexer"
	"github.com/questlang/quill/internal/token"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "quill",
		Short: "Parser tooling for Quill narrative scripts",
		Long: `quill parses Quill narrative scripts and reports syntax errors.

A script either parses completely or fails with a list of diagnostics in
file:line:col form; there is no partial result. Use "check" in build
pipelines, "ast" and "tokens" to inspect what the parser sees.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newCheckCmd())
	root.AddCommand(newASTCmd())
	root.AddCommand(newTokensCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Parse scripts and report diagnostics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				if err := checkFile(cmd, path); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}
			return nil
		},
	}
}

func checkFile(cmd *cobra.Command, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if _, err := quill.Parse(string(src), path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
	return nil
}

func newASTCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ast <file>",
		Short: "Parse a script and print its AST",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			prog, err := quill.Parse(string(src), args[0])
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return fmt.Errorf("parse failed")
			}
			return ast.Fprint(cmd.OutOrStdout(), prog)
		},
	}
}

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			l := lexer.New(src, args[0])
			for {
				tok := l.Scan()
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%q\n", tok.Loc, tok.Type, tok.Text)
				if tok.Type == token.EOF {
					return nil
				}
			}
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the quill version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "quill %s\n", quill.Version)
		},
	}
}
