package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agriprofessor/soiladvisor/internal/glossary"
)

var defineCmd = &cobra.Command{
	Use:   "define [term]",
	Short: "Explain a soil or trafficability term",
	Long: `Look up a term in the built-in glossary. With no argument, list every
entry. Matching is case-insensitive and understands common abbreviations
like "bd", "ci", and "smd".

Examples:
  define cone index
  define smd
  define what does a penetrometer measure`,
	Args: cobra.ArbitraryArgs,
	RunE: runDefine,
}

func init() {
	rootCmd.AddCommand(defineCmd)
}

func runDefine(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		printGlossary(os.Stdout)
		return nil
	}

	question := strings.Join(args, " ")
	entry, ok := glossary.Answer(question)
	if !ok {
		fmt.Printf("No glossary entry matches %q. Known terms:\n", question)
		for _, e := range glossary.Entries() {
			fmt.Printf("  %s\n", e.Term)
		}
		return nil
	}

	fmt.Printf("%s\n  %s\n", entry.Term, entry.Definition)
	return nil
}

func printGlossary(w io.Writer) {
	for _, e := range glossary.Entries() {
		fmt.Fprintf(w, "%s\n  %s\n\n", e.Term, e.Definition)
	}
}
