package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/fairy-pitta/java2igcse-sub002/internal/convert"
	"github.com/fairy-pitta/java2igcse-sub002/internal/source"
)

func makeReplCmd() *cobra.Command {
	r := &repl{}
	cmd := &cobra.Command{
		Use:           "repl",
		Short:         "interactively convert snippets to pseudocode",
		Args:          cobra.NoArgs,
		RunE:          r.run,
		SilenceErrors: true,
	}

	cmd.Flags().StringVar(&r.lang, "lang", "java", "source language (java|typescript)")
	cmd.Flags().IntVar(&r.indent, "indent", 3, "spaces per indent level")

	return cmd
}

type repl struct {
	lang   string
	indent int
}

func (r *repl) run(cmd *cobra.Command, args []string) error {
	lang, err := source.ParseLanguage(r.lang)
	if err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Fprintf(rl.Stdout(), "java2igcse repl, language %s (type 'exit' or Ctrl+D to quit)\n", lang)

	var accumulated strings.Builder
	braceDepth := 0

	for {
		if braceDepth > 0 {
			rl.SetPrompt("... ")
		} else {
			rl.SetPrompt(">>> ")
		}

		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				// Ctrl+C cancels any half-entered statement.
				accumulated.Reset()
				braceDepth = 0
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(rl.Stdout())
			}
			break
		}

		if braceDepth == 0 && strings.TrimSpace(line) == "exit" {
			break
		}

		// Keep reading until braces balance so whole blocks convert at once.
		braceDepth += strings.Count(line, "{") - strings.Count(line, "}")
		accumulated.WriteString(line)
		accumulated.WriteString("\n")
		if braceDepth > 0 {
			continue
		}
		braceDepth = 0

		snippet := accumulated.String()
		accumulated.Reset()
		if strings.TrimSpace(snippet) == "" {
			continue
		}

		res := convert.Convert(snippet, lang, convert.Options{IndentSize: r.indent})
		for _, w := range res.Warnings {
			fmt.Fprintln(rl.Stderr(), w.String())
		}
		if res.Success {
			fmt.Fprint(rl.Stdout(), res.Pseudocode)
		}
	}
	return nil
}
