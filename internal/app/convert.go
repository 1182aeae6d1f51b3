package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fairy-pitta/java2igcse-sub002/internal/convert"
	"github.com/fairy-pitta/java2igcse-sub002/internal/diag"
	"github.com/fairy-pitta/java2igcse-sub002/internal/source"
)

type converter struct {
	lang       string
	indent     int
	strict     bool
	comments   bool
	out        string
	assumeText bool
	intDiv     bool
}

func makeConvertCmd() *cobra.Command {
	conv := &converter{}
	cmd := &cobra.Command{
		Use:           "convert [path ...]",
		Short:         "convert source files to pseudocode",
		Args:          cobra.MinimumNArgs(1),
		RunE:          conv.run,
		SilenceErrors: true,
	}

	cmd.Flags().StringVar(&conv.lang, "lang", "", "source language (java|typescript); inferred from the file extension when empty")
	cmd.Flags().IntVar(&conv.indent, "indent", 3, "spaces per indent level")
	cmd.Flags().BoolVar(&conv.strict, "strict", false, "fail on unsupported constructs and unknown types")
	cmd.Flags().BoolVar(&conv.comments, "comments", false, "carry source comments through to the output")
	cmd.Flags().StringVar(&conv.out, "out", "", "write output to this file instead of stdout")
	cmd.Flags().BoolVar(&conv.assumeText, "assume-text-names", false, "treat + on text-like identifier names as concatenation")
	cmd.Flags().BoolVar(&conv.intDiv, "integer-division", false, "render / as DIV")

	return cmd
}

func (c *converter) run(cmd *cobra.Command, args []string) error {
	var result *multierror.Error
	var outputs []string

	for _, filename := range args {
		text, err := os.ReadFile(filename)
		if err != nil {
			result = multierror.Append(result, errors.Errorf("%s: %v", filename, err))
			continue
		}
		lang, err := c.language(filename)
		if err != nil {
			result = multierror.Append(result, errors.Errorf("%s: %v", filename, err))
			continue
		}

		res := convert.Convert(string(text), lang, convert.Options{
			IndentSize:      c.indent,
			IncludeComments: c.comments,
			StrictMode:      c.strict,
			AssumeTextNames: c.assumeText,
			IntegerDivision: c.intDiv,
		})
		for _, w := range res.Warnings {
			if w.Severity == diag.Warning {
				log.Warn().Str("file", filename).Msg(w.String())
			}
		}
		if !res.Success {
			for _, w := range res.Warnings {
				if w.Severity == diag.Error {
					result = multierror.Append(result, errors.Errorf("%s: %s", filename, w.Message))
				}
			}
			continue
		}
		log.Debug().
			Str("file", filename).
			Int64("ms", res.Metadata.ConversionTimeMs).
			Strs("features", res.Metadata.FeaturesUsed).
			Msg("converted")
		outputs = append(outputs, res.Pseudocode)
	}

	if result != nil {
		result.ErrorFormat = listErrFormat
		return result
	}

	joined := strings.Join(outputs, "\n")
	if c.out != "" {
		if err := os.WriteFile(c.out, []byte(joined), 0o644); err != nil {
			return errors.Wrapf(err, "writing %s", c.out)
		}
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), joined)
	return nil
}

func (c *converter) language(filename string) (source.Language, error) {
	if c.lang != "" {
		return source.ParseLanguage(c.lang)
	}
	ext := filepath.Ext(filename)
	if ext == "" {
		return "", errors.Errorf("no --lang given and no file extension to infer it from")
	}
	return source.ParseLanguage(ext)
}

// listErrFormat renders a multierror as one line per failure.
func listErrFormat(errs []error) string {
	lines := make([]string, 0, len(errs))
	for _, err := range errs {
		lines = append(lines, err.Error())
	}
	return strings.Join(lines, "\n")
}
