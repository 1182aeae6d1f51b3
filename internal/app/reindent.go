package app

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/fairy-pitta/java2igcse-sub002/internal/format"
)

// makeReindentCmd normalizes indentation of existing pseudocode text, for
// output that was edited by hand after conversion.
func makeReindentCmd() *cobra.Command {
	indent := 3
	cmd := &cobra.Command{
		Use:           "reindent [path ...]",
		Short:         "normalize indentation of pseudocode files",
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result *multierror.Error
			for _, filename := range args {
				text, err := os.ReadFile(filename)
				if err != nil {
					result = multierror.Append(result, errors.Errorf("%s: %v", filename, err))
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), format.Reindent(string(text), indent))
			}
			if result != nil {
				result.ErrorFormat = listErrFormat
				return result
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&indent, "indent", 3, "spaces per indent level")
	return cmd
}
