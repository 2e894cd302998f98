package cli

import (
	"github.com/spf13/cobra"

	"github.com/getmockd/resolvermock/pkg/cli/internal/output"
)

// printResult writes data to the command's stdout.
//
// Contract: with --json ONLY the JSON encoding of data is written. Otherwise
// textFn is called when given, and data is written as YAML when it is nil.
func (o *rootOptions) printResult(cmd *cobra.Command, data any, textFn func() error) error {
	w := cmd.OutOrStdout()
	if o.jsonOutput {
		return output.JSON(w, data)
	}
	if textFn != nil {
		return textFn()
	}
	return output.YAML(w, data)
}
