package cli

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/roach88/querysamples/internal/dataset"
)

// ValidationResult is the JSON payload of the validate command.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Source string            `json:"source"`
	Stats  *dataset.Stats    `json:"stats,omitempty"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError describes why a dataset document was rejected.
type ValidationError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Hints   []string `json:"hints,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [dataset.yaml]",
		Short: "Validate a dataset document",
		Long: `Validate a dataset document without running any sample.

The document is checked against the dataset schema, decoded with unknown
fields rejected, and checked for unique ids and consistent order ownership.
Without an argument the embedded dataset is validated.

Exit codes:
  0 - The document is valid
  1 - The document is invalid

Examples:
  qsamples validate ./northwind.yaml
  qsamples validate --format json ./northwind.yaml`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runValidate(rootOpts, path, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	source := path
	var (
		ds  *dataset.Dataset
		err error
	)
	if path == "" {
		source = dataset.EmbeddedSource
		ds, err = dataset.Load(source, dataset.DefaultDocument())
	} else {
		ds, err = dataset.LoadFile(path)
	}
	formatter.VerboseLog("Validating %s", source)

	result := ValidationResult{Valid: err == nil, Source: source}
	if err != nil {
		result.Errors = []ValidationError{toValidationError(err)}
	} else {
		stats := ds.Stats()
		result.Stats = &stats
	}

	if opts.Format == "json" {
		if encErr := formatter.encode(CLIResponse{Status: status(result.Valid), Data: result}); encErr != nil {
			return encErr
		}
	} else {
		writeValidationText(cmd, result)
	}

	if !result.Valid {
		return WrapExitError(ExitFailure, "validation failed", err)
	}
	return nil
}

func toValidationError(err error) ValidationError {
	return ValidationError{
		Code:    datasetErrorCode(err),
		Message: err.Error(),
		Hints:   errors.GetAllHints(err),
	}
}

func writeValidationText(cmd *cobra.Command, result ValidationResult) {
	w := cmd.OutOrStdout()
	if result.Valid {
		fmt.Fprintf(w, "✓ %s is valid (%d customers, %d orders, %d products)\n",
			result.Source, result.Stats.Customers, result.Stats.Orders, result.Stats.Products)
		return
	}
	fmt.Fprintf(w, "✗ %s is invalid\n", result.Source)
	for _, e := range result.Errors {
		fmt.Fprintf(w, "  [%s] %s\n", e.Code, e.Message)
		for _, h := range e.Hints {
			fmt.Fprintf(w, "  hint: %s\n", h)
		}
	}
}

func status(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}
