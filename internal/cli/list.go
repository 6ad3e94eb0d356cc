package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/querysamples/internal/samples"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Category string
}

// SampleInfo describes a registered sample.
type SampleInfo struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	SQL         bool   `json:"sql"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered samples",
		Long: `List the registered samples in registration order.

Examples:
  qsamples list
  qsamples list --category "Restriction Operators"
  qsamples list --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, samples.Default(), cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Category, "category", "", "only samples in this category (case-insensitive)")

	return cmd
}

func runList(opts *ListOptions, registry *samples.Registry, cmd *cobra.Command) error {
	selected := registry.All()
	if opts.Category != "" {
		selected = registry.ByCategory(opts.Category)
	}

	infos := make([]SampleInfo, 0, len(selected))
	for _, s := range selected {
		infos = append(infos, SampleInfo{
			Name:        s.Name,
			Category:    s.Category,
			Title:       s.Title,
			Description: s.Description,
			SQL:         s.HasSQL(),
		})
	}

	if opts.Format == "json" {
		return opts.formatter(cmd).Success(infos)
	}

	w := cmd.OutOrStdout()
	if len(infos) == 0 {
		fmt.Fprintln(w, "No samples found.")
		return nil
	}

	fmt.Fprintln(w, samples.ModuleTitle)
	for _, info := range infos {
		fmt.Fprintf(w, "  %-7s %s / %s\n", info.Name, info.Category, info.Title)
		if opts.Verbose {
			fmt.Fprintf(w, "          %s\n", info.Description)
		}
	}
	return nil
}
