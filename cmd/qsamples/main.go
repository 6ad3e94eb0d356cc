// Command qsamples runs query-composition samples over a small
// Customers/Orders/Products dataset.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/querysamples/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
