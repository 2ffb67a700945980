package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glp360/riskscore/internal/catalog"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("riskscore", version)
		fmt.Println("built-in catalog", catalog.Default().Version())
	},
}
