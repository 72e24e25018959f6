package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sanjeeviv/shark/internal/common"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		version, gitCommit, ok := common.GetModuleBuildInfo()
		if !ok {
			fmt.Println("shark-ci (unknown build)")
			return
		}
		fmt.Printf("shark-ci %s", version)
		if len(gitCommit) >= 8 {
			fmt.Printf(" (commit: %s)", gitCommit[:8])
		}
		fmt.Println()
	},
}

func init() {

	rootCmd.AddCommand(versionCmd)
}
