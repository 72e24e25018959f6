package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective harness configuration",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(titleStyle.Render("Harness Configuration"))

		fmt.Println("Workspace:", cfg.Watch.Workspace)
		fmt.Println("Marker:", cfg.Watch.Marker)
		fmt.Println("Poll Interval:", cfg.Watch.PollInterval)
		fmt.Println("Log File:", cfg.Watch.LogFile)
		fmt.Println("Server Address:", cfg.Server.Addr())
		fmt.Println("Logging Level:", cfg.Logging.Level)

	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
