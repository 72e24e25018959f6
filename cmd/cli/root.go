package cli

import (
	"github.com/spf13/cobra"

	"github.com/sanjeeviv/shark/internal/config"
	"github.com/sanjeeviv/shark/internal/daemon"
)

var (
	cfg    *config.Config
	events daemon.EventSource

	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "shark-ci",
	Short: "CI harness for the Shark test suites",
	Long: `shark-ci supervises the long-running build/test tools of Shark's
continuous integration. It tees the tool's output to a log artifact,
watches for a marker that means the rest of the run is uninteresting,
and cuts the run short by killing exactly the tool processes in the
supervised process group.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		events = cfg.SetupLogging(verbose)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a shark-ci yaml config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// GetCommandOptions returns the root command for execution by main.
func GetCommandOptions() *cobra.Command {
	return rootCmd
}
