package cli

import (
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Long: `Prints the vtrain version together with the Go runtime and platform
it was built for. Useful for checking which build is baked into a
training image.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("vtrain version %s (%s, %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
