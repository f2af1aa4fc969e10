// ropesim runs the climbable rope simulation headless.
//
// Usage:
//
//	ropesim run        - Step a rope and an autopiloted climber, logging events
//	ropesim inspect    - Print the node positions of a warmed-up rope
//
// Global flags:
//
//	--rope <prefab>   - Rope prefab (default: rope.yaml)
//	--prefabs <dir>   - On-disk prefab directory that overrides the embedded set
//	--debug           - Enable debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/milk9111/ropeclimb/prefabs"
)

var (
	flagRopePrefab string
	flagPrefabDir  string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ropesim",
	Short: "Headless climbable rope simulation",
	Long: `ropesim hangs a verlet rope from an anchor and lets a climber grab,
climb and release it, without any rendering.

Examples:
  ropesim run --ticks 600
  ropesim run --rope windy_rope.yaml --watch
  ropesim inspect --rope rope.yaml`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagDebug {
			log.SetLevel(log.DebugLevel)
		}
		prefabs.Dir = flagPrefabDir
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRopePrefab, "rope", "rope.yaml", "Rope prefab to load")
	rootCmd.PersistentFlags().StringVar(&flagPrefabDir, "prefabs", "prefabs", "Prefab directory that overrides the embedded prefabs")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(inspectCmd)
}
