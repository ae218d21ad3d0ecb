package main

import (
	"fmt"

	"github.com/steveoakley/wetatest/internal/config"
	"github.com/steveoakley/wetatest/internal/log"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "compactseq",
		Short:   "Renumber image sequences into a compact numbering scheme",
		Long: `Compactseq renumbers all image sequences in a directory into a
uniform, contiguous numbering scheme.

An image sequence has the form [sequence_name].[frame_number].[extension].
The frame number is an integer (possibly negative) and the extension must
be one of the recognised image formats. Each sequence is renumbered
according to the configured start frame, step and padding, without ever
overwriting or losing a file even when old and new names collide.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetDebug(verbose)

			var configErr error
			if cfgFile != "" {
				cfg, configErr = config.LoadConfigFile(cfgFile)
			} else {
				cfg, configErr = config.LoadConfig()
			}
			if configErr != nil {
				fmt.Printf("Warning: %v\n", configErr)
				fmt.Println("Using default settings.")
				cfg = config.New()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/compactseq/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "write detailed progress information to stderr")

	// Add subcommands
	rootCmd.AddCommand(NewRunCmd())
	rootCmd.AddCommand(NewExtensionsCmd())
	rootCmd.AddCommand(NewWatchCmd())

	return rootCmd
}
