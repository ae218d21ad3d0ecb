package main

import (
	"fmt"

	"github.com/steveoakley/wetatest/internal/sequence"

	"github.com/spf13/cobra"
)

// NewExtensionsCmd creates the extensions command
func NewExtensionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extensions",
		Short: "List the recognised image file extensions",
		Long:  `Write the default list of image file extensions to standard output, one format per line.`,
		Run: func(cmd *cobra.Command, args []string) {
			for _, ext := range sequence.DefaultImageExtensions {
				fmt.Fprintln(cmd.OutOrStdout(), ext)
			}
		},
	}
}
