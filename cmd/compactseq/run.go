package main

import (
	"fmt"

	"github.com/steveoakley/wetatest/internal/compact"
	"github.com/steveoakley/wetatest/internal/sequence"

	"github.com/spf13/cobra"
)

// NewRunCmd creates the run command
func NewRunCmd() *cobra.Command {
	var (
		startFrame      int
		step            int
		padding         int
		report          bool
		preview         bool
		assumeAllImages bool
		addExtensions   []string
		excludes        []string
	)

	cmd := &cobra.Command{
		Use:   "run [directory]",
		Short: "Renumber all image sequences in a directory",
		Long: `Renumber all image sequences in the specified directory into a
compacted numbering scheme. Each unique sequence is renumbered according
to the indicated uniform numbering: the start frame, frame step and
padding can be passed via the optional flags or set in the config file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("require a directory to process")
			}
			dir := args[0]

			engine, err := compact.NewWithConfig(cfg)
			if err != nil {
				return err
			}

			scheme := cfg.Scheme()
			if cmd.Flags().Changed("start-frame") {
				scheme.StartFrame = startFrame
			}
			if cmd.Flags().Changed("step") {
				scheme.Step = step
			}
			if cmd.Flags().Changed("padding") {
				scheme.Padding = padding
			}
			engine.SetScheme(scheme)

			if assumeAllImages {
				engine.SetFilter(sequence.AcceptAll())
			} else if len(addExtensions) > 0 {
				additional := append(append([]string{}, cfg.Extensions.Additional...), addExtensions...)
				engine.SetFilter(sequence.Default(additional...))
			}

			if len(excludes) > 0 {
				if err := engine.SetExcludes(append(append([]string{}, cfg.Exclude...), excludes...)); err != nil {
					return err
				}
			}

			// Previewing forces the report: it is the only output.
			if preview {
				report = true
				engine.SetPreview(true)
			}

			plan, err := engine.CompactDirectory(dir)
			if err != nil {
				return err
			}

			if report {
				for _, op := range plan {
					fmt.Fprintf(cmd.OutOrStdout(), "%s>%s\n", op.OldName, op.NewName)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&startFrame, "start-frame", "f", sequence.DefaultStartFrame,
		"new frame number of the first image in each sequence")
	cmd.Flags().IntVarP(&step, "step", "s", sequence.DefaultStep,
		"increment in frame number between successive files in each sequence")
	cmd.Flags().IntVarP(&padding, "padding", "p", sequence.DefaultPadding,
		"minimum width of the output frame number field, zero padded")
	cmd.Flags().BoolVarP(&report, "report", "r", false,
		"write one line per renamed file to standard output: the original name, a '>' symbol, then the new name")
	cmd.Flags().BoolVar(&preview, "preview", false,
		"generate the renaming report but do not rename any files")
	cmd.Flags().BoolVar(&assumeAllImages, "assume-all-images", false,
		"assume all filename extensions indicate valid image file formats")
	cmd.Flags().StringArrayVarP(&addExtensions, "add-extension", "e", nil,
		"add an image file format extension to the known list (case-insensitive, repeatable)")
	cmd.Flags().StringArrayVarP(&excludes, "exclude", "x", nil,
		"glob pattern for filenames to leave untouched (repeatable)")

	return cmd
}
