package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/steveoakley/wetatest/internal/compact"
	"github.com/steveoakley/wetatest/internal/log"
	"github.com/steveoakley/wetatest/internal/watch"

	"github.com/spf13/cobra"
)

// NewWatchCmd creates the watch command
func NewWatchCmd() *cobra.Command {
	var previewOnly bool

	cmd := &cobra.Command{
		Use:   "watch [directory]",
		Short: "Watch a directory and renumber sequences as they change",
		Long: `Watch the specified directory and re-run sequence renumbering after
its contents change and settle. With --preview the renaming report is
written instead of renaming any files.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]

			engine, err := compact.NewWithConfig(cfg)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("preview") {
				cfg.Watch.Preview = previewOnly
			}
			settle := time.Duration(cfg.Watch.SettleMS) * time.Millisecond

			runOnce := func() {
				engine.SetPreview(true)
				plan, err := engine.CompactDirectory(dir)
				if err != nil {
					log.Error("Skipping run: %v", err)
					return
				}

				// An already-compact directory plans only identity
				// renames; running those would just churn the watcher.
				changed := false
				for _, op := range plan {
					if op.OldName != op.NewName {
						changed = true
						break
					}
				}
				if !changed {
					log.Debug("Sequences already compact, nothing to do")
					return
				}

				if cfg.Watch.Preview {
					for _, op := range plan {
						fmt.Fprintf(cmd.OutOrStdout(), "%s>%s\n", op.OldName, op.NewName)
					}
					return
				}

				engine.SetPreview(false)
				if _, err := engine.CompactDirectory(dir); err != nil {
					log.Error("Renumbering failed: %v", err)
				}
			}

			watcher, err := watch.New(dir, settle, runOnce)
			if err != nil {
				return err
			}
			if err := watcher.Start(); err != nil {
				return err
			}
			defer watcher.Stop()

			log.Info("Watching %s. Press Ctrl+C to stop.", dir)
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			<-sigChan

			return nil
		},
	}

	cmd.Flags().BoolVar(&previewOnly, "preview", false,
		"write the renaming report on changes instead of renaming files")

	return cmd
}
