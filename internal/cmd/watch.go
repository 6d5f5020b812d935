package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harrison/nestree/internal/nesting"
	"github.com/harrison/nestree/internal/watch"
)

// NewWatchCommand creates and returns the watch subcommand
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [directory]",
		Short: "Print the tree and print it again whenever it changes",
		Long: `Print the tree like 'nestree show', then keep watching the directory
and the settings file. After each burst of changes (see watch.debounce in
the config) the tree is printed again with the settings in effect at that
moment. Stop with Ctrl+C.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runWatch,
	}

	addRenderFlags(cmd)

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	tc, err := prepareTree(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(tc.view.RootPath(), watch.Options{
		ExcludeDirs:   tc.env.cfg.Render.ExcludeDirs,
		IncludeHidden: tc.env.cfg.Render.ShowHidden,
		Files:         []string{tc.env.store.Path()},
		Debounce:      tc.env.cfg.Watch.Debounce,
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Close()

	return tc.watchLoop(ctx, cmd.OutOrStdout(), w)
}

// watchLoop prints the tree, then again after every change batch, until ctx
// is done.
func (tc *treeCommand) watchLoop(ctx context.Context, out io.Writer, w *watch.Watcher) error {
	id := tc.env.store.Subscribe(func(cfg nesting.Config) {
		tc.env.log.LogSettingsChanged(cfg.Enabled, cfg.Extensions)
	})
	defer tc.env.store.Unsubscribe(id)

	if err := tc.render(out); err != nil {
		return err
	}
	tc.env.log.LogInfo(fmt.Sprintf("Watching %s (Ctrl+C to stop)", w.Root()))

	for {
		select {
		case <-ctx.Done():
			tc.env.log.LogDebug("Watch stopped")
			return nil

		case batch := <-w.Batches():
			for _, event := range batch {
				tc.env.log.LogTrace(fmt.Sprintf("%s %s", event.Op, event.Path))
				if w.Tracks(event.Path) {
					if _, err := tc.env.store.Reload(); err != nil {
						tc.env.log.LogWarn(fmt.Sprintf("Keeping previous settings: %v", err))
					}
				}
			}
			if _, err := fmt.Fprintln(out); err != nil {
				return err
			}
			if err := tc.render(out); err != nil {
				return err
			}

		case err := <-w.Errors():
			tc.env.log.LogWarn(fmt.Sprintf("Watch error: %v", err))
		}
	}
}
