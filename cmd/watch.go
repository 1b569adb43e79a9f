package cmd

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/jsphweid/mthd/constants"
	"github.com/spf13/cobra"
)

var watchJSON bool

func init() {
	watchCmd.Flags().BoolVar(&watchJSON, "json", false, "print the header as JSON")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Prints the header every time the file changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return watch(ctx, cmd.OutOrStdout(), args[0], constants.WatchDebounce, watchJSON)
	},
}

// watch re-inspects path once a burst of writes to it has settled for quiet.
// The parent directory is watched rather than the file so edits that replace
// the file by rename are seen.
func watch(ctx context.Context, w io.Writer, path string, quiet time.Duration, asJSON bool) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	var mu sync.Mutex
	stopped := false
	report := func() {
		mu.Lock()
		defer mu.Unlock()
		if stopped {
			return
		}
		if err := inspect(w, path, asJSON); err != nil {
			log.Printf("Could not inspect %v: %v", path, err)
		}
	}
	report()

	debounced := debounce.New(quiet)
	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			debounced(func() {})
			mu.Lock()
			stopped = true
			mu.Unlock()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				debounced(report)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watch error on %v: %v", path, err)
		}
	}
}
