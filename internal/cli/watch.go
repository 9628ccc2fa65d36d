package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch DIR",
	Short: "Revalidate content files as they change",
	Long: `Watch a directory tree and rerun validation whenever a .md file is
written or created. Intended as an authoring feedback loop.

  contentgate watch library/`,
	Args: cobra.ExactArgs(1),
	RunE: watchCommand,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

const watchDebounce = 300 * time.Millisecond

func watchCommand(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	defer eng.Close()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch init failed: %w", err)
	}
	defer watcher.Close()

	root := args[0]
	if err := addWatchRecursive(watcher, root); err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}

	fmt.Printf("Watching %s (Ctrl-C to stop)\n", root)

	// Debounce per path: editors fire several write events per save.
	pending := make(map[string]*time.Timer)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			path := event.Name
			if isDir(path) {
				// New subdirectories join the watch.
				_ = addWatchRecursive(watcher, path)
				continue
			}
			if !strings.EqualFold(filepath.Ext(path), ".md") {
				continue
			}
			if timer, ok := pending[path]; ok {
				timer.Stop()
			}
			pending[path] = time.AfterFunc(watchDebounce, func() {
				result := eng.ValidateContent(path)
				printReport(result.Markdown)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Printf("watch error: %v\n", err)
		}
	}
}

func addWatchRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
