package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/parawalk/parawalk"
	"github.com/spf13/cobra"
)

var walkCmd = &cobra.Command{
	Use:   "walk",
	Short: "Walk a directory and print its tree",
	Long:  `Walk a directory tree and print each entry as it is observed, depth-first.`,
	RunE:  runWalk,
}

var (
	walkRoot            string
	walkMaxDepth        int
	walkSort            string
	walkWorkers         int
	walkSkipHidden      bool
	walkPreloadMetadata bool
	walkVerbose         bool
)

func init() {
	walkCmd.Flags().StringVarP(&walkRoot, "root", "r", ".", "Root directory to walk")
	walkCmd.Flags().IntVar(&walkMaxDepth, "max-depth", -1, "Maximum depth to descend to (-1 = unbounded, 0 = root only)")
	walkCmd.Flags().StringVar(&walkSort, "sort", "", "Per-directory ordering: name|access|creation|modification (default: unsorted)")
	walkCmd.Flags().IntVarP(&walkWorkers, "workers", "w", 0, "Worker count: 0 = ambient pool, 1 = serial, n>1 = dedicated pool")
	walkCmd.Flags().BoolVar(&walkSkipHidden, "skip-hidden", true, "Drop entries whose name starts with \".\"")
	walkCmd.Flags().BoolVar(&walkPreloadMetadata, "preload-metadata", false, "Fetch file metadata while reading each directory")
	walkCmd.Flags().BoolVarP(&walkVerbose, "verbose", "v", false, "Log each directory read to stderr")
}

// buildWalk turns the shared walk-related flags into a *parawalk.Walk,
// reused by both the walk and tui subcommands.
func buildWalk(root string, maxDepth int, sortFlag string, workers int, skipHidden, preloadMetadata, verbose bool) (*parawalk.Walk, error) {
	w := parawalk.New(root).
		MaxDepth(maxDepth).
		NumThreads(workers).
		SkipHidden(skipHidden).
		PreloadMetadata(preloadMetadata).
		Verbose(verbose)

	if sortFlag != "" {
		by, err := parseSortBy(sortFlag)
		if err != nil {
			return nil, err
		}
		w.Sort(by)
	}
	return w, nil
}

func parseSortBy(s string) (parawalk.SortBy, error) {
	switch strings.ToLower(s) {
	case "name":
		return parawalk.SortName, nil
	case "access":
		return parawalk.SortAccessTime, nil
	case "creation":
		return parawalk.SortCreationTime, nil
	case "modification":
		return parawalk.SortModificationTime, nil
	default:
		return 0, fmt.Errorf("unknown sort key %q (expected name|access|creation|modification)", s)
	}
}

func runWalk(cmd *cobra.Command, args []string) error {
	w, err := buildWalk(walkRoot, walkMaxDepth, walkSort, walkWorkers, walkSkipHidden, walkPreloadMetadata, walkVerbose)
	if err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	canceled := make(chan struct{})
	go func() {
		select {
		case <-sigCh:
			fmt.Fprintln(os.Stderr, "\nStopping early (results already produced are not discarded, but tasks are no longer read)...")
			close(canceled)
		case <-canceled:
		}
	}()

	start := time.Now()
	it := w.Iter()

	var count, errCount int64
	for {
		select {
		case <-canceled:
			return nil
		default:
		}

		res, ok := it.Next()
		if !ok {
			break
		}
		if !res.Ok() {
			errCount++
			fmt.Fprintf(os.Stderr, "error: %v\n", res.Err)
			continue
		}
		count++
		printEntry(res.Value)
	}
	close(canceled)

	fmt.Fprintf(os.Stderr, "\n%s entries, %s errors, in %s\n",
		humanize.Comma(count), humanize.Comma(errCount), time.Since(start).Round(time.Millisecond))
	return nil
}

func printEntry(e parawalk.DirEntry) {
	indent := strings.Repeat("  ", e.Depth)
	suffix := ""
	if e.IsDir() {
		suffix = "/"
	}
	line := fmt.Sprintf("%s%s%s", indent, e.FileName, suffix)
	if info, err := e.Metadata.Unwrap(); err == nil && info != nil && !e.IsDir() {
		line += fmt.Sprintf("  (%s)", humanize.Bytes(uint64(info.Size())))
	}
	fmt.Println(line)
}
