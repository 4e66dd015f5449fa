package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"ocl/internal/errors"
)

func newCheckCmd(s *settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] <file.ocl|directory>...",
		Short: "Check OCL documents for lexical and syntax errors",
		Long: `Check parses every given file, and every *.ocl file below every given
directory, as a constraint document and reports the first error of each`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := cmd.Flags().GetInt("jobs")
			if err != nil {
				return fmt.Errorf("failed to get jobs flag: %w", err)
			}
			return runCheck(cmd, s, args, jobs)
		},
	}
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	return cmd
}

// checkResult is the outcome for one file.
type checkResult struct {
	Path   string
	Source string
	Err    error
}

func runCheck(cmd *cobra.Command, s *settings, args []string, jobs int) error {
	start := time.Now()

	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .ocl files found")
	}

	results, err := checkFiles(cmd, s, files, jobs)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err == nil {
			continue
		}
		failed++
		printDiagnostic(cmd, r.Path, r.Source, r.Err)
	}

	out := cmd.OutOrStdout()
	elapsed := formatDuration(time.Since(start))
	if failed > 0 {
		fmt.Fprintln(out, color.RedString("%d of %d files failed after %s", failed, len(files), elapsed))
		return errDiagnosed
	}
	fmt.Fprintln(out, color.GreenString("Successfully checked %d files in %s", len(files), elapsed))
	return nil
}

// checkFiles parses files in parallel. Results keep the order of files.
func checkFiles(cmd *cobra.Command, s *settings, files []string, jobs int) ([]checkResult, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]checkResult, len(files))
	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			source := string(content)
			_, err = parseDocument(s, source)
			results[i] = checkResult{Path: path, Source: source, Err: err}
			log.Debugf("checked %s", path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// collectFiles expands directories into their *.ocl files. Explicit file
// arguments are kept whatever their extension.
func collectFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to stat path: %w", err)
		}
		if !st.IsDir() {
			files = append(files, arg)
			continue
		}

		var found []string
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, ".ocl") {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}

// reportDiagnostic prints err and returns errDiagnosed when err is a
// front-end error; other errors are returned unchanged.
func reportDiagnostic(cmd *cobra.Command, path, source string, err error) error {
	if printDiagnostic(cmd, path, source, err) {
		return errDiagnosed
	}
	return err
}

func printDiagnostic(cmd *cobra.Command, path, source string, err error) bool {
	fe, ok := err.(*errors.FrontEndError)
	if !ok {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
		return false
	}
	fmt.Fprint(cmd.ErrOrStderr(), errors.NewErrorReporter(path, source).FormatError(fe))
	return true
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
