package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/c360studio/semarch/config"
	"github.com/c360studio/semarch/governance"
	"github.com/c360studio/semarch/repository"
)

// validateWorkers caps concurrent model validations.
const validateWorkers = 4

// fileResult is the validation outcome for a single model file.
type fileResult struct {
	Path     string   `json:"path"`
	Status   string   `json:"status"`
	Mode     string   `json:"mode"`
	RuleID   string   `json:"rule_id,omitempty"`
	Findings []string `json:"findings,omitempty"`
	Error    string   `json:"error,omitempty"`
}

func validateCmd() *cobra.Command {
	var (
		mode     string
		coverage string
		format   string
		watch    bool
	)

	cmd := &cobra.Command{
		Use:   "validate [globs...]",
		Short: "Validate architecture models against governance rules",
		Long: `Validate loads architecture model files and checks them against the
governance rule catalog: naming, ownership, vocabulary and cardinality.

Models are located by glob patterns (doublestar syntax, e.g.
"models/**/*.yaml"). Without arguments the patterns come from the
models.paths section of semarch.yaml.

The command exits non-zero when any model is rejected or fails to load.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args, mode, coverage, format, watch)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "Governance mode override (strict, advisory)")
	cmd.Flags().StringVar(&coverage, "coverage", "", "Lifecycle coverage override (as-is, to-be, both)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, text, json)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-validate models when their files change")

	return cmd
}

func runValidate(patterns []string, mode, coverage, format string, watch bool) error {
	semarchCfg, err := config.NewLoader(slog.Default()).Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	govCfg, err := effectiveGovernanceConfig(semarchCfg, mode, coverage)
	if err != nil {
		return err
	}

	if len(patterns) == 0 {
		patterns = semarchCfg.Models.Paths
	}

	paths, err := resolveModelPaths(patterns)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no model files match %v", patterns)
	}

	ctx := context.Background()
	engine := governance.NewEngine()

	results := validateModels(ctx, engine, paths, govCfg)
	if err := renderResults(os.Stdout, results, format); err != nil {
		return err
	}

	if watch {
		return watchModels(ctx, engine, paths, govCfg, format)
	}

	if failed := countFailed(results); failed > 0 {
		return fmt.Errorf("%d of %d models failed validation", failed, len(results))
	}
	return nil
}

// effectiveGovernanceConfig applies command-line mode and coverage
// overrides on top of the configured governance policy.
func effectiveGovernanceConfig(cfg *config.Config, mode, coverage string) (governance.Config, error) {
	govCfg := cfg.Governance

	if mode != "" {
		m, err := governance.ParseMode(mode)
		if err != nil {
			return governance.Config{}, err
		}
		govCfg.Mode = m
	}
	if coverage != "" {
		cov, err := governance.ParseCoverage(coverage)
		if err != nil {
			return governance.Config{}, err
		}
		govCfg.Coverage = cov
	}

	return govCfg, nil
}

// resolveModelPaths expands doublestar glob patterns into a sorted,
// de-duplicated list of model file paths. A pattern without meta
// characters is treated as a literal path so typos surface as errors
// instead of silently matching nothing.
func resolveModelPaths(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		if len(matches) == 0 && !strings.ContainsAny(pattern, "*?[{") {
			if _, err := os.Stat(pattern); err != nil {
				return nil, fmt.Errorf("model file %s: %w", pattern, err)
			}
			matches = []string{pattern}
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			if !seen[match] {
				seen[match] = true
				paths = append(paths, match)
			}
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// validateModels validates model files concurrently. Results come back
// in path order regardless of completion order.
func validateModels(ctx context.Context, engine *governance.Engine, paths []string, govCfg governance.Config) []fileResult {
	results := make([]fileResult, len(paths))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(validateWorkers)

	for i, path := range paths {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				results[i] = fileResult{Path: path, Status: "error", Mode: string(govCfg.Mode), Error: ctx.Err().Error()}
			default:
				results[i] = validateFile(engine, path, govCfg)
			}
			return nil
		})
	}

	// Workers report through results, never through errors
	_ = eg.Wait()

	return results
}

// validateFile loads a single model file and runs governance over it.
// Load and structural failures are reported as error results; governance
// rejection is a rejected result, not an error.
func validateFile(engine *governance.Engine, path string, govCfg governance.Config) fileResult {
	res := fileResult{
		Path: path,
		Mode: string(govCfg.Mode),
	}

	doc, err := repository.LoadModelFile(path)
	if err != nil {
		res.Status = "error"
		res.Error = err.Error()
		return res
	}

	store, err := doc.BuildStore()
	if err != nil {
		res.Status = "error"
		res.Error = err.Error()
		return res
	}

	result, err := engine.Validate(store, govCfg)
	if err != nil {
		res.Status = "error"
		res.Error = err.Error()
		return res
	}

	res.Status = string(result.Status)
	res.RuleID = result.RuleID
	res.Findings = result.Findings()
	return res
}

// renderResults writes results in the requested output format.
func renderResults(w io.Writer, results []fileResult, format string) error {
	switch format {
	case "table":
		renderTable(w, results)
		return nil
	case "text":
		renderText(w, results)
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	default:
		return fmt.Errorf("unknown output format %q (expected table, text or json)", format)
	}
}

func renderTable(w io.Writer, results []fileResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Model", "Status", "Rule", "Findings"})

	for _, res := range results {
		detail := strings.Join(res.Findings, "\n")
		if res.Error != "" {
			detail = res.Error
		}
		t.AppendRow(table.Row{res.Path, res.Status, res.RuleID, detail})
	}

	t.Render()
}

func renderText(w io.Writer, results []fileResult) {
	for _, res := range results {
		fmt.Fprintf(w, "%s: %s\n", res.Path, res.Status)
		if res.Error != "" {
			fmt.Fprintf(w, "  error: %s\n", res.Error)
		}
		for _, finding := range res.Findings {
			fmt.Fprintf(w, "  - %s\n", finding)
		}
	}
}

// countFailed counts results that are not clean acceptances. Load errors
// count as failures for exit-code purposes.
func countFailed(results []fileResult) int {
	failed := 0
	for _, res := range results {
		if res.Status != string(governance.StatusAccepted) {
			failed++
		}
	}
	return failed
}

// watchModels re-validates models as their files change, until
// interrupted.
func watchModels(ctx context.Context, engine *governance.Engine, paths []string, govCfg governance.Config, format string) error {
	watcher, err := repository.NewWatcher(paths, 0, slog.Default())
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	signalCtx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := watcher.Start(signalCtx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Stop()

	fmt.Println("Watching for model changes (Ctrl+C to stop)...")

	for {
		select {
		case <-signalCtx.Done():
			return nil

		case event, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			if event.Operation == repository.WatchOpDelete {
				fmt.Printf("%s: deleted\n", event.Path)
				continue
			}

			results := validateModels(signalCtx, engine, []string{event.Path}, govCfg)
			if err := renderResults(os.Stdout, results, format); err != nil {
				return err
			}
		}
	}
}
