package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/naikan-labs/docchat-cli/internal/core/domain"
)

var (
	evalCasesFile string
	evalTopKs     []int
	evalListLimit int
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate retrieval quality",
	Long: `Run retrieval-quality evaluations and inspect past runs.

An evaluation sweeps a set of query cases at one or more top-k retrieval
depths and reports how often the expected document ranked first. Runs are
persisted locally so sweeps can be compared over time.`,
}

var evalRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the evaluation cases",
	Long: `Run all cases from a TOML file at each requested top-k depth.

Case file format:

  [[cases]]
  name = "vacation policy"
  query = "how many vacation days do I get"
  mode = "document-search"
  want_source = "hr/policy.pdf"`,
	RunE: runEvalRun,
}

var evalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List past evaluation runs",
	RunE:  runEvalList,
}

func init() {
	evalRunCmd.Flags().StringVarP(&evalCasesFile, "cases", "c", "", "TOML file with evaluation cases (required)")
	evalRunCmd.Flags().IntSliceVarP(&evalTopKs, "top-k", "k", []int{5}, "retrieval depths to sweep")
	_ = evalRunCmd.MarkFlagRequired("cases")

	evalListCmd.Flags().IntVarP(&evalListLimit, "limit", "n", 10, "maximum number of runs to show")

	evalCmd.AddCommand(evalRunCmd)
	evalCmd.AddCommand(evalListCmd)
	rootCmd.AddCommand(evalCmd)
}

// caseFile is the on-disk format for evaluation cases.
type caseFile struct {
	Cases []caseEntry `toml:"cases"`
}

type caseEntry struct {
	Name       string `toml:"name"`
	Query      string `toml:"query"`
	Mode       string `toml:"mode"`
	WantSource string `toml:"want_source"`
}

func runEvalRun(cmd *cobra.Command, _ []string) error {
	if evalRunner == nil {
		return errors.New("eval runner not configured")
	}

	cases, err := loadEvalCases(evalCasesFile)
	if err != nil {
		return err
	}
	if len(cases) == 0 {
		return fmt.Errorf("no cases in %s", evalCasesFile)
	}

	runs, err := evalRunner.Run(context.Background(), cases, evalTopKs)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	for _, run := range runs {
		printEvalRun(cmd, run)
		cmd.Println()
	}
	return nil
}

func runEvalList(cmd *cobra.Command, _ []string) error {
	if evalStore == nil {
		return errors.New("eval store not configured")
	}

	runs, err := evalStore.ListRuns(context.Background(), evalListLimit)
	if err != nil {
		return fmt.Errorf("listing runs failed: %w", err)
	}
	if len(runs) == 0 {
		cmd.Println("No evaluation runs recorded.")
		return nil
	}

	for _, run := range runs {
		cmd.Printf("%s  %s  top_k=%-3d  hit rate %.0f%% (%d/%d)\n",
			run.CreatedAt.Local().Format("2006-01-02 15:04"),
			shortID(run.ID),
			run.TopK,
			run.HitRate()*100,
			run.Hits,
			run.Total,
		)
	}
	return nil
}

// loadEvalCases parses the TOML case file into domain cases.
// A missing mode defaults to document-search, matching the mode the
// ranking metric was designed around.
func loadEvalCases(path string) ([]domain.EvalCase, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cases: %w", err)
	}

	var parsed caseFile
	if err := toml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parsing cases: %w", err)
	}

	cases := make([]domain.EvalCase, 0, len(parsed.Cases))
	for i, c := range parsed.Cases {
		if c.Query == "" {
			return nil, fmt.Errorf("case %d: query is required", i+1)
		}
		if c.WantSource == "" {
			return nil, fmt.Errorf("case %d: want_source is required", i+1)
		}

		mode := domain.ModeDocumentSearch
		if c.Mode != "" {
			mode, err = domain.ParseAnswerMode(c.Mode)
			if err != nil {
				return nil, fmt.Errorf("case %d: %w", i+1, err)
			}
		}

		name := c.Name
		if name == "" {
			name = fmt.Sprintf("case %d", i+1)
		}

		cases = append(cases, domain.EvalCase{
			Name:       name,
			Query:      c.Query,
			Mode:       mode,
			WantSource: c.WantSource,
		})
	}
	return cases, nil
}

// printEvalRun renders one run's summary and per-case outcomes.
func printEvalRun(cmd *cobra.Command, run domain.EvalRun) {
	cmd.Printf("top_k=%d  hit rate %.0f%% (%d/%d)\n", run.TopK, run.HitRate()*100, run.Hits, run.Total)
	for _, c := range run.Cases {
		mark := "miss"
		if c.Hit {
			mark = "hit "
		}
		rank := "-"
		if c.Rank > 0 {
			rank = fmt.Sprintf("%d", c.Rank)
		}
		cmd.Printf("  [%s] %-24s want %s  rank %s\n", mark, c.Name, c.WantSource, rank)
	}
}

// shortID truncates a run ID for compact listings.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
