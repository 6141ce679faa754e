package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/okian/podium/internal/testresults"
	"github.com/okian/podium/pkg/logger"
)

// Generated file names.
const (
	resultsFileName = "athlete_events.csv"
	regionsFileName = "noc_regions.csv"
)

func newGenerateCmd(c *cli) *cobra.Command {
	var (
		outDir string
		gen    testresults.GenerateConfig
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a deterministic synthetic results and regions dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			results := testresults.Generate(gen)
			resultsPath := filepath.Join(outDir, resultsFileName)
			if err := writeFile(resultsPath, func(f *os.File) error {
				return testresults.WriteResultsCSV(f, results)
			}); err != nil {
				return err
			}
			regionsPath := filepath.Join(outDir, regionsFileName)
			if err := writeFile(regionsPath, func(f *os.File) error {
				return testresults.WriteRegionsCSV(f, testresults.Regions())
			}); err != nil {
				return err
			}

			c.log.Info(cmd.Context(), "dataset generated",
				logger.String("results", resultsPath),
				logger.String("regions", regionsPath),
				logger.Int("rows", len(results)),
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out-dir", "data", "output directory")
	cmd.Flags().Uint64Var(&gen.Seed, "seed", 1, "random seed")
	cmd.Flags().IntVar(&gen.Editions, "editions", 3, "number of Summer editions")
	cmd.Flags().IntVar(&gen.Athletes, "athletes", 500, "number of athletes")
	return cmd
}

func writeFile(path string, write func(*os.File) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
