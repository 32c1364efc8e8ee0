package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/datahutch/scrapecheck/pkg/config"
	"github.com/datahutch/scrapecheck/pkg/logger"
	"github.com/datahutch/scrapecheck/pkg/matchers"
	"github.com/datahutch/scrapecheck/pkg/scraperapi"
)

var (
	runFile    string
	runBaseURL string
	runAPIKey  string
	runDebug   bool
	runJSONLog bool
)

func init() {
	runCmd.Flags().StringVarP(&runFile, "file", "f", "", "path to the YAML check suite (required)")
	runCmd.Flags().StringVar(&runBaseURL, "base-url", "", "override the platform API base URL")
	runCmd.Flags().StringVar(&runAPIKey, "api-key", "", "override the platform API key")
	runCmd.Flags().BoolVar(&runDebug, "debug", false, "log outgoing API requests")
	runCmd.Flags().BoolVar(&runJSONLog, "json", false, "log in JSON instead of text")
	_ = runCmd.MarkFlagRequired("file")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Evaluate a check suite against a live scraper",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		logOpts := []logger.Option{logger.WithOutput(os.Stderr), logger.WithTextFormatter()}
		if runJSONLog {
			logOpts = append(logOpts, logger.WithJSONFormatter())
		}
		if runDebug {
			logOpts = append(logOpts, logger.WithLevel(slog.LevelDebug))
		}
		log := logger.New(logOpts...)

		b, err := os.ReadFile(runFile)
		if err != nil {
			return fmt.Errorf("failed to read suite file: %w", err)
		}
		suite, err := parseSuite(b)
		if err != nil {
			return err
		}
		asserts, err := buildAssertions(suite)
		if err != nil {
			return err
		}

		var cfg scraperapi.Config
		if err := config.Load(&cfg); err != nil {
			return err
		}
		if runBaseURL != "" {
			cfg.BaseURL = runBaseURL
		}
		if runAPIKey != "" {
			cfg.APIKey = runAPIKey
		}
		client, err := scraperapi.New(cfg, scraperapi.WithLogger(log))
		if err != nil {
			return err
		}

		log = log.With(logger.Scraper(suite.Scraper))

		var info *scraperapi.ScraperInfo
		datasets := make(map[string]*scraperapi.DataSet)

		failed := 0
		for _, a := range asserts {
			var res matchers.Result

			switch {
			case a.scraper != nil:
				if info == nil {
					info, err = client.GetInfo(ctx, suite.Scraper, nil)
					if err != nil {
						return err
					}
				}
				if a.negated {
					res, err = a.scraper.NotMatches(info)
				} else {
					res, err = a.scraper.Matches(info)
				}
			default:
				data, ok := datasets[a.query]
				if !ok {
					data, err = client.SQLiteQuery(ctx, suite.Scraper, a.query, nil)
					if err != nil {
						return err
					}
					datasets[a.query] = data
				}
				if a.negated {
					res, err = a.dataset.NotMatches(data)
				} else {
					res, err = a.dataset.Matches(data)
				}
			}
			if err != nil {
				return fmt.Errorf("check %q: %w", a.desc, err)
			}

			if res.Passed {
				log.Info("check passed", logger.Matcher(a.desc), slog.Bool("negated", a.negated))
				continue
			}
			failed++
			log.Error("check failed", logger.Matcher(a.desc), slog.String("explanation", res.Explanation))
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d checks failed", failed, len(asserts))
		}
		log.Info("all checks passed", slog.Int("checks", len(asserts)))
		return nil
	},
}
