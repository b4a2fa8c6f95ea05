package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/internship-matcher/internal/catalog"
	"github.com/jonathan/internship-matcher/internal/config"
	"github.com/jonathan/internship-matcher/internal/db"
	"github.com/jonathan/internship-matcher/internal/ingestion"
	"github.com/jonathan/internship-matcher/internal/logging"
	"github.com/jonathan/internship-matcher/internal/modelstore"
	"github.com/jonathan/internship-matcher/internal/pipeline"
	"github.com/jonathan/internship-matcher/internal/ranking"
	"github.com/jonathan/internship-matcher/internal/skills"
	"github.com/jonathan/internship-matcher/internal/types"
)

var (
	runResume   string
	runUserID   int64
	runCatalog  string
	runModelDir string
	runTopN     int
	runClusters int
	runConfig   string
	runVerbose  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Match one resume against the internship catalog",
	Long:  `Run the matching pipeline once: extract resume text and skills, score every posting and print the top-ranked matches. Match rows are persisted when DATABASE_URL is configured.`,
	RunE:  runMatch,
}

func init() {
	runCmd.Flags().StringVar(&runResume, "resume", "", "Path to the resume file (.pdf or plain text)")
	runCmd.Flags().Int64Var(&runUserID, "user", 0, "User ID the match rows belong to")
	runCmd.Flags().StringVar(&runCatalog, "catalog", "", "Path to the internship catalog CSV")
	runCmd.Flags().StringVar(&runModelDir, "model-dir", "", "Directory holding persisted model artifacts")
	runCmd.Flags().IntVar(&runTopN, "top", 0, "Number of ranked rows to print")
	runCmd.Flags().IntVar(&runClusters, "clusters", 0, "Target cluster count K")
	runCmd.Flags().StringVar(&runConfig, "config", "", "Path to a JSON config file")
	runCmd.Flags().BoolVar(&runVerbose, "verbose", false, "Enable debug logging")
	_ = runCmd.MarkFlagRequired("resume")
	_ = runCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(runCmd)
}

// mergeConfig layers CLI flags over the optional JSON config file.
func mergeConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if runConfig != "" {
		loaded, err := config.LoadConfig(runConfig)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if runCatalog != "" {
		cfg.Catalog = runCatalog
	}
	if runModelDir != "" {
		cfg.ModelDir = runModelDir
	}
	if runTopN > 0 {
		cfg.TopN = runTopN
	}
	if runClusters > 0 {
		cfg.Clusters = runClusters
	}
	if runVerbose {
		cfg.Verbose = true
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

func runMatch(_ *cobra.Command, _ []string) error {
	cfg, err := mergeConfig()
	if err != nil {
		return err
	}
	log := logging.New(cfg.Verbose, true)

	text, err := ingestion.ExtractFile(runResume)
	if err != nil {
		return err
	}
	resume := types.NewResumeDocument(text, skills.Extract(text))
	log.Debug().Int("skills", len(resume.Skills)).Msg("resume parsed")

	ctx := context.Background()

	var saver ranking.MatchSaver
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()
		if err := database.EnsureSchema(ctx); err != nil {
			return err
		}
		saver = database
	} else {
		log.Warn().Msg("DATABASE_URL not set, match rows will not be persisted")
	}

	p := pipeline.New(pipeline.Options{
		Postings: &catalog.FileSource{Path: cfg.Catalog, Log: log},
		Models:   modelstore.New(cfg.ModelDir, log),
		Saver:    saver,
		TopN:     cfg.TopN,
		Clusters: cfg.Clusters,
		Log:      log,
	})

	result, err := p.Run(ctx, resume, runUserID)
	if err != nil {
		return err
	}

	printMatches(result)
	return nil
}

// printMatches renders the ranked table for terminal use.
func printMatches(result *pipeline.Result) {
	if len(result.Matches) == 0 {
		fmt.Println("No postings to rank.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tCOMPANY\tTITLE\tSCORE\tCLUSTER\tSKILL MATCH\tLINK")
	for i, m := range result.Matches {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.4f\t%d\t%.1f%%\t%s\n",
			i+1, m.Company, m.Title, m.FinalScore, m.Cluster, m.SkillMatchPct, m.Link)
	}
	_ = w.Flush()

	if !result.ClassifierUsed {
		fmt.Println("note: classifier artifact unavailable; scores use similarity and skill match only")
	}
	if !result.ClustererPersisted {
		fmt.Println("note: clusters were fitted on this catalog only; ids are not comparable across runs")
	}
	if n := len(result.PersistFailures); n > 0 {
		fmt.Printf("warning: %d match row(s) could not be persisted\n", n)
	}
}
