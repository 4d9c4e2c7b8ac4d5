package main

import (
	"github.com/jonathan/career-coach/internal/coach"
	"github.com/jonathan/career-coach/internal/config"
	"github.com/jonathan/career-coach/internal/observability"
	"github.com/jonathan/career-coach/internal/types"
	"github.com/spf13/cobra"
)

var careersCmd = &cobra.Command{
	Use:   "careers",
	Short: "Suggest career paths for a profile",
	Long:  "Suggest career paths from skills, interests and academic background. Uses the offline catalog unless --live is set.",
	RunE:  runCareers,
}

var (
	careersSkills    []string
	careersInterests []string
	careersAcademic  string
	careersJSON      bool
	careersLive      bool
)

func init() {
	careersCmd.Flags().StringSliceVar(&careersSkills, "skills", nil, "Skills (comma separated)")
	careersCmd.Flags().StringSliceVar(&careersInterests, "interests", nil, "Interests (comma separated)")
	careersCmd.Flags().StringVar(&careersAcademic, "academic", "", "Academic background")
	careersCmd.Flags().BoolVar(&careersJSON, "json", false, "Print JSON instead of a text summary")
	careersCmd.Flags().BoolVar(&careersLive, "live", false, "Ask the configured model before falling back to the offline catalog")

	rootCmd.AddCommand(careersCmd)
}

func runCareers(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := cliLogger(cfg.LogMode)
	if err != nil {
		return err
	}
	defer log.Sync()

	svc, closeClient, err := newCoachService(cmd.Context(), cfg, coach.ModeDegraded, !careersLive, log)
	if err != nil {
		return err
	}
	defer closeClient() //nolint:errcheck // read-only client

	recs, err := svc.RecommendCareers(cmd.Context(), types.ProfileSnapshot{
		AcademicInfo: careersAcademic,
		Skills:       careersSkills,
		Interests:    careersInterests,
	})
	if err != nil {
		return err
	}
	if careersJSON {
		return writeJSON(cmd.OutOrStdout(), recs)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintRecommendations(recs)
	return nil
}
