package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/career-coach/internal/coach"
	"github.com/jonathan/career-coach/internal/config"
	"github.com/jonathan/career-coach/internal/observability"
	"github.com/jonathan/career-coach/internal/rendering"
	"github.com/jonathan/career-coach/internal/types"
	"github.com/spf13/cobra"
)

var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Build a learning roadmap for a role",
	Long: `Build a learning roadmap for a target role. By default the offline catalog is used;
with --live the configured model is asked first and the catalog answers if it fails.
Writes a text summary, JSON with --json, or a PDF with --out file.pdf.`,
	RunE: runRoadmap,
}

var (
	roadmapRole   string
	roadmapLevel  string
	roadmapOut    string
	roadmapJSON   bool
	roadmapLive   bool
	roadmapSkills []string
)

func init() {
	roadmapCmd.Flags().StringVarP(&roadmapRole, "role", "r", "", "Target role (e.g. \"Data Analyst\")")
	roadmapCmd.Flags().StringVarP(&roadmapLevel, "level", "l", types.DefaultLevel, "Current level")
	roadmapCmd.Flags().StringVarP(&roadmapOut, "out", "o", "", "Write the roadmap to this file (.pdf renders a PDF, anything else JSON)")
	roadmapCmd.Flags().BoolVar(&roadmapJSON, "json", false, "Print JSON instead of a text summary")
	roadmapCmd.Flags().BoolVar(&roadmapLive, "live", false, "Ask the configured model before falling back to the offline catalog")
	roadmapCmd.Flags().StringSliceVar(&roadmapSkills, "skills", nil, "Current skills; also prints a skill gap")

	rootCmd.AddCommand(roadmapCmd)
}

func runRoadmap(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := cliLogger(cfg.LogMode)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx := cmd.Context()
	svc, closeClient, err := newCoachService(ctx, cfg, coach.ModeDegraded, !roadmapLive, log)
	if err != nil {
		return err
	}
	defer closeClient() //nolint:errcheck // read-only client

	role := strings.TrimSpace(roadmapRole)
	var (
		roadmap *types.Roadmap
		gap     *types.SkillGap
	)
	if len(roadmapSkills) > 0 {
		both, err := svc.SkillGapWithRoadmap(ctx, role, roadmapSkills, roadmapLevel)
		if err != nil {
			return err
		}
		roadmap, gap = &both.Roadmap, &both.SkillGap
	} else if roadmap, err = svc.GenerateRoadmap(ctx, role, roadmapLevel); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case roadmapOut != "":
		if err := writeRoadmapFile(roadmapOut, roadmap); err != nil {
			return err
		}
		fmt.Fprintf(out, "Roadmap written to %s\n", roadmapOut) //nolint:errcheck // stdout
		return nil
	case roadmapJSON:
		if gap != nil {
			return writeJSON(out, types.SkillGapRoadmap{SkillGap: *gap, Roadmap: *roadmap})
		}
		return writeJSON(out, roadmap)
	default:
		p := observability.NewPrinter(out)
		p.PrintSkillGap(gap)
		p.PrintRoadmap(roadmap)
		return nil
	}
}

func writeRoadmapFile(path string, roadmap *types.Roadmap) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return rendering.RoadmapPDF(f, roadmap, rendering.PDFOptions{})
	}
	return writeJSON(f, roadmap)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
