package report_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/planfit/planfit/internal/report"
	"github.com/planfit/planfit/internal/training"
)

func TestWriteCSV(t *testing.T) {
	episodes := []training.EpisodeStats{
		{Episode: 1, AvgReward: -1, AvgExercises: 6},
		{Episode: 2, AvgReward: 2.5, AvgExercises: 3},
	}

	var sb strings.Builder
	if err := report.WriteCSV(&sb, episodes); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	want := "episode,avg_reward,avg_exercises\n1,-1,6\n2,2.5,3\n"
	if diff := cmp.Diff(want, sb.String()); diff != "" {
		t.Errorf("WriteCSV() mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteCSVEmptyCurveHasOnlyHeader(t *testing.T) {
	var sb strings.Builder
	if err := report.WriteCSV(&sb, nil); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	if got, want := sb.String(), "episode,avg_reward,avg_exercises\n"; got != want {
		t.Errorf("WriteCSV() = %q, want %q", got, want)
	}
}

func TestRenderLearningCurve(t *testing.T) {
	episodes := []training.EpisodeStats{
		{Episode: 1, AvgReward: -1, AvgExercises: 6},
		{Episode: 2, AvgReward: 1, AvgExercises: 4},
		{Episode: 3, AvgReward: 3, AvgExercises: 2},
	}
	path := filepath.Join(t.TempDir(), "reward.png")

	err := report.RenderLearningCurve(path, "average reward", episodes,
		func(s training.EpisodeStats) float64 { return s.AvgReward })
	if err != nil {
		t.Fatalf("RenderLearningCurve() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Size() == 0 {
		t.Error("rendered image is empty")
	}
}

func TestRenderLearningCurveRejectsEmptyInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")
	err := report.RenderLearningCurve(path, "average reward", nil,
		func(s training.EpisodeStats) float64 { return s.AvgReward })
	if err == nil {
		t.Error("RenderLearningCurve() should fail with no episodes")
	}
}

func TestRenderLearningCurveFlatSeries(t *testing.T) {
	episodes := []training.EpisodeStats{
		{Episode: 1, AvgReward: 2, AvgExercises: 3},
		{Episode: 2, AvgReward: 2, AvgExercises: 3},
	}
	path := filepath.Join(t.TempDir(), "flat.png")
	err := report.RenderLearningCurve(path, "average reward", episodes,
		func(s training.EpisodeStats) float64 { return s.AvgReward })
	if err != nil {
		t.Fatalf("RenderLearningCurve() error = %v", err)
	}
}
