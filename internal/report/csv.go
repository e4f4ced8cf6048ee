// Package report exports training results as CSV files and learning-curve
// images.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/planfit/planfit/internal/training"
)

// WriteCSV writes the per-episode learning curve as CSV with the columns
// episode, avg_reward, and avg_exercises.
func WriteCSV(w io.Writer, episodes []training.EpisodeStats) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"episode", "avg_reward", "avg_exercises"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range episodes {
		record := []string{
			strconv.Itoa(e.Episode),
			strconv.FormatFloat(e.AvgReward, 'f', -1, 64),
			strconv.FormatFloat(e.AvgExercises, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record for episode %d: %w", e.Episode, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
