package report

import (
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"github.com/planfit/planfit/internal/training"
	"golang.org/x/image/font/basicfont"
)

const (
	curveWidth  = 800
	curveHeight = 480
	curveMargin = 60.0
)

// RenderLearningCurve draws the given metric over episodes and saves it as a
// PNG at path. extract picks the plotted value from each episode's stats.
func RenderLearningCurve(path, title string, episodes []training.EpisodeStats, extract func(training.EpisodeStats) float64) error {
	if len(episodes) == 0 {
		return fmt.Errorf("render learning curve: no episodes")
	}

	minValue, maxValue := math.Inf(1), math.Inf(-1)
	values := make([]float64, len(episodes))
	for i, e := range episodes {
		v := extract(e)
		values[i] = v
		minValue = math.Min(minValue, v)
		maxValue = math.Max(maxValue, v)
	}
	// A flat curve still needs a non-degenerate axis.
	if maxValue == minValue {
		maxValue = minValue + 1
	}

	dc := gg.NewContext(curveWidth, curveHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	plotWidth := float64(curveWidth) - 2*curveMargin
	plotHeight := float64(curveHeight) - 2*curveMargin
	x := func(i int) float64 {
		if len(episodes) == 1 {
			return curveMargin
		}
		return curveMargin + plotWidth*float64(i)/float64(len(episodes)-1)
	}
	y := func(v float64) float64 {
		return float64(curveHeight) - curveMargin - plotHeight*(v-minValue)/(maxValue-minValue)
	}

	// Axes.
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.DrawLine(curveMargin, curveMargin, curveMargin, float64(curveHeight)-curveMargin)
	dc.DrawLine(curveMargin, float64(curveHeight)-curveMargin,
		float64(curveWidth)-curveMargin, float64(curveHeight)-curveMargin)
	dc.Stroke()

	dc.DrawStringAnchored(title, float64(curveWidth)/2, curveMargin/2, 0.5, 0.5)
	dc.DrawStringAnchored("episode", float64(curveWidth)/2, float64(curveHeight)-curveMargin/2, 0.5, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%.2f", maxValue), curveMargin/2, y(maxValue), 0.5, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%.2f", minValue), curveMargin/2, y(minValue), 0.5, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%d", episodes[0].Episode), x(0), float64(curveHeight)-curveMargin+15, 0.5, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%d", episodes[len(episodes)-1].Episode),
		x(len(episodes)-1), float64(curveHeight)-curveMargin+15, 0.5, 0.5)

	// The curve itself.
	dc.SetRGB(0.1, 0.3, 0.8)
	dc.SetLineWidth(2)
	for i := 1; i < len(values); i++ {
		dc.DrawLine(x(i-1), y(values[i-1]), x(i), y(values[i]))
	}
	dc.Stroke()

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("save learning curve %s: %w", path, err)
	}
	return nil
}
