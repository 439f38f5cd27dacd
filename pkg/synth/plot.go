package synth

import(
	"fmt"

	"github.com/fogleman/gg"
)

// PlotLUT draws every row of the LUT as a curve (value against quantile),
// one panel per channel. Darker curves are coarser levels.
func PlotLUT(l LUT, title, filename string) error {
	const panelW, panelH, margin = 400.0, 300.0, 30.0
	dc := gg.NewContext(int(3*panelW), int(panelH + 2*margin))
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	channelColors := [3][3]float64{{0.8, 0, 0}, {0, 0.6, 0}, {0, 0, 0.8}}

	for c:=0; c<3; c++ {
		x0 := float64(c)*panelW + margin
		y0 := margin
		w  := panelW - 2*margin
		h  := panelH - margin

		dc.SetRGB(0.6, 0.6, 0.6)
		dc.DrawRectangle(x0, y0, w, h)
		dc.Stroke()

		for level:=0; level<l.Levels(); level++ {
			fade := 1.0 - 0.8 * float64(level) / float64(l.Levels())
			col := channelColors[c]
			dc.SetRGBA(col[0], col[1], col[2], fade)
			dc.SetLineWidth(1.5)

			row := l.Row(c, level)
			for i, v := range row {
				px := x0 + w * (float64(i) + 0.5) / float64(len(row))
				py := y0 + h * (1.0 - v)
				if i == 0 {
					dc.MoveTo(px, py)
				} else {
					dc.LineTo(px, py)
				}
			}
			dc.Stroke()
		}

		dc.SetRGB(0, 0, 0)
		dc.DrawString(fmt.Sprintf("ch%d (%d levels)", c, l.Levels()), x0, y0 + h + 20)
	}

	dc.SetRGB(0, 0, 0)
	dc.DrawString(title, margin, 20)

	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("plot '%s': %v", filename, err)
	}
	return nil
}
