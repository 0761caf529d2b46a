package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/randomtoy/klondike-go/internal/domain"
)

const faceDown = "##"

// Renderer writes an ASCII picture of the table after every change.
type Renderer struct {
	w io.Writer
}

func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

func (r *Renderer) Render(s *domain.GameState) {
	_, _ = io.WriteString(r.w, Format(s))
}

// Clock formats seconds as m:ss.
func Clock(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// Format draws the table. Face-down cards show as "##"; the waste and the
// foundations show only their top card.
func Format(s *domain.GameState) string {
	var b strings.Builder

	waste := "--"
	if top, ok := s.Waste.Top(); ok {
		waste = top.String()
	}
	fmt.Fprintf(&b, "stock [%2d]  waste %-3s (%d)   moves %d   time %s   draw %d\n",
		len(s.Stock), waste, len(s.Waste), s.Moves, Clock(s.Elapsed), int(s.DrawCount))

	for i, f := range s.Foundations {
		top := "--"
		if c, ok := f.Top(); ok {
			top = c.String()
		}
		fmt.Fprintf(&b, "f%d %-4s", i, top)
	}
	b.WriteString("\n\n")

	height := 0
	for i := range s.Tableau {
		fmt.Fprintf(&b, " t%d  ", i)
		height = max(height, len(s.Tableau[i]))
	}
	b.WriteString("\n")

	for row := range height {
		for col := range s.Tableau {
			cell := ""
			if row < len(s.Tableau[col]) {
				c := s.Tableau[col][row]
				cell = faceDown
				if c.FaceUp {
					cell = c.String()
				}
			}
			fmt.Fprintf(&b, " %-4s", cell)
		}
		b.WriteString("\n")
	}

	if s.Won() {
		fmt.Fprintf(&b, "\nsolved in %s with %d moves\n", Clock(s.Elapsed), s.Moves)
	}
	return b.String()
}
