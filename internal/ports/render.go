package ports

import (
	"context"

	"github.com/randomtoy/klondike-go/internal/domain"
)

// Renderer redraws the table. It is called after every change, including
// undo and a new deal, and must not modify the state it is given.
type Renderer interface {
	Render(s *domain.GameState)
}

// Result summarizes a completed game.
type Result struct {
	ElapsedSeconds int
	Moves          int
}

// WinNotifier is told once per game when every card reaches the foundations.
type WinNotifier interface {
	OnWin(ctx context.Context, r Result) error
}

// Clock calls tick once per period until stop is called.
type Clock interface {
	Start(tick func()) (stop func())
}
