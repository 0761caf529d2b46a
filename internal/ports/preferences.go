package ports

import (
	"context"
	"errors"

	"github.com/randomtoy/klondike-go/internal/domain"
)

// ErrNoPreference is returned when no draw count has been stored yet.
var ErrNoPreference = errors.New("no stored preference")

// Preferences persists the player's draw-count setting across sessions.
type Preferences interface {
	DrawCount(ctx context.Context) (domain.DrawCount, error)
	SetDrawCount(ctx context.Context, n domain.DrawCount) error
}
