package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/randomtoy/klondike-go/internal/domain"
	"github.com/randomtoy/klondike-go/internal/ports"
)

// Controller owns one game and is the only thing that mutates it. Calls
// must not overlap; callers that receive events concurrently serialize
// them before calling in.
type Controller struct {
	state     *domain.GameState
	rng       domain.RNG
	prefs     ports.Preferences
	renderer  ports.Renderer
	notifier  ports.WinNotifier
	logger    *slog.Logger
	completed bool
}

// NewController wires a controller. renderer and notifier may be nil.
// No game exists until NewGame or Load is called.
func NewController(rng domain.RNG, prefs ports.Preferences, renderer ports.Renderer, notifier ports.WinNotifier, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		rng:      rng,
		prefs:    prefs,
		renderer: renderer,
		notifier: notifier,
		logger:   logger,
	}
}

// NewGame replaces the current game with a fresh deal using the stored
// draw count.
func (c *Controller) NewGame(ctx context.Context) {
	c.Load(domain.NewGame(c.rng, c.storedDrawCount(ctx)))
	c.logger.DebugContext(ctx, "new game", "draw_count", int(c.state.DrawCount))
}

func (c *Controller) storedDrawCount(ctx context.Context) domain.DrawCount {
	if c.prefs == nil {
		return domain.DrawOne
	}
	n, err := c.prefs.DrawCount(ctx)
	switch {
	case errors.Is(err, ports.ErrNoPreference):
		return domain.DrawOne
	case err != nil:
		c.logger.WarnContext(ctx, "failed to read draw count, using 1", "error", err)
		return domain.DrawOne
	case !n.Valid():
		c.logger.WarnContext(ctx, "stored draw count is invalid, using 1", "draw_count", int(n))
		return domain.DrawOne
	}
	return n
}

// Load replaces the whole game state.
func (c *Controller) Load(s *domain.GameState) {
	if !s.DrawCount.Valid() {
		s.DrawCount = domain.DrawOne
	}
	c.state = s
	c.completed = s.Won()
	c.render()
}

// State returns the current game for reading.
func (c *Controller) State() *domain.GameState { return c.state }

// Completed reports whether the current game has been won.
func (c *Controller) Completed() bool { return c.completed }

func (c *Controller) CanUndo() bool { return len(c.state.History) > 0 }

// Draw turns cards from stock to waste, or recycles the waste.
func (c *Controller) Draw(ctx context.Context) domain.DrawResult {
	res := c.state.Draw()
	if res != domain.DrawNone {
		c.afterChange(ctx)
	}
	return res
}

// Move carries the cards from card to the top of its pile onto to. An
// illegal move leaves the game unchanged and returns an error wrapping
// domain.ErrIllegalMove.
func (c *Controller) Move(ctx context.Context, card domain.CardRef, to domain.PileRef) error {
	m, err := c.state.Validate(card, to)
	if err != nil {
		c.render()
		return err
	}
	c.apply(ctx, m)
	return nil
}

// AutoFoundation sends the top card at ref to the first foundation that
// takes it. It reports whether a card moved.
func (c *Controller) AutoFoundation(ctx context.Context, ref domain.CardRef) bool {
	m, ok := c.state.AutoTarget(ref)
	if !ok {
		return false
	}
	c.apply(ctx, m)
	return true
}

func (c *Controller) apply(ctx context.Context, m domain.ValidMove) {
	c.state.Apply(m)
	c.logger.DebugContext(ctx, "move", "from", m.From().String(), "to", m.To().String(), "cards", m.Count())
	c.afterChange(ctx)
	c.checkWin(ctx)
}

// Undo reverts the last draw or move.
func (c *Controller) Undo(ctx context.Context) bool {
	if !c.state.Undo() {
		return false
	}
	c.afterChange(ctx)
	return true
}

// Tick advances the game clock by one second. The clock stops once the
// game is won.
func (c *Controller) Tick() {
	if c.state == nil || c.completed {
		return
	}
	c.state.Tick()
}

// SetDrawCount stores n and applies it to the current game.
func (c *Controller) SetDrawCount(ctx context.Context, n domain.DrawCount) error {
	if !n.Valid() {
		return domain.ErrInvalidDrawCount
	}
	if c.prefs != nil {
		if err := c.prefs.SetDrawCount(ctx, n); err != nil {
			return err
		}
	}
	if c.state != nil {
		c.state.DrawCount = n
		c.render()
	}
	return nil
}

func (c *Controller) afterChange(ctx context.Context) {
	c.render()
	if err := c.state.Verify(); err != nil {
		c.logger.ErrorContext(ctx, "table invariant broken", "error", err)
	}
}

func (c *Controller) checkWin(ctx context.Context) {
	if c.completed || !c.state.Won() {
		return
	}
	c.completed = true
	res := ports.Result{ElapsedSeconds: c.state.Elapsed, Moves: c.state.Moves}
	c.logger.InfoContext(ctx, "game completed", "elapsed_seconds", res.ElapsedSeconds, "moves", res.Moves)
	if c.notifier == nil {
		return
	}
	// Completion is reported once, so delivery must outlive a cancelled caller.
	if err := c.notifier.OnWin(context.WithoutCancel(ctx), res); err != nil {
		c.logger.ErrorContext(ctx, "win notification failed", "error", err)
	}
}

func (c *Controller) render() {
	if c.renderer != nil && c.state != nil {
		c.renderer.Render(c.state)
	}
}
