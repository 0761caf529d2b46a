package domain

import (
	"fmt"
	"strconv"
)

// DrawCount is how many cards a draw turns from stock to waste.
type DrawCount int

const (
	DrawOne   DrawCount = 1
	DrawThree DrawCount = 3
)

func (d DrawCount) Valid() bool { return d == DrawOne || d == DrawThree }

// ParseDrawCount accepts "1" or "3".
func ParseDrawCount(s string) (DrawCount, error) {
	n, err := strconv.Atoi(s)
	if err != nil || !DrawCount(n).Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDrawCount, s)
	}
	return DrawCount(n), nil
}

// Snapshot is the part of the state restored by undo.
type Snapshot struct {
	Piles Piles
	Moves int
}

// GameState is the whole mutable state of one game.
type GameState struct {
	Piles
	DrawCount DrawCount
	Moves     int
	Elapsed   int // seconds
	History   []Snapshot
}

// NewGame builds, shuffles and deals a fresh deck.
func NewGame(rng RNG, drawCount DrawCount) *GameState {
	deck := BuildDeck()
	Shuffle(deck, rng)
	return &GameState{
		Piles:     Deal(deck),
		DrawCount: drawCount,
	}
}

func (s *GameState) snapshot() {
	s.History = append(s.History, Snapshot{Piles: s.Piles.Clone(), Moves: s.Moves})
}

// Apply executes a validated move: the run leaves its source, a newly
// exposed face-down tableau card is turned up, and the run lands on the
// target in order. The state must not have changed since m was validated.
func (s *GameState) Apply(m ValidMove) {
	s.snapshot()

	src := s.Pile(m.from)
	group := make(Pile, m.count)
	copy(group, (*src)[m.start:])
	*src = (*src)[:m.start]

	if m.from.Kind == KindTableau && len(*src) > 0 {
		if top := &(*src)[len(*src)-1]; !top.FaceUp {
			top.FaceUp = true
		}
	}

	dst := s.Pile(m.to)
	*dst = append(*dst, group...)
	s.Moves++
}

// DrawResult tells what a draw did.
type DrawResult int

const (
	DrawNone DrawResult = iota
	DrawDealt
	DrawRecycled
)

func (r DrawResult) String() string {
	switch r {
	case DrawDealt:
		return "dealt"
	case DrawRecycled:
		return "recycled"
	default:
		return "none"
	}
}

// Draw turns up to DrawCount cards from stock onto the waste. With an
// empty stock it turns the waste over to form a new stock instead, which
// does not count as a move.
func (s *GameState) Draw() DrawResult {
	switch {
	case len(s.Stock) > 0:
		s.snapshot()
		n := min(int(s.DrawCount), len(s.Stock))
		if n < 1 {
			n = 1
		}
		for range n {
			c := s.Stock[len(s.Stock)-1]
			s.Stock = s.Stock[:len(s.Stock)-1]
			c.FaceUp = true
			s.Waste = append(s.Waste, c)
		}
		s.Moves++
		return DrawDealt
	case len(s.Waste) > 0:
		s.snapshot()
		stock := make(Pile, 0, len(s.Waste))
		for i := len(s.Waste) - 1; i >= 0; i-- {
			c := s.Waste[i]
			c.FaceUp = false
			stock = append(stock, c)
		}
		s.Stock = stock
		s.Waste = Pile{}
		return DrawRecycled
	default:
		return DrawNone
	}
}

// Undo restores the most recent snapshot. Elapsed time is kept.
func (s *GameState) Undo() bool {
	if len(s.History) == 0 {
		return false
	}
	last := s.History[len(s.History)-1]
	s.History = s.History[:len(s.History)-1]
	s.Piles = last.Piles
	s.Moves = last.Moves
	return true
}

// Won reports whether every card is on a foundation.
func (s *GameState) Won() bool {
	return s.FoundationCount() == DeckSize
}

// Tick advances the elapsed-time counter by one second.
func (s *GameState) Tick() {
	s.Elapsed++
}
