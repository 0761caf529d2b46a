package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomtoy/klondike-go/internal/domain"
)

func TestParseDrawCount(t *testing.T) {
	n, err := domain.ParseDrawCount("3")
	require.NoError(t, err)
	assert.Equal(t, domain.DrawThree, n)

	for _, bad := range []string{"", "2", "0", "one"} {
		_, err := domain.ParseDrawCount(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidDrawCount, "input %q", bad)
	}
}

func TestDraw_VisitsEveryStockCardOnce(t *testing.T) {
	s := domain.NewGame(domain.NewSeededRNG(1), domain.DrawOne)
	stock := append(domain.Pile(nil), s.Stock...)
	require.Len(t, stock, 24)

	for i := range 24 {
		require.Equal(t, domain.DrawDealt, s.Draw())
		top, ok := s.Waste.Top()
		require.True(t, ok)
		assert.True(t, top.FaceUp)
		assert.True(t, top.SameCard(stock[len(stock)-1-i]), "draw %d", i)
	}
	assert.Empty(t, s.Stock)
	assert.Equal(t, 24, s.Moves)

	require.Equal(t, domain.DrawRecycled, s.Draw())
	assert.Equal(t, 24, s.Moves, "recycling is not a move")
	assert.Empty(t, s.Waste)
	assert.Equal(t, stock, s.Stock, "recycled stock is in original order and face-down")
	assert.NoError(t, s.Verify())
}

func TestDraw_Three(t *testing.T) {
	s := emptyTable()
	s.DrawCount = domain.DrawThree
	s.Stock = domain.Pile{down(domain.Ace, domain.Clubs), down(domain.Two, domain.Clubs), down(domain.Three, domain.Clubs), down(domain.Four, domain.Clubs)}

	require.Equal(t, domain.DrawDealt, s.Draw())
	assert.Equal(t, domain.Pile{up(domain.Four, domain.Clubs), up(domain.Three, domain.Clubs), up(domain.Two, domain.Clubs)}, s.Waste)
	assert.Equal(t, domain.Pile{down(domain.Ace, domain.Clubs)}, s.Stock)

	require.Equal(t, domain.DrawDealt, s.Draw(), "short stock draws what is left")
	assert.Len(t, s.Waste, 4)
	assert.Empty(t, s.Stock)
	assert.Equal(t, 2, s.Moves)
}

func TestDraw_BothEmptyIsNoop(t *testing.T) {
	s := emptyTable()
	assert.Equal(t, domain.DrawNone, s.Draw())
	assert.Empty(t, s.History)
	assert.Zero(t, s.Moves)
}

func TestApply_FlipsExposedCard(t *testing.T) {
	s := emptyTable()
	s.Tableau[0] = domain.Pile{down(domain.Nine, domain.Clubs), up(domain.Seven, domain.Hearts)}
	s.Tableau[1] = domain.Pile{up(domain.Eight, domain.Spades)}

	m, err := s.Validate(domain.CardRef{Pile: domain.TableauPile(0), Index: 1}, domain.TableauPile(1))
	require.NoError(t, err)
	s.Apply(m)

	assert.Equal(t, domain.Pile{up(domain.Nine, domain.Clubs)}, s.Tableau[0])
	assert.Equal(t, domain.Pile{up(domain.Eight, domain.Spades), up(domain.Seven, domain.Hearts)}, s.Tableau[1])
	assert.Equal(t, 1, s.Moves)

	require.True(t, s.Undo())
	assert.Equal(t, domain.Pile{down(domain.Nine, domain.Clubs), up(domain.Seven, domain.Hearts)}, s.Tableau[0], "undo turns the card back down")
}

func TestApply_MovesWholeRun(t *testing.T) {
	s := emptyTable()
	s.Tableau[0] = domain.Pile{up(domain.Ten, domain.Clubs), up(domain.Nine, domain.Hearts), up(domain.Eight, domain.Spades)}
	s.Tableau[1] = domain.Pile{up(domain.Jack, domain.Diamonds)}

	m, err := s.Validate(domain.CardRef{Pile: domain.TableauPile(0), Index: 0}, domain.TableauPile(1))
	require.NoError(t, err)
	s.Apply(m)

	assert.Empty(t, s.Tableau[0])
	assert.Equal(t, domain.Pile{
		up(domain.Jack, domain.Diamonds), up(domain.Ten, domain.Clubs), up(domain.Nine, domain.Hearts), up(domain.Eight, domain.Spades),
	}, s.Tableau[1])
}

func TestUndo_EmptyHistory(t *testing.T) {
	s := emptyTable()
	assert.False(t, s.Undo())
}

func TestUndo_KeepsElapsedTime(t *testing.T) {
	s := domain.NewGame(domain.NewSeededRNG(3), domain.DrawOne)
	s.Draw()
	s.Tick()
	s.Tick()
	require.True(t, s.Undo())
	assert.Equal(t, 2, s.Elapsed)
	assert.Zero(t, s.Moves)
	assert.Len(t, s.Stock, 24)
}

func TestWon(t *testing.T) {
	s := emptyTable()
	for i, suit := range domain.Suits {
		for r := domain.Ace; r <= domain.King; r++ {
			s.Foundations[i] = append(s.Foundations[i], up(r, suit))
		}
	}
	assert.True(t, s.Won())
	assert.NoError(t, s.Verify())

	s.Foundations[3] = s.Foundations[3][:12]
	s.Waste = domain.Pile{up(domain.King, domain.Spades)}
	assert.False(t, s.Won())
}

func TestVerify_DetectsBrokenLayouts(t *testing.T) {
	s := domain.NewGame(domain.NewSeededRNG(9), domain.DrawOne)
	require.NoError(t, s.Verify())

	lost := s.Piles.Clone()
	lost.Stock = lost.Stock[1:]
	assert.Error(t, lost.Verify())

	dup := s.Piles.Clone()
	dup.Waste = domain.Pile{dup.Tableau[0][0]}
	dup.Waste[0].FaceUp = true
	assert.Error(t, dup.Verify())

	faceDownTop := s.Piles.Clone()
	faceDownTop.Tableau[3][3].FaceUp = false
	assert.Error(t, faceDownTop.Verify())
}

// legalMoves lists every validated move available in s.
func legalMoves(s *domain.GameState) []domain.ValidMove {
	var out []domain.ValidMove
	sources := []domain.PileRef{domain.WastePile()}
	for i := range domain.NumFoundations {
		sources = append(sources, domain.FoundationPile(i))
	}
	for i := range domain.NumTableau {
		sources = append(sources, domain.TableauPile(i))
	}
	var targets []domain.PileRef
	for i := range domain.NumFoundations {
		targets = append(targets, domain.FoundationPile(i))
	}
	for i := range domain.NumTableau {
		targets = append(targets, domain.TableauPile(i))
	}

	for _, from := range sources {
		pile := *s.Pile(from)
		for idx := range pile {
			for _, to := range targets {
				if m, err := s.Validate(domain.CardRef{Pile: from, Index: idx}, to); err == nil {
					out = append(out, m)
				}
			}
		}
	}
	return out
}

func TestRandomPlay_KeepsInvariantsAndUndoRestores(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		s := domain.NewGame(domain.NewSeededRNG(seed), domain.DrawCount(1+2*int(seed%2)))
		pick := domain.NewSeededRNG(seed + 1000)

		for step := range 300 {
			before := s.Piles.Clone()
			beforeMoves := s.Moves

			moves := legalMoves(s)
			if len(moves) > 0 && pick.Intn(3) > 0 {
				s.Apply(moves[pick.Intn(len(moves))])
			} else if s.Draw() == domain.DrawNone {
				break
			}
			require.NoError(t, s.Verify(), "seed %d step %d", seed, step)

			if pick.Intn(5) == 0 {
				require.True(t, s.Undo())
				require.Equal(t, before, s.Piles, "seed %d step %d: undo is a left inverse", seed, step)
				require.Equal(t, beforeMoves, s.Moves)
			}
		}
	}
}
