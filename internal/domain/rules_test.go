package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomtoy/klondike-go/internal/domain"
)

func up(r domain.Rank, s domain.Suit) domain.Card {
	return domain.Card{Rank: r, Suit: s, FaceUp: true}
}

func down(r domain.Rank, s domain.Suit) domain.Card {
	return domain.Card{Rank: r, Suit: s}
}

func TestCanPlace(t *testing.T) {
	f := domain.FoundationPile(0)
	col := domain.TableauPile(0)

	tests := []struct {
		name   string
		card   domain.Card
		target domain.PileRef
		pile   domain.Pile
		want   bool
	}{
		{"ace on empty foundation", up(domain.Ace, domain.Hearts), f, nil, true},
		{"two on empty foundation", up(domain.Two, domain.Hearts), f, nil, false},
		{"successor same suit", up(domain.Two, domain.Hearts), f, domain.Pile{up(domain.Ace, domain.Hearts)}, true},
		{"successor other suit", up(domain.Two, domain.Spades), f, domain.Pile{up(domain.Ace, domain.Hearts)}, false},
		{"skip a rank", up(domain.Three, domain.Hearts), f, domain.Pile{up(domain.Ace, domain.Hearts)}, false},
		{"king on empty column", up(domain.King, domain.Clubs), col, nil, true},
		{"queen on empty column", up(domain.Queen, domain.Clubs), col, nil, false},
		{"red on black one lower", up(domain.Queen, domain.Hearts), col, domain.Pile{up(domain.King, domain.Spades)}, true},
		{"same color", up(domain.Queen, domain.Clubs), col, domain.Pile{up(domain.King, domain.Spades)}, false},
		{"one higher", up(domain.King, domain.Hearts), col, domain.Pile{up(domain.Queen, domain.Spades)}, false},
		{"face-down card", down(domain.Ace, domain.Hearts), f, nil, false},
		{"waste target", up(domain.Ace, domain.Hearts), domain.WastePile(), nil, false},
		{"stock target", up(domain.King, domain.Hearts), domain.StockPile(), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.CanPlace(tt.card, tt.target, tt.pile))
		})
	}
}

func TestCheckGroup(t *testing.T) {
	run := []domain.Card{up(domain.Queen, domain.Hearts), up(domain.Jack, domain.Spades)}

	assert.NoError(t, domain.CheckGroup(run, domain.TableauPile(1), domain.Pile{up(domain.King, domain.Clubs)}))
	assert.ErrorIs(t, domain.CheckGroup(nil, domain.TableauPile(1), nil), domain.ErrIllegalMove)

	twoCards := []domain.Card{up(domain.Ace, domain.Hearts), up(domain.Two, domain.Hearts)}
	assert.ErrorIs(t, domain.CheckGroup(twoCards, domain.FoundationPile(0), nil), domain.ErrIllegalMove)
}

// emptyTable returns a state whose piles are all empty.
func emptyTable() *domain.GameState {
	return &domain.GameState{DrawCount: domain.DrawOne}
}

func TestValidate_Scenarios(t *testing.T) {
	s := emptyTable()
	s.Waste = domain.Pile{up(domain.King, domain.Hearts)}

	m, err := s.Validate(domain.CardRef{Pile: domain.WastePile(), Index: 0}, domain.TableauPile(0))
	require.NoError(t, err)
	assert.Equal(t, 1, m.Count())

	s.Waste = domain.Pile{up(domain.Queen, domain.Hearts)}
	_, err = s.Validate(domain.CardRef{Pile: domain.WastePile(), Index: 0}, domain.TableauPile(0))
	assert.ErrorIs(t, err, domain.ErrIllegalMove)

	s.Waste = domain.Pile{up(domain.Two, domain.Spades), up(domain.Two, domain.Hearts), up(domain.Ace, domain.Hearts)}
	m, err = s.Validate(domain.CardRef{Pile: domain.WastePile(), Index: 2}, domain.FoundationPile(0))
	require.NoError(t, err)
	s.Apply(m)
	assert.Equal(t, domain.Pile{up(domain.Ace, domain.Hearts)}, s.Foundations[0])

	// Two of spades is buried under the two of hearts; move the hearts aside first.
	_, err = s.Validate(domain.CardRef{Pile: domain.WastePile(), Index: 0}, domain.FoundationPile(0))
	assert.ErrorIs(t, err, domain.ErrIllegalMove, "only the waste top may move")

	m, err = s.Validate(domain.CardRef{Pile: domain.WastePile(), Index: 1}, domain.FoundationPile(0))
	require.NoError(t, err)
	s.Apply(m)

	s.Waste = append(s.Waste, up(domain.Three, domain.Spades))
	_, err = s.Validate(domain.CardRef{Pile: domain.WastePile(), Index: 1}, domain.FoundationPile(0))
	assert.ErrorIs(t, err, domain.ErrIllegalMove, "wrong suit")
}

func TestValidate_WrongSuitOnFoundation(t *testing.T) {
	s := emptyTable()
	s.Foundations[0] = domain.Pile{up(domain.Ace, domain.Hearts)}
	s.Waste = domain.Pile{up(domain.Two, domain.Spades)}
	_, err := s.Validate(domain.CardRef{Pile: domain.WastePile(), Index: 0}, domain.FoundationPile(0))
	assert.ErrorIs(t, err, domain.ErrIllegalMove)

	s.Waste = domain.Pile{up(domain.Two, domain.Hearts)}
	_, err = s.Validate(domain.CardRef{Pile: domain.WastePile(), Index: 0}, domain.FoundationPile(0))
	assert.NoError(t, err)
}

func TestValidate_Sources(t *testing.T) {
	s := emptyTable()
	s.Stock = domain.Pile{down(domain.Ace, domain.Clubs)}
	s.Tableau[0] = domain.Pile{down(domain.Five, domain.Clubs), up(domain.King, domain.Hearts), up(domain.Queen, domain.Spades)}
	s.Foundations[1] = domain.Pile{up(domain.Ace, domain.Spades)}

	_, err := s.Validate(domain.CardRef{Pile: domain.StockPile(), Index: 0}, domain.FoundationPile(0))
	assert.ErrorIs(t, err, domain.ErrIllegalMove, "stock is never a source")

	_, err = s.Validate(domain.CardRef{Pile: domain.TableauPile(0), Index: 0}, domain.TableauPile(1))
	assert.ErrorIs(t, err, domain.ErrIllegalMove, "face-down card")

	m, err := s.Validate(domain.CardRef{Pile: domain.TableauPile(0), Index: 1}, domain.TableauPile(1))
	require.NoError(t, err, "king-led run to empty column")
	assert.Equal(t, 2, m.Count())

	_, err = s.Validate(domain.CardRef{Pile: domain.TableauPile(0), Index: 1}, domain.FoundationPile(0))
	assert.ErrorIs(t, err, domain.ErrIllegalMove, "runs never go to a foundation")

	_, err = s.Validate(domain.CardRef{Pile: domain.TableauPile(0), Index: 9}, domain.TableauPile(1))
	assert.ErrorIs(t, err, domain.ErrIllegalMove)

	_, err = s.Validate(domain.CardRef{Pile: domain.TableauPile(0), Index: 2}, domain.TableauPile(0))
	assert.ErrorIs(t, err, domain.ErrIllegalMove, "same pile")

	_, err = s.Validate(domain.CardRef{Pile: domain.TableauPile(7), Index: 0}, domain.TableauPile(0))
	assert.ErrorIs(t, err, domain.ErrUnknownPile)

	_, err = s.Validate(domain.CardRef{Pile: domain.FoundationPile(1), Index: 0}, domain.TableauPile(1))
	assert.ErrorIs(t, err, domain.ErrIllegalMove, "ace cannot open a column")
}

func TestAutoTarget(t *testing.T) {
	s := emptyTable()
	s.Foundations[0] = domain.Pile{up(domain.Ace, domain.Spades)}
	s.Foundations[2] = domain.Pile{up(domain.Ace, domain.Diamonds)}
	s.Waste = domain.Pile{up(domain.Two, domain.Diamonds)}
	s.Tableau[3] = domain.Pile{up(domain.Ace, domain.Clubs), up(domain.King, domain.Hearts)}

	m, ok := s.AutoTarget(domain.CardRef{Pile: domain.WastePile(), Index: 0})
	require.True(t, ok)
	assert.Equal(t, domain.FoundationPile(2), m.To())

	_, ok = s.AutoTarget(domain.CardRef{Pile: domain.TableauPile(3), Index: 0})
	assert.False(t, ok, "buried ace is not eligible")

	_, ok = s.AutoTarget(domain.CardRef{Pile: domain.TableauPile(3), Index: 1})
	assert.False(t, ok, "king has nowhere to go")

	_, ok = s.AutoTarget(domain.CardRef{Pile: domain.FoundationPile(0), Index: 0})
	assert.False(t, ok, "foundation tops never auto-move")

	s.Tableau[4] = domain.Pile{up(domain.Ace, domain.Hearts)}
	m, ok = s.AutoTarget(domain.CardRef{Pile: domain.TableauPile(4), Index: 0})
	require.True(t, ok)
	assert.Equal(t, domain.FoundationPile(1), m.To(), "first empty foundation in order")
}
