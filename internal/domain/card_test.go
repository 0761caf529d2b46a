package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/randomtoy/klondike-go/internal/domain"
)

func TestCard_String(t *testing.T) {
	tests := []struct {
		card domain.Card
		want string
	}{
		{domain.Card{Rank: domain.Ace, Suit: domain.Hearts}, "A♥"},
		{domain.Card{Rank: domain.Ten, Suit: domain.Clubs}, "10♣"},
		{domain.Card{Rank: domain.Queen, Suit: domain.Spades}, "Q♠"},
		{domain.Card{Rank: domain.Seven, Suit: domain.Diamonds}, "7♦"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.card.String())
		})
	}
}

func TestCard_Color(t *testing.T) {
	assert.Equal(t, domain.Red, domain.Card{Suit: domain.Hearts}.Color())
	assert.Equal(t, domain.Red, domain.Card{Suit: domain.Diamonds}.Color())
	assert.Equal(t, domain.Black, domain.Card{Suit: domain.Clubs}.Color())
	assert.Equal(t, domain.Black, domain.Card{Suit: domain.Spades}.Color())
}

func TestParsePileRef(t *testing.T) {
	tests := []struct {
		in   string
		want domain.PileRef
	}{
		{"stock", domain.StockPile()},
		{"W", domain.WastePile()},
		{"foundation-3", domain.FoundationPile(3)},
		{"f0", domain.FoundationPile(0)},
		{"tableau-6", domain.TableauPile(6)},
		{" t2 ", domain.TableauPile(2)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParsePileRef(tt.in)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}

	for _, bad := range []string{"", "tableau-7", "f4", "t-1", "foundation", "x1", "tableau-a"} {
		_, err := domain.ParsePileRef(bad)
		assert.ErrorIs(t, err, domain.ErrUnknownPile, "input %q", bad)
	}
}

func TestPileRef_StringRoundTrip(t *testing.T) {
	refs := []domain.PileRef{domain.StockPile(), domain.WastePile()}
	for i := range domain.NumFoundations {
		refs = append(refs, domain.FoundationPile(i))
	}
	for i := range domain.NumTableau {
		refs = append(refs, domain.TableauPile(i))
	}
	for _, r := range refs {
		got, err := domain.ParsePileRef(r.String())
		assert.NoError(t, err)
		assert.Equal(t, r, got)
	}
}
