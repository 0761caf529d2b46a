package domain

import "strconv"

// Suit of a playing card.
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

var suitSymbols = [...]string{"♥", "♦", "♣", "♠"}

var suitNames = [...]string{"hearts", "diamonds", "clubs", "spades"}

// Suits lists the four suits in deck enumeration order.
var Suits = [...]Suit{Hearts, Diamonds, Clubs, Spades}

func (s Suit) String() string {
	if s < Hearts || s > Spades {
		return "?"
	}
	return suitSymbols[s]
}

// Name returns the lowercase English suit name, e.g. "hearts".
func (s Suit) Name() string {
	if s < Hearts || s > Spades {
		return "unknown"
	}
	return suitNames[s]
}

// Rank of a playing card. The order Ace < 2 < ... < King is used for
// adjacency checks only.
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	if r > Ace && r < Jack {
		return strconv.Itoa(int(r))
	}
	return "?"
}

// Color is derived from the suit; it is never stored.
type Color int

const (
	Red Color = iota
	Black
)

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

// Card is a playing card. Suit and Rank are its identity; FaceUp is
// presentation state that changes as the card moves between piles.
type Card struct {
	Suit   Suit
	Rank   Rank
	FaceUp bool
}

// Color returns red for hearts and diamonds, black otherwise.
func (c Card) Color() Color {
	if c.Suit == Hearts || c.Suit == Diamonds {
		return Red
	}
	return Black
}

// SameCard reports whether c and o have the same identity, ignoring face state.
func (c Card) SameCard(o Card) bool {
	return c.Suit == o.Suit && c.Rank == o.Rank
}

// String returns the card as rank followed by suit symbol (e.g. "10♣").
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}
