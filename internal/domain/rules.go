package domain

import "fmt"

// CanPlace reports whether card may be put on top of pile when pile plays
// the role named by target. Foundations build up by suit from the ace;
// tableau columns build down in alternating colors from the king.
func CanPlace(card Card, target PileRef, pile Pile) bool {
	if !card.FaceUp {
		return false
	}
	top, ok := pile.Top()
	switch target.Kind {
	case KindFoundation:
		if !ok {
			return card.Rank == Ace
		}
		return card.Suit == top.Suit && card.Rank == top.Rank+1
	case KindTableau:
		if !ok {
			return card.Rank == King
		}
		return card.Color() != top.Color() && card.Rank == top.Rank-1
	default:
		return false
	}
}

// CheckGroup validates moving cards, bottom card first, onto pile. Only
// the first card is checked against the target; the rest of a tableau run
// is legal by construction.
func CheckGroup(cards []Card, target PileRef, pile Pile) error {
	if len(cards) == 0 {
		return fmt.Errorf("%w: no cards", ErrIllegalMove)
	}
	if target.Kind == KindFoundation && len(cards) > 1 {
		return fmt.Errorf("%w: only one card at a time goes to a foundation", ErrIllegalMove)
	}
	if !CanPlace(cards[0], target, pile) {
		return fmt.Errorf("%w: %s cannot go to %s", ErrIllegalMove, cards[0], target)
	}
	return nil
}

// ValidMove is a move that passed validation against the state that
// produced it. Only Validate and AutoTarget create one.
type ValidMove struct {
	from  PileRef
	start int
	to    PileRef
	count int
}

func (m ValidMove) From() PileRef { return m.from }

func (m ValidMove) To() PileRef { return m.to }

// Count is the number of cards carried.
func (m ValidMove) Count() int { return m.count }

// Validate checks moving the cards from card up to the top of its pile
// onto the pile named by to.
func (s *GameState) Validate(card CardRef, to PileRef) (ValidMove, error) {
	if !card.Pile.Valid() {
		return ValidMove{}, fmt.Errorf("%w: %v", ErrUnknownPile, card.Pile)
	}
	if !to.Valid() {
		return ValidMove{}, fmt.Errorf("%w: %v", ErrUnknownPile, to)
	}
	if card.Pile == to {
		return ValidMove{}, fmt.Errorf("%w: source and target are the same pile", ErrIllegalMove)
	}

	src := *s.Pile(card.Pile)
	if card.Index < 0 || card.Index >= len(src) {
		return ValidMove{}, fmt.Errorf("%w: no card at %s[%d]", ErrIllegalMove, card.Pile, card.Index)
	}

	switch card.Pile.Kind {
	case KindStock:
		return ValidMove{}, fmt.Errorf("%w: stock cards are drawn, not moved", ErrIllegalMove)
	case KindWaste, KindFoundation:
		if card.Index != len(src)-1 {
			return ValidMove{}, fmt.Errorf("%w: only the top of %s can move", ErrIllegalMove, card.Pile)
		}
	}

	group := src[card.Index:]
	if !group[0].FaceUp {
		return ValidMove{}, fmt.Errorf("%w: %s is face-down", ErrIllegalMove, card.Pile)
	}
	if err := CheckGroup(group, to, *s.Pile(to)); err != nil {
		return ValidMove{}, err
	}

	return ValidMove{from: card.Pile, start: card.Index, to: to, count: len(group)}, nil
}

// AutoTarget finds the first foundation, in order, that accepts the card
// at ref. Only the face-up top card of the waste or a tableau column is
// eligible.
func (s *GameState) AutoTarget(ref CardRef) (ValidMove, bool) {
	if ref.Pile.Kind != KindWaste && ref.Pile.Kind != KindTableau {
		return ValidMove{}, false
	}
	if !ref.Pile.Valid() {
		return ValidMove{}, false
	}
	src := *s.Pile(ref.Pile)
	if len(src) == 0 || ref.Index != len(src)-1 {
		return ValidMove{}, false
	}
	for i := range NumFoundations {
		m, err := s.Validate(ref, FoundationPile(i))
		if err == nil {
			return m, true
		}
	}
	return ValidMove{}, false
}
