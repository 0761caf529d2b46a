package http

import "github.com/randomtoy/klondike-go/internal/domain"

// CardResponse is a card as the client sees it. Face-down cards carry no
// identity.
type CardResponse struct {
	Rank   string `json:"rank,omitempty"`
	Suit   string `json:"suit,omitempty"`
	Color  string `json:"color,omitempty"`
	FaceUp bool   `json:"face_up"`
}

// GameResponse is the JSON shape of a board.
type GameResponse struct {
	ID             string           `json:"id"`
	Stock          int              `json:"stock"`
	Waste          []CardResponse   `json:"waste"`
	Foundations    [][]CardResponse `json:"foundations"`
	Tableau        [][]CardResponse `json:"tableau"`
	DrawCount      int              `json:"draw_count"`
	Moves          int              `json:"moves"`
	ElapsedSeconds int              `json:"elapsed_seconds"`
	CanUndo        bool             `json:"can_undo"`
	Completed      bool             `json:"completed"`
}

// ActionResponse reports what an action did alongside the resulting board.
type ActionResponse struct {
	Result string       `json:"result"`
	Game   GameResponse `json:"game"`
}

// IllegalMoveResponse is returned with 422; the board is unchanged.
type IllegalMoveResponse struct {
	Error string       `json:"error"`
	Game  GameResponse `json:"game"`
}

type CreateGameRequest struct {
	Seed *uint64 `json:"seed"`
}

// MoveRequest drags the card at Index (default: top) of From, with all
// cards above it, onto To.
type MoveRequest struct {
	From  string `json:"from"`
	Index *int   `json:"index"`
	To    string `json:"to"`
}

type AutoRequest struct {
	From  string `json:"from"`
	Index *int   `json:"index"`
}

type PreferencesRequest struct {
	DrawCount int    `json:"draw_count"`
	GameID    string `json:"game_id,omitempty"`
}

type PreferencesResponse struct {
	DrawCount int `json:"draw_count"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func toCard(c domain.Card) CardResponse {
	if !c.FaceUp {
		return CardResponse{}
	}
	return CardResponse{
		Rank:   c.Rank.String(),
		Suit:   c.Suit.Name(),
		Color:  c.Color().String(),
		FaceUp: true,
	}
}

func toCards(p domain.Pile) []CardResponse {
	out := make([]CardResponse, len(p))
	for i, c := range p {
		out[i] = toCard(c)
	}
	return out
}
