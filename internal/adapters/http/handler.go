package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/randomtoy/klondike-go/internal/app"
	"github.com/randomtoy/klondike-go/internal/domain"
	"github.com/randomtoy/klondike-go/internal/ports"
)

var errBadRequest = errors.New("invalid request body")

type Handler struct {
	games  *app.Registry
	prefs  ports.Preferences
	logger *slog.Logger
}

func NewHandler(games *app.Registry, prefs ports.Preferences, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{games: games, prefs: prefs, logger: logger}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)

	g := e.Group("/v1/games")
	g.POST("", h.CreateGame)
	g.GET("/:id", h.GetGame)
	g.DELETE("/:id", h.DeleteGame)
	g.POST("/:id/draw", h.Draw)
	g.POST("/:id/moves", h.Move)
	g.POST("/:id/auto", h.Auto)
	g.POST("/:id/undo", h.Undo)
	g.POST("/:id/new", h.NewDeal)

	e.GET("/v1/preferences", h.GetPreferences)
	e.PUT("/v1/preferences", h.PutPreferences)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) CreateGame(c echo.Context) error {
	var req CreateGameRequest
	if err := c.Bind(&req); err != nil {
		return h.mapError(c, errBadRequest)
	}
	ctx := c.Request().Context()

	id, err := h.games.Create(ctx, req.Seed)
	if err != nil {
		return h.mapError(c, err)
	}
	var board GameResponse
	if err := h.games.Do(id, func(ctl *app.Controller) error {
		board = toGame(id, ctl)
		return nil
	}); err != nil {
		return h.mapError(c, err)
	}
	c.Response().Header().Set(echo.HeaderLocation, "/v1/games/"+id.String())
	return c.JSON(http.StatusCreated, board)
}

func (h *Handler) GetGame(c echo.Context) error {
	return h.act(c, func(_ context.Context, _ *app.Controller) (string, error) {
		return "", nil
	})
}

func (h *Handler) DeleteGame(c echo.Context) error {
	id, err := gameID(c)
	if err != nil {
		return h.mapError(c, err)
	}
	if err := h.games.Delete(id); err != nil {
		return h.mapError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Draw(c echo.Context) error {
	return h.act(c, func(ctx context.Context, ctl *app.Controller) (string, error) {
		return ctl.Draw(ctx).String(), nil
	})
}

func (h *Handler) Move(c echo.Context) error {
	var req MoveRequest
	if err := c.Bind(&req); err != nil {
		return h.mapError(c, errBadRequest)
	}
	to, err := domain.ParsePileRef(req.To)
	if err != nil {
		return h.mapError(c, err)
	}
	return h.act(c, func(ctx context.Context, ctl *app.Controller) (string, error) {
		ref, err := cardRef(ctl.State(), req.From, req.Index)
		if err != nil {
			return "", err
		}
		if err := ctl.Move(ctx, ref, to); err != nil {
			return "", err
		}
		return "moved", nil
	})
}

func (h *Handler) Auto(c echo.Context) error {
	var req AutoRequest
	if err := c.Bind(&req); err != nil {
		return h.mapError(c, errBadRequest)
	}
	return h.act(c, func(ctx context.Context, ctl *app.Controller) (string, error) {
		ref, err := cardRef(ctl.State(), req.From, req.Index)
		if err != nil {
			return "", err
		}
		if ctl.AutoFoundation(ctx, ref) {
			return "moved", nil
		}
		return "none", nil
	})
}

func (h *Handler) Undo(c echo.Context) error {
	return h.act(c, func(ctx context.Context, ctl *app.Controller) (string, error) {
		if ctl.Undo(ctx) {
			return "undone", nil
		}
		return "none", nil
	})
}

func (h *Handler) NewDeal(c echo.Context) error {
	return h.act(c, func(ctx context.Context, ctl *app.Controller) (string, error) {
		ctl.NewGame(ctx)
		return "dealt", nil
	})
}

func (h *Handler) GetPreferences(c echo.Context) error {
	ctx := c.Request().Context()
	n, err := h.prefs.DrawCount(ctx)
	switch {
	case errors.Is(err, ports.ErrNoPreference):
		n = domain.DrawOne
	case errors.Is(err, domain.ErrInvalidDrawCount):
		h.logger.WarnContext(ctx, "stored draw count is invalid, using 1", "error", err)
		n = domain.DrawOne
	case err != nil:
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, PreferencesResponse{DrawCount: int(n)})
}

// PutPreferences stores the draw count. With game_id set it is also
// applied to that game.
func (h *Handler) PutPreferences(c echo.Context) error {
	var req PreferencesRequest
	if err := c.Bind(&req); err != nil {
		return h.mapError(c, errBadRequest)
	}
	n := domain.DrawCount(req.DrawCount)
	if !n.Valid() {
		return h.mapError(c, domain.ErrInvalidDrawCount)
	}
	ctx := c.Request().Context()

	if req.GameID == "" {
		if err := h.prefs.SetDrawCount(ctx, n); err != nil {
			return h.mapError(c, err)
		}
		return c.JSON(http.StatusOK, PreferencesResponse{DrawCount: int(n)})
	}

	id, err := uuid.Parse(req.GameID)
	if err != nil {
		return h.mapError(c, app.ErrGameNotFound)
	}
	if err := h.games.Do(id, func(ctl *app.Controller) error {
		return ctl.SetDrawCount(ctx, n)
	}); err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, PreferencesResponse{DrawCount: int(n)})
}

// act runs fn against the game named in the path and replies with the
// resulting board. An illegal move replies 422 with the unchanged board.
func (h *Handler) act(c echo.Context, fn func(context.Context, *app.Controller) (string, error)) error {
	id, err := gameID(c)
	if err != nil {
		return h.mapError(c, err)
	}
	ctx := c.Request().Context()

	var (
		result string
		board  GameResponse
	)
	err = h.games.Do(id, func(ctl *app.Controller) error {
		var ferr error
		result, ferr = fn(ctx, ctl)
		board = toGame(id, ctl)
		return ferr
	})
	switch {
	case errors.Is(err, domain.ErrIllegalMove):
		return c.JSON(http.StatusUnprocessableEntity, IllegalMoveResponse{Error: err.Error(), Game: board})
	case err != nil:
		return h.mapError(c, err)
	case result == "":
		return c.JSON(http.StatusOK, board)
	default:
		return c.JSON(http.StatusOK, ActionResponse{Result: result, Game: board})
	}
}

func gameID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, app.ErrGameNotFound
	}
	return id, nil
}

// cardRef resolves a pile name and optional index. A missing index means
// the top card.
func cardRef(s *domain.GameState, from string, index *int) (domain.CardRef, error) {
	ref, err := domain.ParsePileRef(from)
	if err != nil {
		return domain.CardRef{}, err
	}
	i := len(*s.Pile(ref)) - 1
	if index != nil {
		i = *index
	}
	return domain.CardRef{Pile: ref, Index: i}, nil
}

func toGame(id uuid.UUID, ctl *app.Controller) GameResponse {
	s := ctl.State()
	g := GameResponse{
		ID:             id.String(),
		Stock:          len(s.Stock),
		Waste:          toCards(s.Waste),
		Foundations:    make([][]CardResponse, len(s.Foundations)),
		Tableau:        make([][]CardResponse, len(s.Tableau)),
		DrawCount:      int(s.DrawCount),
		Moves:          s.Moves,
		ElapsedSeconds: s.Elapsed,
		CanUndo:        ctl.CanUndo(),
		Completed:      ctl.Completed(),
	}
	for i, p := range s.Foundations {
		g.Foundations[i] = toCards(p)
	}
	for i, p := range s.Tableau {
		g.Tableau[i] = toCards(p)
	}
	return g
}

func (h *Handler) mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	switch {
	case errors.Is(err, app.ErrGameNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUnknownPile), errors.Is(err, domain.ErrInvalidDrawCount), errors.Is(err, errBadRequest):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrIllegalMove):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, app.ErrTooManyGames):
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
	default:
		h.logger.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
