package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/randomtoy/klondike-go/internal/ports"
)

var ErrWebhook = errors.New("webhook delivery failed")

// Notifier implements ports.WinNotifier by POSTing the result as JSON.
type Notifier struct {
	httpClient *http.Client
	url        string
	logger     *slog.Logger
	now        func() time.Time
}

// NewNotifier builds a notifier. A nil logger means slog.Default.
func NewNotifier(httpClient *http.Client, url string, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		httpClient: httpClient,
		url:        url,
		logger:     logger,
		now:        time.Now,
	}
}

// payload is the JSON body sent to the webhook.
type payload struct {
	ElapsedSeconds int       `json:"elapsed_seconds"`
	Moves          int       `json:"moves"`
	CompletedAt    time.Time `json:"completed_at"`
}

// OnWin delivers r, retrying once if the first attempt fails.
func (n *Notifier) OnWin(ctx context.Context, r ports.Result) error {
	body, err := json.Marshal(payload{
		ElapsedSeconds: r.ElapsedSeconds,
		Moves:          r.Moves,
		CompletedAt:    n.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	err = n.post(ctx, body)
	if err == nil {
		return nil
	}
	n.logger.WarnContext(ctx, "webhook failed, retrying", "url", n.url, "error", err)
	if err := n.post(ctx, body); err != nil {
		return fmt.Errorf("%w: %w", ErrWebhook, err)
	}
	return nil
}

func (n *Notifier) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(msg))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
