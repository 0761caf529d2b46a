package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/randomtoy/klondike-go/internal/app"
	"github.com/randomtoy/klondike-go/internal/domain"
)

var (
	ErrQuit           = errors.New("quit")
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("bad arguments")
)

const help = `commands:
  d                      draw from stock (recycles the waste when stock is empty)
  m <from> [index] <to>  move the card at index (default: top) and everything above it
  a <from> [index]       send a top card to the first foundation that takes it
  u                      undo
  n                      new game
  s 1|3                  set draw count
  h                      this help
  q                      quit
piles: w, f0..f3, t0..t6 (or waste, foundation-0, tableau-6)
`

// Session turns text commands into controller calls.
type Session struct {
	ctl *app.Controller
	out io.Writer
}

func NewSession(ctl *app.Controller, out io.Writer) *Session {
	return &Session{ctl: ctl, out: out}
}

// Handle runs one command line. It returns ErrQuit when the player asks
// to leave; other errors describe a rejected command and leave the game
// as it was.
func (s *Session) Handle(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "d", "draw":
		if s.ctl.Draw(ctx) == domain.DrawNone {
			fmt.Fprintln(s.out, "nothing to draw")
		}
	case "m", "move":
		return s.move(ctx, args)
	case "a", "auto":
		ref, err := s.cardRef(args)
		if err != nil {
			return err
		}
		if !s.ctl.AutoFoundation(ctx, ref) {
			fmt.Fprintln(s.out, "no foundation takes that card")
		}
	case "u", "undo":
		if !s.ctl.Undo(ctx) {
			fmt.Fprintln(s.out, "nothing to undo")
		}
	case "n", "new":
		s.ctl.NewGame(ctx)
	case "s", "set":
		if len(args) != 1 {
			return fmt.Errorf("%w: s 1|3", ErrUsage)
		}
		n, err := domain.ParseDrawCount(args[0])
		if err != nil {
			return err
		}
		return s.ctl.SetDrawCount(ctx, n)
	case "h", "help", "?":
		fmt.Fprint(s.out, help)
	case "q", "quit", "exit":
		return ErrQuit
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
	return nil
}

func (s *Session) move(ctx context.Context, args []string) error {
	if len(args) != 2 && len(args) != 3 {
		return fmt.Errorf("%w: m <from> [index] <to>", ErrUsage)
	}
	ref, err := s.cardRef(args[:len(args)-1])
	if err != nil {
		return err
	}
	to, err := domain.ParsePileRef(args[len(args)-1])
	if err != nil {
		return err
	}
	return s.ctl.Move(ctx, ref, to)
}

// cardRef parses "<pile> [index]"; a missing index means the top card.
func (s *Session) cardRef(args []string) (domain.CardRef, error) {
	if len(args) != 1 && len(args) != 2 {
		return domain.CardRef{}, fmt.Errorf("%w: expected <pile> [index]", ErrUsage)
	}
	pile, err := domain.ParsePileRef(args[0])
	if err != nil {
		return domain.CardRef{}, err
	}
	if len(args) == 2 {
		i, err := strconv.Atoi(args[1])
		if err != nil {
			return domain.CardRef{}, fmt.Errorf("%w: index %q", ErrUsage, args[1])
		}
		return domain.CardRef{Pile: pile, Index: i}, nil
	}
	return domain.CardRef{Pile: pile, Index: len(*s.ctl.State().Pile(pile)) - 1}, nil
}
