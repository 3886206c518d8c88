// Package shell implements a line-oriented command interface to a chess game.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/storage"
)

// errNoArchive is returned by archive commands when no storage is attached.
var errNoArchive = errors.New("no game archive attached")

// Shell reads commands line by line and applies them to a single game.
type Shell struct {
	game  *board.Game
	store *storage.Storage
	rec   *storage.GameRecord // archive record of the current game, nil if unsaved

	in  io.Reader
	out io.Writer
	log zerolog.Logger

	errColor  *color.Color
	infoColor *color.Color
}

// New creates a shell at the starting position. store may be nil, in which
// case the archive commands report an error.
func New(in io.Reader, out io.Writer, store *storage.Storage, log zerolog.Logger) *Shell {
	return &Shell{
		game:      board.NewGame(),
		store:     store,
		in:        in,
		out:       out,
		log:       log.With().Str("component", "shell").Logger(),
		errColor:  color.New(color.FgRed),
		infoColor: color.New(color.FgGreen),
	}
}

// Game returns the game the shell operates on.
func (s *Shell) Game() *board.Game {
	return s.game
}

// SetPosition replaces the game with one parsed from fen.
func (s *Shell) SetPosition(fen string) error {
	g, err := board.ParseFEN(fen)
	if err != nil {
		return err
	}
	s.game = g
	s.rec = nil
	return nil
}

// Run starts the main loop. It returns when input ends or on "quit".
func (s *Shell) Run() error {
	scanner := bufio.NewScanner(s.in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !s.Execute(line) {
			return nil
		}
	}

	return scanner.Err()
}

// Execute runs one command line. It returns false when the shell should stop.
func (s *Shell) Execute(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd := parts[0]
	args := parts[1:]

	s.log.Debug().Str("cmd", cmd).Strs("args", args).Msg("command")

	var err error
	switch cmd {
	case "new":
		err = s.handleNew()
	case "position":
		err = s.handlePosition(args)
	case "move":
		err = s.handleMove(args)
	case "moves":
		err = s.handleMoves(args)
	case "fen":
		s.handleFEN(args)
	case "status":
		s.handleStatus()
	case "attacked":
		err = s.handleAttacked(args)
	case "piece":
		err = s.handlePiece(args)
	case "undo":
		err = s.handleUndo()
	case "redo":
		err = s.handleRedo()
	case "history":
		s.handleHistory()
	case "d":
		fmt.Fprint(s.out, s.game.CurrentPosition().String())
	case "perft":
		err = s.handlePerft(args)
	case "save":
		err = s.handleSave(args)
	case "games":
		err = s.handleGames()
	case "resume":
		err = s.handleResume(args)
	case "delete":
		err = s.handleDelete(args)
	case "stats":
		err = s.handleStats()
	case "help":
		s.handleHelp()
	case "quit", "exit":
		return false
	default:
		err = fmt.Errorf("unknown command %q (try \"help\")", cmd)
	}

	if err != nil {
		s.log.Debug().Err(err).Str("cmd", cmd).Msg("command failed")
		s.errColor.Fprintf(s.out, "error: %v\n", err)
	}
	return true
}

// handleNew resets to the starting position.
func (s *Shell) handleNew() error {
	s.game = board.NewGame()
	s.rec = nil
	fmt.Fprintln(s.out, s.game.ToFEN())
	return nil
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
func (s *Shell) handlePosition(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: position startpos|fen <fen> [moves ...]")
	}

	setup, moves := args, []string(nil)
	for i, arg := range args {
		if arg == "moves" {
			setup, moves = args[:i], args[i+1:]
			break
		}
	}
	if len(setup) == 0 {
		return errors.New("usage: position startpos|fen <fen> [moves ...]")
	}

	var g *board.Game
	switch setup[0] {
	case "startpos":
		g = board.NewGame()
	case "fen":
		var err error
		g, err = board.ParseFEN(strings.Join(setup[1:], " "))
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown position type %q", setup[0])
	}

	for _, m := range moves {
		if err := g.MoveUCI(m); err != nil {
			return err
		}
	}

	s.game = g
	s.rec = nil
	fmt.Fprintln(s.out, g.ToFEN())
	return nil
}

// handleMove plays a move given in UCI or algebraic notation.
func (s *Shell) handleMove(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: move <e2e4|Nf3>")
	}

	var err error
	if m, perr := board.ParseMove(args[0]); perr == nil {
		err = s.game.ApplyMove(m)
	} else {
		err = s.game.ApplySAN(args[0])
	}
	if err != nil {
		return err
	}

	history := s.game.History()
	last := history[len(history)-1]
	fmt.Fprintf(s.out, "%s %s\n", last.Move, last.SAN)

	if s.game.IsGameOver() {
		s.infoColor.Fprintf(s.out, "game over: %s %s\n", s.game.Status(), s.game.Result())
	}
	return nil
}

// handleMoves lists legal moves of the current position, optionally from one square.
func (s *Shell) handleMoves(args []string) error {
	cur := s.game.CurrentPosition()

	moves := cur.LegalMoves()
	if len(args) > 0 {
		sq, err := board.ParseSquare(args[0])
		if err != nil {
			return err
		}
		if moves, err = cur.MovesForSquare(sq); err != nil {
			return err
		}
	}

	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	fmt.Fprintln(s.out, strings.Join(out, " "))
	return nil
}

func (s *Shell) handleFEN(args []string) {
	cur := s.game.CurrentPosition()
	if len(args) > 0 && args[0] == "trim" {
		fmt.Fprintln(s.out, cur.PositionKey())
		return
	}
	fmt.Fprintln(s.out, cur.ToFEN())
}

func (s *Shell) handleStatus() {
	cur := s.game.CurrentPosition()
	fmt.Fprintf(s.out, "status: %s\n", cur.Status())
	fmt.Fprintf(s.out, "turn: %s\n", cur.Turn())
	fmt.Fprintf(s.out, "check: %v\n", cur.IsCheck())
	fmt.Fprintf(s.out, "repetitions: %d\n", cur.RepetitionCount())
	fmt.Fprintf(s.out, "halfmove clock: %d\n", cur.HalfMoveClock())
	fmt.Fprintf(s.out, "result: %s\n", cur.Result())
}

// handleAttacked reports whether a color attacks a square: attacked e4 w
func (s *Shell) handleAttacked(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: attacked <square> <w|b>")
	}
	sq, err := board.ParseSquare(args[0])
	if err != nil {
		return err
	}
	by, ok := board.ParseColor(args[1])
	if !ok {
		return fmt.Errorf("invalid color %q", args[1])
	}

	attacked, err := s.game.CurrentPosition().IsSquareAttacked(sq, by)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, attacked)
	return nil
}

func (s *Shell) handlePiece(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: piece <square>")
	}
	sq, err := board.ParseSquare(args[0])
	if err != nil {
		return err
	}

	cur := s.game.CurrentPosition()
	p, err := cur.PieceAt(sq)
	if err != nil {
		return err
	}
	sqColor, _ := board.SquareColor(sq)
	if p == board.NoPiece {
		fmt.Fprintf(s.out, "empty (%s square)\n", strings.ToLower(sqColor.String()))
		return nil
	}
	fmt.Fprintf(s.out, "%s %s (%s square)\n", p.Color(), p.Type(), strings.ToLower(sqColor.String()))
	return nil
}

func (s *Shell) handleUndo() error {
	if !s.game.Undo() {
		return errors.New("nothing to undo")
	}
	fmt.Fprintln(s.out, s.game.CurrentPosition().ToFEN())
	return nil
}

func (s *Shell) handleRedo() error {
	if !s.game.Redo() {
		return errors.New("nothing to redo")
	}
	fmt.Fprintln(s.out, s.game.CurrentPosition().ToFEN())
	return nil
}

// handleHistory prints the moves in move-number form; undone moves are marked.
func (s *Shell) handleHistory() {
	history := s.game.History()
	cursor := s.game.Cursor()
	if len(history) == 0 {
		fmt.Fprintln(s.out, "no moves")
		return
	}

	for i, e := range history {
		fields := strings.Fields(e.FEN)
		number, turn := fields[5], fields[1]

		prefix := number + "."
		if turn == "b" {
			prefix = number + "..."
		}
		marker := ""
		if i > cursor {
			marker = " (undone)"
		}
		fmt.Fprintf(s.out, "%s %s%s\n", prefix, e.SAN, marker)
	}
}

// handlePerft runs a perft test.
func (s *Shell) handlePerft(args []string) error {
	depth := 3
	if len(args) > 0 {
		var err error
		if depth, err = strconv.Atoi(args[0]); err != nil || depth < 1 {
			return fmt.Errorf("invalid depth %q", args[0])
		}
	}

	start := time.Now()
	nodes := s.game.CurrentPosition().Perft(depth)
	elapsed := time.Since(start)

	fmt.Fprintf(s.out, "Nodes: %d\n", nodes)
	fmt.Fprintf(s.out, "Time: %v\n", elapsed)
	if elapsed > 0 {
		nps := float64(nodes) / elapsed.Seconds()
		fmt.Fprintf(s.out, "NPS: %.0f\n", nps)
	}
	s.log.Info().Int("depth", depth).Uint64("nodes", nodes).Dur("elapsed", elapsed).Msg("perft")
	return nil
}

// handleSave archives the current game. Saving again updates the same record.
func (s *Shell) handleSave(args []string) error {
	if s.store == nil {
		return errNoArchive
	}

	name := strings.Join(args, " ")
	if s.rec == nil {
		s.rec = storage.NewRecord(s.game, name)
	} else {
		s.rec.Update(s.game)
		if name != "" {
			s.rec.Name = name
		}
	}

	counted, err := s.store.RecordResult(s.rec)
	if err != nil {
		return err
	}
	if err := s.store.SaveGame(s.rec); err != nil {
		return err
	}

	fmt.Fprintf(s.out, "saved %s %s\n", shortID(s.rec.ID), s.rec.Name)
	if counted {
		s.infoColor.Fprintf(s.out, "result %s recorded\n", s.rec.Result)
	}
	return nil
}

func (s *Shell) handleGames() error {
	if s.store == nil {
		return errNoArchive
	}

	games, err := s.store.ListGames()
	if err != nil {
		return err
	}
	if len(games) == 0 {
		fmt.Fprintln(s.out, "no saved games")
		return nil
	}
	for _, rec := range games {
		fmt.Fprintf(s.out, "%s  %-24s %3d plies  %-7s %s\n",
			shortID(rec.ID), rec.Name, len(rec.Moves)-rec.Rewound, rec.Result,
			rec.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func (s *Shell) handleResume(args []string) error {
	if s.store == nil {
		return errNoArchive
	}
	if len(args) != 1 {
		return errors.New("usage: resume <id>")
	}

	rec, err := s.store.FindGame(args[0])
	if err != nil {
		return err
	}
	g, err := rec.Replay()
	if err != nil {
		return err
	}

	s.game = g
	s.rec = rec
	fmt.Fprintf(s.out, "resumed %s %s\n", shortID(rec.ID), rec.Name)
	fmt.Fprintln(s.out, g.CurrentPosition().ToFEN())
	return nil
}

func (s *Shell) handleDelete(args []string) error {
	if s.store == nil {
		return errNoArchive
	}
	if len(args) != 1 {
		return errors.New("usage: delete <id>")
	}

	rec, err := s.store.FindGame(args[0])
	if err != nil {
		return err
	}
	if err := s.store.DeleteGame(rec.ID); err != nil {
		return err
	}
	if s.rec != nil && s.rec.ID == rec.ID {
		s.rec = nil
	}
	fmt.Fprintf(s.out, "deleted %s %s\n", shortID(rec.ID), rec.Name)
	return nil
}

func (s *Shell) handleStats() error {
	if s.store == nil {
		return errNoArchive
	}

	stats, err := s.store.LoadStats()
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "games: %d\n", stats.GamesRecorded)
	fmt.Fprintf(s.out, "white wins: %d\n", stats.WhiteWins)
	fmt.Fprintf(s.out, "black wins: %d\n", stats.BlackWins)
	fmt.Fprintf(s.out, "draws: %d\n", stats.Draws)
	for _, st := range []board.Status{board.Checkmate, board.Stalemate, board.InsufficientMaterial,
		board.ThreefoldRepetition, board.FiftyMoveRule} {
		if n := stats.ByReason[st.String()]; n > 0 {
			fmt.Fprintf(s.out, "  %s: %d\n", st, n)
		}
	}
	fmt.Fprintf(s.out, "average length: %.1f plies\n", stats.AveragePlies())
	return nil
}

func (s *Shell) handleHelp() {
	fmt.Fprint(s.out, `commands:
  new                                 start a new game
  position startpos|fen <fen> [moves ...]
  move <e2e4|Nf3>                     play a move
  moves [square]                      list legal moves
  fen [trim]                          print the position
  status                              game status
  attacked <square> <w|b>             is the square attacked
  piece <square>                      piece on a square
  undo | redo                         step through the history
  history                             list played moves
  d                                   show the board
  perft <depth>                       count move-tree leaves
  save [name] | games | resume <id> | delete <id> | stats
  quit
`)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
