package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hailam/chessrules/internal/board"
)

// Storage keys
const (
	keyStats   = "stats"
	gamePrefix = "game/"
)

// ErrGameNotFound is returned when no record exists for an ID.
var ErrGameNotFound = errors.New("storage: game not found")

// GameRecord is an archived game. Moves are kept in UCI form and replayed from
// StartFEN on load, so the record stays valid as long as the rules do.
type GameRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartFEN  string    `json:"start_fen"`
	Moves     []string  `json:"moves"`
	SAN       []string  `json:"san"`
	Rewound   int       `json:"rewound"`
	FinalFEN  string    `json:"final_fen"`
	Status    string    `json:"status"`
	Result    string    `json:"result"`
	Counted   bool      `json:"counted"` // included in GameStats
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewRecord snapshots g into a new record. An empty name gets a generated one.
func NewRecord(g *board.Game, name string) *GameRecord {
	if name == "" {
		name = petname.Generate(2, "-")
	}
	now := time.Now().UTC()
	rec := &GameRecord{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
	}
	rec.Update(g)
	return rec
}

// Update refreshes the record from g, keeping its ID, name and creation time.
func (r *GameRecord) Update(g *board.Game) {
	history := g.History()

	r.StartFEN = g.ToFEN()
	if len(history) > 0 {
		r.StartFEN = history[0].FEN
	}
	r.Moves = make([]string, len(history))
	r.SAN = make([]string, len(history))
	for i, e := range history {
		r.Moves[i] = e.Move.String()
		r.SAN[i] = e.SAN
	}
	r.Rewound = g.Rewound()

	cur := g.CurrentPosition()
	r.FinalFEN = cur.ToFEN()
	r.Status = cur.Status().String()
	r.Result = cur.Result()
	r.UpdatedAt = time.Now().UTC()
}

// Replay rebuilds the game by playing the recorded moves from StartFEN and
// restoring the undo state.
func (r *GameRecord) Replay() (*board.Game, error) {
	g, err := board.ParseFEN(r.StartFEN)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", r.ID, err)
	}
	for i, m := range r.Moves {
		if err := g.MoveUCI(m); err != nil {
			return nil, fmt.Errorf("record %s move %d: %w", r.ID, i+1, err)
		}
	}
	for i := 0; i < r.Rewound; i++ {
		if !g.Undo() {
			break
		}
	}
	return g, nil
}

// GameStats stores result tallies of archived finished games.
type GameStats struct {
	GamesRecorded int            `json:"games_recorded"`
	WhiteWins     int            `json:"white_wins"`
	BlackWins     int            `json:"black_wins"`
	Draws         int            `json:"draws"`
	ByReason      map[string]int `json:"by_reason"`
	TotalPlies    int            `json:"total_plies"`
	LongestGame   int            `json:"longest_game"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{
		ByReason: make(map[string]int),
	}
}

// AveragePlies returns the mean game length in plies.
func (s *GameStats) AveragePlies() float64 {
	if s.GamesRecorded == 0 {
		return 0
	}
	return float64(s.TotalPlies) / float64(s.GamesRecorded)
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db  *badger.DB
	log zerolog.Logger
}

// NewStorage opens the database in the platform data directory.
func NewStorage(log zerolog.Logger) (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir, log)
}

// Open opens (or creates) the database in dir.
func Open(dir string, log zerolog.Logger) (*Storage, error) {
	log = log.With().Str("component", "storage").Logger()

	opts := badger.DefaultOptions(dir)
	opts.Logger = badgerLogger{log: log}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dir, err)
	}

	log.Debug().Str("dir", dir).Msg("database opened")
	return &Storage{db: db, log: log}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func gameKey(id string) []byte {
	return []byte(gamePrefix + id)
}

// SaveGame writes rec, replacing any record with the same ID.
func (s *Storage) SaveGame(rec *GameRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(rec.ID), data)
	})
	if err != nil {
		return err
	}

	s.log.Debug().Str("id", rec.ID).Str("name", rec.Name).Int("plies", len(rec.Moves)).Msg("game saved")
	return nil
}

// LoadGame reads the record with the given ID.
func (s *Storage) LoadGame(id string) (*GameRecord, error) {
	var rec GameRecord

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrGameNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

// FindGame resolves an ID prefix to a single record, as short IDs are easier to type.
func (s *Storage) FindGame(prefix string) (*GameRecord, error) {
	if rec, err := s.LoadGame(prefix); err == nil || !errors.Is(err, ErrGameNotFound) {
		return rec, err
	}

	games, err := s.ListGames()
	if err != nil {
		return nil, err
	}

	var match *GameRecord
	for _, rec := range games {
		if strings.HasPrefix(rec.ID, prefix) {
			if match != nil {
				return nil, fmt.Errorf("storage: id prefix %q is ambiguous", prefix)
			}
			match = rec
		}
	}
	if match == nil {
		return nil, ErrGameNotFound
	}
	return match, nil
}

// ListGames returns every archived game, most recently updated first.
func (s *Storage) ListGames() ([]*GameRecord, error) {
	var games []*GameRecord

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(gamePrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			rec := &GameRecord{}
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, rec)
			})
			if err != nil {
				return err
			}
			games = append(games, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(games, func(i, j int) bool {
		return games[i].UpdatedAt.After(games[j].UpdatedAt)
	})
	return games, nil
}

// DeleteGame removes the record with the given ID.
func (s *Storage) DeleteGame(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(gameKey(id)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrGameNotFound
			}
			return err
		}
		return txn.Delete(gameKey(id))
	})
}

// SaveStats saves game statistics
func (s *Storage) SaveStats(stats *GameStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil // Use empty stats
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})
	if stats.ByReason == nil {
		stats.ByReason = make(map[string]int)
	}

	return stats, err
}

// RecordResult adds a finished game to the statistics and marks rec as
// counted. Games still in progress or already counted are ignored and reported
// as false; save rec afterwards to persist the mark.
func (s *Storage) RecordResult(rec *GameRecord) (bool, error) {
	if rec.Counted || rec.Result == "" || rec.Result == "*" {
		return false, nil
	}

	stats, err := s.LoadStats()
	if err != nil {
		return false, err
	}

	stats.GamesRecorded++
	switch rec.Result {
	case "1-0":
		stats.WhiteWins++
	case "0-1":
		stats.BlackWins++
	default:
		stats.Draws++
	}
	stats.ByReason[rec.Status]++

	plies := len(rec.Moves) - rec.Rewound
	stats.TotalPlies += plies
	if plies > stats.LongestGame {
		stats.LongestGame = plies
	}

	if err := s.SaveStats(stats); err != nil {
		return false, err
	}
	rec.Counted = true

	s.log.Info().Str("id", rec.ID).Str("result", rec.Result).Str("reason", rec.Status).Msg("result recorded")
	return true, nil
}

// badgerLogger routes badger's internal logging through zerolog.
type badgerLogger struct {
	log zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error().Msgf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn().Msgf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Debug().Msgf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Trace().Msgf(strings.TrimSpace(format), args...)
}
