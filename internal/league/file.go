package league

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/goccy/go-json"
)

var (
	// ErrLeagueNotFound is returned when the export holds a different league.
	ErrLeagueNotFound = errors.New("league not found")

	// ErrSeasonNotFound is returned when a requested season is not exported.
	ErrSeasonNotFound = errors.New("season not found")
)

// Export is the JSON layout read by FileSource.
type Export struct {
	League  League       `json:"league"`
	Tracks  []Track      `json:"tracks"`
	Members []Member     `json:"members"`
	Seasons []SeasonData `json:"seasons"`
}

// FileSource serves league data from a JSON export.
type FileSource struct {
	export  Export
	seasons map[int64]SeasonData
}

// OpenFile reads the export at path.
func OpenFile(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open league export: %w", err)
	}
	defer f.Close()

	src, err := NewFileSource(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return src, nil
}

// NewFileSource decodes an export from r.
func NewFileSource(r io.Reader) (*FileSource, error) {
	var export Export
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, fmt.Errorf("decode league export: %w", err)
	}

	seasons := make(map[int64]SeasonData, len(export.Seasons))
	for _, s := range export.Seasons {
		if _, dup := seasons[s.Season.ID]; dup {
			return nil, fmt.Errorf("decode league export: season %d listed twice", s.Season.ID)
		}
		seasons[s.Season.ID] = s
	}

	return &FileSource{export: export, seasons: seasons}, nil
}

// League returns the exported league if its name matches, ignoring case.
func (s *FileSource) League(ctx context.Context, name string) (League, error) {
	if err := ctx.Err(); err != nil {
		return League{}, err
	}
	if !strings.EqualFold(s.export.League.Name, name) {
		return League{}, fmt.Errorf("%w: %s", ErrLeagueNotFound, name)
	}
	return s.export.League, nil
}

// Tracks returns all exported tracks.
func (s *FileSource) Tracks(ctx context.Context) ([]Track, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.export.Tracks, nil
}

// Members returns all exported league members.
func (s *FileSource) Members(ctx context.Context) ([]Member, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.export.Members, nil
}

// Seasons returns the seasons with the given ids, in the order requested.
func (s *FileSource) Seasons(ctx context.Context, ids []int64) ([]SeasonData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]SeasonData, 0, len(ids))
	for _, id := range ids {
		data, ok := s.seasons[id]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrSeasonNotFound, id)
		}
		out = append(out, data)
	}
	return out, nil
}
