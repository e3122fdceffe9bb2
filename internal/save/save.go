// Package save extracts the few fields forecasts need from a simulation save
// file.
package save

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/louisbranch/valleycast/internal/u64"
)

const (
	// DefaultDaysPlayed is used when a save or caller omits the day counter.
	DefaultDaysPlayed = 1
	// DefaultYear is used when a save or caller omits the year.
	DefaultYear = 1

	rootElement   = "SaveGame"
	gameIDElement = "uniqueIDForThisGame"
	yearElement   = "year"
	statsElement  = "stats"
	daysElement   = "daysplayed"
)

var (
	// ErrMissingGameID indicates the save has no unique game identifier.
	ErrMissingGameID = errors.New("save has no game id")
	// ErrNotSave indicates the document root is not a save game.
	ErrNotSave = errors.New("document is not a save game")
	// ErrInvalidField indicates a numeric field held something else.
	ErrInvalidField = errors.New("invalid save field")
	// ErrInvalidDaysPlayed is the ErrInvalidField raised for the day counter.
	ErrInvalidDaysPlayed = fmt.Errorf("%w: days played", ErrInvalidField)
	// ErrInvalidYear is the ErrInvalidField raised for the year.
	ErrInvalidYear = fmt.Errorf("%w: year", ErrInvalidField)
)

// Summary is the caller-owned view of a save used to drive forecasts.
type Summary struct {
	GameID     u64.Value
	DaysPlayed int64
	Year       int
}

// NewSummary validates a game id and applies defaults for zero counters.
func NewSummary(gameID string, daysPlayed int64, year int) (Summary, error) {
	id, err := u64.Parse(strings.TrimSpace(gameID))
	if err != nil {
		return Summary{}, fmt.Errorf("game id: %w", err)
	}
	if daysPlayed < 0 {
		return Summary{}, fmt.Errorf("days played %d: %w", daysPlayed, ErrInvalidDaysPlayed)
	}
	if year < 0 {
		return Summary{}, fmt.Errorf("year %d: %w", year, ErrInvalidYear)
	}
	s := Summary{GameID: id, DaysPlayed: daysPlayed, Year: year}
	s.applyDefaults()
	return s, nil
}

func (s *Summary) applyDefaults() {
	if s.DaysPlayed == 0 {
		s.DaysPlayed = DefaultDaysPlayed
	}
	if s.Year == 0 {
		s.Year = DefaultYear
	}
}

// ReadFile reads a summary from a save file on disk.
func ReadFile(path string) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("open save: %w", err)
	}
	defer f.Close()
	return ReadXML(f)
}

// ReadXML streams a save document. The game id and year are read from
// direct children of the root; the day counter from the first daysPlayed
// element found under any stats element.
func ReadXML(r io.Reader) (Summary, error) {
	dec := xml.NewDecoder(r)
	var (
		path      []string
		summary   Summary
		foundID   bool
		foundDays bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Summary{}, fmt.Errorf("decode save: %w", err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if len(path) == 0 && el.Name.Local != rootElement {
				return Summary{}, fmt.Errorf("root %q: %w", el.Name.Local, ErrNotSave)
			}
			path = append(path, el.Name.Local)
			switch {
			case len(path) == 2 && el.Name.Local == gameIDElement:
				text, err := readText(dec, el)
				if err != nil {
					return Summary{}, err
				}
				path = path[:len(path)-1]
				id, err := u64.Parse(text)
				if err != nil {
					return Summary{}, fmt.Errorf("game id: %w", err)
				}
				summary.GameID, foundID = id, true
			case len(path) == 2 && el.Name.Local == yearElement:
				text, err := readText(dec, el)
				if err != nil {
					return Summary{}, err
				}
				path = path[:len(path)-1]
				year, err := strconv.Atoi(text)
				if err != nil || year < 0 {
					return Summary{}, fmt.Errorf("year %q: %w", text, ErrInvalidYear)
				}
				summary.Year = year
			case !foundDays && strings.EqualFold(el.Name.Local, daysElement) && len(path) >= 2 && path[len(path)-2] == statsElement:
				text, err := readText(dec, el)
				if err != nil {
					return Summary{}, err
				}
				path = path[:len(path)-1]
				days, err := strconv.ParseInt(text, 10, 64)
				if err != nil || days < 0 {
					return Summary{}, fmt.Errorf("days played %q: %w", text, ErrInvalidDaysPlayed)
				}
				summary.DaysPlayed, foundDays = days, true
			}
		case xml.EndElement:
			if len(path) > 0 {
				path = path[:len(path)-1]
			}
		}
	}
	if !foundID {
		return Summary{}, ErrMissingGameID
	}
	summary.applyDefaults()
	return summary, nil
}

// readText consumes character data up to and including the end of the
// current element.
func readText(dec *xml.Decoder, start xml.StartElement) (string, error) {
	var text string
	if err := dec.DecodeElement(&text, &start); err != nil {
		return "", fmt.Errorf("decode save: %w", err)
	}
	return strings.TrimSpace(text), nil
}
