package forecast

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	mines "github.com/louisbranch/valleycast/internal/forecast"
)

// ForecastMinesRequest asks for a forecast window. Zero FirstDay and Days
// select day one and one season.
type ForecastMinesRequest struct {
	GameID   string `json:"game_id"`
	FirstDay int64  `json:"first_day,omitempty"`
	Days     int    `json:"days,omitempty"`
}

// ForecastMinesResponse carries the forecast and whether it came from cache.
type ForecastMinesResponse struct {
	mines.Month
	Cached bool `json:"cached"`
}

// GetForecastRequest names one cached forecast window.
type GetForecastRequest struct {
	GameID   string `json:"game_id"`
	FirstDay int64  `json:"first_day,omitempty"`
	Days     int    `json:"days,omitempty"`
}

// GetForecastResponse is a cached forecast and the time it was stored.
type GetForecastResponse struct {
	mines.Month
	CreatedAt time.Time `json:"created_at"`
}

// ListForecastsRequest pages through the cached windows of one game.
type ListForecastsRequest struct {
	GameID    string `json:"game_id"`
	PageSize  int32  `json:"page_size,omitempty"`
	PageToken string `json:"page_token,omitempty"`
}

// ForecastSummary describes one cached window.
type ForecastSummary struct {
	GameID    string    `json:"game_id"`
	FirstDay  int64     `json:"first_day"`
	Days      int       `json:"days"`
	CreatedAt time.Time `json:"created_at"`
}

// ListForecastsResponse is one page of cached windows.
type ListForecastsResponse struct {
	Forecasts     []ForecastSummary `json:"forecasts"`
	NextPageToken string            `json:"next_page_token,omitempty"`
}

// InspectSeedRequest asks for the first raw draws of a seed. Seeds outside
// the 32-bit range wrap; zero Draws selects the default count.
type InspectSeedRequest struct {
	Seed  int64 `json:"seed"`
	Draws int   `json:"draws,omitempty"`
}

// InspectSeedResponse lists raw internal samples and their doubles.
type InspectSeedResponse struct {
	Seed    int32     `json:"seed"`
	Samples []int32   `json:"samples"`
	Doubles []float64 `json:"doubles"`
}

// MaxExactInteger is the largest magnitude an integer field may carry.
// google.protobuf.Struct stores every number as a float64.
const MaxExactInteger = 1<<53 - 1

var (
	errNilMessage     = errors.New("message is required")
	errInexactInteger = errors.New("integer does not fit a float64 exactly")
)

// encodeMessage converts a typed message into the wire struct.
func encodeMessage(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}
	if err := checkIntegers(data); err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}
	msg := &structpb.Struct{}
	if err := protojson.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}
	return msg, nil
}

// decodeMessage converts a wire struct into a typed message. Strict decoding
// rejects names the typed message does not declare.
func decodeMessage(msg *structpb.Struct, v any, strict bool) error {
	if msg == nil {
		return errNilMessage
	}
	data, err := protojson.Marshal(msg)
	if err != nil {
		return fmt.Errorf("decode message: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode message: %w", err)
	}
	return nil
}

// checkIntegers walks an encoded message and fails on integer literals
// beyond MaxExactInteger, which the Struct encoding would round.
func checkIntegers(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return err
	}
	return walkIntegers(tree)
}

func walkIntegers(node any) error {
	switch v := node.(type) {
	case map[string]any:
		for _, child := range v {
			if err := walkIntegers(child); err != nil {
				return err
			}
		}
	case []any:
		for _, child := range v {
			if err := walkIntegers(child); err != nil {
				return err
			}
		}
	case json.Number:
		if strings.ContainsAny(v.String(), ".eE") {
			return nil
		}
		n, err := strconv.ParseInt(v.String(), 10, 64)
		if err != nil || n > MaxExactInteger || n < -MaxExactInteger {
			return fmt.Errorf("%w: %s", errInexactInteger, v)
		}
	}
	return nil
}
