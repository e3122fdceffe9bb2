package forecast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/protobuf/types/known/structpb"

	mines "github.com/louisbranch/valleycast/internal/forecast"
	platformerrors "github.com/louisbranch/valleycast/internal/platform/errors"
	"github.com/louisbranch/valleycast/internal/platform/grpc/pagination"
	"github.com/louisbranch/valleycast/internal/platform/otel"
	"github.com/louisbranch/valleycast/internal/random"
	"github.com/louisbranch/valleycast/internal/services/forecast/storage"
	"github.com/louisbranch/valleycast/internal/u64"
)

const (
	defaultListForecastsPageSize = 10
	maxListForecastsPageSize     = 50

	defaultFirstDay = 1
	defaultDays     = 28
)

// Service implements ForecastServiceServer. A nil store disables caching for
// ForecastMines and makes the cache reads fail.
type Service struct {
	store  storage.Store
	clock  func() time.Time
	tracer trace.Tracer
	logf   func(string, ...any)
}

// NewService creates a forecast service backed by an optional cache.
func NewService(store storage.Store) *Service {
	return &Service{
		store:  store,
		clock:  time.Now,
		tracer: otel.Tracer("github.com/louisbranch/valleycast/internal/services/forecast"),
		logf:   log.Printf,
	}
}

// ForecastMines computes a forecast window, serving repeats from cache.
func (s *Service) ForecastMines(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, in, s.forecastMines)
}

// GetForecast returns a previously cached forecast window.
func (s *Service) GetForecast(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, in, s.getForecast)
}

// ListForecasts returns a page of cached windows for one game.
func (s *Service) ListForecasts(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, in, s.listForecasts)
}

// InspectSeed returns the first raw draws of a seed.
func (s *Service) InspectSeed(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, in, s.inspectSeed)
}

// serve decodes in, runs fn and converts its domain errors to status errors
// rendered in the caller's locale.
func serve[Req, Resp any](ctx context.Context, in *structpb.Struct, fn func(context.Context, Req) (Resp, error)) (*structpb.Struct, error) {
	locale := LocaleFromContext(ctx)
	var req Req
	if err := decodeMessage(in, &req, true); err != nil {
		return nil, platformerrors.HandleError(platformerrors.Wrap(platformerrors.CodeRequestInvalid, err.Error(), err), locale)
	}
	resp, err := fn(ctx, req)
	if err != nil {
		return nil, platformerrors.HandleError(err, locale)
	}
	out, err := encodeMessage(resp)
	if err != nil {
		return nil, platformerrors.HandleError(err, locale)
	}
	return out, nil
}

func (s *Service) forecastMines(ctx context.Context, in ForecastMinesRequest) (ForecastMinesResponse, error) {
	key, err := parseKey(in.GameID, in.FirstDay, in.Days)
	if err != nil {
		return ForecastMinesResponse{}, err
	}

	ctx, span := s.tracer.Start(ctx, "forecast.ForecastMines", trace.WithAttributes(keyAttributes(key)...))
	defer span.End()

	if s.store != nil {
		month, ok := s.cachedMonth(ctx, key)
		if ok {
			span.SetAttributes(attribute.Bool("forecast.cached", true))
			return ForecastMinesResponse{Month: month, Cached: true}, nil
		}
	}

	month, err := mines.ForecastMines(key.GameID, key.FirstDay, key.Days)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return ForecastMinesResponse{}, windowError(err)
	}
	span.SetAttributes(attribute.Bool("forecast.cached", false))

	if s.store != nil {
		s.storeMonth(ctx, key, month)
	}
	return ForecastMinesResponse{Month: month}, nil
}

// cachedMonth reads a cached window. Misses and unreadable entries both
// report false so the caller recomputes and overwrites.
func (s *Service) cachedMonth(ctx context.Context, key storage.Key) (mines.Month, bool) {
	record, err := s.store.GetForecast(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logf("forecast cache read %s day %d: %v", key.GameID, key.FirstDay, err)
		}
		return mines.Month{}, false
	}
	var month mines.Month
	if err := json.Unmarshal(record.Payload, &month); err != nil {
		s.logf("forecast cache decode %s day %d: %v", key.GameID, key.FirstDay, err)
		return mines.Month{}, false
	}
	return month, true
}

func (s *Service) storeMonth(ctx context.Context, key storage.Key, month mines.Month) {
	payload, err := json.Marshal(month)
	if err != nil {
		s.logf("forecast cache encode %s day %d: %v", key.GameID, key.FirstDay, err)
		return
	}
	record := storage.Record{
		Key:       key,
		Payload:   payload,
		Checksum:  storage.Checksum(payload),
		CreatedAt: s.now(),
	}
	if err := s.store.PutForecast(ctx, record); err != nil {
		s.logf("forecast cache write %s day %d: %v", key.GameID, key.FirstDay, err)
	}
}

func (s *Service) getForecast(ctx context.Context, in GetForecastRequest) (GetForecastResponse, error) {
	key, err := parseKey(in.GameID, in.FirstDay, in.Days)
	if err != nil {
		return GetForecastResponse{}, err
	}
	if s.store == nil {
		return GetForecastResponse{}, errors.New("forecast store is not configured")
	}

	ctx, span := s.tracer.Start(ctx, "forecast.GetForecast", trace.WithAttributes(keyAttributes(key)...))
	defer span.End()

	record, err := s.store.GetForecast(ctx, key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return GetForecastResponse{}, platformerrors.Wrap(platformerrors.CodeNotFound, "forecast not cached", err)
	case errors.Is(err, storage.ErrChecksumMismatch):
		span.RecordError(err)
		return GetForecastResponse{}, platformerrors.Wrap(platformerrors.CodeCacheCorrupt, "cached forecast corrupt", err)
	case err != nil:
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return GetForecastResponse{}, fmt.Errorf("get forecast: %w", err)
	}

	var month mines.Month
	if err := json.Unmarshal(record.Payload, &month); err != nil {
		return GetForecastResponse{}, platformerrors.Wrap(platformerrors.CodeCacheCorrupt, "decode cached forecast", err)
	}
	return GetForecastResponse{Month: month, CreatedAt: record.CreatedAt}, nil
}

func (s *Service) listForecasts(ctx context.Context, in ListForecastsRequest) (ListForecastsResponse, error) {
	gameID, err := parseGameID(in.GameID)
	if err != nil {
		return ListForecastsResponse{}, err
	}
	if s.store == nil {
		return ListForecastsResponse{}, errors.New("forecast store is not configured")
	}

	pageSize := pagination.ClampPageSize(in.PageSize, pagination.PageSizeConfig{
		Default: defaultListForecastsPageSize,
		Max:     maxListForecastsPageSize,
	})
	page, err := s.store.ListForecasts(ctx, gameID, pageSize, in.PageToken)
	if err != nil {
		if errors.Is(err, pagination.ErrInvalidPageToken) {
			return ListForecastsResponse{}, platformerrors.Wrap(platformerrors.CodePageTokenInvalid, "list forecasts", err)
		}
		return ListForecastsResponse{}, fmt.Errorf("list forecasts: %w", err)
	}

	resp := ListForecastsResponse{
		Forecasts:     make([]ForecastSummary, 0, len(page.Forecasts)),
		NextPageToken: page.NextPageToken,
	}
	for _, summary := range page.Forecasts {
		resp.Forecasts = append(resp.Forecasts, ForecastSummary{
			GameID:    summary.GameID.String(),
			FirstDay:  summary.FirstDay,
			Days:      summary.Days,
			CreatedAt: summary.CreatedAt,
		})
	}
	return resp, nil
}

func (s *Service) inspectSeed(ctx context.Context, in InspectSeedRequest) (InspectSeedResponse, error) {
	if in.Seed > MaxExactInteger || in.Seed < -MaxExactInteger {
		return InspectSeedResponse{}, inexactInteger("seed", in.Seed)
	}
	// Integer seeds wrap modulo 2^32, matching random.ToInt32.
	seed := int32(in.Seed)
	_, span := s.tracer.Start(ctx, "forecast.InspectSeed", trace.WithAttributes(
		attribute.Int("random.seed", int(seed)),
		attribute.Int("random.draws", in.Draws),
	))
	defer span.End()

	inspection, err := random.Inspect(seed, in.Draws)
	if err != nil {
		return InspectSeedResponse{}, platformerrors.WrapWithMetadata(
			platformerrors.CodeRandomInvalidRange,
			fmt.Sprintf("draw count %d out of range", in.Draws),
			map[string]string{"MaxDraws": strconv.Itoa(random.MaxInspectDraws)},
			err,
		)
	}
	return InspectSeedResponse{
		Seed:    inspection.Seed,
		Samples: inspection.Samples,
		Doubles: inspection.Doubles,
	}, nil
}

func (s *Service) now() time.Time {
	if s.clock == nil {
		return time.Now().UTC()
	}
	return s.clock().UTC()
}

func parseGameID(value string) (u64.Value, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return u64.Value{}, platformerrors.New(platformerrors.CodeGameIDMissing, "game id is required")
	}
	gameID, err := u64.Parse(value)
	if err != nil {
		return u64.Value{}, platformerrors.WrapWithMetadata(
			platformerrors.CodeGameIDInvalid,
			"parse game id",
			map[string]string{"GameID": value},
			err,
		)
	}
	return gameID, nil
}

func parseKey(gameID string, firstDay int64, days int) (storage.Key, error) {
	id, err := parseGameID(gameID)
	if err != nil {
		return storage.Key{}, err
	}
	if firstDay == 0 {
		firstDay = defaultFirstDay
	}
	if days == 0 {
		days = defaultDays
	}
	if err := mines.ValidateWindow(firstDay, days); err != nil {
		return storage.Key{}, windowError(err)
	}
	// The last day is echoed back in the response, so it must stay exact too.
	if firstDay > MaxExactInteger-int64(days)+1 {
		return storage.Key{}, inexactInteger("first_day", firstDay)
	}
	return storage.Key{GameID: id, FirstDay: firstDay, Days: days}, nil
}

// inexactInteger reports a field beyond MaxExactInteger. Such values reach the
// server already rounded to a neighbouring float64.
func inexactInteger(field string, value int64) error {
	return platformerrors.WithMetadata(
		platformerrors.CodeRequestInvalid,
		fmt.Sprintf("%s %d exceeds the exact integer range", field, value),
		map[string]string{"Field": field},
	)
}

func windowError(err error) error {
	switch {
	case errors.Is(err, mines.ErrInvalidFirstDay):
		return platformerrors.Wrap(platformerrors.CodeForecastInvalidFirstDay, err.Error(), err)
	case errors.Is(err, mines.ErrInvalidDayCount):
		return platformerrors.WrapWithMetadata(
			platformerrors.CodeForecastInvalidDayCount,
			err.Error(),
			map[string]string{"MaxDays": strconv.Itoa(mines.MaxDays)},
			err,
		)
	default:
		return err
	}
}

func keyAttributes(key storage.Key) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("forecast.game_id", key.GameID.String()),
		attribute.Int64("forecast.first_day", key.FirstDay),
		attribute.Int("forecast.days", key.Days),
	}
}

var _ ForecastServiceServer = (*Service)(nil)
