package forecast

import (
	"context"
	"net"
	"reflect"
	"strings"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	mines "github.com/louisbranch/valleycast/internal/forecast"
	platformerrors "github.com/louisbranch/valleycast/internal/platform/errors"
	"github.com/louisbranch/valleycast/internal/u64"
)

func startForecastServer(t *testing.T, svc *Service) *Client {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	server := grpc.NewServer()
	RegisterForecastServiceServer(server, svc)
	go func() {
		_ = server.Serve(listener)
	}()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient(listener.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return NewClient(conn)
}

func TestClientForecastMines(t *testing.T) {
	t.Parallel()

	client := startForecastServer(t, newTestService(newFakeStore()))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := client.ForecastMines(ctx, ForecastMinesRequest{GameID: "18446744073709551615", FirstDay: 85, Days: 28})
	if err != nil {
		t.Fatalf("ForecastMines returned error: %v", err)
	}
	want, err := mines.ForecastMines(u64.MustParse("18446744073709551615"), 85, 28)
	if err != nil {
		t.Fatalf("ForecastMines: %v", err)
	}
	if !reflect.DeepEqual(got.Month, want) {
		t.Fatalf("forecast mismatch:\n got %+v\nwant %+v", got.Month, want)
	}
	if got.Cached {
		t.Fatal("expected computed forecast")
	}

	again, err := client.ForecastMines(ctx, ForecastMinesRequest{GameID: "18446744073709551615", FirstDay: 85, Days: 28})
	if err != nil {
		t.Fatalf("second ForecastMines returned error: %v", err)
	}
	if !again.Cached {
		t.Fatal("expected cached forecast")
	}

	list, err := client.ListForecasts(ctx, ListForecastsRequest{GameID: "18446744073709551615"})
	if err != nil {
		t.Fatalf("ListForecasts returned error: %v", err)
	}
	if len(list.Forecasts) != 1 || list.Forecasts[0].FirstDay != 85 {
		t.Fatalf("unexpected list %+v", list)
	}

	cached, err := client.GetForecast(ctx, GetForecastRequest{GameID: "18446744073709551615", FirstDay: 85, Days: 28})
	if err != nil {
		t.Fatalf("GetForecast returned error: %v", err)
	}
	if !reflect.DeepEqual(cached.Month, want) {
		t.Fatal("cached forecast mismatch")
	}
}

func TestClientInspectSeed(t *testing.T) {
	t.Parallel()

	client := startForecastServer(t, newTestService(nil))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := client.InspectSeed(ctx, InspectSeedRequest{Seed: 42, Draws: 3})
	if err != nil {
		t.Fatalf("InspectSeed returned error: %v", err)
	}
	if got.Seed != 42 || len(got.Samples) != 3 || got.Samples[0] != 1434747710 {
		t.Fatalf("unexpected response %+v", got)
	}
}

func TestClientLocalizedErrors(t *testing.T) {
	t.Parallel()

	client := startForecastServer(t, newTestService(nil))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := client.ForecastMines(WithLocale(ctx, "pt-BR"), ForecastMinesRequest{})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("code = %v, want InvalidArgument", status.Code(err))
	}
	reason, message, ok := platformerrors.FromStatus(err)
	if !ok || reason != platformerrors.CodeGameIDMissing {
		t.Fatalf("reason = %q (ok %v)", reason, ok)
	}
	if !strings.Contains(message, "obrigatório") {
		t.Fatalf("message = %q, want pt-BR text", message)
	}
}

func TestLocaleFromContext(t *testing.T) {
	t.Parallel()

	if got := LocaleFromContext(context.Background()); got != platformerrors.DefaultLocale {
		t.Fatalf("LocaleFromContext = %q, want default", got)
	}
	ctx := WithLocale(context.Background(), "  ")
	if ctx != context.Background() {
		t.Fatal("expected blank locale to leave context untouched")
	}
}
