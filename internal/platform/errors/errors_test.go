package errors

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestGRPCCode(t *testing.T) {
	tests := []struct {
		code Code
		want codes.Code
	}{
		{code: CodeRequestInvalid, want: codes.InvalidArgument},
		{code: CodeGameIDInvalid, want: codes.InvalidArgument},
		{code: CodeYearInvalid, want: codes.InvalidArgument},
		{code: CodeForecastInvalidDayCount, want: codes.InvalidArgument},
		{code: CodePageTokenInvalid, want: codes.InvalidArgument},
		{code: CodeNotFound, want: codes.NotFound},
		{code: CodeCacheCorrupt, want: codes.DataLoss},
		{code: CodeUnknown, want: codes.Internal},
	}
	for _, tt := range tests {
		if got := tt.code.GRPCCode(); got != tt.want {
			t.Fatalf("%s.GRPCCode() = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestErrorIsMatchesByCode(t *testing.T) {
	cause := errors.New("disk")
	err := fmt.Errorf("load: %w", Wrap(CodeNotFound, "forecast missing", cause))
	if !errors.Is(err, New(CodeNotFound, "")) {
		t.Fatal("expected errors.Is to match by code")
	}
	if errors.Is(err, New(CodeGameIDInvalid, "")) {
		t.Fatal("expected different code not to match")
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to remain reachable")
	}
	if GetCode(err) != CodeNotFound || !IsCode(err, CodeNotFound) {
		t.Fatalf("GetCode = %s", GetCode(err))
	}
	if GetCode(cause) != CodeUnknown {
		t.Fatal("expected plain error to be unknown")
	}
}

func TestHandleErrorAttachesDetails(t *testing.T) {
	err := HandleError(WithMetadata(CodeForecastInvalidDayCount, "days out of range", map[string]string{"MaxDays": "112"}), "pt-BR")
	st, ok := status.FromError(err)
	if !ok {
		t.Fatalf("expected status error, got %v", err)
	}
	if st.Code() != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", st.Code())
	}
	if st.Message() != "days out of range" {
		t.Fatalf("expected internal message, got %q", st.Message())
	}
	var info *errdetails.ErrorInfo
	var localized *errdetails.LocalizedMessage
	for _, d := range st.Details() {
		switch v := d.(type) {
		case *errdetails.ErrorInfo:
			info = v
		case *errdetails.LocalizedMessage:
			localized = v
		}
	}
	if info == nil || info.GetReason() != string(CodeForecastInvalidDayCount) || info.GetDomain() != Domain {
		t.Fatalf("unexpected error info %v", info)
	}
	if localized == nil || localized.GetLocale() != "pt-BR" {
		t.Fatalf("unexpected localized message %v", localized)
	}
	if localized.GetMessage() != "Uma previsão cobre entre 1 e 112 dias." {
		t.Fatalf("unexpected localized text %q", localized.GetMessage())
	}

	code, msg, ok := FromStatus(err)
	if !ok || code != CodeForecastInvalidDayCount || msg != localized.GetMessage() {
		t.Fatalf("FromStatus = (%s, %q, %v)", code, msg, ok)
	}
}

func TestHandleErrorPassThrough(t *testing.T) {
	if HandleError(nil, "") != nil {
		t.Fatal("expected nil for nil error")
	}
	original := status.Error(codes.Unavailable, "down")
	if got := HandleError(original, ""); got != original {
		t.Fatalf("expected status errors to pass through, got %v", got)
	}
	st, _ := status.FromError(HandleError(errors.New("boom"), ""))
	if st.Code() != codes.Internal {
		t.Fatalf("expected Internal, got %v", st.Code())
	}
	if _, _, ok := FromStatus(original); ok {
		t.Fatal("expected no domain code on plain status")
	}
}

func TestErrorMessageFallsBackToCause(t *testing.T) {
	err := Wrap(CodeSaveInvalid, "", errors.New("bad xml"))
	if err.Error() != "bad xml" {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestLocalize(t *testing.T) {
	if got := Localize(nil, "en-US"); got != "" {
		t.Fatalf("Localize(nil) = %q", got)
	}

	domainErr := fmt.Errorf("read: %w", WithMetadata(CodeGameIDInvalid, "parse", map[string]string{"GameID": "x1"}))
	if got := Localize(domainErr, "pt-BR"); got != "O id de jogo x1 deve ser um número inteiro." {
		t.Fatalf("Localize(domain) = %q", got)
	}

	statusErr := HandleError(New(CodeGameIDMissing, "missing"), "en-US")
	if got := Localize(statusErr, "pt-BR"); got != "A game id is required." {
		t.Fatalf("Localize(status) = %q, want server message", got)
	}

	if got := Localize(errors.New("plain"), "en-US"); got != "plain" {
		t.Fatalf("Localize(plain) = %q", got)
	}
}

func TestGetMetadata(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", WithMetadata(CodeRandomInvalidRange, "draws", map[string]string{"MaxDraws": "64"}))
	if got := GetMetadata(err)["MaxDraws"]; got != "64" {
		t.Fatalf("MaxDraws = %q, want 64", got)
	}
	if got := GetMetadata(errors.New("plain")); got != nil {
		t.Fatalf("GetMetadata(plain) = %v, want nil", got)
	}
}
