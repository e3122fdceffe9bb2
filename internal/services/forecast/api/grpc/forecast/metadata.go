package forecast

import (
	"context"
	"strings"

	"google.golang.org/grpc/metadata"

	platformerrors "github.com/louisbranch/valleycast/internal/platform/errors"
)

// LocaleHeader is the gRPC metadata key selecting the error message locale.
const LocaleHeader = "x-valleycast-locale"

// WithLocale attaches a locale to outgoing calls made with ctx.
func WithLocale(ctx context.Context, locale string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, LocaleHeader, locale)
}

// LocaleFromContext returns the caller's locale, or the default one.
func LocaleFromContext(ctx context.Context) string {
	if ctx == nil {
		return platformerrors.DefaultLocale
	}
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return platformerrors.DefaultLocale
	}
	for _, value := range md.Get(LocaleHeader) {
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return platformerrors.DefaultLocale
}
