// Package errors provides structured domain errors that map onto gRPC status
// codes with localized user messages.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"
	// CodeRequestInvalid represents a request that could not be decoded.
	CodeRequestInvalid Code = "REQUEST_INVALID"

	// Game identity errors
	CodeGameIDInvalid Code = "GAME_ID_INVALID"
	CodeGameIDMissing Code = "GAME_ID_MISSING"

	// Save errors
	CodeSaveInvalid Code = "SAVE_INVALID"
	CodeYearInvalid Code = "YEAR_INVALID"

	// Forecast errors
	CodeForecastInvalidFirstDay Code = "FORECAST_INVALID_FIRST_DAY"
	CodeForecastInvalidDayCount Code = "FORECAST_INVALID_DAY_COUNT"

	// Random engine errors
	CodeRandomInvalidRange Code = "RANDOM_INVALID_RANGE"

	// Storage errors
	CodeNotFound         Code = "NOT_FOUND"
	CodePageTokenInvalid Code = "PAGE_TOKEN_INVALID"
	CodeCacheCorrupt     Code = "CACHE_CORRUPT"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeRequestInvalid,
		CodeGameIDInvalid,
		CodeGameIDMissing,
		CodeSaveInvalid,
		CodeYearInvalid,
		CodeForecastInvalidFirstDay,
		CodeForecastInvalidDayCount,
		CodeRandomInvalidRange,
		CodePageTokenInvalid:
		return codes.InvalidArgument

	// NotFound - resource doesn't exist
	case CodeNotFound:
		return codes.NotFound

	// DataLoss - stored bytes no longer match their checksum
	case CodeCacheCorrupt:
		return codes.DataLoss

	default:
		return codes.Internal
	}
}
