// Package pagination normalizes list request paging.
package pagination

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPageToken indicates a page token that was not issued by EncodeCursor.
var ErrInvalidPageToken = errors.New("invalid page token")

// PageSizeConfig configures page size normalization.
type PageSizeConfig struct {
	Default int
	Max     int
}

// ClampPageSize applies defaults and limits for page sizes.
func ClampPageSize(value int32, cfg PageSizeConfig) int {
	pageSize := int(value)
	if pageSize <= 0 {
		pageSize = cfg.Default
	}
	if cfg.Max > 0 && pageSize > cfg.Max {
		pageSize = cfg.Max
	}
	if pageSize <= 0 {
		pageSize = 1
	}
	return pageSize
}

// EncodeCursor renders the last key of a page as an opaque token.
func EncodeCursor(last int64) string {
	return strconv.FormatInt(last, 10)
}

// DecodeCursor parses a token from EncodeCursor. An empty token starts from
// the beginning and decodes to zero.
func DecodeCursor(token string) (int64, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, nil
	}
	last, err := strconv.ParseInt(token, 10, 64)
	if err != nil || last < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPageToken, token)
	}
	return last, nil
}
