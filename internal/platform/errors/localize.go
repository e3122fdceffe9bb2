package errors

import (
	"errors"

	"github.com/louisbranch/valleycast/internal/platform/errors/i18n"
)

// Localize returns the user-facing message for err in locale. Domain errors
// render from the catalog, status errors carrying a localized detail return
// it, and anything else falls back to err.Error().
func Localize(err error, locale string) string {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return i18n.GetCatalog(locale).Format(string(appErr.Code), appErr.Metadata)
	}
	if _, message, ok := FromStatus(err); ok && message != "" {
		return message
	}
	return err.Error()
}
