package console

import (
	"errors"
	"strings"

	"github.com/erinpaul2002/careops-console/internal/api"
)

// apiMessage prefers the backend's own error text over the generic
// fallback when one is present.
func apiMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	return fallback
}
