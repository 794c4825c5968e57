package openai

import (
	"errors"

	openaigo "github.com/openai/openai-go/v3"
)

// StatusCode returns the HTTP status carried by err, or 0 when the API never answered.
func StatusCode(err error) int {
	var apiErr *openaigo.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
