package openai

import (
	"errors"

	"github.com/openai/openai-go"
	"github.com/spetersoncode/switchboard/internal/retry"
)

// wrapError turns an OpenAI SDK API error into a *switchboard.Error carrying
// the status code and Retry-After delay.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		// Not an API error, return as-is (likely network error, handled by heuristics)
		return err
	}
	return retry.FromStatus("openai api error", apiErr.StatusCode, apiErr.Response, err)
}
