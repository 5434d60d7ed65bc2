package anthropic

import (
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/spetersoncode/switchboard/internal/retry"
)

// wrapError turns an Anthropic SDK API error into a *switchboard.Error carrying
// the status code and Retry-After delay.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *anthropic.Error
	if !errors.As(err, &apiErr) {
		// Not an API error, return as-is (likely network error, handled by heuristics)
		return err
	}
	return retry.FromStatus("anthropic api error", apiErr.StatusCode, apiErr.Response, err)
}
