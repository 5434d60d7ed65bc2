package retry

import (
	"errors"
	"net/http"
	"strconv"
	"testing"
	"time"

	sb "github.com/spetersoncode/switchboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func response(retryAfter string) *http.Response {
	h := http.Header{}
	if retryAfter != "" {
		h.Set("Retry-After", retryAfter)
	}
	return &http.Response{Header: h}
}

func TestFromStatus(t *testing.T) {
	cause := errors.New("api said no")

	tests := []struct {
		code int
		want sb.ErrorCategory
	}{
		{429, sb.ErrorTransient},
		{529, sb.ErrorTransient},
		{401, sb.ErrorPermanent},
		{404, sb.ErrorUserInput},
		{501, sb.ErrorPermanent},
	}
	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.code), func(t *testing.T) {
			err := FromStatus("provider api error", tt.code, response("2"), cause)

			var e *sb.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.want, e.Cat)
			assert.Equal(t, tt.code, e.Code)
			assert.Equal(t, 2*time.Second, e.RetryDelay)
			assert.Equal(t, "provider api error: api said no", e.Error())
			assert.ErrorIs(t, err, cause)
		})
	}
}

func TestFromStatusIsReclassifiedByClientConfig(t *testing.T) {
	err := FromStatus("provider api error", 501, nil, nil)
	require.True(t, sb.IsPermanent(err))

	cfg := DefaultConfig()
	cfg.RetryStatusCodes = append(cfg.RetryStatusCodes, 501)
	assert.True(t, sb.IsTransient(Classify(err, &cfg)))
}

func TestParseRetryAfter(t *testing.T) {
	assert.Zero(t, ParseRetryAfter(nil))
	assert.Zero(t, ParseRetryAfter(response("")))
	assert.Zero(t, ParseRetryAfter(response("soon")))
	assert.Equal(t, 30*time.Second, ParseRetryAfter(response("30")))

	future := time.Now().Add(time.Minute).UTC().Format(http.TimeFormat)
	d := ParseRetryAfter(response(future))
	assert.Greater(t, d, 50*time.Second)
	assert.LessOrEqual(t, d, time.Minute)

	past := time.Now().Add(-time.Minute).UTC().Format(http.TimeFormat)
	assert.Zero(t, ParseRetryAfter(response(past)))
}
