package azopenai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/alexmanie/sk-tracing-utils/internal/logger"
	"github.com/alexmanie/sk-tracing-utils/internal/utils"
)

// fetchJSON fetches JSON from the specified URI with the configured api-version.
//
//nolint:revive // Has no sense, it's cause Go doesn't allow struct methods to be generic.
func fetchJSON[T any](c *ClientImpl, ctx context.Context, uri string) (*FetchJSONResult[T], error) {
	return doJSON[T](c, ctx, http.MethodGet, uri, nil)
}

// postJSON posts the payload as JSON to the specified URI with the configured api-version.
//
//nolint:revive // Has no sense, it's cause Go doesn't allow struct methods to be generic.
func postJSON[T any](c *ClientImpl, ctx context.Context, uri string, payload any) (*FetchJSONResult[T], error) {
	return doJSON[T](c, ctx, http.MethodPost, uri, payload)
}

// postJSONWithRetry posts the payload, retrying requests rejected with
// HTTP 429 up to the configured attempt count with a bounded random pause.
//
//nolint:revive // Has no sense, it's cause Go doesn't allow struct methods to be generic.
func postJSONWithRetry[T any](
	c *ClientImpl,
	ctx context.Context,
	uri string,
	payload any,
) (*FetchJSONResult[T], error) {
	attempts := c.cfg.RetryAttemptsCount
	if attempts <= 0 {
		attempts = 1
	}

	var (
		result *FetchJSONResult[T]
		err    error
	)

	for i := int64(0); i < attempts; i++ {
		result, err = postJSON[T](c, ctx, uri, payload)
		if err == nil {
			return result, nil
		}

		// Only throttling is worth another attempt.
		if result == nil || result.StatusCode != http.StatusTooManyRequests {
			return nil, err
		}

		if i == attempts-1 {
			break
		}

		logger.Infof(ctx, "Retrying throttled request (%d attempts left): %v", attempts-i-1, err)
		utils.RandomPause(c.cfg.ParsedMinRetryPause, c.cfg.ParsedMaxRetryPause)
	}

	return nil, fmt.Errorf("%w: %w", ErrTooManyRequests, err)
}

// doJSON sends a request with an optional JSON payload and decodes the JSON response.
//
//nolint:revive // Has no sense, it's cause Go doesn't allow struct methods to be generic.
func doJSON[T any](
	c *ClientImpl,
	ctx context.Context,
	method, uri string,
	payload any,
) (*FetchJSONResult[T], error) {
	route, err := url.JoinPath(c.baseURL, uri)
	if err != nil {
		return nil, err
	}

	var body *bytes.Reader
	if payload != nil {
		encoded, encodeErr := json.Marshal(payload)
		if encodeErr != nil {
			return nil, encodeErr
		}

		body = bytes.NewReader(encoded)
	}

	var request *http.Request
	if body != nil {
		request, err = http.NewRequestWithContext(ctx, method, route, body)
	} else {
		request, err = http.NewRequestWithContext(ctx, method, route, http.NoBody)
	}

	if err != nil {
		return nil, err
	}

	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	query := request.URL.Query()
	query.Set(apiVersionParam, c.cfg.APIVersion)
	request.URL.RawQuery = query.Encode()

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, err
	}

	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return &FetchJSONResult[T]{
			Data:       nil,
			StatusCode: response.StatusCode,
		}, fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, response.StatusCode)
	}

	var result T
	if err = json.NewDecoder(response.Body).Decode(&result); err != nil {
		return &FetchJSONResult[T]{
			Data:       nil,
			StatusCode: response.StatusCode,
		}, err
	}

	return &FetchJSONResult[T]{
		Data:       &result,
		StatusCode: response.StatusCode,
	}, nil
}
