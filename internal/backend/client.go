package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/singleflight"
)

const defaultTimeout = 10 * time.Second

// Client calls the quit-smoking REST backend on behalf of a session.
// Concurrent GETs for the same token and path share one request.
type Client struct {
	baseURL  string
	timeout  time.Duration
	inflight singleflight.Group
}

type rawResponse struct {
	status int
	body   []byte
}

func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	parsed, err := url.Parse(trimmed)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q", baseURL)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{baseURL: trimmed, timeout: timeout}, nil
}

func (client *Client) BaseURL() string {
	return client.baseURL
}

func (client *Client) get(ctx context.Context, token string, path string, out any) error {
	key := token + " " + path
	results := client.inflight.DoChan(key, func() (any, error) {
		return client.do(fiber.MethodGet, token, path, nil)
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case result := <-results:
		if result.Err != nil {
			return result.Err
		}
		return decodeResponse(result.Val.(rawResponse), path, out)
	}
}

func (client *Client) send(ctx context.Context, method string, token string, path string, payload any, out any) error {
	type outcome struct {
		response rawResponse
		err      error
	}
	results := make(chan outcome, 1)
	go func() {
		response, err := client.do(method, token, path, payload)
		results <- outcome{response: response, err: err}
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case result := <-results:
		if result.err != nil {
			return result.err
		}
		return decodeResponse(result.response, path, out)
	}
}

func (client *Client) do(method string, token string, path string, payload any) (rawResponse, error) {
	endpoint := client.baseURL + path

	var agent *fiber.Agent
	switch method {
	case fiber.MethodGet:
		agent = fiber.Get(endpoint)
	case fiber.MethodPost:
		agent = fiber.Post(endpoint)
	case fiber.MethodPut:
		agent = fiber.Put(endpoint)
	case fiber.MethodDelete:
		agent = fiber.Delete(endpoint)
	default:
		return rawResponse{}, fmt.Errorf("unsupported method %s", method)
	}

	agent.Timeout(client.timeout)
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if token != "" {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	if payload != nil {
		agent.JSON(payload)
	}

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return rawResponse{}, fmt.Errorf("%s %s: %w", method, path, errors.Join(errs...))
	}
	return rawResponse{status: status, body: body}, nil
}

func decodeResponse(response rawResponse, path string, out any) error {
	if response.status < 200 || response.status >= 300 {
		return newAPIError(response.status, path, response.body)
	}
	if out == nil || len(response.body) == 0 {
		return nil
	}
	if err := json.Unmarshal(response.body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
