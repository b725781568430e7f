package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mongodb/deadpool"
	"github.com/pkg/errors"
)

// Client reads pool state from a remote StatusService.
type Client struct {
	url    string
	client *http.Client
}

// NewClient takes the base URL of a StatusService, including any
// prefix the service's app is mounted under, and constructs a new
// Client.
func NewClient(url string) (*Client, error) {
	return NewClientFromExisting(&http.Client{}, url)
}

// NewClientFromExisting takes an existing http.Client object and
// produces a new Client object.
func NewClientFromExisting(client *http.Client, url string) (*Client, error) {
	if client == nil {
		return nil, errors.New("must use a non-nil existing client")
	}

	if url == "" {
		return nil, errors.New("must specify a service url")
	}

	return &Client{
		url:    strings.TrimRight(url, "/"),
		client: client,
	}, nil
}

// Stats fetches the remote pool's stats.
func (c *Client) Stats(ctx context.Context) (deadpool.PoolStats, error) {
	out := deadpool.PoolStats{}
	if err := c.get(ctx, "/v1/status", &out); err != nil {
		return deadpool.PoolStats{}, errors.WithStack(err)
	}

	return out, nil
}

// Workers fetches the remote pool's worker counts.
func (c *Client) Workers(ctx context.Context) (WorkersStatus, error) {
	out := WorkersStatus{}
	if err := c.get(ctx, "/v1/status/workers", &out); err != nil {
		return WorkersStatus{}, errors.WithStack(err)
	}

	return out, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+path, nil)
	if err != nil {
		return errors.Wrap(err, "problem building request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "problem requesting '%s'", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("request to '%s' returned status %d", path, resp.StatusCode)
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "problem decoding response from '%s'", path)
	}

	return nil
}
