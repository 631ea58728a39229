// Package httpclient provides the outbound HTTP client used for webhook
// triggers. It is an interface so services can swap in a fake in tests.
package httpclient

import (
	"io"
	"net/http"
	"time"
)

// Outbound calls are fire-and-forget notifications; anything slower than
// this is treated as a failed delivery.
const defaultTimeout = 30 * time.Second

// Client is the subset of http.Client the services need.
type Client interface {
	Post(url, contentType string, body io.Reader) (*http.Response, error)
	Get(url string) (*http.Response, error)
	Do(req *http.Request) (*http.Response, error)
}

type standardClient struct {
	client *http.Client
}

// NewStandardClient returns a Client backed by net/http with the default
// delivery timeout.
func NewStandardClient() Client {
	return &standardClient{
		client: &http.Client{Timeout: defaultTimeout},
	}
}

func (c *standardClient) Post(url, contentType string, body io.Reader) (*http.Response, error) {
	return c.client.Post(url, contentType, body)
}

func (c *standardClient) Get(url string) (*http.Response, error) {
	return c.client.Get(url)
}

func (c *standardClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}
