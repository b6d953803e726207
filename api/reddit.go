package api

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const (
	defaultBaseURL    = "https://www.reddit.com"
	defaultRedGifsURL = "https://api.redgifs.com/v1/gfycats"

	// UserAgent is sent with every request, reddit rejects the default Go one.
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:90.0) Gecko/20100101 Firefox/90.0"
)

// Client is used to make every request to reddit and the media hosts.
type Client struct {
	User *UserService

	client *http.Client

	base    *url.URL
	redgifs *url.URL
}

func (c *Client) WithBaseURL(u *url.URL) *Client {
	c.base = u
	return c
}

func (c *Client) WithRedGifsURL(u *url.URL) *Client {
	c.redgifs = u
	return c
}

// WithHTTPClient replaces the underlying client, the default one has no timeout.
func (c *Client) WithHTTPClient(client *http.Client) *Client {
	c.client = client
	return c
}

// GetURL performs a GET request with the required headers.
// Non-200 responses are closed and reported as errors.
func (c *Client) GetURL(ctx context.Context, surl string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, surl, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: couldn't create the request", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	res, err := c.client.Do(req)
	if err != nil {
		return nil, newFetchError(err, surl)
	}

	if res.StatusCode != http.StatusOK {
		res.Body.Close()
		return nil, newFetchError(fmt.Errorf("%w: %s", ErrInvalidStatusCode, res.Status), surl)
	}

	return res, nil
}

// getBody reads the whole response, used for the (small) JSON payloads only.
func (c *Client) getBody(ctx context.Context, surl string) ([]byte, error) {
	res, err := c.GetURL(ctx, surl)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, newFetchError(fmt.Errorf("%w: couldn't read response body", err), surl)
	}

	return b, nil
}

func (c *Client) BaseURL() *url.URL {
	return c.base
}

func (c *Client) RedGifsURL() *url.URL {
	return c.redgifs
}

func DefaultClient() *Client {
	baseURL, _ := url.Parse(defaultBaseURL)
	redgifsURL, _ := url.Parse(defaultRedGifsURL)
	c := &Client{
		client: &http.Client{
			Transport: &http.Transport{
				TLSNextProto: map[string]func(authority string, c *tls.Conn) http.RoundTripper{},
			},
		},
		base:    baseURL,
		redgifs: redgifsURL,
	}
	c.User = &UserService{
		client: c,
	}
	return c
}
