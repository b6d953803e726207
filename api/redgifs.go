package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	redgifsHost = "redgifs.com"
	// redgifsWatchPrefix is the path of public watch pages, e.g. https://redgifs.com/watch/abc123.
	redgifsWatchPrefix = "/watch/"
)

type gfycatResponse struct {
	GfyItem *struct {
		ContentURLs *struct {
			MP4 *struct {
				URL string `json:"url"`
			} `json:"mp4"`
		} `json:"content_urls"`
	} `json:"gfyItem"`
}

// ResolveMediaURL returns a direct, downloadable media URL for the destination URL of a post.
//
// It returns an error when:
//   - the platform is Imgur (ErrUnsupportedPlatform);
//   - the platform is unknown, or the URL isn't a watch page (ErrCannotResolve);
//   - the lookup fails or returns something unexpected.
func (c *Client) ResolveMediaURL(ctx context.Context, destURL string, platform VideoPlatform) (string, error) {
	switch platform {
	case PlatformRedGifs:
		return c.resolveRedGifs(ctx, destURL)
	case PlatformImgur:
		return "", fmt.Errorf("%w: %s (url=%s)", ErrUnsupportedPlatform, platform, destURL)
	default:
		return "", fmt.Errorf("%w: unknown platform (url=%s)", ErrCannotResolve, destURL)
	}
}

func (c *Client) resolveRedGifs(ctx context.Context, destURL string) (string, error) {
	apiURL, err := c.redgifsLookupURL(destURL)
	if err != nil {
		return "", err
	}
	log.Debug().Str("url", destURL).Str("lookup", apiURL).Msg("resolving redgifs url")

	b, err := c.getBody(ctx, apiURL)
	if err != nil {
		return "", err
	}

	var res gfycatResponse
	if err := json.Unmarshal(b, &res); err != nil {
		return "", fmt.Errorf("%w: %v (url=%s)", ErrParse, err, apiURL)
	}
	if res.GfyItem == nil || res.GfyItem.ContentURLs == nil ||
		res.GfyItem.ContentURLs.MP4 == nil || res.GfyItem.ContentURLs.MP4.URL == "" {
		return "", fmt.Errorf("%w: gfyItem.content_urls.mp4.url is missing (url=%s)", ErrParse, apiURL)
	}

	return res.GfyItem.ContentURLs.MP4.URL, nil
}

// redgifsLookupURL swaps the watch page prefix for the api lookup path, keeping the rest of the path.
// The query string of the watch page is dropped.
func (c *Client) redgifsLookupURL(destURL string) (string, error) {
	u, err := url.Parse(destURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCannotResolve, err)
	}
	if host := u.Hostname(); host != redgifsHost && !strings.HasSuffix(host, "."+redgifsHost) {
		return "", fmt.Errorf("%w: not a redgifs host (url=%s)", ErrCannotResolve, destURL)
	}

	rest, ok := strings.CutPrefix(u.Path, redgifsWatchPrefix)
	if !ok || rest == "" {
		return "", fmt.Errorf("%w: not a redgifs watch page (url=%s)", ErrCannotResolve, destURL)
	}

	return c.redgifs.JoinPath(rest).String(), nil
}
