package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

type UserService struct {
	client *Client
}

type RequestOptions struct {
	Username string
	// After is the pagination cursor, the first page is requested when empty.
	After string
}

// GetFeed returns the raw JSON listing of the user's posts.
func (s *UserService) GetFeed(ctx context.Context, opts *RequestOptions) ([]byte, error) {
	if opts == nil || opts.Username == "" {
		return nil, fmt.Errorf("empty username")
	}
	if !validUsername(opts.Username) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidUsername, opts.Username)
	}
	u := s.feedURL(opts)
	log.Debug().Str("url", u).Msg("fetching feed")

	return s.client.getBody(ctx, u)
}

// GetPosts fetches a single page of the user's feed and classifies it.
func (s *UserService) GetPosts(ctx context.Context, opts *RequestOptions) (*Feed, error) {
	b, err := s.GetFeed(ctx, opts)
	if err != nil {
		return nil, err
	}

	feed, err := ParseFeed(b)
	if err != nil {
		return nil, fmt.Errorf("%w (user=%s)", err, opts.Username)
	}

	return feed, nil
}

// validUsername only allows characters reddit allows in usernames, so the name can't change the feed path.
func validUsername(name string) bool {
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return false
		}
	}
	return name != ""
}

func (s *UserService) feedURL(opts *RequestOptions) string {
	u := s.client.base.
		JoinPath("user").
		JoinPath(opts.Username + ".json")

	if opts.After != "" {
		values := u.Query()
		values.Set("after", opts.After)
		u.RawQuery = values.Encode()
	}

	return u.String()
}

// ParseFeed decodes a listing and classifies every item in it, keeping the feed order.
// Items that carry an is_submitter flag are skipped.
// Either every item is returned, or an error.
func ParseFeed(b []byte) (*Feed, error) {
	var l Listing
	if err := json.Unmarshal(b, &l); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: %v", ErrMalformedFeed, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	if l.Data == nil || l.Data.Children == nil {
		return nil, fmt.Errorf("%w: data.children is missing", ErrMalformedFeed)
	}

	feed := &Feed{
		Posts: make([]Post, 0, len(l.Data.Children)),
	}
	if l.Data.After != nil {
		feed.After = *l.Data.After
	}

	for i, raw := range l.Data.Children {
		var child Child
		if err := json.Unmarshal(raw, &child); err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrMalformedItem, i, err)
		}
		if child.Data == nil {
			return nil, fmt.Errorf("%w: item %d: data is missing", ErrMalformedItem, i)
		}
		if child.Data.isSubmitter() {
			log.Debug().Int("index", i).Str("kind", child.Kind).Msg("skipped an item with is_submitter")
			continue
		}

		post, err := classify(child.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d", err, i)
		}
		feed.Posts = append(feed.Posts, *post)
	}

	return feed, nil
}

func classify(d *ChildData) (*Post, error) {
	switch {
	case d.ID == nil:
		return nil, fmt.Errorf("%w: missing id", ErrMalformedItem)
	case d.Title == nil:
		return nil, fmt.Errorf("%w: missing title", ErrMalformedItem)
	case d.Permalink == nil:
		return nil, fmt.Errorf("%w: missing permalink", ErrMalformedItem)
	case d.IsVideo == nil:
		return nil, fmt.Errorf("%w: missing is_video", ErrMalformedItem)
	}

	dest := d.destination()

	return &Post{
		Title:          *d.Title,
		Permalink:      *d.Permalink,
		DestinationURL: dest,
		ID:             *d.ID,
		IsVideo:        *d.IsVideo,
		IsGif:          d.isGif(),
		IsImage:        d.hint() == "image",
		IsLink:         d.hint() == "link",
		VideoPlatform:  FindVideoPlatform(dest),
	}, nil
}
