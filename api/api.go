// package api contains the code required to fetch a user's posts from reddit,
// classify them by media type and resolve direct media URLs for them.
package api

import (
	"encoding/json"
	"strings"
)

// VideoPlatform is the hosting platform a post's destination URL points to.
// The zero value is not a valid platform, use FindVideoPlatform.
type VideoPlatform byte

const (
	_ VideoPlatform = iota
	PlatformImgur
	PlatformRedGifs
	PlatformUnknown
)

func (vp VideoPlatform) String() string {
	switch vp {
	case PlatformImgur:
		return "imgur"
	case PlatformRedGifs:
		return "redgifs"
	case PlatformUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// FindVideoPlatform looks for known hosting domains in the link.
// Imgur takes priority if both are present. The link is not validated.
func FindVideoPlatform(link string) VideoPlatform {
	if strings.Contains(link, "imgur.com") {
		return PlatformImgur
	}
	if strings.Contains(link, "redgifs.com") {
		return PlatformRedGifs
	}
	return PlatformUnknown
}

// Post is a classified feed item.
type Post struct {
	Title          string
	Permalink      string
	DestinationURL string
	ID             string

	IsVideo bool
	IsGif   bool
	IsImage bool
	IsLink  bool

	VideoPlatform VideoPlatform
}

// Feed is a single page of classified posts.
type Feed struct {
	// After is the cursor for the next page, empty if there is none.
	After string
	Posts []Post
}

// Everything below mimics reddit's responses.
// Pointers are used so that absent fields can be told apart from zero values.

type Listing struct {
	Data *struct {
		After *string `json:"after"`
		// Children are decoded one by one, so a bad item can be told apart from a bad listing.
		Children []json.RawMessage `json:"children"`
	} `json:"data"`
}

type Child struct {
	Kind string     `json:"kind"`
	Data *ChildData `json:"data"`
}

type ChildData struct {
	ID                  *string         `json:"id"`
	Title               *string         `json:"title"`
	Permalink           *string         `json:"permalink"`
	IsVideo             *bool           `json:"is_video"`
	IsSubmitter         json.RawMessage `json:"is_submitter"`
	URLOverriddenByDest *string         `json:"url_overridden_by_dest"`
	PostHint            *string         `json:"post_hint"`
	Preview             *Preview        `json:"preview"`
}

type Preview struct {
	RedditVideoPreview *struct {
		IsGif *bool `json:"is_gif"`
	} `json:"reddit_video_preview"`
}

// isSubmitter only checks for the presence of the flag, its value can be of any type.
// A null flag counts as absent.
func (d *ChildData) isSubmitter() bool {
	return len(d.IsSubmitter) > 0 && string(d.IsSubmitter) != "null"
}

// isGif only checks for the presence of the flag, not its value.
func (d *ChildData) isGif() bool {
	return d.Preview != nil &&
		d.Preview.RedditVideoPreview != nil &&
		d.Preview.RedditVideoPreview.IsGif != nil
}

func (d *ChildData) hint() string {
	if d.PostHint == nil {
		return ""
	}
	return *d.PostHint
}

func (d *ChildData) destination() string {
	if d.URLOverriddenByDest == nil {
		return ""
	}
	return *d.URLOverriddenByDest
}
