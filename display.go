package main

import (
	"fmt"
	"io"

	"github.com/handsomefox/redditposts/api"
)

// Display writes a human-readable summary of every post to w.
func Display(w io.Writer, posts []api.Post) error {
	for i := range posts {
		p := &posts[i]
		_, err := fmt.Fprintf(w, "Title: %s\nPermalink: %s\nVideo: %t, Gif: %t, Image: %t\nURL: %s\n\n",
			p.Title, p.Permalink, p.IsVideo, p.IsGif, p.IsImage, p.DestinationURL)
		if err != nil {
			return err
		}
	}
	return nil
}
