package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/handsomefox/redditposts/api"
	"github.com/handsomefox/redditposts/files"
	"github.com/rs/zerolog/log"
)

// Saver downloads the media of posts, one post at a time.
type Saver struct {
	skipped int64
	saved   int64

	client *api.Client
	dir    string
}

func NewSaver(client *api.Client, dir string) *Saver {
	return &Saver{
		client: client,
		dir:    dir,
	}
}

// Run saves images as {dir}/{id}.png and resolved gifs as {dir}/{id}.mp4, in feed order.
// Posts of other types, and posts without a resolvable media URL, are skipped.
// The first error stops the run.
func (s *Saver) Run(ctx context.Context, posts []api.Post) error {
	if err := files.MkdirIfMissing(s.dir); err != nil {
		return err
	}

	for i := range posts {
		if err := s.savePost(ctx, &posts[i]); err != nil {
			return err
		}
	}

	log.Info().Int64("saved", s.saved).Int64("skipped", s.skipped).Msg("Finished downloading")

	return nil
}

func (s *Saver) savePost(ctx context.Context, p *api.Post) error {
	if !p.IsImage && !p.IsGif {
		log.Debug().Str("id", p.ID).Msg("skipped a post without an image or a gif")
		s.skipped++
		return nil
	}

	if p.IsImage {
		if err := s.saveImage(ctx, p); err != nil {
			return err
		}
	}

	if p.IsGif {
		if err := s.saveGif(ctx, p); err != nil {
			return err
		}
	}

	return nil
}

func (s *Saver) saveImage(ctx context.Context, p *api.Post) error {
	if p.DestinationURL == "" {
		s.skip(p, fmt.Errorf("%w: empty destination url", api.ErrCannotResolve))
		return nil
	}

	return s.download(ctx, p.DestinationURL, p.ID, "png")
}

func (s *Saver) saveGif(ctx context.Context, p *api.Post) error {
	mediaURL, err := s.client.ResolveMediaURL(ctx, p.DestinationURL, p.VideoPlatform)
	if err != nil {
		if errors.Is(err, api.ErrCannotResolve) {
			s.skip(p, err)
			return nil
		}
		return fmt.Errorf("%w: couldn't resolve media of post(id=%s)", err, p.ID)
	}

	return s.download(ctx, mediaURL, p.ID, "mp4")
}

func (s *Saver) skip(p *api.Post, err error) {
	log.Warn().Err(err).Str("id", p.ID).Str("platform", p.VideoPlatform.String()).Msg("cannot resolve media URL, skipping")
	s.skipped++
}

// download streams the media at url to {dir}/{name}.{extension}.
func (s *Saver) download(ctx context.Context, url, name, extension string) error {
	filename, err := files.Filename(name, extension)
	if err != nil {
		return err
	}
	path := filepath.Join(s.dir, filename)

	if files.Exists(path) {
		log.Debug().Str("path", path).Msg("overwriting existing file")
	}
	log.Debug().Str("url", url).Str("path", path).Msg("download started")

	res, err := s.client.GetURL(ctx, url)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	n, err := files.Save(path, res.Body)
	if err != nil {
		return fmt.Errorf("%w: download failed (url=%s)", err, url)
	}

	log.Info().Str("path", path).Str("size", humanize.Bytes(uint64(n))).Msg("download completed")
	s.saved++

	return nil
}
