package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alexflint/go-arg"
	"github.com/handsomefox/redditposts/api"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	var args AppArguments
	p := arg.MustParse(&args)

	args.Username = strings.TrimSpace(args.Username)
	if args.Username == "" {
		p.Fail("you must provide a username")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if args.VerboseLogging {
		log.Logger = log.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Level(zerolog.InfoLevel)
	}

	log.Debug().Any("app_arguments", args).Send()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, &args, api.DefaultClient(), os.Stdout)
	stop()
	if err != nil {
		log.Fatal().Err(err).Msg("error running the app")
	}
}

// run fetches a single page of the user's posts, then either prints or downloads them.
func run(ctx context.Context, args *AppArguments, client *api.Client, w io.Writer) error {
	log.Debug().Stringer("reddit", client.BaseURL()).Stringer("redgifs", client.RedGifsURL()).Msg("using api endpoints")

	feed, err := client.User.GetPosts(ctx, &api.RequestOptions{
		Username: args.Username,
		After:    args.After,
	})
	if err != nil {
		return err
	}

	log.Debug().Int("count", len(feed.Posts)).Str("user", args.Username).Msg("fetched posts")
	if feed.After != "" {
		log.Info().Str("after", feed.After).Msg("more posts available, pass --after to fetch them")
	}

	if !args.Download {
		return Display(w, feed.Posts)
	}

	return NewSaver(client, args.SaveDirectory).Run(ctx, feed.Posts)
}
