package main

// AppArguments are the command-line arguments of redditposts.
type AppArguments struct {
	Username       string `arg:"positional,required" help:"name of the reddit user to fetch the posts of"`
	After          string `arg:"-a,--after" help:"pagination cursor, fetches the page after it instead of the latest one"`
	SaveDirectory  string `arg:"--dir" default:"." help:"directory to download the media to"`
	Download       bool   `arg:"-d,--download" help:"download images and gifs instead of printing the posts"`
	VerboseLogging bool   `arg:"-v,--verbose" help:"enable debug logging"`
}

func (AppArguments) Description() string {
	return "redditposts lists the latest posts of a reddit user, or downloads their images and gifs.\n"
}
