package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPosts(t *testing.T) {
	t.Parallel()
	body := GetSavedFeed(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/user/someone.json", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, UserAgent, r.Header.Get("User-Agent"), "unexpected user agent")
		assert.Equal(t, "t3_prev", r.URL.Query().Get("after"), "unexpected cursor")

		w.Header().Set("content-type", "application/json")
		_, err := w.Write(body)
		assert.NoError(t, err)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	u, err := url.Parse(server.URL)
	require.NoError(t, err)

	client := DefaultClient().WithBaseURL(u)
	feed, err := client.User.GetPosts(context.TODO(), &RequestOptions{Username: "someone", After: "t3_prev"})
	require.NoError(t, err)

	assert.Equal(t, "t3_txt1", feed.After, "unexpected cursor")
	require.Len(t, feed.Posts, 4, "the comment should be skipped")

	ids := make([]string, 0, len(feed.Posts))
	for _, p := range feed.Posts {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"abc", "gif1", "vid1", "txt1"}, ids, "unexpected order")

	assert.Equal(t, Post{
		Title:          "t",
		Permalink:      "/r/x/1",
		DestinationURL: "https://i.example/img.png",
		ID:             "abc",
		IsImage:        true,
		VideoPlatform:  PlatformUnknown,
	}, feed.Posts[0])

	gif := feed.Posts[1]
	assert.True(t, gif.IsGif, "is_gif is present, even though it's false")
	assert.True(t, gif.IsLink)
	assert.False(t, gif.IsImage)
	assert.Equal(t, PlatformRedGifs, gif.VideoPlatform)

	video := feed.Posts[2]
	assert.True(t, video.IsVideo)
	assert.False(t, video.IsImage)
	assert.False(t, video.IsLink)

	text := feed.Posts[3]
	assert.Empty(t, text.DestinationURL)
	assert.Equal(t, PlatformUnknown, text.VideoPlatform)
}

func TestGetPostsInvalidStatus(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	u, err := url.Parse(server.URL)
	require.NoError(t, err)

	feed, err := DefaultClient().WithBaseURL(u).User.GetPosts(context.TODO(), &RequestOptions{Username: "someone"})
	assert.Nil(t, feed)
	assert.ErrorIs(t, err, ErrInvalidStatusCode)
}

func TestGetPostsEmptyUsername(t *testing.T) {
	t.Parallel()
	_, err := DefaultClient().User.GetPosts(context.TODO(), &RequestOptions{})
	assert.Error(t, err)
}

func TestGetPostsInvalidUsername(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/Some_User-1.json", r.URL.Path, "unexpected request")
		http.NotFound(w, r)
	}))
	defer server.Close()

	u, err := url.Parse(server.URL)
	require.NoError(t, err)
	client := DefaultClient().WithBaseURL(u)

	for _, name := range []string{"../r/golang/hot", "a/b", "..", "some one", "a?after=x", "a%2Fb"} {
		feed, err := client.User.GetPosts(context.TODO(), &RequestOptions{Username: name})
		assert.Nil(t, feed, name)
		assert.ErrorIs(t, err, ErrInvalidUsername, name)
	}

	_, err = client.User.GetFeed(context.TODO(), &RequestOptions{Username: "Some_User-1"})
	assert.ErrorIs(t, err, ErrInvalidStatusCode, "valid names reach the server")
}

func TestParseFeedErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		body string
		want error
	}{
		{"not json", `<html>`, ErrParse},
		{"missing data", `{"kind":"Listing"}`, ErrMalformedFeed},
		{"missing children", `{"data":{"after":null}}`, ErrMalformedFeed},
		{"null children", `{"data":{"children":null}}`, ErrMalformedFeed},
		{"children not an array", `{"data":{"children":{"a":1}}}`, ErrMalformedFeed},
		{"item without data", `{"data":{"children":[{"kind":"t3"}]}}`, ErrMalformedItem},
		{"item not an object", `{"data":{"children":[42]}}`, ErrMalformedItem},
		{"missing id", `{"data":{"children":[{"data":{"title":"t","permalink":"/p","is_video":false}}]}}`, ErrMalformedItem},
		{"missing title", `{"data":{"children":[{"data":{"id":"a","permalink":"/p","is_video":false}}]}}`, ErrMalformedItem},
		{"missing permalink", `{"data":{"children":[{"data":{"id":"a","title":"t","is_video":false}}]}}`, ErrMalformedItem},
		{"missing is_video", `{"data":{"children":[{"data":{"id":"a","title":"t","permalink":"/p"}}]}}`, ErrMalformedItem},
		{"wrong type", `{"data":{"children":[{"data":{"id":1,"title":"t","permalink":"/p","is_video":false}}]}}`, ErrMalformedItem},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			feed, err := ParseFeed([]byte(tt.body))
			assert.Nil(t, feed, "no partial results")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseFeedMalformedItemFailsWholeFeed(t *testing.T) {
	t.Parallel()
	body := `{"data":{"children":[
		{"data":{"id":"a","title":"t","permalink":"/p","is_video":false}},
		{"data":{"id":"b","permalink":"/p","is_video":false}}
	]}}`
	feed, err := ParseFeed([]byte(body))
	assert.Nil(t, feed)
	assert.ErrorIs(t, err, ErrMalformedItem)
	assert.ErrorContains(t, err, "title")
}

func TestParseFeedSubmitterFilter(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		submitter string
		wantLen   int
	}{
		{"absent", ``, 1},
		{"null", `"is_submitter":null,`, 1},
		{"false", `"is_submitter":false,`, 0},
		{"true", `"is_submitter":true,`, 0},
		{"string", `"is_submitter":"yes",`, 0},
		{"object", `"is_submitter":{},`, 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			body := `{"data":{"children":[{"data":{` + tt.submitter +
				`"id":"a","title":"t","permalink":"/p","is_video":false}}]}}`
			feed, err := ParseFeed([]byte(body))
			require.NoError(t, err)
			assert.Len(t, feed.Posts, tt.wantLen)
		})
	}
}

func TestParseFeedSkipsSubmitterBeforeValidation(t *testing.T) {
	t.Parallel()
	body := `{"data":{"children":[
		{"data":{"is_submitter":"yes","id":"a"}},
		{"data":{"id":"b","title":"t","permalink":"/p","is_video":false}}
	]}}`
	feed, err := ParseFeed([]byte(body))
	require.NoError(t, err)
	require.Len(t, feed.Posts, 1)
	assert.Equal(t, "b", feed.Posts[0].ID)
}

func TestParseFeedKeepsEveryPost(t *testing.T) {
	t.Parallel()
	body := `{"data":{"children":[
		{"data":{"id":"a","title":"a","permalink":"/a","is_video":false}},
		{"data":{"id":"b","title":"b","permalink":"/b","is_video":true}},
		{"data":{"id":"c","title":"c","permalink":"/c","is_video":false,"post_hint":"link"}}
	]}}`
	feed, err := ParseFeed([]byte(body))
	require.NoError(t, err)
	assert.Len(t, feed.Posts, 3)
	assert.Empty(t, feed.After)

	feed, err = ParseFeed([]byte(`{"data":{"children":[]}}`))
	require.NoError(t, err)
	assert.Empty(t, feed.Posts)
}

func TestPostHint(t *testing.T) {
	t.Parallel()
	tests := []struct {
		hint          string
		image, isLink bool
	}{
		{`"image"`, true, false},
		{`"link"`, false, true},
		{`"hosted:video"`, false, false},
		{`"rich:video"`, false, false},
		{`"Image"`, false, false},
		{`null`, false, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.hint, func(t *testing.T) {
			t.Parallel()
			body := `{"data":{"children":[{"data":{"post_hint":` + tt.hint +
				`,"id":"a","title":"t","permalink":"/p","is_video":false}}]}}`
			feed, err := ParseFeed([]byte(body))
			require.NoError(t, err)
			require.Len(t, feed.Posts, 1)
			assert.Equal(t, tt.image, feed.Posts[0].IsImage)
			assert.Equal(t, tt.isLink, feed.Posts[0].IsLink)
		})
	}
}

func TestFindVideoPlatform(t *testing.T) {
	t.Parallel()
	tests := []struct {
		link string
		want VideoPlatform
	}{
		{"https://i.imgur.com/abc.gifv", PlatformImgur},
		{"https://redgifs.com/watch/abc123", PlatformRedGifs},
		{"https://www.redgifs.com/watch/abc123", PlatformRedGifs},
		{"https://example.com/?ref=redgifs.com&imgur.com", PlatformImgur},
		{"https://v.redd.it/xyz", PlatformUnknown},
		{"", PlatformUnknown},
		{"not a url at all", PlatformUnknown},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.link, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FindVideoPlatform(tt.link))
		})
	}
}

func TestVideoPlatformString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "imgur", PlatformImgur.String())
	assert.Equal(t, "redgifs", PlatformRedGifs.String())
	assert.Equal(t, "unknown", PlatformUnknown.String())
	assert.Equal(t, "invalid", VideoPlatform(0).String())
}

func GetSavedFeed(t *testing.T) []byte {
	t.Helper()
	b, err := os.ReadFile("testdata/user.json")
	require.NoError(t, err)
	return b
}
