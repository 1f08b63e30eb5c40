package panel

import (
	"strings"

	"github.com/vmunix/ampanel/internal/backend"
	"github.com/vmunix/ampanel/pkg/mediaurl"
)

// Options are the per-request settings passed through to the backend unchanged.
type Options struct {
	Quality    string
	SongOnly   bool
	MaxRetries int
}

func (o Options) request(urls []string) backend.CreateTaskRequest {
	return backend.CreateTaskRequest{
		Quality:    o.Quality,
		URLs:       urls,
		SongOnly:   o.SongOnly,
		MaxRetries: o.MaxRetries,
	}
}

// BuildTaskRequest builds the request for a single pasted URL.
// When an album is loaded and a strict subset of its tracks is selected,
// the selected indexes are sent; all or none selected downloads the whole album.
func BuildTaskRequest(rawURL string, opts Options, st *State) (backend.CreateTaskRequest, error) {
	u := strings.TrimSpace(rawURL)
	if u == "" {
		return backend.CreateTaskRequest{}, ErrEmptyURL
	}

	req := opts.request([]string{u})
	if st != nil && st.Kind() == KindAlbum {
		selected := st.SelectedTracks()
		if len(selected) > 0 && len(selected) < st.TrackCount() {
			req.Tracks = selected
		}
	}
	return req, nil
}

// BuildArtistRequest builds one request covering every checked artist album.
func BuildArtistRequest(opts Options, st *State) (backend.CreateTaskRequest, error) {
	if st == nil || !st.CanCreateFromArtist() {
		return backend.CreateTaskRequest{}, ErrNoAlbumsSelected
	}
	return opts.request(st.ChosenAlbumURLs()), nil
}

// BuildBatchRequest builds one request from free-form pasted text holding several URLs.
func BuildBatchRequest(raw string, opts Options) (backend.CreateTaskRequest, error) {
	urls := mediaurl.Split(raw)
	if len(urls) == 0 {
		return backend.CreateTaskRequest{}, ErrEmptyURL
	}
	return opts.request(urls), nil
}
