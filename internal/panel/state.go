package panel

import (
	"fmt"

	"github.com/vmunix/ampanel/internal/backend"
)

// Kind is the type of metadata currently loaded.
type Kind int

const (
	KindNone Kind = iota
	KindAlbum
	KindArtist
)

func (k Kind) String() string {
	switch k {
	case KindAlbum:
		return "album"
	case KindArtist:
		return "artist"
	default:
		return "none"
	}
}

// State is the transient selection state of the panel.
// The kind and the loaded metadata always agree: only SetAlbum, SetArtist
// and Reset change them.
type State struct {
	kind   Kind
	album  *backend.AlbumMeta
	artist *backend.ArtistMeta

	trackSelected []bool // aligned with album.Tracks
	albumChecked  []bool // aligned with artist.Albums
	chosen        []string
}

// Kind returns the kind of the loaded metadata.
func (s *State) Kind() Kind { return s.kind }

// Album returns the loaded album, or nil unless Kind is KindAlbum.
func (s *State) Album() *backend.AlbumMeta { return s.album }

// Artist returns the loaded artist, or nil unless Kind is KindArtist.
func (s *State) Artist() *backend.ArtistMeta { return s.artist }

// Reset clears all metadata and selections.
func (s *State) Reset() {
	*s = State{}
}

// SetAlbum replaces the state with an album; every track starts selected.
func (s *State) SetAlbum(meta *backend.AlbumMeta) {
	s.Reset()
	if meta == nil {
		return
	}
	s.kind = KindAlbum
	s.album = meta
	s.trackSelected = make([]bool, len(meta.Tracks))
	for i := range s.trackSelected {
		s.trackSelected[i] = true
	}
}

// SetArtist replaces the state with an artist; no album starts checked.
func (s *State) SetArtist(meta *backend.ArtistMeta) {
	s.Reset()
	if meta == nil {
		return
	}
	s.kind = KindArtist
	s.artist = meta
	s.albumChecked = make([]bool, len(meta.Albums))
	s.chosen = []string{}
}

func (s *State) trackPos(index int) (int, bool) {
	if s.kind != KindAlbum {
		return 0, false
	}
	for i, tr := range s.album.Tracks {
		if tr.Index == index {
			return i, true
		}
	}
	return 0, false
}

// SetTrackSelected selects or deselects the track with the given index.
func (s *State) SetTrackSelected(index int, selected bool) error {
	pos, ok := s.trackPos(index)
	if !ok {
		return ErrNoMetadata
	}
	s.trackSelected[pos] = selected
	return nil
}

// ToggleTrack flips the selection of the track with the given index.
func (s *State) ToggleTrack(index int) error {
	pos, ok := s.trackPos(index)
	if !ok {
		return ErrNoMetadata
	}
	s.trackSelected[pos] = !s.trackSelected[pos]
	return nil
}

// SelectAllTracks selects every track of the loaded album.
func (s *State) SelectAllTracks() error {
	return s.setAllTracks(true)
}

// SelectNoTracks deselects every track of the loaded album.
func (s *State) SelectNoTracks() error {
	return s.setAllTracks(false)
}

func (s *State) setAllTracks(v bool) error {
	if s.kind != KindAlbum {
		return ErrNoMetadata
	}
	for i := range s.trackSelected {
		s.trackSelected[i] = v
	}
	return nil
}

// SelectOnlyTracks makes exactly the given track indexes selected.
// Every index is checked first; on error the selection is unchanged.
func (s *State) SelectOnlyTracks(indexes []int) error {
	if s.kind != KindAlbum {
		return ErrNoMetadata
	}
	next := make([]bool, len(s.trackSelected))
	for _, idx := range indexes {
		pos, ok := s.trackPos(idx)
		if !ok {
			return fmt.Errorf("track %d: %w", idx, ErrNoMetadata)
		}
		next[pos] = true
	}
	s.trackSelected = next
	return nil
}

// SelectedTracks returns the indexes of selected tracks in tracklist order.
func (s *State) SelectedTracks() []int {
	if s.kind != KindAlbum {
		return nil
	}
	out := make([]int, 0, len(s.trackSelected))
	for i, sel := range s.trackSelected {
		if sel {
			out = append(out, s.album.Tracks[i].Index)
		}
	}
	return out
}

// TrackCount returns the number of tracks of the loaded album.
func (s *State) TrackCount() int {
	if s.kind != KindAlbum {
		return 0
	}
	return len(s.album.Tracks)
}

// SetAlbumChecked checks or unchecks the artist album at position pos.
func (s *State) SetAlbumChecked(pos int, checked bool) error {
	if s.kind != KindArtist || pos < 0 || pos >= len(s.albumChecked) {
		return ErrNoMetadata
	}
	s.albumChecked[pos] = checked
	s.recomputeChosen()
	return nil
}

// ToggleAlbum flips the artist album at position pos.
func (s *State) ToggleAlbum(pos int) error {
	if s.kind != KindArtist || pos < 0 || pos >= len(s.albumChecked) {
		return ErrNoMetadata
	}
	s.albumChecked[pos] = !s.albumChecked[pos]
	s.recomputeChosen()
	return nil
}

// CheckOnlyAlbums makes exactly the given listing positions checked.
// Every position is checked first; on error the selection is unchanged.
func (s *State) CheckOnlyAlbums(positions []int) error {
	if s.kind != KindArtist {
		return ErrNoMetadata
	}
	next := make([]bool, len(s.albumChecked))
	for _, pos := range positions {
		if pos < 0 || pos >= len(next) {
			return fmt.Errorf("album %d: %w", pos+1, ErrNoMetadata)
		}
		next[pos] = true
	}
	s.albumChecked = next
	s.recomputeChosen()
	return nil
}

func (s *State) recomputeChosen() {
	s.chosen = s.chosen[:0]
	for i, checked := range s.albumChecked {
		if checked {
			s.chosen = append(s.chosen, s.artist.Albums[i].URL)
		}
	}
}

// ChosenAlbumURLs returns the URLs of checked albums in listing order.
func (s *State) ChosenAlbumURLs() []string {
	out := make([]string, len(s.chosen))
	copy(out, s.chosen)
	return out
}

// CanCreateFromArtist reports whether at least one artist album is checked.
func (s *State) CanCreateFromArtist() bool {
	return s.kind == KindArtist && len(s.chosen) > 0
}
