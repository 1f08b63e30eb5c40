package panel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vmunix/ampanel/internal/backend"
)

// CheckItem is one row of a metadata checklist.
type CheckItem struct {
	Key     int // track index for albums, listing position for artists
	Label   string
	Value   string // album URL for artists
	Checked bool
}

// MetadataView is what a front end needs to draw the preview pane.
type MetadataView struct {
	Kind                Kind
	Title               string
	Artist              string
	Cover               string
	Items               []CheckItem
	SelectedCount       int
	CanCreateFromArtist bool
}

// Empty reports whether there is nothing to draw.
func (v MetadataView) Empty() bool {
	return v.Kind == KindNone
}

// RenderMetadata builds the checklist view for the current state.
func RenderMetadata(st *State) MetadataView {
	view := MetadataView{Kind: st.Kind()}

	switch st.Kind() {
	case KindAlbum:
		album := st.Album()
		view.Title = album.Title
		view.Artist = album.Artist
		view.Cover = album.Cover
		view.Items = make([]CheckItem, len(album.Tracks))
		for i, tr := range album.Tracks {
			view.Items[i] = CheckItem{
				Key:     tr.Index,
				Label:   fmt.Sprintf("%d. %s", tr.Index, tr.Name),
				Checked: st.trackSelected[i],
			}
		}
		view.SelectedCount = len(st.SelectedTracks())
	case KindArtist:
		artist := st.Artist()
		view.Items = make([]CheckItem, len(artist.Albums))
		for i, a := range artist.Albums {
			label := a.Name
			if a.Date != "" {
				label = fmt.Sprintf("%s (%s)", a.Name, a.Date)
			}
			view.Items[i] = CheckItem{
				Key:     i,
				Label:   label,
				Value:   a.URL,
				Checked: st.albumChecked[i],
			}
		}
		view.SelectedCount = len(st.chosen)
		view.CanCreateFromArtist = st.CanCreateFromArtist()
	}

	return view
}

// TaskRow is one rendered line of the task list.
type TaskRow struct {
	ID            string
	URL           string
	Quality       string
	Status        string
	Message       string
	Progress      int // percent, always within [0,100]
	RetryDisabled bool
}

// ClampProgress bounds a reported progress value to a drawable percentage.
func ClampProgress(p int) int {
	return min(max(p, 0), 100)
}

// TaskRows converts backend tasks into list rows, preserving order.
func TaskRows(tasks []backend.Task) []TaskRow {
	rows := make([]TaskRow, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		rows[i] = TaskRow{
			ID:            t.ID,
			URL:           t.URL,
			Quality:       t.Quality,
			Status:        t.Status,
			Message:       t.Message,
			Progress:      ClampProgress(t.Progress),
			RetryDisabled: t.Status == backend.StatusRunning,
		}
	}
	return rows
}

// TaskDetail is the summary shown for a single task.
type TaskDetail struct {
	ID       string
	URL      string
	Status   string
	Progress int
	Message  string
	Logs     []string
}

// DetailOf builds the detail summary of a task.
func DetailOf(t *backend.Task) TaskDetail {
	return TaskDetail{
		ID:       t.ID,
		URL:      t.URL,
		Status:   t.Status,
		Progress: ClampProgress(t.Progress),
		Message:  t.Message,
		Logs:     append([]string(nil), t.Logs...),
	}
}

// String renders the detail as plain text for a blocking summary dialog.
func (d TaskDetail) String() string {
	var b strings.Builder
	b.WriteString("Status: " + d.Status + "\n")
	b.WriteString("Progress: " + strconv.Itoa(d.Progress) + "%\n")
	if d.Message != "" {
		b.WriteString("Message: " + d.Message + "\n")
	}
	b.WriteString("\nLogs:\n")
	b.WriteString(strings.Join(d.Logs, "\n"))
	return b.String()
}
