package backend

import "time"

// Task statuses reported by the backend. Unknown values are passed through as-is.
const (
	StatusQueued    = "queued"
	StatusRunning   = "running"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Track is one entry of an album tracklist. Index is 1-based.
type Track struct {
	Index int    `json:"index"`
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
}

// AlbumMeta is the preview of an album page.
type AlbumMeta struct {
	Title  string  `json:"title"`
	Artist string  `json:"artist"`
	Cover  string  `json:"cover,omitempty"`
	Tracks []Track `json:"tracks"`
}

// AlbumRef is one album listed on an artist page.
type AlbumRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Date string `json:"date,omitempty"`
	ID   string `json:"id,omitempty"`
}

// ArtistMeta is the preview of an artist page.
type ArtistMeta struct {
	Albums []AlbumRef `json:"albums"`
}

// Task is a server-side unit of download work.
type Task struct {
	ID         string     `json:"id"`
	URL        string     `json:"url"`
	Quality    string     `json:"quality"`
	Status     string     `json:"status"`
	Progress   int        `json:"progress"`
	TotalUnits int        `json:"totalUnits,omitempty"`
	DoneUnits  int        `json:"doneUnits,omitempty"`
	Message    string     `json:"message,omitempty"`
	Logs       []string   `json:"logs,omitempty"`
	Canceled   bool       `json:"canceled,omitempty"`
	SubPercent int        `json:"subPercent,omitempty"`
	SubMessage string     `json:"subMessage,omitempty"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

// Finished reports whether the task reached a terminal status.
func (t *Task) Finished() bool {
	return t.Status == StatusSucceeded || t.Status == StatusFailed
}

// CreateTaskRequest is the body of POST /v1/tasks.
// An empty Tracks downloads the whole album.
type CreateTaskRequest struct {
	Quality    string   `json:"quality"`
	URLs       []string `json:"urls"`
	Tracks     []int    `json:"tracks,omitempty"`
	SongOnly   bool     `json:"songOnly,omitempty"`
	MaxRetries int      `json:"maxRetries,omitempty"`
}

// CreateTaskResponse acknowledges created tasks, one per URL.
type CreateTaskResponse struct {
	TaskIDs []string `json:"taskIds"`
	Count   int      `json:"count"`
}

// StatusResponse is the generic acknowledgment returned by task actions.
type StatusResponse struct {
	Status string `json:"status"`
}

type clearResponse struct {
	Deleted int `json:"deleted"`
}

// Search result kinds accepted by the search endpoint.
const (
	SearchAlbum  = "album"
	SearchSong   = "song"
	SearchArtist = "artist"
)

// SearchRequest is a catalog keyword search.
// Zero Limit and Offset leave paging to the server.
type SearchRequest struct {
	Query  string
	Type   string
	Limit  int
	Offset int
}

// SearchItem is one search hit. Which optional fields are set depends on
// the search type: albums carry Year and Tracks, songs carry Album and
// artists carry Genres.
type SearchItem struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	Artist string `json:"artist,omitempty"`
	Album  string `json:"album,omitempty"`
	Year   string `json:"year,omitempty"`
	Tracks int    `json:"tracks,omitempty"`
	Genres string `json:"genres,omitempty"`
}

type searchResponse struct {
	Items []SearchItem `json:"items"`
}

// CleanupFolder reports what happened to one download folder.
// Folders that do not exist are Skipped with a Reason; per-entry failures
// name the Item that could not be removed.
type CleanupFolder struct {
	Folder       string `json:"folder"`
	DeletedFiles int    `json:"deletedFiles,omitempty"`
	DeletedDirs  int    `json:"deletedDirs,omitempty"`
	Skipped      bool   `json:"skipped,omitempty"`
	Reason       string `json:"reason,omitempty"`
	Item         string `json:"item,omitempty"`
	Error        string `json:"error,omitempty"`
}

// CleanupResult is the outcome of emptying the download folders.
type CleanupResult struct {
	DeletedFiles int             `json:"deletedFiles"`
	DeletedDirs  int             `json:"deletedDirs"`
	Folders      []CleanupFolder `json:"folders"`
}
