package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/ampanel/internal/backend"
	"github.com/vmunix/ampanel/internal/panel"
	"github.com/vmunix/ampanel/internal/store"
)

func TestMetaCmd_Album(t *testing.T) {
	h := newHarness(t)

	res := h.run("meta", albumURL)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Blue - Joni Mitchell")
	assert.Contains(t, res.stdout, "Tracks (3 selected of 3)")
	assert.Contains(t, res.stdout, "[x] 2. My Old Man")
}

func TestMetaCmd_ArtistJSON(t *testing.T) {
	h := newHarness(t)

	res := h.run("meta", "--json", artistURL)
	require.NoError(t, res.err)

	var got metaJSON
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
	assert.Equal(t, "artist", got.Kind)
	require.Len(t, got.Items, 3)
	assert.Equal(t, "Blue (1971-06-22)", got.Items[1].Label)
	assert.Equal(t, albumURL, got.Items[1].URL)
	assert.False(t, got.Items[1].Checked)
}

func TestMetaCmd_OtherURLMakesNoRequest(t *testing.T) {
	h := newHarness(t)

	res := h.run("meta", "https://music.example.com/us/playlist/x")
	assert.ErrorIs(t, res.err, errNotCatalogURL)
	assert.Empty(t, h.backend.Calls())
}

func TestMetaCmd_NotFoundIsAlertedOnce(t *testing.T) {
	h := newHarness(t)
	h.backend.album = nil

	res := h.run("meta", albumURL)
	require.Error(t, res.err)
	assert.True(t, panel.IsAlerted(res.err))
	assert.Equal(t, "Error: not found\n", res.stderr)
}

func TestCreateCmd_WholeAlbumOmitsTracks(t *testing.T) {
	h := newHarness(t)

	res := h.run("create", albumURL)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Created 1 task(s)")
	assert.Contains(t, res.stdout, "task-1")

	created := h.backend.Created()
	require.Len(t, created, 1)
	assert.Equal(t, []string{albumURL}, created[0].URLs)
	assert.Equal(t, "alac", created[0].Quality)
	assert.Nil(t, created[0].Tracks)
}

func TestCreateCmd_TrackSubset(t *testing.T) {
	h := newHarness(t)

	res := h.run("create", "--tracks", "1,3", "--quality", "aac", albumURL)
	require.NoError(t, res.err)

	created := h.backend.Created()
	require.Len(t, created, 1)
	assert.Equal(t, []int{1, 3}, created[0].Tracks)
	assert.Equal(t, "aac", created[0].Quality)
}

func TestCreateCmd_UnknownTrack(t *testing.T) {
	h := newHarness(t)

	res := h.run("create", "--tracks", "9", albumURL)
	require.Error(t, res.err)
	assert.Empty(t, h.backend.Created())
}

func TestCreateCmd_Batch(t *testing.T) {
	h := newHarness(t)
	second := "https://music.example.com/us/album/court/3"

	res := h.run("create", "--json", albumURL, second)
	require.NoError(t, res.err)

	var resp backend.CreateTaskResponse
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &resp))
	assert.Equal(t, 2, resp.Count)

	created := h.backend.Created()
	require.Len(t, created, 1)
	assert.Equal(t, []string{albumURL, second}, created[0].URLs)
}

func TestCreateCmd_ConfigDefaults(t *testing.T) {
	h := newHarness(t)
	h.writeConfig("song_only = true\nmax_retries = 3")

	res := h.run("create", albumURL)
	require.NoError(t, res.err)

	created := h.backend.Created()
	require.Len(t, created, 1)
	assert.True(t, created[0].SongOnly)
	assert.Equal(t, 3, created[0].MaxRetries)
}

func TestCreateCmd_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"invalid quality", []string{"create", "--quality", "flac", albumURL}},
		{"tracks with batch", []string{"create", "--tracks", "1", albumURL, artistURL}},
		{"tracks on artist", []string{"create", "--tracks", "1", artistURL}},
		{"bad track list", []string{"create", "--tracks", "3-1", albumURL}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			res := h.run(tt.args...)
			require.Error(t, res.err)
			assert.Empty(t, h.backend.Created())
		})
	}
}

func TestArtistCmd_ListsWithoutSelection(t *testing.T) {
	h := newHarness(t)

	res := h.run("artist", artistURL)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Albums (3):")
	assert.Contains(t, res.stdout, "3. [ ] Court and Spark (1974-01-17)")
	assert.Contains(t, res.stdout, "Use --albums")
	assert.Empty(t, h.backend.Created())
}

func TestArtistCmd_ByPosition(t *testing.T) {
	h := newHarness(t)

	res := h.run("artist", "--albums", "2-3", artistURL)
	require.NoError(t, res.err)

	created := h.backend.Created()
	require.Len(t, created, 1)
	assert.Equal(t, []string{albumURL, "https://music.example.com/us/album/court/3"}, created[0].URLs)
	assert.Nil(t, created[0].Tracks)
}

func TestArtistCmd_ByMatch(t *testing.T) {
	h := newHarness(t)

	res := h.run("artist", "--match", "court & spark", artistURL)
	require.NoError(t, res.err)

	created := h.backend.Created()
	require.Len(t, created, 1)
	assert.Equal(t, []string{"https://music.example.com/us/album/court/3"}, created[0].URLs)
}

func TestArtistCmd_All(t *testing.T) {
	h := newHarness(t)

	res := h.run("artist", "--all", artistURL)
	require.NoError(t, res.err)

	created := h.backend.Created()
	require.Len(t, created, 1)
	assert.Len(t, created[0].URLs, 3)
}

func TestArtistCmd_Errors(t *testing.T) {
	t.Run("album URL", func(t *testing.T) {
		h := newHarness(t)
		res := h.run("artist", "--all", albumURL)
		require.Error(t, res.err)
		assert.Empty(t, h.backend.Calls())
	})

	t.Run("position out of range", func(t *testing.T) {
		h := newHarness(t)
		res := h.run("artist", "--albums", "4", artistURL)
		require.Error(t, res.err)
		assert.Contains(t, res.err.Error(), "out of range")
		assert.Empty(t, h.backend.Created())
	})

	t.Run("no match", func(t *testing.T) {
		h := newHarness(t)
		res := h.run("artist", "--match", "hejira", artistURL)
		require.Error(t, res.err)
		assert.Empty(t, h.backend.Created())
	})
}

func seedTasks(h *cliHarness) {
	h.backend.tasks = []backend.Task{
		{ID: "t1", URL: albumURL, Quality: "alac", Status: backend.StatusRunning, Progress: 40, Message: "track 2/5"},
		{ID: "t2", URL: artistURL, Quality: "aac", Status: backend.StatusFailed, Progress: 130, Message: "boom", Logs: []string{"start", "boom"}},
		{ID: "t3", URL: albumURL, Quality: "alac", Status: backend.StatusSucceeded, Progress: 100},
	}
}

func TestTasksCmd_List(t *testing.T) {
	h := newHarness(t)
	seedTasks(h)

	res := h.run("tasks")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "STATUS")
	assert.Contains(t, res.stdout, "track 2/5")
	assert.Contains(t, res.stdout, "100%")
	assert.Contains(t, res.stdout, "3 task(s)")
}

func TestTasksCmd_ListJSONFiltered(t *testing.T) {
	h := newHarness(t)
	seedTasks(h)

	res := h.run("tasks", "--json", "--status", "failed")
	require.NoError(t, res.err)

	var rows []panel.TaskRow
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "t2", rows[0].ID)
	assert.Equal(t, 100, rows[0].Progress)
	assert.False(t, rows[0].RetryDisabled)
}

func TestTasksCmd_Empty(t *testing.T) {
	h := newHarness(t)

	res := h.run("tasks")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "No tasks")
}

func TestTasksCmd_Show(t *testing.T) {
	h := newHarness(t)
	seedTasks(h)

	res := h.run("tasks", "show", "t2")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Status: failed")
	assert.Contains(t, res.stdout, "Progress: 100%")
	assert.Contains(t, res.stdout, "start\nboom")
}

func TestTasksCmd_RetryRunningIsRefused(t *testing.T) {
	h := newHarness(t)
	seedTasks(h)

	res := h.run("tasks", "retry", "t1")
	require.Error(t, res.err)
	assert.True(t, panel.IsAlerted(res.err))
	assert.Contains(t, res.stderr, "task is running")
}

func TestTasksCmd_Actions(t *testing.T) {
	h := newHarness(t)
	seedTasks(h)

	res := h.run("tasks", "retry", "t2")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Task t2 requeued")

	res = h.run("tasks", "cancel", "t1")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "cancel requested")

	res = h.run("tasks", "rm", "t3")
	require.NoError(t, res.err)
	assert.Contains(t, h.backend.Calls(), "DELETE /v1/tasks/t3")

	res = h.run("tasks", "rm", "missing")
	require.Error(t, res.err)
	assert.Contains(t, res.stderr, "not found")
}

func TestTasksCmd_Clear(t *testing.T) {
	h := newHarness(t)
	seedTasks(h)

	res := h.run("tasks", "clear")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Cleared 2 finished task(s)")
	require.Len(t, h.backend.tasks, 1)
	assert.Equal(t, "t1", h.backend.tasks[0].ID)
}

func TestSearchCmd_Albums(t *testing.T) {
	h := newHarness(t)
	h.backend.searchHits = []backend.SearchItem{
		{ID: "1440", Name: "Blue", Artist: "Joni Mitchell", Year: "1971", Tracks: 10, URL: albumURL},
	}

	res := h.run("search", "--limit", "5", "joni", "blue")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "1. Blue - Joni Mitchell (1971) [10 tracks]")
	assert.Contains(t, res.stdout, albumURL)
	assert.Equal(t, "joni blue", h.backend.lastSearch.Get("q"))
	assert.Equal(t, "album", h.backend.lastSearch.Get("type"))
	assert.Equal(t, "5", h.backend.lastSearch.Get("limit"))
}

func TestSearchCmd_ArtistJSON(t *testing.T) {
	h := newHarness(t)
	h.backend.searchHits = []backend.SearchItem{
		{ID: "2001", Name: "Joni Mitchell", Genres: "Singer/Songwriter, Folk", URL: artistURL},
	}

	res := h.run("search", "--json", "--type", "artist", "joni")
	require.NoError(t, res.err)

	var got []backend.SearchItem
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
	require.Len(t, got, 1)
	assert.Equal(t, artistURL, got[0].URL)
	assert.Equal(t, "artist", h.backend.lastSearch.Get("type"))
}

func TestSearchCmd_Errors(t *testing.T) {
	h := newHarness(t)

	res := h.run("search", "--type", "playlist", "joni")
	assert.ErrorContains(t, res.err, "invalid --type")
	assert.Empty(t, h.backend.Calls())

	res = h.run("search", "nothing here")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "No results")
}

func TestCleanupCmd(t *testing.T) {
	h := newHarness(t)

	res := h.run("cleanup", "--yes")
	require.NoError(t, res.err)
	assert.Contains(t, h.backend.Calls(), "POST /v1/cleanup-downloads")
	assert.Contains(t, res.stdout, "ALAC       3 file(s), 1 dir(s)")
	assert.Contains(t, res.stdout, "AAC        skipped (missing)")
	assert.Contains(t, res.stdout, "Deleted 3 file(s) and 1 dir(s)")
}

func TestCleanupCmd_RefusedWhileRunning(t *testing.T) {
	h := newHarness(t)
	seedTasks(h)

	res := h.run("cleanup", "-y")
	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, backend.ErrConflict)
	assert.Contains(t, res.stderr, "a task is still running")
	assert.Nil(t, h.backend.cleanupDone)
}

func TestTasksCmd_Follow(t *testing.T) {
	h := newHarness(t)
	h.backend.stream = []backend.Task{
		{ID: "t1", Status: backend.StatusRunning, Progress: 50},
		{ID: "t1", Status: backend.StatusSucceeded, Progress: 100},
	}

	res := h.run("tasks", "follow", "t1")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "succeeded")
}

func TestTasksCmd_FollowFailed(t *testing.T) {
	h := newHarness(t)
	h.backend.stream = []backend.Task{
		{ID: "t1", Status: backend.StatusFailed, Progress: 20, Message: "decrypt failed"},
	}

	res := h.run("tasks", "follow", "t1")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "decrypt failed")
}

func TestHistoryCmd_RecordsSubmissions(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("create", "--tracks", "1-2", albumURL).err)
	require.NoError(t, h.run("artist", "--albums", "3", artistURL).err)

	res := h.run("history", "--json")
	require.NoError(t, res.err)

	var entries []store.HistoryEntry
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "task-2", entries[0].TaskID)
	assert.Equal(t, "https://music.example.com/us/album/court/3", entries[0].URL)
	assert.Equal(t, "task-1", entries[1].TaskID)
	assert.Equal(t, []int{1, 2}, entries[1].Tracks)

	res = h.run("history")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "1-2")
	assert.Contains(t, res.stdout, "all")
}

func TestHistoryCmd_Empty(t *testing.T) {
	h := newHarness(t)

	res := h.run("history")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "No submissions recorded")
}

func TestServerFlagOverridesConfig(t *testing.T) {
	h := newHarness(t)
	other := newHarness(t)
	seedTasks(other)

	res := h.run("--server", other.server.URL+"/", "tasks", "--json")
	require.NoError(t, res.err)
	assert.Empty(t, h.backend.Calls())
	assert.NotEmpty(t, other.backend.Calls())
}

func TestConfigTestCmd(t *testing.T) {
	h := newHarness(t)

	res := h.run("config", "test", h.configPath)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Configuration valid!")
	assert.Contains(t, res.stdout, h.server.URL)

	bad := filepath.Join(h.dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[server]\nurl = \"${AMPANEL_TEST_UNSET_VAR}\"\n[tasks]\nquality = \"flac\"\n"), 0644))
	res = h.run("config", "test", bad)
	require.Error(t, res.err)
	assert.Contains(t, res.stdout, "Missing environment variables:")
	assert.Contains(t, res.stdout, "AMPANEL_TEST_UNSET_VAR")
}

func TestConfigInitCmd(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(h.dir, "sub", "config.toml")

	res := h.run("config", "init", path)
	require.NoError(t, res.err)
	assert.FileExists(t, path)

	res = h.run("config", "init", path)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "already exists")

	res = h.run("config", "init", "--force", path)
	require.NoError(t, res.err)
}

func TestVersionCmdSkipsConfig(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.WriteFile(h.configPath, []byte("not toml ["), 0644))

	res := h.run("version")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "ampanel dev")
}
