// Package migrations provides embedded SQL migration files.
package migrations

import (
	_ "embed"
)

//go:embed sql/001_initial.sql
var InitialSQL string

//go:embed sql/002_submission_tracks.sql
var Migration002SubmissionTracks string

// All returns every migration in the order it must be applied.
func All() []string {
	return []string{InitialSQL, Migration002SubmissionTracks}
}
