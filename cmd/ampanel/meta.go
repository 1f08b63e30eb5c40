package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vmunix/ampanel/internal/panel"
	"github.com/vmunix/ampanel/pkg/mediaurl"
)

var errNotCatalogURL = errors.New("not an album or artist URL")

var metaCmd = &cobra.Command{
	Use:   "meta <url>",
	Short: "Preview an album tracklist or an artist discography",
	Args:  cobra.ExactArgs(1),
	RunE:  runMetaCmd,
}

func init() {
	rootCmd.AddCommand(metaCmd)
}

type metaItemJSON struct {
	Key     int    `json:"key"`
	Label   string `json:"label"`
	URL     string `json:"url,omitempty"`
	Checked bool   `json:"checked"`
}

type metaJSON struct {
	Kind   string         `json:"kind"`
	Title  string         `json:"title,omitempty"`
	Artist string         `json:"artist,omitempty"`
	Cover  string         `json:"cover,omitempty"`
	Items  []metaItemJSON `json:"items"`
}

func runMetaCmd(cmd *cobra.Command, args []string) error {
	a := newApp(cmd)
	defer a.Close()

	if err := a.ctrl.LoadMetadata(cmd.Context(), args[0]); err != nil {
		return err
	}
	view := a.ctrl.View()
	if view.Empty() {
		return errNotCatalogURL
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, toMetaJSON(view))
	}
	printMetadataView(out, view)
	return nil
}

func toMetaJSON(view panel.MetadataView) metaJSON {
	m := metaJSON{
		Kind:   view.Kind.String(),
		Title:  view.Title,
		Artist: view.Artist,
		Cover:  view.Cover,
		Items:  make([]metaItemJSON, len(view.Items)),
	}
	for i, it := range view.Items {
		m.Items[i] = metaItemJSON{Key: it.Key, Label: it.Label, URL: it.Value, Checked: it.Checked}
	}
	return m
}

func printMetadataView(w io.Writer, view panel.MetadataView) {
	switch view.Kind {
	case panel.KindAlbum:
		fmt.Fprintf(w, "%s - %s\n", view.Title, view.Artist)
		if view.Cover != "" {
			fmt.Fprintf(w, "Cover: %s\n", view.Cover)
		}
		fmt.Fprintf(w, "\nTracks (%d selected of %d):\n", view.SelectedCount, len(view.Items))
		for _, it := range view.Items {
			fmt.Fprintf(w, "  %s %s\n", checkbox(it.Checked), it.Label)
		}
	case panel.KindArtist:
		fmt.Fprintf(w, "Albums (%d):\n", len(view.Items))
		for _, it := range view.Items {
			fmt.Fprintf(w, "  %3d. %s %s\n", it.Key+1, checkbox(it.Checked), it.Label)
		}
	}
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

// isKind is a cheap pre-check so obviously wrong URLs fail before any request.
func isKind(raw string, want mediaurl.Kind) bool {
	return mediaurl.Classify(raw) == want
}
