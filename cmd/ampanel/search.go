package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/ampanel/internal/backend"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Search the catalog for albums, songs or artists",
	Long: `Search the catalog by keyword and print matching URLs.

The URLs can be passed straight to "meta", "create" or "artist".`,
	Example: `  ampanel search joni mitchell blue
  ampanel search --type artist joni
  ampanel search --type song --limit 5 "a case of you"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearchCmd,
}

func init() {
	searchCmd.Flags().StringP("type", "t", backend.SearchAlbum, "Result type: album, song or artist")
	searchCmd.Flags().Int("limit", 0, "Maximum results (server default when 0)")
	searchCmd.Flags().Int("offset", 0, "Skip this many results")
	_ = searchCmd.RegisterFlagCompletionFunc("type", cobra.FixedCompletions(
		[]string{backend.SearchAlbum, backend.SearchSong, backend.SearchArtist}, cobra.ShellCompDirectiveNoFileComp))
	rootCmd.AddCommand(searchCmd)
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	typ, _ := cmd.Flags().GetString("type")
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")

	typ = strings.ToLower(typ)
	switch typ {
	case backend.SearchAlbum, backend.SearchSong, backend.SearchArtist:
	default:
		return fmt.Errorf("invalid --type %q: must be one of album, song, artist", typ)
	}
	if limit < 0 || offset < 0 {
		return errors.New("--limit and --offset must not be negative")
	}

	a := newApp(cmd)
	defer a.Close()

	items, err := a.ctrl.Search(cmd.Context(), backend.SearchRequest{
		Query:  strings.Join(args, " "),
		Type:   typ,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		if items == nil {
			items = []backend.SearchItem{}
		}
		return printJSON(out, items)
	}
	printSearchItems(out, typ, items)
	return nil
}

func printSearchItems(w io.Writer, typ string, items []backend.SearchItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No results")
		return
	}
	for i, it := range items {
		fmt.Fprintf(w, "%3d. %s\n", i+1, searchLabel(typ, it))
		fmt.Fprintf(w, "     %s\n", it.URL)
	}
}

// searchLabel formats one hit with the fields its type carries.
func searchLabel(typ string, it backend.SearchItem) string {
	switch typ {
	case backend.SearchAlbum:
		label := fmt.Sprintf("%s - %s", it.Name, it.Artist)
		if it.Year != "" {
			label += " (" + it.Year + ")"
		}
		if it.Tracks > 0 {
			label += fmt.Sprintf(" [%d tracks]", it.Tracks)
		}
		return label
	case backend.SearchSong:
		label := fmt.Sprintf("%s - %s", it.Name, it.Artist)
		if it.Album != "" {
			label += " (" + truncate(it.Album, 40) + ")"
		}
		return label
	default:
		if it.Genres != "" {
			return fmt.Sprintf("%s (%s)", it.Name, it.Genres)
		}
		return it.Name
	}
}
