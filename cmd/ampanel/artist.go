package main

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vmunix/ampanel/pkg/match"
	"github.com/vmunix/ampanel/pkg/mediaurl"
)

var artistCmd = &cobra.Command{
	Use:   "artist <url>",
	Short: "Create tasks for albums of an artist",
	Long: `Create tasks for albums of an artist.

Albums are chosen by listing position (--albums), by name (--match),
all at once (--all) or interactively (--pick). The selections add up.
Without any of them the discography is printed and nothing is created.`,
	Example: `  ampanel artist --albums 1,4-6 https://music.example.com/us/artist/joni/1
  ampanel artist --match "court and spark" https://music.example.com/us/artist/joni/1`,
	Args: cobra.ExactArgs(1),
	RunE: runArtistCmd,
}

func init() {
	artistCmd.Flags().StringP("albums", "a", "", "Album positions to fetch, e.g. 1,3-5")
	artistCmd.Flags().StringP("match", "m", "", "Select albums whose name matches")
	artistCmd.Flags().Float64("threshold", match.DefaultThreshold, "Similarity threshold for --match")
	artistCmd.Flags().Bool("all", false, "Select every album")
	artistCmd.Flags().Bool("pick", false, "Choose albums interactively")
	addTaskFlags(artistCmd)
	rootCmd.AddCommand(artistCmd)
}

func runArtistCmd(cmd *cobra.Command, args []string) error {
	url := args[0]
	if !isKind(url, mediaurl.Artist) {
		return errors.New("not an artist URL")
	}
	opts, err := taskOptions(cmd)
	if err != nil {
		return err
	}

	albums, _ := cmd.Flags().GetString("albums")
	query, _ := cmd.Flags().GetString("match")
	threshold, _ := cmd.Flags().GetFloat64("threshold")
	all, _ := cmd.Flags().GetBool("all")
	pick, _ := cmd.Flags().GetBool("pick")

	a := newApp(cmd)
	defer a.Close()
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if err := a.ctrl.LoadMetadata(ctx, url); err != nil {
		return err
	}
	view := a.ctrl.View()

	if albums == "" && query == "" && !all && !pick {
		if jsonOutput {
			return printJSON(out, toMetaJSON(view))
		}
		printMetadataView(out, view)
		fmt.Fprintln(out, "\nUse --albums, --match, --all or --pick to create tasks.")
		return nil
	}

	var positions []int
	if all {
		for _, it := range view.Items {
			positions = append(positions, it.Key)
		}
	}
	if albums != "" {
		idx, err := parseIndexList(albums)
		if err != nil {
			return err
		}
		for _, n := range idx {
			if n > len(view.Items) {
				return fmt.Errorf("album %d out of range (artist has %d)", n, len(view.Items))
			}
			positions = append(positions, n-1)
		}
	}
	if query != "" {
		names := make([]string, len(view.Items))
		for i, it := range view.Items {
			names[i] = it.Label
		}
		matched := match.Filter(names, query, threshold)
		if len(matched) == 0 {
			return fmt.Errorf("no album matches %q", query)
		}
		positions = append(positions, matched...)
	}
	if pick {
		chosen, err := pickItems("Albums", "Space toggles, enter confirms", view.Items)
		if err != nil {
			return err
		}
		positions = append(positions, chosen...)
	}

	slices.Sort(positions)
	if err := a.ctrl.CheckAlbums(slices.Compact(positions)); err != nil {
		return err
	}

	resp, err := a.ctrl.CreateTasksFromArtist(ctx, opts)
	if err != nil {
		return err
	}
	return printCreated(out, resp)
}
