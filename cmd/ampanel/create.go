package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/ampanel/pkg/mediaurl"
)

var createCmd = &cobra.Command{
	Use:   "create <url> [url...]",
	Short: "Create download tasks",
	Long: `Create download tasks.

With a single album URL the tracklist is loaded first so --tracks and
--pick can narrow the download. Without either the whole album is
fetched. Several URLs are submitted together as one batch.`,
	Example: `  ampanel create https://music.example.com/us/album/blue/1
  ampanel create --tracks 1,3-5 https://music.example.com/us/album/blue/1
  ampanel create --pick https://music.example.com/us/album/blue/1
  ampanel create --quality aac URL1 URL2 URL3`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCreateCmd,
}

func init() {
	createCmd.Flags().StringP("tracks", "t", "", "Track indexes to fetch, e.g. 1,3-5")
	createCmd.Flags().Bool("pick", false, "Choose tracks interactively")
	addTaskFlags(createCmd)
	rootCmd.AddCommand(createCmd)
}

func runCreateCmd(cmd *cobra.Command, args []string) error {
	opts, err := taskOptions(cmd)
	if err != nil {
		return err
	}
	tracks, _ := cmd.Flags().GetString("tracks")
	pick, _ := cmd.Flags().GetBool("pick")

	if len(args) > 1 && (tracks != "" || pick) {
		return errors.New("--tracks and --pick need a single album URL")
	}

	a := newApp(cmd)
	defer a.Close()
	ctx := cmd.Context()

	if len(args) > 1 {
		resp, err := a.ctrl.CreateBatch(ctx, strings.Join(args, "\n"), opts)
		if err != nil {
			return err
		}
		return printCreated(cmd.OutOrStdout(), resp)
	}

	url := args[0]
	if !isKind(url, mediaurl.Album) {
		if tracks != "" || pick {
			return errors.New("--tracks and --pick need an album URL")
		}
		resp, err := a.ctrl.CreateTask(ctx, url, opts)
		if err != nil {
			return err
		}
		return printCreated(cmd.OutOrStdout(), resp)
	}

	if err := a.ctrl.LoadMetadata(ctx, url); err != nil {
		return err
	}

	switch {
	case tracks != "":
		indexes, err := parseIndexList(tracks)
		if err != nil {
			return err
		}
		if err := a.ctrl.SelectTracks(indexes); err != nil {
			return err
		}
	case pick:
		view := a.ctrl.View()
		indexes, err := pickItems(view.Title, "Space toggles, enter confirms", view.Items)
		if err != nil {
			return err
		}
		if err := a.ctrl.SelectTracks(indexes); err != nil {
			return err
		}
	}

	resp, err := a.ctrl.CreateTask(ctx, url, opts)
	if err != nil {
		return err
	}
	return printCreated(cmd.OutOrStdout(), resp)
}
