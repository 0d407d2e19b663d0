package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/desertthunder/ytlink/internal/shared"
	"github.com/desertthunder/ytlink/internal/tasks"
	"github.com/desertthunder/ytlink/internal/ui"
	"github.com/urfave/cli/v3"
)

// ChannelFind resolves a channel and prints it, or a candidate table when the query is ambiguous.
func (r *Runner) ChannelFind(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	svc, err := r.service()
	if err != nil {
		return err
	}

	res, err := tasks.NewChannelResolver(svc, r.logger).Resolve(ctx, query)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		if res.Ambiguous() {
			return r.writeJSON(map[string]any{"multiple": true, "candidates": res.Candidates}, true)
		}
		return r.writeJSON(res.Channel, true)
	}

	if res.Ambiguous() {
		r.writePlainHeader(fmt.Sprintf("%d channels match %q", len(res.Candidates), query))
		rows := make([][]string, 0, len(res.Candidates))
		for i, c := range res.Candidates {
			rows = append(rows, []string{strconv.Itoa(i + 1), c.ID, ui.Truncate(c.Title, 40), ui.Truncate(c.Description, 50)})
		}
		r.writeTable([]string{"#", "Channel ID", "Title", "Description"}, rows, []ui.Alignment{ui.AlignRight})
		r.writePlainln("%s", ui.Styles.Help("Run 'ytlink channel find <Channel ID>' to pick one."))
		return nil
	}

	ch := res.Channel
	r.writePlainHeader(ch.Title)
	r.writeTable([]string{"Field", "Value"}, [][]string{
		{"ID", ch.ID},
		{"Handle", ch.Handle},
		{"Videos", strconv.Itoa(ch.VideoCount)},
		{"Thumbnail", ch.ThumbnailURL},
		{"Description", ui.Truncate(ch.Description, 80)},
	}, nil)
	return nil
}

// ChannelPlaylists lists every playlist of a channel, optionally fuzzy-filtered by title.
func (r *Runner) ChannelPlaylists(ctx context.Context, cmd *cli.Command) error {
	channelID := cmd.String("id")

	svc, err := r.service()
	if err != nil {
		return err
	}

	r.logger.Info("listing playlists", "channel", channelID)
	playlists, err := tasks.NewPlaylistLister(svc).ListAll(ctx, channelID)
	if err != nil {
		return err
	}
	if match := cmd.String("match"); match != "" {
		playlists = tasks.FilterPlaylists(playlists, match)
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{"playlists": playlists}, true)
	}

	r.writePlainHeader(fmt.Sprintf("%d playlists", len(playlists)))
	if len(playlists) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(playlists))
	for _, p := range playlists {
		rows = append(rows, []string{p.ID, ui.Truncate(p.Title, 50), strconv.Itoa(p.ItemCount)})
	}
	r.writeTable([]string{"Playlist ID", "Title", "Videos"}, rows, []ui.Alignment{ui.AlignLeft, ui.AlignLeft, ui.AlignRight})
	return nil
}

// ChannelExport exports every playlist of a channel and prints a summary of the run.
func (r *Runner) ChannelExport(ctx context.Context, cmd *cli.Command) error {
	channelID := cmd.String("id")

	svc, err := r.service()
	if err != nil {
		return err
	}

	progress := make(chan tasks.ProgressUpdate, 100)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for u := range progress {
			r.logger.Info(u.Message, "phase", u.Phase)
		}
	}()

	result, err := tasks.NewBulkExporter(svc).BulkExport(ctx, progress, channelID, tasks.BulkExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output"),
		NumWorkers: cmd.Int("workers"),
		RateLimit:  cmd.Float("rate"),
	})
	close(progress)
	<-done
	if err != nil {
		return err
	}

	r.writePlainHeader("Export summary")
	rows := make([][]string, 0, len(result.Results))
	for _, res := range result.Results {
		status := ui.Styles.OK("exported")
		if !res.Success {
			status = ui.Styles.Err(res.Error.Error())
		}
		rows = append(rows, []string{res.PlaylistID, ui.Truncate(res.PlaylistName, 40), strconv.Itoa(len(res.Files)), status})
	}
	r.writeTable([]string{"Playlist ID", "Title", "Files", "Status"}, rows, []ui.Alignment{ui.AlignLeft, ui.AlignLeft, ui.AlignRight})

	r.writePlain("\n%d/%d playlists exported to %s\n", result.SuccessfulExports, result.TotalPlaylists, result.OutputDirectory)
	r.writePlain("Manifest: %s\n", result.ManifestPath)
	if result.FailedExports > 0 {
		r.writePlain("%s\n", ui.Styles.Warn(fmt.Sprintf("%d playlists failed; see the manifest for details", result.FailedExports)))
	}
	return nil
}
