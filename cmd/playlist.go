package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/ytlink/internal/formatter"
	"github.com/desertthunder/ytlink/internal/shared"
	"github.com/desertthunder/ytlink/internal/tasks"
	"github.com/desertthunder/ytlink/internal/ui"
	"github.com/urfave/cli/v3"
)

// PlaylistVideos prints one page of a playlist's videos in playlist order.
func (r *Runner) PlaylistVideos(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.StringArg("playlistId")
	if playlistID == "" {
		return fmt.Errorf("%w: playlistId", shared.ErrMissingArgument)
	}

	svc, err := r.service()
	if err != nil {
		return err
	}

	page, err := tasks.NewPlaylistVideoAggregator(svc).FetchPage(ctx, playlistID, cmd.String("cursor"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, true)
	}

	r.writePlainHeader(fmt.Sprintf("%d of %d videos", len(page.Videos), page.TotalCount))
	rows := make([][]string, 0, len(page.Videos))
	for _, v := range page.Videos {
		published := ""
		if !v.PublishedAt.IsZero() {
			published = v.PublishedAt.Format("2006-01-02")
		}
		rows = append(rows, []string{v.ID, ui.Truncate(v.Title, 50), shared.HumanizeISODuration(v.Duration), published})
	}
	r.writeTable([]string{"Video ID", "Title", "Duration", "Published"}, rows, []ui.Alignment{ui.AlignLeft, ui.AlignLeft, ui.AlignRight})

	if page.NextCursor != "" {
		r.writePlainln("%s", ui.Styles.Help("Next page: ytlink playlist videos "+playlistID+" --cursor "+page.NextCursor))
	}
	return nil
}

// PlaylistExport writes every video of a playlist in the chosen format.
func (r *Runner) PlaylistExport(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.StringArg("playlistId")
	if playlistID == "" {
		return fmt.Errorf("%w: playlistId", shared.ErrMissingArgument)
	}

	format := cmd.String("format")
	if !formatter.ValidFormat(format) {
		return fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, format)
	}

	svc, err := r.service()
	if err != nil {
		return err
	}

	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for u := range progress {
			r.logger.Debug(u.Message, "phase", u.Phase, "step", u.Step, "total", u.Total)
		}
	}()

	export, err := tasks.NewPlaylistExporter(svc).ExportPlaylist(ctx, progress, playlistID, tasks.ExportOpts{RateLimit: cmd.Float("rate")})
	close(progress)
	<-done
	if err != nil {
		return err
	}

	dir := cmd.String("output")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	files, err := formatter.WriteExport(export, format, dir)
	if err != nil {
		return err
	}

	r.writePlain("%s\n", ui.Styles.OK(fmt.Sprintf("Exported %s (%d videos)", export.Playlist.Title, len(export.Videos))))
	for _, f := range files {
		r.writePlain("  %s\n", f)
	}
	return nil
}
