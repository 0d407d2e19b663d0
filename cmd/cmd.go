// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{Name: "json", Usage: "Output raw JSON"}
}

func serverFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "server",
		Aliases: []string{"s"},
		Usage:   "Base URL of a running ytlink server (default: from [server] config)",
	}
}

func formatFlag(r *Runner) cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Export format: json, csv, markdown, txt",
		Value:   r.config.Export.Format,
	}
}

// serveCommand runs the HTTP API
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the playlist link HTTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "Address to bind (overrides server.host)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (overrides server.port)",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the web page in a browser once listening",
			},
		},
		Action: r.Serve,
	}
}

// channelCommand handles channel resolution and playlist listing
func channelCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "channel",
		Aliases: []string{"ch"},
		Usage:   "Channel operations",
		Commands: []*cli.Command{
			{
				Name:  "find",
				Usage: "Resolve a channel ID, URL, @handle or search query",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.ChannelFind,
			},
			{
				Name:  "playlists",
				Usage: "List every playlist of a channel",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Channel ID (UC...)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "match",
						Aliases: []string{"m"},
						Usage:   "Fuzzy filter on playlist titles",
					},
					jsonFlag(),
				},
				Action: r.ChannelPlaylists,
			},
			{
				Name:  "export",
				Usage: "Export every playlist of a channel to files",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Channel ID (UC...)",
						Required: true,
					},
					formatFlag(r),
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory (default: ytlink_export_{channel}_{epoch})",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent playlist exports (max 10)",
						Value: r.config.Export.Workers,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Page requests per second per playlist",
						Value: r.config.Export.RateLimit,
					},
				},
				Action: r.ChannelExport,
			},
		},
	}
}

// playlistCommand handles playlist video paging and export
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Playlist operations",
		Commands: []*cli.Command{
			{
				Name:  "videos",
				Usage: "Show one page of a playlist's videos",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "playlistId"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "cursor",
						Usage: "Page cursor from a previous call",
					},
					jsonFlag(),
				},
				Action: r.PlaylistVideos,
			},
			{
				Name:  "export",
				Usage: "Export every video of a playlist to files",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "playlistId"},
				},
				Flags: []cli.Flag{
					formatFlag(r),
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
						Value:   ".",
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Page requests per second",
						Value: r.config.Export.RateLimit,
					},
				},
				Action: r.PlaylistExport,
			},
		},
	}
}

// syncCommand talks to the sync slot of a running server
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Upload or download the server's sync document",
		Commands: []*cli.Command{
			{
				Name:  "push",
				Usage: "Store a JSON document on the server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "data",
						Aliases: []string{"d"},
						Usage:   "JSON document to store (use @file to read from a file)",
					},
					serverFlag(),
				},
				Action: r.SyncPush,
			},
			{
				Name:  "pull",
				Usage: "Print the document stored on the server",
				Flags: []cli.Flag{
					serverFlag(),
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.SyncPull,
			},
		},
	}
}

// apiCommand handles direct calls against a running server
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to a running ytlink server",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET, prints the response body",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					serverFlag(),
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
					serverFlag(),
				},
				Action: r.APIPost,
			},
		},
	}
}

// setupCommand handles setup operations
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write the example configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "path",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}
