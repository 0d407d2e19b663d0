package services

import "testing"

func TestThumbnails(t *testing.T) {
	def := &Thumbnail{URL: "d"}
	med := &Thumbnail{URL: "m"}
	high := &Thumbnail{URL: "h"}

	tests := []struct {
		name       string
		thumbs     Thumbnails
		wantMedium string
		wantDef    string
	}{
		{"all present", Thumbnails{Default: def, Medium: med, High: high}, "m", "d"},
		{"medium missing", Thumbnails{Default: def, High: high}, "d", "d"},
		{"default missing", Thumbnails{Medium: med}, "m", "m"},
		{"only high", Thumbnails{High: high}, "", "h"},
		{"none", Thumbnails{}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.thumbs.MediumURL(); got != tt.wantMedium {
				t.Errorf("MediumURL() = %q, want %q", got, tt.wantMedium)
			}
			if got := tt.thumbs.DefaultURL(); got != tt.wantDef {
				t.Errorf("DefaultURL() = %q, want %q", got, tt.wantDef)
			}
		})
	}
}

func TestResourceHelpers(t *testing.T) {
	t.Run("SearchResult.ChannelID prefers resource id", func(t *testing.T) {
		var r SearchResult
		r.Snippet.ChannelID = "UCsnippet"
		if r.ChannelID() != "UCsnippet" {
			t.Errorf("expected snippet fallback, got %s", r.ChannelID())
		}
		r.ID.ChannelID = "UCid"
		if r.ChannelID() != "UCid" {
			t.Errorf("expected resource id, got %s", r.ChannelID())
		}
	})

	t.Run("PlaylistItemResource.VideoID", func(t *testing.T) {
		var p PlaylistItemResource
		if p.VideoID() != "" {
			t.Error("expected empty video ID for placeholder")
		}
		p.Snippet.ResourceID.VideoID = "snip"
		if p.VideoID() != "snip" {
			t.Errorf("expected snippet video ID, got %s", p.VideoID())
		}
		p.ContentDetails.VideoID = "cd"
		if p.VideoID() != "cd" {
			t.Errorf("expected contentDetails video ID, got %s", p.VideoID())
		}
	})
}
