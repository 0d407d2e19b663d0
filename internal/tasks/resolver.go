package tasks

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytlink/internal/models"
	"github.com/desertthunder/ytlink/internal/services"
	"github.com/desertthunder/ytlink/internal/shared"
)

var (
	channelURLPattern = regexp.MustCompile(`channel/(UC[A-Za-z0-9_-]{22})(?:[^A-Za-z0-9_-]|$)`)
	handleURLPattern  = regexp.MustCompile(`youtube\.com/(@[^/?#\s]+)`)
)

type stepKind int

const (
	stepNotApplicable stepKind = iota
	stepResolved
	stepAmbiguous
	stepNotFound
)

// step is the tagged outcome of one resolution strategy.
type step struct {
	kind       stepKind
	channelID  string
	candidates []models.ChannelCandidate
}

func notApplicable() step { return step{kind: stepNotApplicable} }
func resolved(id string) step { return step{kind: stepResolved, channelID: id} }
func ambiguous(candidates []models.ChannelCandidate) step { return step{kind: stepAmbiguous, candidates: candidates} }
func notFound() step { return step{kind: stepNotFound} }

// strategy classifies input and, when it applies, produces a channel ID or a terminal outcome.
type strategy struct {
	name string
	run  func(ctx context.Context, input string) (step, error)
}

// ChannelResolver turns a raw ID, channel URL, handle, or free-text query into a channel.
//
// Strategies run from cheapest and most specific to most expensive: ID parsing, URL extraction,
// exact handle lookup, then search. It holds no per-call state and is safe for concurrent use.
type ChannelResolver struct {
	svc        services.Service
	logger     *log.Logger
	strategies []strategy
}

// NewChannelResolver creates a resolver over svc. A nil logger discards warnings.
func NewChannelResolver(svc services.Service, logger *log.Logger) *ChannelResolver {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	r := &ChannelResolver{svc: svc, logger: logger}
	r.strategies = []strategy{
		{name: "canonical_id", run: r.byCanonicalID},
		{name: "channel_url", run: r.byChannelURL},
		{name: "handle", run: r.byHandle},
		{name: "search", run: r.bySearch},
	}
	return r
}

// Resolve runs the strategy chain and fetches details for the resolved ID.
//
// Returns a [models.Resolution] holding either the channel or, when search is ambiguous, the
// candidates. Errors wrap [shared.ErrMissingArgument], [shared.ErrChannelNotFound], or
// [shared.ErrAPIRequest].
func (r *ChannelResolver) Resolve(ctx context.Context, input string) (*models.Resolution, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("%w: channel handle, URL, ID, or query", shared.ErrMissingArgument)
	}

	for _, s := range r.strategies {
		result, err := s.run(ctx, input)
		if err != nil {
			return nil, err
		}

		switch result.kind {
		case stepNotApplicable:
			continue
		case stepNotFound:
			return nil, fmt.Errorf("%w: %q", shared.ErrChannelNotFound, input)
		case stepAmbiguous:
			r.logger.Debug("ambiguous channel search", "input", input, "candidates", len(result.candidates))
			return &models.Resolution{Candidates: result.candidates}, nil
		case stepResolved:
			r.logger.Debug("channel id resolved", "input", input, "strategy", s.name, "id", result.channelID)
			channel, err := r.fetchDetails(ctx, result.channelID)
			if err != nil {
				return nil, err
			}
			return &models.Resolution{Channel: channel}, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", shared.ErrChannelNotFound, input)
}

func (r *ChannelResolver) byCanonicalID(_ context.Context, input string) (step, error) {
	if models.ChannelIDPattern.MatchString(input) {
		return resolved(input), nil
	}
	return notApplicable(), nil
}

func (r *ChannelResolver) byChannelURL(_ context.Context, input string) (step, error) {
	if id := ExtractChannelID(input); id != "" {
		return resolved(id), nil
	}
	return notApplicable(), nil
}

// byHandle never fails: lookup errors and misses fall through to search.
func (r *ChannelResolver) byHandle(ctx context.Context, input string) (step, error) {
	handle := ExtractHandle(input)
	if handle == "" {
		return notApplicable(), nil
	}

	id, err := r.svc.ChannelIDByHandle(ctx, handle)
	switch {
	case err != nil:
		r.logger.Warn("handle lookup failed, falling back to search", "handle", handle, "err", err)
		return notApplicable(), nil
	case id == "":
		r.logger.Warn("handle not found, falling back to search", "handle", handle)
		return notApplicable(), nil
	default:
		return resolved(id), nil
	}
}

func (r *ChannelResolver) bySearch(ctx context.Context, input string) (step, error) {
	results, err := r.svc.SearchChannels(ctx, input, services.MaxSearchResults)
	if err != nil {
		return step{}, fmt.Errorf("channel search failed: %w", err)
	}

	switch len(results) {
	case 0:
		return notFound(), nil
	case 1:
		return resolved(results[0].ChannelID()), nil
	default:
		candidates := make([]models.ChannelCandidate, 0, len(results))
		for _, hit := range results {
			candidates = append(candidates, models.ChannelCandidate{
				ID:           hit.ChannelID(),
				Title:        firstNonEmpty(hit.Snippet.Title, hit.Snippet.ChannelTitle),
				Description:  hit.Snippet.Description,
				ThumbnailURL: hit.Snippet.Thumbnails.DefaultURL(),
			})
		}
		return ambiguous(candidates), nil
	}
}

func (r *ChannelResolver) fetchDetails(ctx context.Context, channelID string) (*models.ResolvedChannel, error) {
	ch, err := r.svc.ChannelByID(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("channel lookup failed: %w", err)
	}
	if ch == nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrChannelNotFound, channelID)
	}

	id := ch.ID
	if id == "" {
		id = channelID
	}
	if !models.ChannelIDPattern.MatchString(id) {
		return nil, fmt.Errorf("%w: non-canonical channel id %q", shared.ErrAPIRequest, id)
	}

	return &models.ResolvedChannel{
		ID:           id,
		Title:        ch.Snippet.Title,
		ThumbnailURL: ch.Snippet.Thumbnails.DefaultURL(),
		Description:  ch.Snippet.Description,
		Handle:       ch.Snippet.CustomURL,
		VideoCount:   parseCount(ch.Statistics.VideoCount),
	}, nil
}

// ExtractChannelID returns the canonical ID embedded in a channel/UC... URL, or "".
func ExtractChannelID(input string) string {
	if m := channelURLPattern.FindStringSubmatch(input); m != nil {
		return m[1]
	}
	return ""
}

// ExtractHandle returns the @handle of input when it is a handle or a youtube.com/@name URL, or "".
func ExtractHandle(input string) string {
	if strings.HasPrefix(input, "@") {
		return input
	}
	if m := handleURLPattern.FindStringSubmatch(input); m != nil {
		return m[1]
	}
	return ""
}

// parseCount coerces an upstream decimal count to a non-negative int.
func parseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
