package derive

import (
	"fmt"
	"log/slog"
	"sort"

	"nfoforge/internal/logging"
	"nfoforge/internal/metadata"
	"nfoforge/internal/tokens"
)

type resolverFunc func(*State) tokens.Value

type episodeKey struct {
	season  int
	episode int
}

// State is the per-render view over a Context. It memoizes episode lookups
// and collects failures that are scoped to a single token.
type State struct {
	ctx      *Context
	logger   *slog.Logger
	episodes map[episodeKey]metadata.Episode
	token    string
}

// NewState prepares a render over ctx. A nil logger discards output.
func NewState(ctx *Context, logger *slog.Logger) *State {
	if ctx == nil {
		ctx = &Context{}
	}
	return &State{
		ctx:      ctx,
		logger:   logging.NewComponentLogger(logger, "derive"),
		episodes: make(map[episodeKey]metadata.Episode),
	}
}

// Context returns the render context the state reads from.
func (s *State) Context() *Context {
	return s.ctx
}

// Resolve computes the derived value of a catalog token. Unknown names
// return an error; missing data yields the empty value.
func (s *State) Resolve(name string) (tokens.Value, error) {
	fn, ok := resolvers[name]
	if !ok {
		return tokens.Value{}, fmt.Errorf("no resolver for token %q", name)
	}
	s.token = name
	defer func() { s.token = "" }()
	return fn(s), nil
}

// warn records a failure that only affects the token being resolved.
func (s *State) warn(msg string, err error) {
	logging.WarnWithContext(s.logger, msg, "token_degraded",
		logging.String(logging.FieldToken, s.token),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check the filename guess data"),
		logging.String(logging.FieldImpact, "token resolved to an empty value"),
	)
}

// episode returns the search record for season/episode, caching hits only.
func (s *State) episode(season, episode int) (metadata.Episode, bool) {
	key := episodeKey{season, episode}
	if ep, ok := s.episodes[key]; ok {
		return ep, true
	}
	ep, ok := s.ctx.search().FindEpisode(season, episode)
	if ok {
		s.episodes[key] = ep
	}
	return ep, ok
}

// FirstNonEmpty returns the first non-empty result of sources, calling them
// in order and stopping at the first hit.
func FirstNonEmpty(sources ...func() string) string {
	for _, source := range sources {
		if source == nil {
			continue
		}
		if v := source(); v != "" {
			return v
		}
	}
	return ""
}

// Names returns the tokens with a resolver, sorted.
func Names() []string {
	names := make([]string, 0, len(resolvers))
	for name := range resolvers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	for _, name := range tokens.Names() {
		if _, ok := resolvers[name]; !ok {
			panic("derive: no resolver for catalog token " + name)
		}
	}
}

func text(s string) tokens.Value { return tokens.Text(s) }
