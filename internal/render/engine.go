package render

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"nfoforge/internal/derive"
	"nfoforge/internal/logging"
	"nfoforge/internal/tokens"
)

// Mode names the two output paths.
type Mode string

const (
	ModeFlatten  Mode = "flatten"
	ModeTemplate Mode = "template"
)

// Options configures an Engine. The zero value keeps colons and unfilled
// brackets and produces a title line.
type Options struct {
	Colon    ColonPolicy
	Unfilled UnfilledPolicy
	// FilenameMode produces a dotted filename with the primary file's
	// extension instead of a title line.
	FilenameMode bool
	// TitleOverrideRules run over title-line output.
	TitleOverrideRules []derive.TitleRule
	// Filters extend the built-in filter set in flatten mode.
	Filters tokens.Registry
}

// Engine renders templates against render contexts. It is safe for
// concurrent use.
type Engine struct {
	opts     Options
	renderer Renderer
	logger   *slog.Logger
}

// NewEngine builds an Engine. A nil renderer uses TextTemplateRenderer and a
// nil logger discards output.
func NewEngine(opts Options, renderer Renderer, logger *slog.Logger) *Engine {
	if renderer == nil {
		renderer = TextTemplateRenderer{}
	}
	return &Engine{
		opts:     opts,
		renderer: renderer,
		logger:   logging.NewComponentLogger(logger, "render"),
	}
}

// Options returns the engine's options.
func (e *Engine) Options() Options {
	return e.opts
}

// Flatten renders template in flatten mode.
func (e *Engine) Flatten(ctx context.Context, template string, rc *derive.Context) (string, error) {
	if err := e.opts.Colon.validate(); err != nil {
		return "", err
	}
	if err := e.opts.Unfilled.validate(); err != nil {
		return "", err
	}
	rc = orEmpty(rc)
	logger, start := e.begin(ctx, ModeFlatten, template)

	resolved := e.resolveReferences(logger, template, rc)
	out, err := e.assemble(template, resolved, filepath.Ext(rc.PrimaryPath))
	if err != nil {
		logging.ErrorWithContext(logger, "render failed", "render_failed", logging.Error(err))
		return "", err
	}
	logger.Debug("render finished",
		logging.Int("tokens", len(resolved)),
		logging.Duration("elapsed", time.Since(start)),
	)
	return out, nil
}

// References resolves the references template contains the way Flatten
// does, without assembling output.
func (e *Engine) References(ctx context.Context, template string, rc *derive.Context) []Resolved {
	rc = orEmpty(rc)
	logger, _ := e.begin(ctx, ModeFlatten, template)
	return e.resolveReferences(logger, template, rc)
}

// Values resolves every catalog token, plus the context's user values, into
// the map template mode hands to the Renderer. Filters are not applied.
func (e *Engine) Values(ctx context.Context, rc *derive.Context) map[string]tokens.Value {
	rc = orEmpty(rc)
	logger, _ := e.begin(ctx, ModeTemplate, "")
	return e.values(logger, rc)
}

// Template renders template in template mode.
func (e *Engine) Template(ctx context.Context, template string, rc *derive.Context) (string, error) {
	rc = orEmpty(rc)
	logger, start := e.begin(ctx, ModeTemplate, template)

	values := e.values(logger, rc)
	data := make(map[string]any, len(values))
	for name, v := range values {
		data[name] = v.Interface()
	}
	out, err := e.renderer.Render(ctx, template, data)
	if err != nil {
		logging.ErrorWithContext(logger, "template render failed", "template_failed", logging.Error(err))
		return "", err
	}
	logger.Debug("render finished",
		logging.Int("tokens", len(values)),
		logging.Duration("elapsed", time.Since(start)),
	)
	return out, nil
}

func (e *Engine) begin(ctx context.Context, mode Mode, template string) (*slog.Logger, time.Time) {
	if _, ok := logging.RenderIDFromContext(ctx); !ok {
		ctx = logging.WithRenderID(ctx, uuid.NewString())
	}
	logger := logging.WithContext(ctx, e.logger).With(logging.String(logging.FieldMode, string(mode)))
	logger.Debug("render started", logging.String("template", template))
	return logger, time.Now()
}

func (e *Engine) resolveReferences(logger *slog.Logger, template string, rc *derive.Context) []Resolved {
	state := derive.NewState(rc, logger)
	refs := tokens.Scan(template, rc.User)
	resolved := make([]Resolved, 0, len(refs))
	for _, ref := range refs {
		r := resolve(state, ref, true, e.opts.Filters)
		logTokenResolved(logger, r)
		resolved = append(resolved, r)
	}
	return resolved
}

func (e *Engine) values(logger *slog.Logger, rc *derive.Context) map[string]tokens.Value {
	state := derive.NewState(rc, logger)
	values := tokens.EmptyValues()
	for _, ref := range tokens.CatalogReferences() {
		r := resolve(state, ref, false, nil)
		logTokenResolved(logger, r)
		values[ref.Name] = r.Value
	}
	for name, v := range rc.User {
		values[name] = tokens.Text(v)
	}
	return values
}

// assemble substitutes resolved references leftmost first. The colon policy
// runs after every substitution except for the *title_clean tokens, which go
// in after the colon passes.
func (e *Engine) assemble(template string, resolved []Resolved, ext string) (string, error) {
	out := template
	var deferred []Resolved
	for _, r := range resolved {
		if strings.Contains(r.Ref.Name, tokens.TitleClean) {
			deferred = append(deferred, r)
			continue
		}
		out = strings.ReplaceAll(out, r.Ref.Raw, r.Text)
		out = e.opts.Colon.apply(out)
	}
	for _, r := range deferred {
		out = strings.ReplaceAll(out, r.Ref.Raw, r.Text)
	}

	out, err := e.opts.Unfilled.apply(out)
	if err != nil {
		return "", err
	}
	if e.opts.FilenameMode {
		// An empty trailing token leaves a separator in front of the extension.
		return strings.TrimRight(SanitizeFilename(out), ".-") + ext, nil
	}
	return titleLine(out, e.opts.TitleOverrideRules), nil
}

func logTokenResolved(logger *slog.Logger, r Resolved) {
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	attrs := logging.TokenAttrs(r.Ref.Name, string(r.Source), r.Value.IsEmpty())
	if len(r.Ref.Filters) > 0 {
		names := make([]string, len(r.Ref.Filters))
		for i, f := range r.Ref.Filters {
			names[i] = f.Raw
		}
		attrs = append(attrs, logging.String(logging.FieldFilter, strings.Join(names, "|")))
	}
	logger.Debug("token resolved", logging.Args(attrs...)...)
}

func orEmpty(rc *derive.Context) *derive.Context {
	if rc == nil {
		return &derive.Context{}
	}
	return rc
}
