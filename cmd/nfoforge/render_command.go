package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"nfoforge/internal/logging"
	"nfoforge/internal/render"
)

type renderResult struct {
	RenderID string        `json:"render_id"`
	Mode     string        `json:"mode"`
	Output   string        `json:"output"`
	Tokens   []renderToken `json:"tokens,omitempty"`
}

type renderToken struct {
	Token  string `json:"token"`
	Name   string `json:"name"`
	Source string `json:"source"`
	Value  string `json:"value"`
}

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var (
		inputs       renderInputs
		templateText string
		templateFile string
		mode         string
		colon        string
		unfilled     string
		filenameMode bool
		jsonOutput   bool
	)

	cmd := &cobra.Command{
		Use:   "render <media-file|directory>",
		Short: "Render a template against a media file or series pack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger := ctx.loggerValue()

			tmpl, err := readTemplate(templateText, templateFile)
			if err != nil {
				return err
			}

			opts, err := render.OptionsFromConfig(cfg)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("colon") {
				if opts.Colon, err = render.ParseColonPolicy(colon); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("unfilled") {
				if opts.Unfilled, err = render.ParseUnfilledPolicy(unfilled); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("filename") {
				opts.FilenameMode = filenameMode
			}

			inputs.seasonSet = cmd.Flags().Changed("season")
			inputs.episodeSet = cmd.Flags().Changed("episode")

			renderID := uuid.NewString()
			runCtx := logging.WithRenderID(cmd.Context(), renderID)

			rc, err := inputs.buildContext(runCtx, cfg, args[0], logger)
			if err != nil {
				return err
			}

			engine := render.NewEngine(opts, nil, logger)
			result := renderResult{RenderID: renderID, Mode: strings.ToLower(strings.TrimSpace(mode))}
			switch render.Mode(result.Mode) {
			case render.ModeFlatten:
				if result.Output, err = engine.Flatten(runCtx, tmpl, rc); err != nil {
					return err
				}
				if jsonOutput {
					for _, r := range engine.References(runCtx, tmpl, rc) {
						result.Tokens = append(result.Tokens, renderToken{
							Token:  r.Ref.Raw,
							Name:   r.Ref.Name,
							Source: string(r.Source),
							Value:  r.Value.String(),
						})
					}
				}
			case render.ModeTemplate:
				if result.Output, err = engine.Template(runCtx, tmpl, rc); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown mode %q (use flatten or template)", mode)
			}

			if jsonOutput {
				return writeJSON(cmd, result)
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, result.Output)
			if !strings.HasSuffix(result.Output, "\n") {
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&templateText, "template", "t", "", "Template text")
	flags.StringVarP(&templateFile, "template-file", "f", "", "Read the template from a file")
	flags.StringVar(&mode, "mode", string(render.ModeFlatten), "Render mode: flatten or template")
	flags.StringVar(&colon, "colon", "", "Override render.colon_replace")
	flags.StringVar(&unfilled, "unfilled", "", "Override render.unfilled_tokens")
	flags.BoolVar(&filenameMode, "filename", true, "Produce a filename (false renders a title line)")
	flags.BoolVar(&jsonOutput, "json", false, "Emit JSON with the resolved tokens")

	flags.StringVar(&inputs.mediaInfoPath, "media-info", "", "JSON media info for the primary file")
	flags.BoolVar(&inputs.probe, "probe", false, "Read media info with ffprobe")
	flags.StringVar(&inputs.sourcePath, "source", "", "Source file the release was made from")
	flags.StringVar(&inputs.sourceInfoPath, "source-media-info", "", "JSON media info for the source file")
	flags.StringVar(&inputs.guessPath, "guess", "", "JSON filename guess for the primary file")
	flags.StringVar(&inputs.sourceGuessPath, "source-guess", "", "JSON filename guess for the source file")
	flags.StringVar(&inputs.searchPath, "search", "", "JSON metadata search result")
	flags.IntVar(&inputs.season, "season", 0, "Season number")
	flags.IntVar(&inputs.episode, "episode", 0, "Episode number")
	flags.StringVar(&inputs.ordering, "ordering", "", "Episode ordering name")
	flags.StringToStringVar(&inputs.user, "user", nil, "User token values (usr_name=value)")
	flags.StringToStringVar(&inputs.overrides, "override", nil, "Override derived tokens (name=value)")
	flags.StringVar(&inputs.releaser, "releaser", "", "Override render.releaser_name")
	flags.StringVar(&inputs.releaseNotesPath, "release-notes", "", "Read release notes from a file")
	flags.StringVar(&inputs.repackN, "repack", "", "Repack number")
	flags.StringVar(&inputs.repackReason, "repack-reason", "", "Repack reason")
	flags.StringVar(&inputs.properN, "proper", "", "Proper number")
	flags.StringVar(&inputs.properReason, "proper-reason", "", "Proper reason")

	return cmd
}

func readTemplate(text, path string) (string, error) {
	switch {
	case text != "" && path != "":
		return "", errors.New("use either --template or --template-file")
	case path != "":
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return "", fmt.Errorf("read template: %w", err)
		}
		return string(data), nil
	case text != "":
		return text, nil
	}
	return "", errors.New("a template is required (--template or --template-file)")
}
