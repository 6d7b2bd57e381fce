package pipeline

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/zen-systems/promptgen/pkg/artifact"
	"github.com/zen-systems/promptgen/pkg/config"
	"github.com/zen-systems/promptgen/pkg/inference"
	"github.com/zen-systems/promptgen/pkg/prompt"
	"github.com/zen-systems/promptgen/pkg/publish"
	"github.com/zen-systems/promptgen/pkg/render"
)

// Runner processes every prompt file of a run, one after another.
type Runner struct {
	cfg       config.Run
	templates *prompt.TemplateStore
	client    *inference.Client
	writer    *artifact.Writer
	publisher *publish.Publisher
	log       *zap.Logger
}

// FileResult captures what happened to one prompt file.
type FileResult struct {
	Source   string
	Config   *prompt.Config
	Artifact *artifact.Artifact
	Publish  publish.Result
	Duration time.Duration
}

// Summary is returned when every prompt file was processed.
type Summary struct {
	Tier     config.Tier
	Files    []FileResult
	Duration time.Duration
}

// Published counts files that were uploaded.
func (s *Summary) Published() int {
	n := 0
	for _, f := range s.Files {
		if !f.Publish.Skipped {
			n++
		}
	}
	return n
}

// NewRunner wires the stages for cfg.
func NewRunner(cfg config.Run, client *inference.Client, publisher *publish.Publisher, log *zap.Logger) (*Runner, error) {
	if client == nil {
		return nil, errors.New("inference client is required")
	}
	if publisher == nil {
		return nil, errors.New("publisher is required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	writer, err := artifact.NewWriter(cfg.Dirs.Outputs)
	if err != nil {
		return nil, err
	}

	return &Runner{
		cfg:       cfg,
		templates: prompt.NewTemplateStore(cfg.Dirs.Templates),
		client:    client,
		writer:    writer,
		publisher: publisher,
		log:       log.With(zap.String("tier", cfg.Tier.String())),
	}, nil
}

// Run discovers the prompt files and processes them in order. The first error
// stops the run; files after it are not touched and no summary is returned.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()

	files, err := Discover(r.cfg.Dirs.Prompts)
	if err != nil {
		return nil, err
	}

	r.log.Info("starting prompt processing",
		zap.Int("files", len(files)),
		zap.String("adapter", r.client.Adapter()),
		zap.String("model", r.client.Model()),
	)

	summary := &Summary{Tier: r.cfg.Tier}
	for _, file := range files {
		result, err := r.ProcessFile(ctx, file)
		if err != nil {
			r.log.Error("error processing prompt file", zap.String("file", file), zap.Error(err))
			return nil, err
		}
		summary.Files = append(summary.Files, *result)
	}

	summary.Duration = time.Since(start)
	return summary, nil
}

// ProcessFile runs load, render, infer, persist and publish for one prompt file.
// Errors come back as *StageError.
func (r *Runner) ProcessFile(ctx context.Context, file string) (*FileResult, error) {
	start := time.Now()
	log := r.log.With(zap.String("file", file))
	log.Info("processing")

	cfg, err := prompt.Load(file)
	if err != nil {
		return nil, stageError(StageLoad, file, err)
	}

	tmpl, err := r.templates.Load(cfg.Template)
	if err != nil {
		return nil, stageError(StageRender, file, err)
	}
	rendered := render.Render(tmpl, cfg.Variables)
	log.Info("rendered template",
		zap.String("template", cfg.Template),
		zap.Strings("variables", render.Names(cfg.Variables)),
	)

	log.Info("invoking model", zap.String("adapter", r.client.Adapter()), zap.String("model", r.client.Model()))
	resp, err := r.client.Generate(ctx, rendered, cfg.Instruction, cfg.ModelParams)
	if err != nil {
		return nil, stageError(StageInfer, file, err)
	}
	if resp.Usage != nil {
		log.Debug("model usage",
			zap.Int("prompt_tokens", resp.Usage.PromptTokens),
			zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		)
	}

	art, err := r.writer.Write(resp.Text, cfg.OutputFile, artifact.Origin{
		Adapter: resp.Adapter,
		Model:   resp.Model,
		Source:  file,
	})
	if err != nil {
		return nil, stageError(StagePersist, file, err)
	}
	log.Info("saved locally", zap.String("path", art.Path), zap.String("hash", art.Hash))

	dest := publish.Destination{Bucket: r.cfg.Bucket, Key: r.cfg.RemoteKey(cfg.OutputFile)}
	published, err := r.publisher.Publish(ctx, art, dest)
	if err != nil {
		return nil, stageError(StagePublish, file, err)
	}

	result := &FileResult{
		Source:   file,
		Config:   cfg,
		Artifact: art,
		Publish:  published,
		Duration: time.Since(start),
	}
	log.Info("processed", zap.Duration("duration", result.Duration))
	return result, nil
}
