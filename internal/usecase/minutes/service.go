package minutes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/orbital-minutes/internal/domain/entities"
	"github.com/johnquangdev/orbital-minutes/internal/domain/repositories"
	"github.com/johnquangdev/orbital-minutes/internal/infrastructure/audio"
	"github.com/johnquangdev/orbital-minutes/internal/infrastructure/export"
	ucerrors "github.com/johnquangdev/orbital-minutes/internal/usecase/errors"
	"github.com/johnquangdev/orbital-minutes/pkg/jobcontext"
)

// Service runs one transcribe -> generate -> extract job at a time
// and keeps its result for display and export.
type Service interface {
	// Start runs the whole pipeline and blocks until it completes or fails.
	Start(ctx context.Context, req StartRequest) (*entities.Session, error)
	// StartAsync validates and claims the session, then runs the pipeline in the background.
	StartAsync(ctx context.Context, req StartRequest) (*entities.Session, error)
	// Reset clears a completed session. It is rejected while a job runs.
	Reset() error
	Snapshot() entities.Session
	// Export renders the stored minutes; a failed render is reported in the result, not as error.
	Export(ctx context.Context, format string) (*ExportResult, error)
	Formats() []string
	OnProgress(fn ProgressFunc)
}

// StartRequest describes the audio and model choices for one job
type StartRequest struct {
	// Source is a local path or an http(s) URL. Ignored when Upload is set.
	Source       string
	UploadName   string
	Upload       io.Reader
	WhisperModel string
	LLMModel     string
	// APIKey overrides the configured generator key for this job.
	APIKey string
}

// ExportResult carries rendered bytes or an explicit failure signal.
// Data is only set when OK is true.
type ExportResult struct {
	OK          bool
	Format      string
	ContentType string
	FileName    string
	Data        []byte
	Err         error
	Cached      bool
}

// ProgressFunc observes coarse pipeline progress
type ProgressFunc func(entities.Progress)

// AudioResolver turns a source into a local file
type AudioResolver interface {
	Resolve(ctx context.Context, source string, dir string) (string, error)
}

// ExportCache stores rendered exports per job and format
type ExportCache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, expiration time.Duration)
	DeletePrefix(prefix string)
}

// Dependencies wires the adapters used by the service
type Dependencies struct {
	Audio       AudioResolver
	Transcriber repositories.Transcriber
	Generator   repositories.MinutesGenerator
	// GeneratorForKey returns a generator bound to a per-job API key. Optional.
	GeneratorForKey func(apiKey string) repositories.MinutesGenerator
	Exporters       []repositories.Exporter
	Cache           ExportCache
	// Artifacts receives the minutes and transcript after each job. Optional.
	Artifacts repositories.ArtifactStore
	Parser    *Parser
	Logger    *zap.Logger
}

// Options holds pipeline defaults
type Options struct {
	WorkDir        string
	WhisperModel   string
	LLMModel       string
	ExportCacheTTL time.Duration
	// JobTimeout bounds a whole job; zero means no limit.
	JobTimeout time.Duration
}

type job struct {
	id           uuid.UUID
	source       string
	audioPath    string
	remote       bool
	whisperModel string
	llmModel     string
	apiKey       string
}

type service struct {
	deps      Dependencies
	opts      Options
	exporters map[string]repositories.Exporter

	mu         sync.Mutex
	session    *entities.Session
	onProgress ProgressFunc
}

// NewService creates the orchestrator
func NewService(deps Dependencies, opts Options) Service {
	if deps.Parser == nil {
		deps.Parser = NewParser()
	}
	if deps.Audio == nil {
		deps.Audio = audio.NewFetcher(nil, deps.Logger)
	}
	if opts.WorkDir == "" {
		opts.WorkDir = "."
	}
	if opts.ExportCacheTTL <= 0 {
		opts.ExportCacheTTL = 30 * time.Minute
	}

	exporters := make(map[string]repositories.Exporter, len(deps.Exporters))
	for _, e := range deps.Exporters {
		exporters[e.Format()] = e
	}

	return &service{
		deps:      deps,
		opts:      opts,
		exporters: exporters,
		session:   entities.NewSession(),
	}
}

func (s *service) OnProgress(fn ProgressFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onProgress = fn
}

func (s *service) Snapshot() entities.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Snapshot()
}

func (s *service) Formats() []string {
	formats := make([]string, 0, len(s.exporters))
	for _, e := range s.deps.Exporters {
		formats = append(formats, e.Format())
	}
	return formats
}

func (s *service) Start(ctx context.Context, req StartRequest) (*entities.Session, error) {
	j, err := s.begin(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, j)
}

func (s *service) StartAsync(ctx context.Context, req StartRequest) (*entities.Session, error) {
	j, err := s.begin(ctx, req)
	if err != nil {
		return nil, err
	}

	snap := s.Snapshot()
	go func() {
		_, _ = s.run(context.WithoutCancel(ctx), j)
	}()
	return &snap, nil
}

// begin validates input and moves Idle -> Running.
// Input errors leave the session untouched.
func (s *service) begin(ctx context.Context, req StartRequest) (*job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.session.IsIdle() {
		return nil, ucerrors.ErrSessionBusy
	}

	j := &job{
		id:           uuid.New(),
		whisperModel: firstNonEmpty(req.WhisperModel, s.opts.WhisperModel),
		llmModel:     firstNonEmpty(req.LLMModel, s.opts.LLMModel),
		apiKey:       strings.TrimSpace(req.APIKey),
	}

	if s.deps.Transcriber == nil {
		return nil, ucerrors.ErrTranscriberUnavailable
	}
	if s.generator(j.apiKey) == nil {
		return nil, ucerrors.ErrGeneratorUnavailable
	}

	switch {
	case req.Upload != nil:
		p, err := audio.SaveUpload(req.UploadName, req.Upload, s.opts.WorkDir)
		if err != nil {
			return nil, err
		}
		j.source = filepath.Base(p)
		j.audioPath = p

	default:
		src := audio.CleanSource(req.Source)
		if src == "" {
			return nil, ucerrors.ErrMissingAudioSource
		}
		j.source = src
		if audio.IsURL(src) {
			j.remote = true
			break
		}
		p, err := s.deps.Audio.Resolve(ctx, src, s.opts.WorkDir)
		if err != nil {
			return nil, err
		}
		j.audioPath = p
	}

	s.session.MarkAsRunning(j.id, j.source, j.audioPath, j.llmModel)
	return j, nil
}

func (s *service) run(parent context.Context, j *job) (*entities.Session, error) {
	ctx, cancel := jobcontext.JobBegin(parent, j.id, s.opts.JobTimeout)
	defer cancel()
	ctx = jobcontext.SetAudioPath(ctx, j.audioPath)

	s.logInfo(ctx, "▶️ Job started", zap.String("source", j.source), zap.String("llm_model", j.llmModel))

	if j.remote {
		s.emit(entities.Progress{Percent: 5, Stage: entities.StageAcquire, Message: "Downloading audio..."})
		err := jobcontext.RunStage(ctx, entities.StageAcquire, func(ctx context.Context) error {
			p, err := s.deps.Audio.Resolve(ctx, j.source, s.opts.WorkDir)
			if err != nil {
				return err
			}
			j.audioPath = p
			return nil
		})
		if err != nil {
			return nil, s.fail(ctx, err)
		}
		ctx = jobcontext.SetAudioPath(ctx, j.audioPath)
		s.mu.Lock()
		s.session.AudioPath = j.audioPath
		s.mu.Unlock()
	}

	var transcript string
	s.emit(entities.Progress{Percent: 25, Stage: entities.StageTranscribe, Message: "Transcribing audio..."})
	err := jobcontext.RunStage(ctx, entities.StageTranscribe, func(ctx context.Context) error {
		text, err := s.deps.Transcriber.Transcribe(ctx, j.audioPath, j.whisperModel)
		if err != nil {
			return err
		}
		transcript = strings.TrimSpace(text)
		if transcript == "" {
			return ucerrors.ErrEmptyTranscript
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, classifyTranscription(err))
	}
	s.logInfo(jobcontext.SetStage(ctx, entities.StageTranscribe), "✅ Transcription complete", zap.Int("chars", len(transcript)))

	var document string
	s.emit(entities.Progress{Percent: 75, Stage: entities.StageGenerate, Message: "Generating minutes..."})
	err = jobcontext.RunStage(ctx, entities.StageGenerate, func(ctx context.Context) error {
		raw, err := s.generator(j.apiKey).GenerateMinutes(ctx, transcript, j.llmModel)
		if err != nil {
			return err
		}
		document = StripCodeFence(raw)
		if document == "" {
			return errors.New("generator returned an empty document")
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, fmt.Errorf("%w: %w", ucerrors.ErrGenerationFailed, err))
	}

	structured := s.deps.Parser.Extract(document)
	s.logInfo(jobcontext.SetStage(ctx, entities.StageExtract), "🧩 Minutes extracted",
		zap.String("title", structured.Title),
		zap.Int("discussions", len(structured.Discussions)),
		zap.Int("actions", len(structured.Actions)),
	)

	s.mu.Lock()
	s.session.MarkAsComplete(transcript, entities.MinutesDocument(document), structured)
	s.mu.Unlock()
	s.emit(entities.Progress{Percent: 100, Stage: entities.StageComplete, Message: "Analysis complete"})

	s.publish(ctx, j, transcript, document)

	s.logInfo(jobcontext.SetStage(ctx, entities.StageComplete), "🏁 Job complete")

	snap := s.Snapshot()
	return &snap, nil
}

// fail aborts the job: Running -> Idle with the error recorded
func (s *service) fail(ctx context.Context, err error) error {
	if s.deps.Logger != nil {
		s.deps.Logger.Error("❌ Job failed", append(jobcontext.Fields(ctx), zap.Error(err))...)
	}

	s.mu.Lock()
	s.session.MarkAsFailed(err.Error())
	s.mu.Unlock()
	return err
}

// publish stores output artifacts; failures are logged and never fail the job
func (s *service) publish(ctx context.Context, j *job, transcript, document string) {
	if s.deps.Artifacts == nil {
		return
	}

	base := strings.TrimSuffix(filepath.Base(j.audioPath), filepath.Ext(j.audioPath))
	if base == "" || base == "." {
		base = "meeting"
	}

	files := []struct {
		name        string
		contentType string
		data        string
	}{
		{name: base + "_minutes.md", contentType: "text/markdown; charset=utf-8", data: document},
		{name: base + "_transcript.txt", contentType: "text/plain; charset=utf-8", data: transcript},
	}

	locations := make([]string, 0, len(files))
	for _, f := range files {
		loc, err := s.deps.Artifacts.Put(ctx, path.Join(j.id.String(), f.name), f.contentType, []byte(f.data))
		if err != nil {
			if s.deps.Logger != nil {
				s.deps.Logger.Warn("failed to store artifact",
					append(jobcontext.Fields(ctx), zap.String("artifact", f.name), zap.Error(err))...)
			}
			continue
		}
		locations = append(locations, loc)
	}

	s.mu.Lock()
	if s.session.JobID == j.id {
		s.session.Artifacts = locations
	}
	s.mu.Unlock()
}

func (s *service) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.State == entities.SessionStateRunning {
		return ucerrors.ErrSessionBusy
	}

	if s.deps.Cache != nil && s.session.JobID != uuid.Nil {
		s.deps.Cache.DeletePrefix(s.session.JobID.String() + ":")
	}
	s.session.Reset()
	return nil
}

func (s *service) Export(ctx context.Context, format string) (*ExportResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format = strings.ToLower(strings.TrimSpace(format))
	exporter, ok := s.exporters[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ucerrors.ErrUnsupportedExport, format)
	}

	snap := s.Snapshot()
	if snap.State != entities.SessionStateComplete {
		return nil, ucerrors.ErrNoMinutes
	}

	result := &ExportResult{
		Format:      format,
		ContentType: exporter.ContentType(),
		FileName:    export.FileName(snap.Title, format),
	}

	key := snap.JobID.String() + ":" + format
	if s.deps.Cache != nil {
		if data, ok := s.deps.Cache.Get(key); ok {
			result.OK, result.Data, result.Cached = true, data, true
			return result, nil
		}
	}

	data, err := exporter.Export(string(snap.Minutes), snap.Title)
	if err == nil && len(data) == 0 {
		err = errors.New("exporter produced no output")
	}
	if err != nil {
		result.Err = fmt.Errorf("%w: %w", ucerrors.ErrExportFailed, err)
		if s.deps.Logger != nil {
			s.deps.Logger.Warn("export failed",
				zap.String("job_id", snap.JobID.String()),
				zap.String("format", format),
				zap.Error(err),
			)
		}
		return result, nil
	}

	if s.deps.Cache != nil {
		s.deps.Cache.Set(key, data, s.opts.ExportCacheTTL)
	}
	result.OK, result.Data = true, data
	return result, nil
}

func (s *service) generator(apiKey string) repositories.MinutesGenerator {
	if apiKey != "" && s.deps.GeneratorForKey != nil {
		return s.deps.GeneratorForKey(apiKey)
	}
	return s.deps.Generator
}

func (s *service) emit(p entities.Progress) {
	s.mu.Lock()
	if s.session.State == entities.SessionStateRunning || p.Stage == entities.StageComplete {
		s.session.Progress = p
	}
	fn := s.onProgress
	s.mu.Unlock()

	if fn != nil {
		fn(p)
	}
}

func (s *service) logInfo(ctx context.Context, msg string, fields ...zap.Field) {
	if s.deps.Logger == nil {
		return
	}
	s.deps.Logger.Info(msg, append(jobcontext.Fields(ctx), fields...)...)
}

// classifyTranscription keeps missing-file errors distinct from decode failures
func classifyTranscription(err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ucerrors.ErrAudioNotFound, err)
	}
	return fmt.Errorf("%w: %w", ucerrors.ErrTranscriptionFailed, err)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
