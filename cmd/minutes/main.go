package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/johnquangdev/orbital-minutes/internal/adapter/presenter"
	"github.com/johnquangdev/orbital-minutes/internal/domain/entities"
	"github.com/johnquangdev/orbital-minutes/internal/domain/repositories"
	"github.com/johnquangdev/orbital-minutes/internal/infrastructure/audio"
	"github.com/johnquangdev/orbital-minutes/internal/infrastructure/export"
	"github.com/johnquangdev/orbital-minutes/internal/infrastructure/storage"
	"github.com/johnquangdev/orbital-minutes/internal/usecase/minutes"
	pkgai "github.com/johnquangdev/orbital-minutes/pkg/ai"
	"github.com/johnquangdev/orbital-minutes/pkg/config"
	"github.com/johnquangdev/orbital-minutes/pkg/logger"
)

const previewLen = 200

const (
	defaultWhisperModel = "base"
	defaultLLMModel     = "llama-3.3-70b-versatile"
)

type options struct {
	whisperModel string
	llmModel     string
	apiKey       string
	exportFormat string
	verbose      bool
}

func newFlagSet(name string) (*flag.FlagSet, *options) {
	opts := &options{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&opts.whisperModel, "model", defaultWhisperModel, "Whisper model size (overrides PIPELINE_WHISPER_MODEL)")
	fs.StringVar(&opts.llmModel, "llm_model", defaultLLMModel, "LLM model name (overrides PIPELINE_LLM_MODEL)")
	fs.StringVar(&opts.apiKey, "api_key", "", "LLM API key (defaults to GROQ_API_KEY / GEMINI_API_KEY)")
	fs.StringVar(&opts.exportFormat, "export", "", "also write an export: pdf, docx or html")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "log pipeline stages")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [audio_path_or_url] [flags]\n\n", name)
		fs.PrintDefaults()
	}
	return fs, opts
}

// applyFlags lets explicitly set flags win over the environment
func applyFlags(cfg *config.Config, fs *flag.FlagSet, opts *options) {
	if fs.Changed("model") {
		cfg.Pipeline.WhisperModel = opts.whisperModel
	}
	if fs.Changed("llm_model") {
		cfg.Pipeline.LLMModel = opts.llmModel
	}
}

func main() {
	fs, opts := newFlagSet(filepath.Base(os.Args[0]))
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	cfg, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	applyFlags(cfg, fs, opts)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	zl := logger.NewNop()
	if opts.verbose {
		if zl, err = logger.New(config.LogConfig{Level: "debug", Format: "console"}); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
			os.Exit(1)
		}
	}
	defer zl.Sync()

	source := resolveSource(fs.Arg(0), cfg.Pipeline.AudioSource)
	if source == "" {
		fmt.Println("No audio source provided. Exiting.")
		return
	}

	transcriber, err := pkgai.NewTranscriber(cfg, zl)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	generator := pkgai.NewMinutesRouter(cfg, zl)

	svc := minutes.NewService(minutes.Dependencies{
		Audio:       audio.NewFetcher(nil, zl),
		Transcriber: transcriber,
		Generator:   generator,
		GeneratorForKey: func(key string) repositories.MinutesGenerator {
			return generator.WithAPIKey(key)
		},
		Exporters: []repositories.Exporter{
			export.NewPDFExporter(zl),
			export.NewDOCXExporter(""),
			export.NewHTMLExporter(),
		},
		Logger: zl,
	}, minutes.Options{
		WorkDir:      cfg.Pipeline.WorkDir,
		WhisperModel: cfg.Pipeline.WhisperModel,
		LLMModel:     cfg.Pipeline.LLMModel,
	})
	svc.OnProgress(func(p entities.Progress) {
		fmt.Printf("[%3d%%] %s\n", p.Percent, p.Message)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if audio.IsURL(source) {
		fmt.Printf("Downloading audio from %s...\n", source)
	}

	sess, err := svc.Start(ctx, minutes.StartRequest{Source: source, APIKey: opts.apiKey})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\n--- Transcript Generated ---")
	fmt.Println(preview(sess.Transcript, previewLen))

	base := strings.TrimSuffix(filepath.Base(sess.AudioPath), filepath.Ext(sess.AudioPath))
	out := storage.NewLocalStore(cfg.Pipeline.OutputDir)
	mdPath, err := out.Put(ctx, base+"_minutes.md", "text/markdown", []byte(sess.Minutes))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving minutes: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n--- Meeting Minutes Saved to %s ---\n", mdPath)
	fmt.Println(sess.Minutes)
	fmt.Println()
	fmt.Print(presenter.RenderText(sess.Structured))

	if opts.exportFormat != "" {
		res, err := svc.Export(ctx, opts.exportFormat)
		switch {
		case err != nil:
			fmt.Fprintf(os.Stderr, "Export error: %v\n", err)
		case !res.OK:
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", res.Err)
		default:
			p, err := out.Put(ctx, res.FileName, res.ContentType, res.Data)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error saving export: %v\n", err)
				break
			}
			fmt.Printf("\n📄 Export saved to %s\n", p)
		}
	}

	zl.Info("done", zap.String("job_id", sess.JobID.String()))
}

// resolveSource picks the CLI argument, then AUDIO_SOURCE, then asks on stdin
func resolveSource(arg, fromEnv string) string {
	if s := audio.CleanSource(arg); s != "" {
		return s
	}
	if s := audio.CleanSource(fromEnv); s != "" {
		fmt.Printf("Using audio source from environment: %s\n", s)
		return s
	}

	fmt.Println("No audio source provided (CLI arg or AUDIO_SOURCE).")
	fmt.Print("Please enter the path or URL to the audio file: ")
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return audio.CleanSource(line)
}

func preview(text string, n int) string {
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	return string(r[:n]) + "..."
}
