package main

import (
	"context"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/johnquangdev/orbital-minutes/internal/adapter/presenter"
	"github.com/johnquangdev/orbital-minutes/internal/infrastructure/storage"
	"github.com/johnquangdev/orbital-minutes/internal/usecase/minutes"
	pkgai "github.com/johnquangdev/orbital-minutes/pkg/ai"
	"github.com/johnquangdev/orbital-minutes/pkg/config"
	"github.com/johnquangdev/orbital-minutes/pkg/logger"
)

const sampleTranscript = `
[00:00:00] Alex: Alright, let's get started. Thanks everyone for joining the weekly sync.
First item on the agenda is the website redesign. Sarah, how are we doing on the homepage?
[00:00:15] Sarah: It's mostly done. I just need to fix the responsive layout for mobile.
I should be finished by Thursday.
[00:00:25] Alex: Great. Make sure to check it on both iOS and Android.
Next up, the backend migration. Mike?
[00:00:35] Mike: We hit a bit of a snag with the database schema. The old data structure isn't mapping cleanly.
We decided to write a custom migration script to handle the edge cases.
[00:00:45] Alex: Okay, does that impact the timeline?
[00:00:50] Mike: Yeah, it pushes us back about two days. So we're looking at launch next Monday instead of Friday.
[00:00:58] Alex: That's fine. Quality is more important than rushing.
Let's officially move the launch date to next Monday, the 25th.
[00:01:10] Sarah: One more thing - we need to approve the budget for the new server instance.
It's $50 a month.
[00:01:20] Alex: Approved. Go ahead and provision it.
So action items: Sarah on mobile layout, Mike on migration script.
I'll update the project board.
[00:01:35] Mike: Sounds good.
[00:01:37] Alex: Thanks everyone, meeting adjourned.
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	model := flag.String("llm_model", "gemini-flash-latest", "LLM model name")
	apiKey := flag.String("api_key", "", "LLM API key")
	output := flag.StringP("output", "o", "sample_minutes.md", "output file")
	flag.Parse()

	fmt.Println("--- Creating Sample Meeting Minutes ---")
	fmt.Println("Using built-in sample transcript...")

	zl := logger.NewNop()
	generator := pkgai.NewMinutesRouter(cfg, zl).WithAPIKey(*apiKey)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	raw, err := generator.GenerateMinutes(ctx, sampleTranscript, *model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	doc := minutes.StripCodeFence(raw)

	path, err := storage.NewLocalStore(cfg.Pipeline.OutputDir).Put(ctx, *output, "text/markdown", []byte(doc))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nSuccess! Sample minutes saved to: %s\n", path)
	fmt.Println("\n--- Preview ---")
	fmt.Println(doc)
	fmt.Println()
	fmt.Print(presenter.RenderText(minutes.Extract(doc)))
}
