package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/johnquangdev/orbital-minutes/internal/infrastructure/storage"
	pkgai "github.com/johnquangdev/orbital-minutes/pkg/ai"
	"github.com/johnquangdev/orbital-minutes/pkg/config"
	"github.com/johnquangdev/orbital-minutes/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	output := flag.StringP("output", "o", "models.txt", "file receiving one model id per line")
	apiKey := flag.String("api_key", "", "Groq API key")
	flag.Parse()

	groq := pkgai.NewGroqClient(&cfg.Groq, logger.NewNop()).WithAPIKey(*apiKey)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Println("Listing Groq models...")
	ids, err := groq.ListModels(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing models: %v\n", err)
		os.Exit(1)
	}
	for _, id := range ids {
		fmt.Println(id)
	}

	if _, err := storage.NewLocalStore(".").Put(ctx, *output, "text/plain", []byte(strings.Join(ids, "\n")+"\n")); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *output, err)
		os.Exit(1)
	}
}
