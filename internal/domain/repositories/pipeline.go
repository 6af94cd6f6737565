package repositories

import "context"

// Transcriber turns a local audio file into plain text
type Transcriber interface {
	// Transcribe fails when the file is absent or cannot be decoded.
	// model is backend specific (Whisper size for the local sidecar).
	Transcribe(ctx context.Context, audioPath string, model string) (string, error)
	Name() string
}

// MinutesGenerator turns a transcript into a markdown minutes document
type MinutesGenerator interface {
	GenerateMinutes(ctx context.Context, transcript string, model string) (string, error)
}

// Exporter renders a markdown document into a downloadable format
type Exporter interface {
	Export(markdown string, title string) ([]byte, error)
	Format() string
	ContentType() string
}

// ArtifactStore persists output files and returns where they ended up
type ArtifactStore interface {
	Put(ctx context.Context, name string, contentType string, data []byte) (string, error)
}
