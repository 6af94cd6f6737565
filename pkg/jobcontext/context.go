package jobcontext

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type KeyContext string

var (
	keyJobID        KeyContext = "job_id"
	keyStage        KeyContext = "stage"
	keyAudioPath    KeyContext = "audio_path"
	keyJobStartTime KeyContext = "job_start_time"
)

// JobMetadata holds metadata for a pipeline run
type JobMetadata struct {
	JobID     uuid.UUID
	Stage     string
	AudioPath string
	StartTime time.Time
}

// JobBegin derives a job context carrying the job id and start time.
// A zero timeout leaves the parent deadline in place.
func JobBegin(parentCtx context.Context, jobID uuid.UUID, timeout time.Duration) (context.Context, context.CancelFunc) {
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(parentCtx, timeout)
	} else {
		ctx, cancel = context.WithCancel(parentCtx)
	}

	ctx = context.WithValue(ctx, keyJobID, jobID)
	ctx = context.WithValue(ctx, keyJobStartTime, time.Now())

	return ctx, cancel
}

// RunStage executes one pipeline stage with panic recovery.
// Stages are never retried; the first error is returned as is.
func RunStage(ctx context.Context, stage string, fn func(context.Context) error) (err error) {
	ctx = SetStage(ctx, stage)

	if ctx.Err() != nil {
		return fmt.Errorf("context cancelled before %s: %w", stage, ctx.Err())
	}

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic recovered in %s: %v", stage, p)
		}
	}()

	return fn(ctx)
}

// GetJobID extracts job ID from context
func GetJobID(ctx context.Context) (uuid.UUID, bool) {
	jobID, ok := ctx.Value(keyJobID).(uuid.UUID)
	return jobID, ok
}

// GetStage extracts the current stage from context
func GetStage(ctx context.Context) (string, bool) {
	stage, ok := ctx.Value(keyStage).(string)
	return stage, ok
}

// SetStage updates the stage in context
func SetStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, keyStage, stage)
}

// SetAudioPath records the acquired audio file in context
func SetAudioPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, keyAudioPath, path)
}

// GetAudioPath extracts the audio path from context
func GetAudioPath(ctx context.Context) (string, bool) {
	path, ok := ctx.Value(keyAudioPath).(string)
	return path, ok
}

// GetJobStartTime extracts job start time from context
func GetJobStartTime(ctx context.Context) (time.Time, bool) {
	startTime, ok := ctx.Value(keyJobStartTime).(time.Time)
	return startTime, ok
}

// GetJobMetadata extracts all job metadata from context
func GetJobMetadata(ctx context.Context) *JobMetadata {
	jobID, _ := GetJobID(ctx)
	stage, _ := GetStage(ctx)
	audioPath, _ := GetAudioPath(ctx)
	startTime, _ := GetJobStartTime(ctx)

	return &JobMetadata{
		JobID:     jobID,
		Stage:     stage,
		AudioPath: audioPath,
		StartTime: startTime,
	}
}

// Fields returns the job metadata as zap fields for stage logs
func Fields(ctx context.Context) []zap.Field {
	meta := GetJobMetadata(ctx)

	fields := make([]zap.Field, 0, 4)
	if meta.JobID != uuid.Nil {
		fields = append(fields, zap.String("job_id", meta.JobID.String()))
	}
	if meta.Stage != "" {
		fields = append(fields, zap.String("stage", meta.Stage))
	}
	if meta.AudioPath != "" {
		fields = append(fields, zap.String("audio_path", meta.AudioPath))
	}
	if !meta.StartTime.IsZero() {
		fields = append(fields, zap.Duration("elapsed", time.Since(meta.StartTime)))
	}
	return fields
}
