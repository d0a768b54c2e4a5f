package ai

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/scrumscribe-team/scrumscribe/pkg/config"
)

// SpeechClient wraps the official AssemblyAI SDK for meeting transcription
type SpeechClient struct {
	sdk      *aai.Client
	language string
}

// NewSpeechClient creates a speech client using the provided config
func NewSpeechClient(cfg *config.SpeechConfig) *SpeechClient {
	return &SpeechClient{
		sdk:      aai.NewClient(cfg.APIKey),
		language: cfg.LanguageHint,
	}
}

// Transcribe uploads the recording, waits for the transcript and returns it
// with speaker diarization rendered inline. The SDK polls until the job
// reaches a terminal status.
func (c *SpeechClient) Transcribe(ctx context.Context, audio []byte) (string, error) {
	params := &aai.TranscriptOptionalParams{
		SpeakerLabels: aai.Bool(true),
	}
	if c.language != "" {
		params.LanguageCode = aai.TranscriptLanguageCode(c.language)
	}

	transcript, err := c.sdk.Transcripts.TranscribeFromReader(ctx, bytes.NewReader(audio), params)
	if err != nil {
		return "", fmt.Errorf("assemblyai transcription failed: %w", err)
	}

	if transcript.Status == aai.TranscriptStatusError {
		reason := "unknown error"
		if transcript.Error != nil {
			reason = *transcript.Error
		}
		return "", fmt.Errorf("assemblyai transcription failed: %s", reason)
	}

	if formatted := formatUtterances(transcript.Utterances); formatted != "" {
		return formatted, nil
	}

	if transcript.Text != nil {
		return *transcript.Text, nil
	}
	return "", fmt.Errorf("assemblyai returned an empty transcript")
}

// formatUtterances renders diarized segments as "[MM:SS Speaker A]: text"
// lines so the extractor can attribute statements to speaker slots.
func formatUtterances(utterances []aai.TranscriptUtterance) string {
	if len(utterances) == 0 {
		return ""
	}

	var b strings.Builder
	for i, utt := range utterances {
		if utt.Text == nil || *utt.Text == "" {
			continue
		}
		if i > 0 {
			b.WriteString("\n")
		}

		var startMS int64
		if utt.Start != nil {
			startMS = *utt.Start
		}
		speaker := "?"
		if utt.Speaker != nil {
			speaker = *utt.Speaker
		}

		totalSeconds := startMS / 1000 // ms to seconds
		fmt.Fprintf(&b, "[%02d:%02d Speaker %s]: %s", totalSeconds/60, totalSeconds%60, speaker, *utt.Text)
	}
	return b.String()
}
