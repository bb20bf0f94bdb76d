package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/DavidBolaji/rag-project/internal/domain/repository"
)

const transcriptionURL = "https://api.openai.com/v1/audio/transcriptions"

// WhisperTranscriber converts recorded audio to text via the OpenAI audio
// transcription API. The caller owns the audio file; this adapter only
// reads it.
type WhisperTranscriber struct {
	apiKey string
	model  string // e.g., "whisper-1"
	url    string
	client *http.Client
}

func NewWhisperTranscriber(apiKey, model string) *WhisperTranscriber {
	return &WhisperTranscriber{
		apiKey: apiKey,
		model:  model,
		url:    transcriptionURL,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (w *WhisperTranscriber) Transcribe(ctx context.Context, audioPath string, opts repository.TranscribeOpts) (string, error) {
	audio, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("opening audio file: %w", err)
	}
	defer audio.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("writing audio: %w", err)
	}

	_ = writer.WriteField("model", w.model)
	if opts.Language != "" {
		// Advisory hint; the provider may ignore it.
		_ = writer.WriteField("language", opts.Language)
	}
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, body)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+w.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("transcription failed (status %d): %s", resp.StatusCode, respBody)
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding transcription: %w", err)
	}
	return result.Text, nil
}
