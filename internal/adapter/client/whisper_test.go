package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/DavidBolaji/rag-project/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAudioFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.webm")
	require.NoError(t, os.WriteFile(path, []byte("fake-audio"), 0o600))
	return path
}

func TestWhisperTranscriber_SendsMultipartForm(t *testing.T) {
	var gotAuth, gotModel, gotLanguage string
	var gotFile []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotModel = r.FormValue("model")
		gotLanguage = r.FormValue("language")

		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		gotFile, err = io.ReadAll(file)
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"Am I eligible for a UK work visa?"}`))
	}))
	defer server.Close()

	tr := NewWhisperTranscriber("test-key", "whisper-1")
	tr.url = server.URL

	text, err := tr.Transcribe(context.Background(), writeAudioFile(t), repository.TranscribeOpts{Language: "en"})

	require.NoError(t, err)
	assert.Equal(t, "Am I eligible for a UK work visa?", text)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "whisper-1", gotModel)
	assert.Equal(t, "en", gotLanguage)
	assert.Equal(t, []byte("fake-audio"), gotFile)
}

func TestWhisperTranscriber_OmitsEmptyLanguageHint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, present := r.MultipartForm.Value["language"]
		assert.False(t, present)
		_, _ = w.Write([]byte(`{"text":"hello"}`))
	}))
	defer server.Close()

	tr := NewWhisperTranscriber("test-key", "whisper-1")
	tr.url = server.URL

	_, err := tr.Transcribe(context.Background(), writeAudioFile(t), repository.TranscribeOpts{})
	require.NoError(t, err)
}

func TestWhisperTranscriber_ProviderErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	tr := NewWhisperTranscriber("test-key", "whisper-1")
	tr.url = server.URL

	_, err := tr.Transcribe(context.Background(), writeAudioFile(t), repository.TranscribeOpts{Language: "fr"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestWhisperTranscriber_MissingFile(t *testing.T) {
	tr := NewWhisperTranscriber("test-key", "whisper-1")

	_, err := tr.Transcribe(context.Background(), filepath.Join(t.TempDir(), "missing.webm"), repository.TranscribeOpts{})

	require.Error(t, err)
}
