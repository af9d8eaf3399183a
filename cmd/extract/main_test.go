package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/product-sheet-extractor/internal/config"
)

func testConfig(t *testing.T, backend string) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		Extractor:   config.ExtractorConfig{URL: backend, Timeout: 5 * time.Second, MaxResponseSize: 1 << 20},
		Storage:     config.StorageConfig{ExportPath: filepath.Join(dir, "exports")},
		Preferences: config.PreferencesConfig{Path: filepath.Join(dir, "preferences.yaml")},
	}
}

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func backend(t *testing.T, status int, body string) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRunExportsCSV(t *testing.T) {
	server := backend(t, http.StatusOK, `{"product_title":"Camera X","color":"black"}`)
	cfg := testConfig(t, server.URL)
	pdf := writeFile(t, "camera.pdf", "%PDF-1.4")
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), cfg, []string{pdf}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "Camera X")
	assert.Equal(t, 6, strings.Count(stdout.String(), "N/A"))

	data, err := os.ReadFile(filepath.Join(cfg.Storage.ExportPath, "Camera_X.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Attribute,Value\n"))
	assert.Len(t, strings.Split(string(data), "\n"), 10)
}

func TestRunRejectsNonPDF(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")
	txt := writeFile(t, "invoice.txt", "total: 12")
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), cfg, []string{txt}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Only PDF files are allowed.")
	assert.Empty(t, stdout.String())
}

func TestRunReportsBackendError(t *testing.T) {
	server := backend(t, http.StatusInternalServerError, `{"error":"OCR failed"}`)
	cfg := testConfig(t, server.URL)
	pdf := writeFile(t, "camera.pdf", "%PDF-1.4")
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), cfg, []string{pdf}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "OCR failed")
	_, err := os.Stat(cfg.Storage.ExportPath)
	assert.True(t, os.IsNotExist(err))
}

func TestRunPersistsTheme(t *testing.T) {
	server := backend(t, http.StatusOK, `{"product_title":"Camera X"}`)
	cfg := testConfig(t, server.URL)
	pdf := writeFile(t, "camera.pdf", "%PDF-1.4")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), cfg, []string{"--theme", "dark", "--csv=false", "--color=always", pdf}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), palettes["dark"].label)

	stdout.Reset()
	code = run(context.Background(), cfg, []string{"--csv=false", "--color=always", pdf}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), palettes["dark"].label)

	prefs, err := os.ReadFile(cfg.Preferences.Path)
	require.NoError(t, err)
	assert.Contains(t, string(prefs), "theme: dark")
}

func TestRunPlainOutputWhenNotTerminal(t *testing.T) {
	server := backend(t, http.StatusOK, `{"product_title":"Camera X"}`)
	cfg := testConfig(t, server.URL)
	pdf := writeFile(t, "camera.pdf", "%PDF-1.4")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), cfg, []string{"--theme", "dark", "--csv=false", pdf}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "Camera X")
	assert.NotContains(t, stdout.String(), "\033[")

	out, err := os.CreateTemp(t.TempDir(), "stdout")
	require.NoError(t, err)
	defer out.Close()
	code = run(context.Background(), cfg, []string{"--csv=false", pdf}, out, &stderr)
	require.Equal(t, 0, code, stderr.String())
	data, err := os.ReadFile(out.Name())
	require.NoError(t, err)
	assert.Contains(t, string(data), "Product Title")
	assert.NotContains(t, string(data), "\033[")

	stdout.Reset()
	code = run(context.Background(), cfg, []string{"--csv=false", "--color=never", pdf}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.NotContains(t, stdout.String(), "\033[")
}

func TestRunUsage(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 2, run(context.Background(), cfg, nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Usage: extract")
	assert.Equal(t, 2, run(context.Background(), cfg, []string{"--theme", "sepia", "a.pdf"}, &stdout, &stderr))
	assert.Equal(t, 2, run(context.Background(), cfg, []string{"--color", "rainbow", "a.pdf"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), `invalid color mode "rainbow"`)
	assert.Equal(t, 0, run(context.Background(), cfg, []string{"--help"}, &stdout, &stderr))
}
