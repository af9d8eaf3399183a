package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/product-sheet-extractor/internal/models"
)

type failingStore struct{}

func (failingStore) Get(string) (string, bool, error) { return "", false, errors.New("disk gone") }
func (failingStore) Set(string, string) error { return errors.New("disk gone") }

func TestLoadThemeDefaultsToLight(t *testing.T) {
	svc := NewThemeService(NewMemoryPreferenceStore())

	assert.Equal(t, models.ThemeLight, svc.LoadTheme())
	assert.Equal(t, "", svc.Class())
}

func TestSetThemePersists(t *testing.T) {
	store := NewMemoryPreferenceStore()
	svc := NewThemeService(store)

	require.NoError(t, svc.SetTheme(models.ThemeDark))
	assert.Equal(t, models.ThemeDark, svc.Current())
	assert.Equal(t, "dark-mode", svc.Class())

	value, ok, err := store.Get(ThemeKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", value)

	reloaded := NewThemeService(store)
	assert.Equal(t, models.ThemeDark, reloaded.LoadTheme())
	assert.Equal(t, "dark-mode", reloaded.Class())
}

func TestSetThemeRejectsUnknown(t *testing.T) {
	store := NewMemoryPreferenceStore()
	svc := NewThemeService(store)

	assert.Error(t, svc.SetTheme(models.Theme("sepia")))

	_, ok, _ := store.Get(ThemeKey)
	assert.False(t, ok)
	assert.Equal(t, models.ThemeLight, svc.Current())
}

func TestLoadThemeIgnoresInvalidStoredValue(t *testing.T) {
	store := NewMemoryPreferenceStore()
	require.NoError(t, store.Set(ThemeKey, "neon"))

	assert.Equal(t, models.ThemeLight, NewThemeService(store).LoadTheme())
}

func TestThemeStoreFailures(t *testing.T) {
	svc := NewThemeService(failingStore{})

	assert.Equal(t, models.ThemeLight, svc.LoadTheme())
	assert.Error(t, svc.SetTheme(models.ThemeDark))
	assert.Equal(t, models.ThemeLight, svc.Current())
}

func TestFilePreferenceStoreSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "preferences.yaml")

	first := NewThemeService(NewFilePreferenceStore(path))
	assert.Equal(t, models.ThemeLight, first.LoadTheme())
	require.NoError(t, first.SetTheme(models.ThemeDark))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "theme: dark")

	second := NewThemeService(NewFilePreferenceStore(path))
	assert.Equal(t, models.ThemeDark, second.LoadTheme())
}

func TestFilePreferenceStoreKeepsOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: http://extractor\n"), 0o600))
	store := NewFilePreferenceStore(path)

	require.NoError(t, store.Set(ThemeKey, "dark"))

	backend, ok, err := store.Get("backend")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "http://extractor", backend)
}

func TestFilePreferenceStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: [dark"), 0o600))

	_, _, err := NewFilePreferenceStore(path).Get(ThemeKey)
	assert.Error(t, err)
	assert.Equal(t, models.ThemeLight, NewThemeService(NewFilePreferenceStore(path)).LoadTheme())
}
