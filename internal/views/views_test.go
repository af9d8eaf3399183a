package views

import (
	"bytes"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/product-sheet-extractor/internal/models"
	"alfredoptarigan/product-sheet-extractor/internal/workflow"
)

func render(t *testing.T, page Page) string {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, page))
	return buf.String()
}

func TestExactlyOnePanelPerState(t *testing.T) {
	ids := map[workflow.State]string{
		workflow.StateIdle:    "upload-section",
		workflow.StateLoading: "loading-indicator",
		workflow.StateResults: "results-preview-area",
		workflow.StateError:   "error-message-area",
	}

	for state := range ids {
		t.Run(string(state), func(t *testing.T) {
			html := render(t, Page{Title: "Extractor", Snapshot: workflow.Snapshot{State: state}})

			for other, id := range ids {
				if other == state {
					assert.Contains(t, html, `id="`+id+`"`)
				} else {
					assert.NotContains(t, html, `id="`+id+`"`)
				}
			}
		})
	}
}

func TestIdleSubmitDisabledUntilSelected(t *testing.T) {
	html := render(t, Page{Snapshot: workflow.Snapshot{State: workflow.StateIdle, Notice: "Only PDF files are allowed."}})
	assert.Contains(t, html, "Only PDF files are allowed.")
	assert.Regexp(t, `id="upload-btn"[^>]* disabled`, html)

	html = render(t, Page{Snapshot: workflow.Snapshot{State: workflow.StateIdle, FileName: "camera.pdf", CanSubmit: true}})
	assert.Contains(t, html, "camera.pdf")
	assert.NotRegexp(t, `id="upload-btn"[^>]* disabled`, html)
}

func TestResultsEscapeValues(t *testing.T) {
	html := render(t, Page{Snapshot: workflow.Snapshot{
		State: workflow.StateResults,
		Rows:  []models.Attribute{{Label: "Product Title", Value: "<script>x</script>"}},
	}})

	assert.Contains(t, html, "&lt;script&gt;x&lt;/script&gt;")
	assert.NotContains(t, html, "<script>x</script>")
}

func TestThemeClassApplied(t *testing.T) {
	html := render(t, Page{Theme: "dark", ThemeClass: "dark-mode", Snapshot: workflow.Snapshot{State: workflow.StateIdle}})

	assert.Contains(t, html, `<body class="dark-mode">`)
	assert.True(t, strings.Contains(html, `name="theme" value="light"`))
}

func TestUnknownStateFails(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	assert.Error(t, r.Render(&bytes.Buffer{}, Page{Snapshot: workflow.Snapshot{State: "paused"}}))
}

func TestStaticStylesheet(t *testing.T) {
	data, err := fs.ReadFile(Static(), "style.css")
	require.NoError(t, err)
	assert.Contains(t, string(data), "dark-mode")
}
