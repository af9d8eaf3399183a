// Package workflow holds the upload workflow state machine shared by the web
// UI and the CLI.
package workflow

import (
	"context"
	"sync"

	"alfredoptarigan/product-sheet-extractor/internal/models"
	"alfredoptarigan/product-sheet-extractor/internal/services"
)

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateResults State = "results"
	StateError   State = "error"
)

type Event string

const (
	EventSelect  Event = "select"
	EventSubmit  Event = "submit"
	EventSucceed Event = "succeed"
	EventFail    Event = "fail"
	EventReset   Event = "reset"
	EventRetry   Event = "retry"
)

type transition struct {
	from  State
	event Event
}

var transitions = map[transition]State{
	{StateIdle, EventSelect}:     StateIdle,
	{StateIdle, EventSubmit}:     StateLoading,
	{StateIdle, EventReset}:      StateIdle,
	{StateLoading, EventSucceed}: StateResults,
	{StateLoading, EventFail}:    StateError,
	{StateResults, EventReset}:   StateIdle,
	{StateError, EventRetry}:     StateIdle,
	{StateError, EventReset}:     StateIdle,
}

// Snapshot is a consistent copy of the controller state for rendering.
type Snapshot struct {
	State     State
	FileName  string
	Notice    string
	Message   string
	Rows      []models.Attribute
	CanSubmit bool
}

// Controller owns all state of one upload session: the selected file, the
// last successful result and the current UI state.
type Controller struct {
	extractor services.ExtractorService
	exporter  services.CSVExporter

	mu      sync.Mutex
	state   State
	file    *models.SelectedFile
	result  *models.ExtractionResult
	message string
	notice  string
}

func NewController(extractor services.ExtractorService, exporter services.CSVExporter) *Controller {
	return &Controller{
		extractor: extractor,
		exporter:  exporter,
		state:     StateIdle,
	}
}

// fire applies event to the current state. Callers must hold c.mu.
func (c *Controller) fire(event Event) error {
	next, ok := transitions[transition{c.state, event}]
	if !ok {
		return &TransitionError{From: c.state, Event: event}
	}
	c.state = next
	return nil
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SelectFile stores file for submission. A non-PDF file clears the selection
// and leaves an Idle notice.
func (c *Controller) SelectFile(file models.SelectedFile) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.fire(EventSelect); err != nil {
		return err
	}

	if !file.IsPDF() {
		c.file = nil
		c.notice = InvalidFileTypeMessage
		return &InvalidFileTypeError{Name: file.Name, ContentType: file.ContentType}
	}

	c.file = &file
	c.notice = ""
	return nil
}

// RejectSelection clears any stored file and shows message as the Idle
// notice. It is used for uploads refused before they reach SelectFile.
func (c *Controller) RejectSelection(message string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.fire(EventSelect); err != nil {
		return err
	}
	c.file = nil
	c.notice = message
	return nil
}

func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canSubmit()
}

func (c *Controller) canSubmit() bool {
	return c.state == StateIdle && c.file != nil
}

// Submit sends the selected file to the extractor. The controller stays in
// Loading for the duration of the call; other callers observe Loading and
// cannot submit again.
func (c *Controller) Submit(ctx context.Context) (*models.ExtractionResult, error) {
	file, err := c.begin()
	if err != nil {
		return nil, err
	}

	result, err := c.extractor.Extract(ctx, file)
	return c.complete(result, err)
}

// Start moves to Loading and runs the extraction in the background. The
// returned channel receives the outcome once the controller has left Loading.
func (c *Controller) Start(ctx context.Context) (<-chan error, error) {
	file, err := c.begin()
	if err != nil {
		return nil, err
	}

	done := make(chan error, 1)
	go func() {
		result, err := c.extractor.Extract(ctx, file)
		_, err = c.complete(result, err)
		done <- err
	}()
	return done, nil
}

func (c *Controller) begin() (models.SelectedFile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateIdle && c.file == nil {
		return models.SelectedFile{}, ErrNoFileSelected
	}
	if err := c.fire(EventSubmit); err != nil {
		return models.SelectedFile{}, err
	}
	c.notice = ""
	return *c.file, nil
}

func (c *Controller) complete(result *models.ExtractionResult, err error) (*models.ExtractionResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.message = err.Error()
		if fireErr := c.fire(EventFail); fireErr != nil {
			return nil, fireErr
		}
		return nil, err
	}

	if fireErr := c.fire(EventSucceed); fireErr != nil {
		return nil, fireErr
	}
	if result == nil {
		result = &models.ExtractionResult{}
	}
	c.result = result
	c.file = nil
	return result, nil
}

// Rows returns the display attributes of the current result with empty
// values replaced by the placeholder.
func (c *Controller) Rows() []models.Attribute {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rows()
}

func (c *Controller) rows() []models.Attribute {
	if c.result == nil {
		return nil
	}
	attrs := c.result.DisplayAttributes()
	for i := range attrs {
		if attrs[i].Value == "" {
			attrs[i].Value = models.Placeholder
		}
	}
	return attrs
}

// ExportCSV returns the download filename and CSV document for the current
// result.
func (c *Controller) ExportCSV() (string, []byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.result == nil {
		return "", nil, ErrNoResult
	}
	return c.exporter.Filename(c.result), c.exporter.Export(c.result), nil
}

// Reset clears the selection and result and returns to Idle.
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.fire(EventReset); err != nil {
		return err
	}
	c.clear()
	return nil
}

// Retry leaves the Error state and starts over from Idle.
func (c *Controller) Retry() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.fire(EventRetry); err != nil {
		return err
	}
	c.clear()
	return nil
}

func (c *Controller) clear() {
	c.file = nil
	c.result = nil
	c.message = ""
	c.notice = ""
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		State:     c.state,
		Notice:    c.notice,
		Message:   c.message,
		Rows:      c.rows(),
		CanSubmit: c.canSubmit(),
	}
	if c.file != nil {
		snap.FileName = c.file.Name
	}
	return snap
}
