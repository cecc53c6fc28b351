package report

import (
	"fmt"
	"mime/multipart"
	"slices"

	"Sehat-Backend/domain"
	"Sehat-Backend/internal/utils/storage"
)

type UploadState string

const (
	StateIdle         UploadState = "idle"
	StateFileSelected UploadState = "file_selected"
	StateUploading    UploadState = "uploading"
	StatePersisting   UploadState = "persisting"
	StateAnalyzing    UploadState = "analyzing"
	StateDone         UploadState = "done"
	StateError        UploadState = "error"
)

var uploadTransitions = map[UploadState][]UploadState{
	StateIdle:         {StateFileSelected, StateError},
	StateFileSelected: {StateUploading, StateError},
	StateUploading:    {StatePersisting, StateError},
	StatePersisting:   {StateAnalyzing, StateError},
	StateAnalyzing:    {StateDone, StateError},
}

func (s UploadState) Terminal() bool {
	return s == StateDone || s == StateError
}

// UploadFlow tracks one upload through its states. It is not safe for
// concurrent use; every request owns its own flow.
type UploadFlow struct {
	state   UploadState
	history []UploadState
	err     error
}

func NewUploadFlow() *UploadFlow {
	return &UploadFlow{state: StateIdle, history: []UploadState{StateIdle}}
}

func (f *UploadFlow) State() UploadState {
	return f.state
}

func (f *UploadFlow) History() []UploadState {
	return slices.Clone(f.history)
}

// Err is the failure that moved the flow into StateError, if any.
func (f *UploadFlow) Err() error {
	return f.err
}

func (f *UploadFlow) transition(next UploadState) error {
	if !slices.Contains(uploadTransitions[f.state], next) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrIllegalTransition, f.state, next)
	}
	f.state = next
	f.history = append(f.history, next)
	return nil
}

// Select validates the chosen file. A rejected file leaves the flow Idle.
func (f *UploadFlow) Select(file *multipart.FileHeader) error {
	if f.state != StateIdle {
		return fmt.Errorf("%w: select from %s", domain.ErrIllegalTransition, f.state)
	}
	if err := ValidateReportFile(file); err != nil {
		return err
	}
	return f.transition(StateFileSelected)
}

func (f *UploadFlow) StartUpload() error   { return f.transition(StateUploading) }
func (f *UploadFlow) StartPersist() error  { return f.transition(StatePersisting) }
func (f *UploadFlow) StartAnalysis() error { return f.transition(StateAnalyzing) }
func (f *UploadFlow) Finish() error        { return f.transition(StateDone) }

// Fail moves the flow into StateError and remembers cause.
func (f *UploadFlow) Fail(cause error) error {
	if err := f.transition(StateError); err != nil {
		return err
	}
	f.err = cause
	return nil
}

// ValidateReportFile checks the declared content type and size before
// anything is sent to storage.
func ValidateReportFile(file *multipart.FileHeader) error {
	if file == nil {
		return domain.ErrFileRequired
	}
	if !slices.Contains(domain.AllowedReportTypes, storage.ContentType(file)) {
		return domain.ErrInvalidFileType
	}
	if file.Size > domain.MaxReportFileSize {
		return domain.ErrFileTooLarge
	}
	return nil
}
