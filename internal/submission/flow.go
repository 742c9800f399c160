// Package submission runs the add and update property flows: validate, persist, upload images, navigate.
package submission

import (
	"context"
	"errors"
	"net/http"
	"sync"

	apperrors "spacia-portal/internal/errors"
	"spacia-portal/internal/form"
	"spacia-portal/internal/models"
	"spacia-portal/internal/transformers"
	"spacia-portal/internal/upload"
	"spacia-portal/pkg/logger"
	"spacia-portal/pkg/metrics"
)

// CollectionPath is where a successful submission navigates to.
const CollectionPath = "/my-properties"

type State string

const (
	StateIdle               State = "Idle"
	StateValidating         State = "Validating"
	StatePersistingProperty State = "PersistingProperty"
	StateUploadingImages    State = "UploadingImages"
	StateSucceeded          State = "Succeeded"
	StateFailed             State = "Failed"
)

type Mode string

const (
	ModeCreate Mode = "create"
	ModeUpdate Mode = "update"
)

// ErrAlreadySubmitted is returned when a flow is submitted twice.
var ErrAlreadySubmitted = errors.New("submission flow already used")

// PropertyAPI persists drafts.
type PropertyAPI interface {
	CreateProperty(ctx context.Context, draft models.PropertyDraft) (string, error)
	UpdateProperty(ctx context.Context, id string, draft models.PropertyDraft) error
}

// Navigator moves the caller to another view.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// Result is what the view renders after Submit returns.
type Result struct {
	State      State               `json:"state"`
	PropertyID string              `json:"propertyId,omitempty"`
	Uploads    []upload.FileResult `json:"uploads,omitempty"`
	Banner     string              `json:"error,omitempty"`
	Fields     map[string]string   `json:"fields,omitempty"`
	Redirect   string              `json:"redirect,omitempty"`
}

type Option func(*Flow)

// WithTransitionHook observes every state change.
func WithTransitionHook(hook func(from, to State)) Option {
	return func(f *Flow) { f.onTransition = hook }
}

// WithProgressHook observes upload progress fractions.
func WithProgressHook(hook func(progress float64)) Option {
	return func(f *Flow) { f.onProgress = hook }
}

// Flow is a single-use submission state machine.
type Flow struct {
	mode       Mode
	propertyID string
	api        PropertyAPI
	sequencer  *upload.Sequencer
	navigator  Navigator
	normalizer transformers.PropertyTransformer

	onTransition func(from, to State)
	onProgress   func(progress float64)

	mu    sync.Mutex
	state State
	used  bool
}

// NewCreateFlow builds a flow that persists a new property and then uploads its images.
func NewCreateFlow(api PropertyAPI, sequencer *upload.Sequencer, navigator Navigator, opts ...Option) *Flow {
	return newFlow(ModeCreate, "", api, sequencer, navigator, opts)
}

// NewUpdateFlow builds a flow that replaces an existing property. Images are not touched.
func NewUpdateFlow(api PropertyAPI, propertyID string, navigator Navigator, opts ...Option) *Flow {
	return newFlow(ModeUpdate, propertyID, api, nil, navigator, opts)
}

func newFlow(mode Mode, propertyID string, api PropertyAPI, sequencer *upload.Sequencer, navigator Navigator, opts []Option) *Flow {
	f := &Flow{
		mode:       mode,
		propertyID: propertyID,
		api:        api,
		sequencer:  sequencer,
		navigator:  navigator,
		normalizer: transformers.NewPropertyTransformer(),
		state:      StateIdle,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) Mode() Mode { return f.mode }

func (f *Flow) transition(to State) {
	f.mu.Lock()
	from := f.state
	f.state = to
	f.mu.Unlock()

	logger.GlobalLogger.Debugf("Submission transition: mode=%s, from=%s, to=%s", f.mode, from, to)
	if f.onTransition != nil {
		f.onTransition(from, to)
	}
}

// Submit runs the flow for the model's draft. files are uploaded only in create mode.
// On failure the model is left as it was and the returned error is an *AppError.
func (f *Flow) Submit(ctx context.Context, model *form.Model, files []models.PendingFile) (Result, error) {
	f.mu.Lock()
	if f.used {
		f.mu.Unlock()
		return Result{State: f.State()}, apperrors.NewAppError(ErrAlreadySubmitted.Error(), apperrors.MsgInternalError,
			apperrors.ErrCodeInternal, http.StatusConflict, ErrAlreadySubmitted)
	}
	f.used = true
	f.mu.Unlock()

	f.transition(StateValidating)
	if err := model.Validate(); err != nil {
		return f.fail(Result{}, err)
	}

	draft := f.normalizer.NormalizeDraft(model.Draft())

	f.transition(StatePersistingProperty)
	if f.mode == ModeUpdate {
		if err := f.api.UpdateProperty(ctx, f.propertyID, draft); err != nil {
			return f.fail(Result{PropertyID: f.propertyID}, err)
		}
		return f.succeed(Result{PropertyID: f.propertyID})
	}

	draft.Images = []string{}
	propertyID, err := f.api.CreateProperty(ctx, draft)
	if err != nil {
		return f.fail(Result{}, err)
	}
	logger.GlobalLogger.Printf("Property created: property_id=%s, images=%d", propertyID, len(files))

	f.transition(StateUploadingImages)
	run := f.sequencer.Upload(ctx, propertyID, files)
	for progress := range run.Progress() {
		if f.onProgress != nil {
			f.onProgress(progress)
		}
	}
	result := Result{PropertyID: propertyID, Uploads: run.Results()}
	if err := run.Err(); err != nil {
		partial := apperrors.NewPartialUploadError(propertyID, err)
		return f.fail(result, partial)
	}
	return f.succeed(result)
}

func (f *Flow) succeed(result Result) (Result, error) {
	f.transition(StateSucceeded)
	metrics.SubmissionsTotal.WithLabelValues(string(f.mode), string(StateSucceeded)).Inc()
	result.State = StateSucceeded
	result.Redirect = CollectionPath
	if f.navigator != nil {
		f.navigator.Navigate(CollectionPath)
	}
	return result, nil
}

func (f *Flow) fail(result Result, err error) (Result, error) {
	f.transition(StateFailed)
	metrics.SubmissionsTotal.WithLabelValues(string(f.mode), string(StateFailed)).Inc()

	banner := apperrors.MsgAddPropertyFailed
	if f.mode == ModeUpdate {
		banner = apperrors.MsgUpdatePropertyFailed
	}
	appErr := apperrors.WithUserMessage(err, banner)
	logger.GlobalLogger.Errorf("Submission failed: mode=%s, property_id=%s, kind=%s, error=%v",
		f.mode, result.PropertyID, appErr.Kind, appErr.TechnicalMessage)

	result.State = StateFailed
	result.Banner = appErr.UserMessage
	result.Fields = appErr.Fields
	return result, appErr
}
