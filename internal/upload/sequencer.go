package upload

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"sync"

	"spacia-portal/internal/models"
	"spacia-portal/pkg/config"
	"spacia-portal/pkg/logger"
	"spacia-portal/pkg/metrics"
)

// ErrStopped is reported when the consumer stops reading progress before the run finishes.
var ErrStopped = errors.New("image upload stopped before completion")

// Uploader sends a single file for a property.
type Uploader interface {
	UploadImage(ctx context.Context, propertyID string, file models.PendingFile) error
}

// Policy decides what happens after a failed file.
type Policy string

const (
	StopOnFirstFailure Policy = config.FailurePolicyStop
	ContinueAndReport  Policy = config.FailurePolicyContinue
)

// Outcome of a single file.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
	OutcomeSkipped Outcome = "skipped"
)

type FileResult struct {
	FileID  string  `json:"fileId"`
	Name    string  `json:"name"`
	Outcome Outcome `json:"outcome"`
	Reason  string  `json:"reason,omitempty"`
}

// Sequencer uploads files strictly one after another.
type Sequencer struct {
	uploader Uploader
	policy   Policy
}

func NewSequencer(uploader Uploader, policy Policy) *Sequencer {
	if policy != ContinueAndReport {
		policy = StopOnFirstFailure
	}
	return &Sequencer{uploader: uploader, policy: policy}
}

func (s *Sequencer) Policy() Policy { return s.policy }

// Upload prepares a run. Nothing is sent until Progress is iterated or Wait is called.
func (s *Sequencer) Upload(ctx context.Context, propertyID string, files []models.PendingFile) *Run {
	return &Run{
		ctx:        ctx,
		seq:        s,
		propertyID: propertyID,
		files:      append([]models.PendingFile(nil), files...),
	}
}

// Run is one pass over a file list.
type Run struct {
	ctx        context.Context
	seq        *Sequencer
	propertyID string
	files      []models.PendingFile

	mu      sync.Mutex
	started bool
	done    bool
	results []FileResult
	err     error
}

// Progress yields completed/total after each successful file. It can be iterated once;
// later iterations yield nothing. Breaking out of the loop stops the run.
func (r *Run) Progress() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		r.mu.Lock()
		if r.started {
			r.mu.Unlock()
			return
		}
		r.started = true
		r.mu.Unlock()

		r.run(yield)
	}
}

// Wait runs the upload to completion without observing progress and returns Err.
func (r *Run) Wait() error {
	for range r.Progress() {
	}
	return r.Err()
}

// Results returns the per-file outcomes recorded so far.
func (r *Run) Results() []FileResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]FileResult(nil), r.results...)
}

// Err returns the run error once Progress has been drained.
func (r *Run) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Done reports whether the run has finished.
func (r *Run) Done() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

func (r *Run) record(result FileResult) {
	r.mu.Lock()
	r.results = append(r.results, result)
	r.mu.Unlock()
	metrics.ImageUploadsTotal.WithLabelValues(string(result.Outcome)).Inc()
}

func (r *Run) finish(err error) {
	r.mu.Lock()
	r.err = err
	r.done = true
	r.mu.Unlock()
}

func (r *Run) skipFrom(index int, reason string) {
	for _, f := range r.files[index:] {
		r.record(FileResult{FileID: f.ID, Name: f.Name, Outcome: OutcomeSkipped, Reason: reason})
	}
}

func (r *Run) run(yield func(float64) bool) {
	total := len(r.files)
	completed := 0
	var failures []error
	var failedNames []string

	for i, file := range r.files {
		if err := r.ctx.Err(); err != nil {
			r.skipFrom(i, "cancelled")
			r.finish(fmt.Errorf("image upload cancelled before %s: %w", file.Name, err))
			return
		}

		if err := r.seq.uploader.UploadImage(r.ctx, r.propertyID, file); err != nil {
			logger.GlobalLogger.Errorf("Image upload failed: property_id=%s, file=%s, error=%v", r.propertyID, file.Name, err)
			r.record(FileResult{FileID: file.ID, Name: file.Name, Outcome: OutcomeFailure, Reason: err.Error()})
			wrapped := fmt.Errorf("failed to upload image %s: %w", file.Name, err)
			if r.seq.policy == StopOnFirstFailure {
				r.skipFrom(i+1, "previous upload failed")
				r.finish(wrapped)
				return
			}
			failures = append(failures, wrapped)
			failedNames = append(failedNames, file.Name)
			continue
		}

		r.record(FileResult{FileID: file.ID, Name: file.Name, Outcome: OutcomeSuccess})
		completed++
		if !yield(float64(completed) / float64(total)) {
			r.skipFrom(i+1, "stopped")
			if len(failures) > 0 {
				r.finish(errors.Join(append(failures, ErrStopped)...))
				return
			}
			if i+1 < total {
				r.finish(ErrStopped)
				return
			}
			r.finish(nil)
			return
		}
	}

	if len(failures) > 0 {
		r.finish(fmt.Errorf("failed to upload %d of %d images (%s): %w",
			len(failures), total, strings.Join(failedNames, ", "), errors.Join(failures...)))
		return
	}
	r.finish(nil)
}
