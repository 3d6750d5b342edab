package denvar

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sink receives exported variables, one write per variable.
type Sink interface {
	Write(key, value string) error
}

// PushResult is the outcome of writing one variable to a Sink.
type PushResult struct {
	Key string
	Err error
}

// Report collects the outcome of an export run.
type Report struct {
	ID          uuid.UUID
	Path        string
	Environment string
	Results     []PushResult
}

// Failed returns the results whose write failed.
func (r *Report) Failed() []PushResult {
	var failed []PushResult
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// Err joins every write failure, or returns nil if all writes succeeded.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Failed() {
		errs = append(errs, fmt.Errorf("%s: %w", res.Key, res.Err))
	}
	return errors.Join(errs...)
}

// Export writes every pair of env, common layer first, to sink. Writes are
// sequential and a failed write does not stop the ones after it. An empty
// env selects the export environment. The error is non-nil only when the
// source could not be read, in which case nothing is written.
func (r *Resolver) Export(path, env string, sink Sink) (*Report, error) {
	if env == "" {
		env = r.opts.ExportEnvironment
	}

	layers, err := r.store.Read(path, env)
	if err != nil {
		return nil, err
	}

	report := &Report{ID: uuid.New(), Path: path, Environment: env}
	logger := r.logger.With("run", report.ID.String(), "environment", env)

	for _, pair := range layers.Pairs() {
		err := sink.Write(pair.Name, pair.Value)
		if err != nil {
			logger.Warn("failed to export variable", "key", pair.Name, "error", err)
		}
		report.Results = append(report.Results, PushResult{Key: pair.Name, Err: err})
	}

	logger.Info("export finished", "pushed", len(report.Results), "failed", len(report.Failed()))
	return report, nil
}
