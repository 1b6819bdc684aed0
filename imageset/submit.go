package imageset

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MonkyMars/gecho"
)

// Sentinel errors a Persister wraps to classify its failures.
var (
	// ErrNotFound signals the target product does not exist.
	ErrNotFound = errors.New("imageset: target not found")
	// ErrInvalid signals the submitted fields were rejected.
	ErrInvalid = errors.New("imageset: invalid submission")
)

// FailureKind classifies a submission failure.
type FailureKind int

const (
	ValidationError FailureKind = iota + 1
	UploadError
	PersistenceError
	NotFound
)

func (k FailureKind) String() string {
	switch k {
	case ValidationError:
		return "validation_error"
	case UploadError:
		return "upload_error"
	case PersistenceError:
		return "persistence_error"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Failure describes why a submission was rejected or aborted. It is always
// returned as a value; submission code never panics on bad input.
type Failure struct {
	Kind    FailureKind
	Message string
	Err     error
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// ProductFields carries the non-image product attributes through a submission.
type ProductFields struct {
	Name        string
	Company     string
	Description string
	Category    string
	Options     []string
	Tags        []string
	Price       uint64 // in cents
}

// Uploader stores a pending file and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, file PendingFile) (string, error)
}

// Remover deletes a stored object by its public URL.
type Remover interface {
	Remove(ctx context.Context, url string) error
}

// Persister writes the product and its ordered gallery as one atomic unit.
// Update wraps ErrNotFound when id does not exist; both wrap ErrInvalid
// when the fields are rejected.
type Persister interface {
	Create(ctx context.Context, fields ProductFields, urls []string, main int) (string, error)
	Update(ctx context.Context, id string, fields ProductFields, urls []string, main int) (string, error)
}

// Submitter runs the upload-then-persist workflow for a product gallery,
// compensating for uploaded files when a later step fails.
type Submitter struct {
	uploader Uploader
	remover  Remover
	persist  Persister
	logger   *gecho.Logger
}

func NewSubmitter(uploader Uploader, remover Remover, persist Persister, logger *gecho.Logger) *Submitter {
	return &Submitter{
		uploader: uploader,
		remover:  remover,
		persist:  persist,
		logger:   logger,
	}
}

// Submit creates a product from fields and set. Pending files upload
// sequentially in set order; the first upload failure aborts. On any
// failure after an upload, exactly the newly uploaded URLs are deleted
// best-effort. A successful persist is the commit point: after it, nothing
// is rolled back.
func (s *Submitter) Submit(ctx context.Context, fields ProductFields, set *Set) (string, *Failure) {
	if fail := validateSet(set); fail != nil {
		return "", fail
	}

	uploaded, fail := s.uploadPending(ctx, set)
	if fail != nil {
		s.cleanup(ctx, uploaded)
		return "", fail
	}

	urls, main, err := set.OrderedPayload()
	if err != nil {
		s.cleanup(ctx, uploaded)
		return "", &Failure{Kind: ValidationError, Message: err.Error(), Err: err}
	}

	id, err := s.persist.Create(ctx, fields, urls, main)
	if err != nil {
		s.cleanup(ctx, uploaded)
		return "", classifyPersistError(err)
	}

	return id, nil
}

// SubmitUpdate edits the product id. priorURLs is the gallery as currently
// persisted; any of them dropped from the final set are deleted best-effort
// before uploads begin, outside the rollback path. A failed update never
// deletes URLs the set still references.
func (s *Submitter) SubmitUpdate(ctx context.Context, id string, fields ProductFields, priorURLs []string, set *Set) (string, *Failure) {
	if fail := validateSet(set); fail != nil {
		return "", fail
	}

	if dropped := diffURLs(priorURLs, set.RemoteURLs()); len(dropped) > 0 {
		s.cleanup(ctx, dropped)
	}

	uploaded, fail := s.uploadPending(ctx, set)
	if fail != nil {
		s.cleanup(ctx, uploaded)
		return "", fail
	}

	urls, main, err := set.OrderedPayload()
	if err != nil {
		s.cleanup(ctx, uploaded)
		return "", &Failure{Kind: ValidationError, Message: err.Error(), Err: err}
	}

	updatedID, err := s.persist.Update(ctx, id, fields, urls, main)
	if err != nil {
		s.cleanup(ctx, uploaded)
		return "", classifyPersistError(err)
	}

	return updatedID, nil
}

// validateSet checks the submission preconditions before any side effect
func validateSet(set *Set) *Failure {
	if set == nil || set.Len() == 0 {
		return &Failure{Kind: ValidationError, Message: "at least one image is required"}
	}
	if set.Main() < 0 || set.Main() >= set.Len() {
		return &Failure{Kind: ValidationError, Message: "main image index out of range"}
	}
	return nil
}

// uploadPending uploads local entries in order, resolving each into a
// remote entry in place. Returns the URLs uploaded so far; on failure the
// caller owns cleaning them up.
func (s *Submitter) uploadPending(ctx context.Context, set *Set) ([]string, *Failure) {
	var uploaded []string
	for _, ref := range set.Refs() {
		if ref.Kind != KindLocal {
			continue
		}
		url, err := s.uploader.Upload(ctx, ref.File)
		if err != nil {
			return uploaded, &Failure{
				Kind:    UploadError,
				Message: fmt.Sprintf("failed to upload %q: %v", ref.File.Name, err),
				Err:     err,
			}
		}
		uploaded = append(uploaded, url)
		set.resolve(ref.id, url)
	}
	return uploaded, nil
}

// cleanup deletes the given URLs concurrently, best-effort. Outcomes are
// logged, never surfaced; cleanup outlives request cancellation.
func (s *Submitter) cleanup(ctx context.Context, urls []string) {
	if len(urls) == 0 {
		return
	}

	ctx = context.WithoutCancel(ctx)

	var wg sync.WaitGroup
	for _, url := range urls {
		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			if err := s.remover.Remove(ctx, url); err != nil {
				s.logger.Warn("Failed to delete stored image during cleanup",
					gecho.Field("url", url),
					gecho.Field("error", err),
				)
			}
		}(url)
	}
	wg.Wait()
}

// diffURLs returns the entries of prior that are absent from current
func diffURLs(prior, current []string) []string {
	keep := make(map[string]struct{}, len(current))
	for _, url := range current {
		keep[url] = struct{}{}
	}

	var dropped []string
	for _, url := range prior {
		if _, ok := keep[url]; !ok {
			dropped = append(dropped, url)
		}
	}
	return dropped
}

func classifyPersistError(err error) *Failure {
	switch {
	case errors.Is(err, ErrNotFound):
		return &Failure{Kind: NotFound, Message: err.Error(), Err: err}
	case errors.Is(err, ErrInvalid):
		return &Failure{Kind: ValidationError, Message: err.Error(), Err: err}
	default:
		return &Failure{Kind: PersistenceError, Message: err.Error(), Err: err}
	}
}
