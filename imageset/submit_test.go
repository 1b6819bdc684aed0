package imageset

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	mu      sync.Mutex
	uploads []string // file names in upload order
	failOn  string   // file name that fails to upload
	urlOf   func(name string) string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{
		urlOf: func(name string) string {
			return "https://cdn.test/" + name
		},
	}
}

func (f *fakeUploader) Upload(_ context.Context, file PendingFile) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if file.Name == f.failOn {
		return "", fmt.Errorf("upload rejected: %s", file.Name)
	}
	f.uploads = append(f.uploads, file.Name)
	return f.urlOf(file.Name), nil
}

type fakeRemover struct {
	mu      sync.Mutex
	removed []string
	err     error
}

func (f *fakeRemover) Remove(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, url)
	return f.err
}

func (f *fakeRemover) removedURLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.removed))
	copy(out, f.removed)
	return out
}

type persistCall struct {
	id     string
	fields ProductFields
	urls   []string
	main   int
}

type fakePersister struct {
	err     error
	created []persistCall
	updated []persistCall
}

func (f *fakePersister) Create(_ context.Context, fields ProductFields, urls []string, main int) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.created = append(f.created, persistCall{fields: fields, urls: urls, main: main})
	return "product-1", nil
}

func (f *fakePersister) Update(_ context.Context, id string, fields ProductFields, urls []string, main int) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.updated = append(f.updated, persistCall{id: id, fields: fields, urls: urls, main: main})
	return id, nil
}

func newTestSubmitter(u *fakeUploader, r *fakeRemover, p *fakePersister) *Submitter {
	return NewSubmitter(u, r, p, gecho.NewDefaultLogger())
}

func testFields() ProductFields {
	return ProductFields{
		Name:        "Etched wine glass",
		Company:     "Happy Crafts",
		Description: "Hand etched wine glass",
		Category:    "tumblers",
		Tags:        []string{"gifts"},
		Price:       2500,
	}
}

func TestSubmitEmptySetFailsWithoutSideEffects(t *testing.T) {
	uploader := newFakeUploader()
	remover := &fakeRemover{}
	persister := &fakePersister{}
	sub := newTestSubmitter(uploader, remover, persister)

	_, fail := sub.Submit(context.Background(), testFields(), New())

	require.NotNil(t, fail)
	assert.Equal(t, ValidationError, fail.Kind)
	assert.Empty(t, uploader.uploads)
	assert.Empty(t, remover.removedURLs())
	assert.Empty(t, persister.created)
}

func TestSubmitUploadsInOrderAndPersists(t *testing.T) {
	uploader := newFakeUploader()
	remover := &fakeRemover{}
	persister := &fakePersister{}
	sub := newTestSubmitter(uploader, remover, persister)

	set := New()
	set.Add(pending("one.jpg"), pending("two.jpg"), pending("three.jpg"))
	require.NoError(t, set.SetMain(1))

	id, fail := sub.Submit(context.Background(), testFields(), set)

	require.Nil(t, fail)
	assert.Equal(t, "product-1", id)
	assert.Equal(t, []string{"one.jpg", "two.jpg", "three.jpg"}, uploader.uploads)

	require.Len(t, persister.created, 1)
	call := persister.created[0]
	assert.Equal(t, []string{
		"https://cdn.test/one.jpg",
		"https://cdn.test/two.jpg",
		"https://cdn.test/three.jpg",
	}, call.urls)
	assert.Equal(t, 1, call.main)
	assert.Empty(t, remover.removedURLs())
}

func TestSubmitAbortsOnFirstUploadFailure(t *testing.T) {
	uploader := newFakeUploader()
	uploader.failOn = "two.jpg"
	remover := &fakeRemover{}
	persister := &fakePersister{}
	sub := newTestSubmitter(uploader, remover, persister)

	set := New()
	set.Add(pending("one.jpg"), pending("two.jpg"), pending("three.jpg"))

	_, fail := sub.Submit(context.Background(), testFields(), set)

	require.NotNil(t, fail)
	assert.Equal(t, UploadError, fail.Kind)

	// Only the first file made it up, and only its URL is compensated
	assert.Equal(t, []string{"one.jpg"}, uploader.uploads)
	assert.Equal(t, []string{"https://cdn.test/one.jpg"}, remover.removedURLs())
	assert.Empty(t, persister.created)
}

func TestSubmitPersistFailureDeletesAllUploads(t *testing.T) {
	uploader := newFakeUploader()
	remover := &fakeRemover{}
	persister := &fakePersister{err: errors.New("insert failed")}
	sub := newTestSubmitter(uploader, remover, persister)

	set := New()
	set.Add(pending("one.jpg"), pending("two.jpg"))

	_, fail := sub.Submit(context.Background(), testFields(), set)

	require.NotNil(t, fail)
	assert.Equal(t, PersistenceError, fail.Kind)
	assert.ElementsMatch(t, []string{
		"https://cdn.test/one.jpg",
		"https://cdn.test/two.jpg",
	}, remover.removedURLs())
}

func TestSubmitNeverDeletesCallerSuppliedRemoteURLs(t *testing.T) {
	uploader := newFakeUploader()
	remover := &fakeRemover{}
	persister := &fakePersister{err: errors.New("insert failed")}
	sub := newTestSubmitter(uploader, remover, persister)

	set, err := FromURLs([]string{"https://cdn.test/existing.jpg"}, 0)
	require.NoError(t, err)
	set.Add(pending("new.jpg"))

	_, fail := sub.Submit(context.Background(), testFields(), set)

	require.NotNil(t, fail)
	assert.Equal(t, []string{"https://cdn.test/new.jpg"}, remover.removedURLs())
}

func TestSubmitClassifiesPersisterValidation(t *testing.T) {
	uploader := newFakeUploader()
	remover := &fakeRemover{}
	persister := &fakePersister{err: fmt.Errorf("%w: name is required", ErrInvalid)}
	sub := newTestSubmitter(uploader, remover, persister)

	set := New()
	set.Add(pending("one.jpg"))

	_, fail := sub.Submit(context.Background(), testFields(), set)

	require.NotNil(t, fail)
	assert.Equal(t, ValidationError, fail.Kind)
}

func TestSubmitUpdateDeletesDroppedPriorURLs(t *testing.T) {
	uploader := newFakeUploader()
	remover := &fakeRemover{}
	persister := &fakePersister{}
	sub := newTestSubmitter(uploader, remover, persister)

	prior := []string{"https://cdn.test/x.jpg", "https://cdn.test/y.jpg", "https://cdn.test/z.jpg"}

	// The edit keeps y and z, drops x, and adds one new file
	set, err := FromURLs([]string{"https://cdn.test/y.jpg", "https://cdn.test/z.jpg"}, 0)
	require.NoError(t, err)
	set.Add(pending("new.jpg"))

	id, fail := sub.SubmitUpdate(context.Background(), "product-9", testFields(), prior, set)

	require.Nil(t, fail)
	assert.Equal(t, "product-9", id)
	assert.Equal(t, []string{"https://cdn.test/x.jpg"}, remover.removedURLs())

	require.Len(t, persister.updated, 1)
	call := persister.updated[0]
	assert.Equal(t, "product-9", call.id)
	assert.Equal(t, []string{
		"https://cdn.test/y.jpg",
		"https://cdn.test/z.jpg",
		"https://cdn.test/new.jpg",
	}, call.urls)
}

func TestSubmitUpdateFailureKeepsPriorURLs(t *testing.T) {
	uploader := newFakeUploader()
	remover := &fakeRemover{}
	persister := &fakePersister{err: errors.New("update failed")}
	sub := newTestSubmitter(uploader, remover, persister)

	prior := []string{"https://cdn.test/keep.jpg"}
	set, err := FromURLs(prior, 0)
	require.NoError(t, err)
	set.Add(pending("new.jpg"))

	_, fail := sub.SubmitUpdate(context.Background(), "product-9", testFields(), prior, set)

	require.NotNil(t, fail)
	assert.Equal(t, PersistenceError, fail.Kind)
	// Rollback covers the new upload only, never the kept prior URL
	assert.Equal(t, []string{"https://cdn.test/new.jpg"}, remover.removedURLs())
}

func TestSubmitUpdateMissingProduct(t *testing.T) {
	uploader := newFakeUploader()
	remover := &fakeRemover{}
	persister := &fakePersister{err: fmt.Errorf("%w: product-404", ErrNotFound)}
	sub := newTestSubmitter(uploader, remover, persister)

	set, err := FromURLs([]string{"https://cdn.test/a.jpg"}, 0)
	require.NoError(t, err)

	_, fail := sub.SubmitUpdate(context.Background(), "product-404", testFields(), set.RemoteURLs(), set)

	require.NotNil(t, fail)
	assert.Equal(t, NotFound, fail.Kind)
}

func TestSubmitMainIndexOutOfRangeFails(t *testing.T) {
	uploader := newFakeUploader()
	remover := &fakeRemover{}
	persister := &fakePersister{}
	sub := newTestSubmitter(uploader, remover, persister)

	// Force an invalid main by seeding then removing down to a smaller set
	set, err := FromURLs([]string{"a"}, 0)
	require.NoError(t, err)
	require.NoError(t, set.RemoveAt(0))

	_, fail := sub.Submit(context.Background(), testFields(), set)

	require.NotNil(t, fail)
	assert.Equal(t, ValidationError, fail.Kind)
	assert.Empty(t, uploader.uploads)
}
