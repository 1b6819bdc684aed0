// Package imageset maintains the ordered image gallery an admin assembles
// for a product: a mix of already-stored remote URLs and local files that
// still need uploading, with one entry marked as the main image.
package imageset

import (
	"errors"
	"io"

	"github.com/google/uuid"
)

var (
	// ErrOutOfRange is returned when an index does not address an entry.
	ErrOutOfRange = errors.New("imageset: index out of range")
	// ErrIncompleteUpload is returned when a payload is requested while
	// local files are still pending upload.
	ErrIncompleteUpload = errors.New("imageset: set contains files that have not been uploaded")
)

// PendingFile is a local file selected for upload. Open returns a fresh
// reader for the file contents; it may be called more than once.
type PendingFile struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// Kind discriminates the two entry variants.
type Kind int

const (
	// KindRemote marks an entry backed by an already-stored URL.
	KindRemote Kind = iota
	// KindLocal marks an entry backed by a file pending upload.
	KindLocal
)

// Ref is one gallery entry. Each ref carries a synthetic id assigned at
// insertion so identity survives reordering and removal even when two
// entries hold equal URLs or filenames.
type Ref struct {
	id   uuid.UUID
	Kind Kind
	URL  string      // set when Kind == KindRemote
	File PendingFile // set when Kind == KindLocal
}

func remoteRef(url string) Ref {
	return Ref{id: uuid.New(), Kind: KindRemote, URL: url}
}

func localRef(file PendingFile) Ref {
	return Ref{id: uuid.New(), Kind: KindLocal, File: file}
}

// Set is an ordered collection of refs with a main index. The zero value is
// not usable; construct with New or FromURLs.
type Set struct {
	refs []Ref
	main int
}

// New returns an empty set.
func New() *Set {
	return &Set{}
}

// FromURLs seeds a set from already-stored URLs, in the given order, with
// the entry at main as the main image. Callers editing an existing product
// pass its gallery ordered primary-first.
func FromURLs(urls []string, main int) (*Set, error) {
	if len(urls) > 0 && (main < 0 || main >= len(urls)) {
		return nil, ErrOutOfRange
	}
	s := &Set{refs: make([]Ref, 0, len(urls))}
	for _, url := range urls {
		s.refs = append(s.refs, remoteRef(url))
	}
	s.main = main
	return s, nil
}

// Len returns the number of entries.
func (s *Set) Len() int {
	return len(s.refs)
}

// Main returns the current main index. Only meaningful when Len() > 0.
func (s *Set) Main() int {
	return s.main
}

// Refs returns a copy of the entries in order.
func (s *Set) Refs() []Ref {
	out := make([]Ref, len(s.refs))
	copy(out, s.refs)
	return out
}

// Add appends local files to the end of the set. Adding to an empty set
// makes the first entry the main image.
func (s *Set) Add(files ...PendingFile) {
	for _, f := range files {
		s.refs = append(s.refs, localRef(f))
	}
	if s.main < 0 || s.main >= len(s.refs) {
		s.main = 0
	}
}

// RemoveAt deletes the entry at i. Removing the main entry resets main to
// index 0; removing an earlier entry shifts main down so it keeps pointing
// at the same image.
func (s *Set) RemoveAt(i int) error {
	if i < 0 || i >= len(s.refs) {
		return ErrOutOfRange
	}
	s.refs = append(s.refs[:i], s.refs[i+1:]...)
	switch {
	case i == s.main:
		s.main = 0
	case i < s.main:
		s.main--
	}
	return nil
}

// SetMain marks the entry at i as the main image.
func (s *Set) SetMain(i int) error {
	if i < 0 || i >= len(s.refs) {
		return ErrOutOfRange
	}
	s.main = i
	return nil
}

// MoveTo moves the entry at from to position to, shifting the entries in
// between. The main image is tracked by identity: whatever entry was main
// before the move is still main after it, wherever it ends up.
func (s *Set) MoveTo(from, to int) error {
	if from < 0 || from >= len(s.refs) || to < 0 || to >= len(s.refs) {
		return ErrOutOfRange
	}
	if from == to {
		return nil
	}

	mainID := s.refs[s.main].id

	moved := s.refs[from]
	s.refs = append(s.refs[:from], s.refs[from+1:]...)
	s.refs = append(s.refs[:to], append([]Ref{moved}, s.refs[to:]...)...)

	for i, ref := range s.refs {
		if ref.id == mainID {
			s.main = i
			break
		}
	}
	return nil
}

// RemoteURLs returns the URLs of the remote entries, in set order, skipping
// entries still pending upload.
func (s *Set) RemoteURLs() []string {
	urls := make([]string, 0, len(s.refs))
	for _, ref := range s.refs {
		if ref.Kind == KindRemote {
			urls = append(urls, ref.URL)
		}
	}
	return urls
}

// OrderedPayload returns the full ordered URL list and the main index. It
// fails with ErrIncompleteUpload if any entry is still a local file.
func (s *Set) OrderedPayload() ([]string, int, error) {
	urls := make([]string, len(s.refs))
	for i, ref := range s.refs {
		if ref.Kind != KindRemote {
			return nil, 0, ErrIncompleteUpload
		}
		urls[i] = ref.URL
	}
	return urls, s.main, nil
}

// resolve replaces the local entry with the given id by a remote entry for
// url, keeping its position and identity.
func (s *Set) resolve(id uuid.UUID, url string) {
	for i := range s.refs {
		if s.refs[i].id == id {
			s.refs[i].Kind = KindRemote
			s.refs[i].URL = url
			s.refs[i].File = PendingFile{}
			return
		}
	}
}
