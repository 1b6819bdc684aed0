package imageset

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pending(name string) PendingFile {
	return PendingFile{
		Name:        name,
		ContentType: "image/jpeg",
		Size:        int64(len(name)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(name)), nil
		},
	}
}

func TestFromURLsRoundTrip(t *testing.T) {
	urls := []string{"https://cdn.test/a.jpg", "https://cdn.test/b.jpg", "https://cdn.test/c.jpg"}

	set, err := FromURLs(urls, 1)
	require.NoError(t, err)

	gotURLs, gotMain, err := set.OrderedPayload()
	require.NoError(t, err)
	assert.Equal(t, urls, gotURLs)
	assert.Equal(t, 1, gotMain)
}

func TestFromURLsRejectsMainOutOfRange(t *testing.T) {
	_, err := FromURLs([]string{"a", "b"}, 2)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = FromURLs([]string{"a", "b"}, -1)
	assert.ErrorIs(t, err, ErrOutOfRange)

	// An empty seed is fine, main is meaningless until entries exist
	set, err := FromURLs(nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
}

func TestAddMakesFirstEntryMain(t *testing.T) {
	set := New()
	set.Add(pending("one.jpg"), pending("two.jpg"))

	assert.Equal(t, 2, set.Len())
	assert.Equal(t, 0, set.Main())
	assert.Equal(t, KindLocal, set.Refs()[0].Kind)
}

func TestSetMain(t *testing.T) {
	set := New()
	set.Add(pending("one.jpg"), pending("two.jpg"), pending("three.jpg"))

	require.NoError(t, set.SetMain(2))
	assert.Equal(t, 2, set.Main())

	assert.ErrorIs(t, set.SetMain(3), ErrOutOfRange)
	assert.ErrorIs(t, set.SetMain(-1), ErrOutOfRange)
	// Failed op leaves state unchanged
	assert.Equal(t, 2, set.Main())
}

func TestRemoveAtMainResetsToZero(t *testing.T) {
	set, err := FromURLs([]string{"a", "b", "c"}, 1)
	require.NoError(t, err)

	require.NoError(t, set.RemoveAt(1))

	assert.Equal(t, 2, set.Len())
	assert.Equal(t, 0, set.Main())

	urls, _, err := set.OrderedPayload()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, urls)
}

func TestRemoveAtBeforeMainShiftsMainDown(t *testing.T) {
	set, err := FromURLs([]string{"a", "b", "c"}, 2)
	require.NoError(t, err)

	require.NoError(t, set.RemoveAt(0))

	// Main still points at "c"
	assert.Equal(t, 1, set.Main())
	urls, main, err := set.OrderedPayload()
	require.NoError(t, err)
	assert.Equal(t, "c", urls[main])
}

func TestRemoveAtAfterMainLeavesMainAlone(t *testing.T) {
	set, err := FromURLs([]string{"a", "b", "c"}, 0)
	require.NoError(t, err)

	require.NoError(t, set.RemoveAt(2))
	assert.Equal(t, 0, set.Main())
}

func TestRemoveAtOutOfRange(t *testing.T) {
	set, err := FromURLs([]string{"a"}, 0)
	require.NoError(t, err)

	assert.ErrorIs(t, set.RemoveAt(1), ErrOutOfRange)
	assert.ErrorIs(t, set.RemoveAt(-1), ErrOutOfRange)
	assert.Equal(t, 1, set.Len())
}

func TestMoveToTracksMainByIdentity(t *testing.T) {
	// [A*, B, C] with A main; moving A to the end must keep A main
	set, err := FromURLs([]string{"A", "B", "C"}, 0)
	require.NoError(t, err)

	require.NoError(t, set.MoveTo(0, 2))

	urls, main, err := set.OrderedPayload()
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "A"}, urls)
	assert.Equal(t, 2, main)
	assert.Equal(t, "A", urls[main])
}

func TestMoveToNonMainKeepsMainOnSameImage(t *testing.T) {
	set, err := FromURLs([]string{"A", "B", "C"}, 1)
	require.NoError(t, err)

	require.NoError(t, set.MoveTo(2, 0))

	urls, main, err := set.OrderedPayload()
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B"}, urls)
	assert.Equal(t, "B", urls[main])
}

func TestMoveToIdentityWithDuplicateURLs(t *testing.T) {
	// Two entries hold the same URL; identity must come from the entry,
	// not from value equality
	set, err := FromURLs([]string{"dup", "dup", "other"}, 1)
	require.NoError(t, err)

	require.NoError(t, set.MoveTo(1, 2))

	urls, main, err := set.OrderedPayload()
	require.NoError(t, err)
	assert.Equal(t, []string{"dup", "other", "dup"}, urls)
	assert.Equal(t, 2, main)
}

func TestMoveToOutOfRange(t *testing.T) {
	set, err := FromURLs([]string{"a", "b"}, 0)
	require.NoError(t, err)

	assert.ErrorIs(t, set.MoveTo(0, 2), ErrOutOfRange)
	assert.ErrorIs(t, set.MoveTo(-1, 0), ErrOutOfRange)

	urls, main, err := set.OrderedPayload()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, urls)
	assert.Equal(t, 0, main)
}

func TestOrderedPayloadRejectsPendingFiles(t *testing.T) {
	set, err := FromURLs([]string{"a"}, 0)
	require.NoError(t, err)
	set.Add(pending("new.jpg"))

	_, _, err = set.OrderedPayload()
	assert.ErrorIs(t, err, ErrIncompleteUpload)
}

func TestRemoteURLsSkipsPending(t *testing.T) {
	set, err := FromURLs([]string{"a", "b"}, 0)
	require.NoError(t, err)
	set.Add(pending("new.jpg"))

	assert.Equal(t, []string{"a", "b"}, set.RemoteURLs())
}

func TestMainStaysValidAcrossOperations(t *testing.T) {
	set := New()
	set.Add(pending("1"), pending("2"), pending("3"), pending("4"))

	require.NoError(t, set.SetMain(3))
	require.NoError(t, set.RemoveAt(1))
	require.NoError(t, set.MoveTo(0, 2))
	require.NoError(t, set.RemoveAt(set.Main()))
	set.Add(pending("5"))

	assert.GreaterOrEqual(t, set.Main(), 0)
	assert.Less(t, set.Main(), set.Len())
}
