package autosave

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore records writes and lets tests control the saved-at time.
type fakeStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	savedAt map[string]time.Time
	writes  int
	cleared int
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string][]byte{}, savedAt: map[string]time.Time{}}
}

func (f *fakeStore) Get(key string) ([]byte, time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.data[key]
	if !ok {
		return nil, time.Time{}, ErrNotFound
	}
	return data, f.savedAt[key], nil
}

func (f *fakeStore) Set(key string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = data
	f.savedAt[key] = time.Now()
	f.writes++
	return nil
}

func (f *fakeStore) Clear(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	delete(f.savedAt, key)
	f.cleared++
	return nil
}

func (f *fakeStore) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

func (f *fakeStore) stored(key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.data[key]
	return data, ok
}

type snapshot struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestSaver_DebounceCoalescesWrites(t *testing.T) {
	store := newFakeStore()
	s := NewSaver(store, "wizard_progress", WithDelay(30*time.Millisecond))

	for i := 1; i <= 5; i++ {
		s.Update(snapshot{Name: "wizard", Count: i})
	}

	require.Eventually(t, func() bool {
		return store.writeCount() == 1
	}, time.Second, 10*time.Millisecond, "exactly one write for N rapid updates")

	data, ok := store.stored("wizard_progress")
	require.True(t, ok)
	assert.JSONEq(t, `{"name":"wizard","count":5}`, string(data), "final value wins")

	// Quiet period with no further updates: still one write.
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 1, store.writeCount())
}

func TestSaver_SkipsUnchangedValue(t *testing.T) {
	store := newFakeStore()
	s := NewSaver(store, "wizard_progress", WithDelay(10*time.Millisecond))

	s.Update(snapshot{Name: "same", Count: 1})
	require.Eventually(t, func() bool {
		return store.writeCount() == 1
	}, time.Second, 5*time.Millisecond)

	s.Update(snapshot{Name: "same", Count: 1})
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, store.writeCount(), "identical serialized value must not rewrite")
}

func TestSaver_RevertDisarmsPendingFlush(t *testing.T) {
	store := newFakeStore()
	s := NewSaver(store, "wizard_progress", WithDelay(30*time.Millisecond))

	s.Update(snapshot{Name: "wizard", Count: 1})
	s.ForceSave()
	require.Equal(t, 1, store.writeCount())

	// An intermediate change followed by a revert to the saved value
	// must not let the armed timer write the intermediate.
	s.Update(snapshot{Name: "wizard", Count: 2})
	s.Update(snapshot{Name: "wizard", Count: 1})

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 1, store.writeCount(), "reverted value must not rewrite")

	data, ok := store.stored("wizard_progress")
	require.True(t, ok)
	assert.JSONEq(t, `{"name":"wizard","count":1}`, string(data))
}

func TestSaver_ForceSaveBypassesDebounce(t *testing.T) {
	store := newFakeStore()
	s := NewSaver(store, "wizard_progress", WithDelay(time.Hour))

	s.Update(snapshot{Name: "now", Count: 7})
	assert.Equal(t, 0, store.writeCount())

	s.ForceSave()
	assert.Equal(t, 1, store.writeCount())
}

func TestSaver_LoadRespectsTTL(t *testing.T) {
	store := newFakeStore()
	s := NewSaver(store, "wizard_progress", WithDelay(time.Millisecond))

	s.Update(snapshot{Name: "fresh", Count: 1})
	s.ForceSave()
	savedAt := store.savedAt["wizard_progress"]

	// Just inside the window
	s2 := NewSaver(store, "wizard_progress",
		WithClock(func() time.Time { return savedAt.Add(23*time.Hour + 59*time.Minute) }))
	var out snapshot
	assert.True(t, s2.Load(&out))
	assert.Equal(t, "fresh", out.Name)

	// Just past the window: discarded and cleared
	s3 := NewSaver(store, "wizard_progress",
		WithClock(func() time.Time { return savedAt.Add(24*time.Hour + time.Minute) }))
	out = snapshot{}
	assert.False(t, s3.Load(&out))
	_, ok := store.stored("wizard_progress")
	assert.False(t, ok, "expired snapshot must be cleared")
}

func TestSaver_LoadDiscardsCorruptSnapshot(t *testing.T) {
	store := newFakeStore()
	require.NoError(t, store.Set("wizard_progress", []byte("{not json")))

	s := NewSaver(store, "wizard_progress")
	var out snapshot
	assert.False(t, s.Load(&out))
	_, ok := store.stored("wizard_progress")
	assert.False(t, ok)
}

func TestSaver_LoadFallback(t *testing.T) {
	store := newFakeStore()
	s := NewSaver(store, "wizard_progress",
		WithFallback(func() ([]byte, bool) {
			return []byte(`{"name":"fallback","count":3}`), true
		}))

	var out snapshot
	assert.True(t, s.Load(&out))
	assert.Equal(t, "fallback", out.Name)
}

func TestSaver_NotifyOnSave(t *testing.T) {
	store := newFakeStore()
	var mu sync.Mutex
	var notified []bool
	s := NewSaver(store, "wizard_progress",
		WithDelay(5*time.Millisecond),
		WithNotify(func(saved bool, err error) {
			mu.Lock()
			notified = append(notified, saved)
			mu.Unlock()
		}))

	s.Update(snapshot{Name: "n", Count: 1})
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(notified) == 1 && notified[0]
	}, time.Second, 5*time.Millisecond)
}

func TestFileStore_Layout(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, fs.Set("wizard_progress", []byte(`{"a":1}`)))

	// Mirrors the autosave_<key> / autosave_<key>_timestamp layout.
	_, err = os.Stat(filepath.Join(dir, "autosave_wizard_progress"))
	require.NoError(t, err)
	raw, err := os.ReadFile(filepath.Join(dir, "autosave_wizard_progress_timestamp"))
	require.NoError(t, err)
	assert.Regexp(t, `^\d+$`, string(raw))

	data, savedAt, err := fs.Get("wizard_progress")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))
	assert.WithinDuration(t, time.Now(), savedAt, time.Minute)

	require.NoError(t, fs.Clear("wizard_progress"))
	_, _, err = fs.Get("wizard_progress")
	assert.ErrorIs(t, err, ErrNotFound)

	// Clearing an absent key is not an error.
	assert.NoError(t, fs.Clear("wizard_progress"))
}

func TestFileStore_MissingTimestampTreatedAsAbsent(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "autosave_orphan"), []byte("{}"), 0o644))
	_, _, err = fs.Get("orphan")
	assert.ErrorIs(t, err, ErrNotFound)
}
