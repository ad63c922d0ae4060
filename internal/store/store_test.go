package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "modernc.org/sqlite"
)

type note struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (n note) Key() string { return n.ID }

type settingsDoc struct {
	Name string  `json:"name"`
	Rate float64 `json:"rate"`
}

func newFileDB(t *testing.T) (*DB, string) {
	t.Helper()
	dir := t.TempDir()
	backend, err := NewFileBackend(dir)
	require.NoError(t, err)
	return New(backend), dir
}

func newSQLDB(t *testing.T) *DB {
	t.Helper()
	dsn := fmt.Sprintf("file:store_test_%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	backend := NewSQLBackend(gdb)
	require.NoError(t, backend.Migrate(context.Background()))
	return New(backend)
}

func seed(t *testing.T, c *Collection[note], items ...note) {
	t.Helper()
	require.NoError(t, c.Replace(context.Background(), items))
}

func TestCollection_MissingRequiredCollectionFails(t *testing.T) {
	db, _ := newFileDB(t)
	notes := NewCollection[note](db, "notes")

	_, err := notes.All(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	var se *StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "notes", se.Collection)
}

func TestCollection_MissingOptionalCollectionIsEmpty(t *testing.T) {
	db, _ := newFileDB(t)
	notes := NewCollection[note](db, "notes", Optional())

	items, err := notes.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, notes.Insert(context.Background(), note{ID: "1", Title: "first"}))
	items, err = notes.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCollection_MalformedFile(t *testing.T) {
	db, dir := newFileDB(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.json"), []byte("{not json"), 0o644))

	notes := NewCollection[note](db, "notes", Optional())
	_, err := notes.All(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestCollection_RoundTrip(t *testing.T) {
	for name, db := range map[string]*DB{"file": first(newFileDB(t)), "sql": newSQLDB(t)} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			notes := NewCollection[note](db, "notes")
			seed(t, notes)

			want := note{ID: "42", Title: "hello", Body: "world"}
			require.NoError(t, notes.Insert(ctx, want))

			got, err := notes.Get(ctx, "42")
			require.NoError(t, err)
			assert.Equal(t, want, got)

			_, err = notes.Get(ctx, "missing")
			assert.True(t, errors.Is(err, ErrNotFound))
		})
	}
}

func TestCollection_InsertDuplicateKey(t *testing.T) {
	db, _ := newFileDB(t)
	notes := NewCollection[note](db, "notes")
	seed(t, notes, note{ID: "1", Title: "a"})

	err := notes.Insert(context.Background(), note{ID: "1", Title: "b"})
	assert.True(t, errors.Is(err, ErrConflict))

	got, err := notes.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "a", got.Title)
}

func TestCollection_UpdateOnlyTouchesTarget(t *testing.T) {
	db, _ := newFileDB(t)
	ctx := context.Background()
	notes := NewCollection[note](db, "notes")
	seed(t, notes, note{ID: "1", Title: "a", Body: "x"}, note{ID: "2", Title: "b", Body: "y"})

	updated, err := notes.Update(ctx, "2", func(n *note) error {
		n.Title = "B"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, note{ID: "2", Title: "B", Body: "y"}, updated)

	untouched, err := notes.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, note{ID: "1", Title: "a", Body: "x"}, untouched)

	_, err = notes.Update(ctx, "3", func(n *note) error { return nil })
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCollection_UpdateCallbackErrorAbortsSave(t *testing.T) {
	db, _ := newFileDB(t)
	ctx := context.Background()
	notes := NewCollection[note](db, "notes")
	seed(t, notes, note{ID: "1", Title: "a"})

	boom := errors.New("boom")
	_, err := notes.Update(ctx, "1", func(n *note) error {
		n.Title = "changed"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := notes.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "a", got.Title)
}

func TestCollection_DeleteIsIdempotent(t *testing.T) {
	db, _ := newFileDB(t)
	ctx := context.Background()
	notes := NewCollection[note](db, "notes")
	seed(t, notes, note{ID: "1"}, note{ID: "2"})

	require.NoError(t, notes.Delete(ctx, "1"))
	require.NoError(t, notes.Delete(ctx, "1"))
	require.NoError(t, notes.Delete(ctx, "never-existed"))

	items, err := notes.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []note{{ID: "2"}}, items)
}

func TestCollection_DeleteOnAbsentOptionalCollectionWritesNothing(t *testing.T) {
	db, dir := newFileDB(t)
	notes := NewCollection[note](db, "notes", Optional())

	require.NoError(t, notes.Delete(context.Background(), "x"))

	_, err := os.Stat(filepath.Join(dir, "notes.json"))
	assert.True(t, os.IsNotExist(err))
}

// Concurrent read-modify-write cycles on one collection must not drop writes.
func TestCollection_ConcurrentInsertsAreNotLost(t *testing.T) {
	for name, db := range map[string]*DB{"file": first(newFileDB(t)), "sql": newSQLDB(t)} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			notes := NewCollection[note](db, "notes")
			seed(t, notes)

			const writers = 40
			var wg sync.WaitGroup
			errs := make(chan error, writers)
			for i := 0; i < writers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					errs <- notes.Insert(ctx, note{ID: fmt.Sprintf("n-%d", i)})
				}(i)
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				require.NoError(t, err)
			}

			items, err := notes.All(ctx)
			require.NoError(t, err)
			assert.Len(t, items, writers)
		})
	}
}

func TestFileBackend_WritesIndentedJSON(t *testing.T) {
	db, dir := newFileDB(t)
	notes := NewCollection[note](db, "notes")
	seed(t, notes, note{ID: "1", Title: "a"})

	raw, err := os.ReadFile(filepath.Join(dir, "notes.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  {\n    \"id\": \"1\"")
}

func TestDocument_GetAndMutate(t *testing.T) {
	for name, db := range map[string]*DB{"file": first(newFileDB(t)), "sql": newSQLDB(t)} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			doc := NewDocument[settingsDoc](db, "settings")

			_, err := doc.Get(ctx)
			assert.True(t, errors.Is(err, ErrNotFound))

			require.NoError(t, doc.Put(ctx, settingsDoc{Name: "Acme", Rate: 13}))

			got, err := doc.Mutate(ctx, func(s *settingsDoc) error {
				s.Rate = 15
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, settingsDoc{Name: "Acme", Rate: 15}, got)

			reread, err := doc.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, got, reread)
		})
	}
}

type recorderStub struct {
	mu  sync.Mutex
	ops []string
}

func (r *recorderStub) ObserveStoreOp(collection, op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, fmt.Sprintf("%s:%s:%t", collection, op, err == nil))
}

func TestDB_RecordsBackendOps(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)
	rec := &recorderStub{}
	db := New(backend, WithRecorder(rec))

	notes := NewCollection[note](db, "notes", Optional())
	require.NoError(t, notes.Insert(context.Background(), note{ID: "1"}))

	assert.Equal(t, []string{"notes:load:false", "notes:save:true"}, rec.ops)
}

func first(db *DB, _ string) *DB { return db }
