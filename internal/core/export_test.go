package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inovacc/petgallery/internal/model"
)

type fakeImages struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]error
	block chan struct{}
}

func (f *fakeImages) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, imageURL)
	err := f.fail[imageURL]
	f.mu.Unlock()

	if f.block != nil {
		<-f.block
	}

	if err != nil {
		return nil, err
	}

	return []byte("bytes of " + imageURL), nil
}

func (f *fakeImages) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.calls...)
}

type memSaver struct {
	mu    sync.Mutex
	files map[string][]byte
}

func (m *memSaver) Save(name string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.files == nil {
		m.files = make(map[string][]byte)
	}

	m.files[name] = data

	return "mem://" + name, nil
}

func collect(b *ExportBatch) []ItemResult {
	var out []ItemResult
	for r := range b.Events() {
		out = append(out, r)
	}
	return out
}

func TestExportFileName(t *testing.T) {
	assert.Equal(t, "Rex.jpg", ExportFileName(pet("Rex", "")))
	assert.Equal(t, "Mr Whiskers.jpg", ExportFileName(pet("Mr Whiskers", "")))
}

func TestExporter_DownloadSelected(t *testing.T) {
	images := &fakeImages{}
	saver := &memSaver{}
	e := &Exporter{Images: images, Saver: saver}

	sel := NewSelection()
	sel.Toggle("Rex")
	sel.Toggle("Max")

	batch := e.DownloadSelected(context.Background(), samplePets(), sel)
	require.NotNil(t, batch)
	assert.NotEmpty(t, batch.ID)
	assert.Equal(t, 2, batch.Total)

	results := collect(batch)
	batch.Wait()

	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, r.Success())
		assert.Equal(t, "mem://"+r.FileName, r.Path)
	}

	assert.ElementsMatch(t, []string{"http://x/rex.png", "http://x/max.png"}, images.Calls())
	assert.Equal(t, []byte("bytes of http://x/rex.png"), saver.files["Rex.jpg"])
	assert.Equal(t, []byte("bytes of http://x/max.png"), saver.files["Max.jpg"])
}

func TestExporter_FailureIsIsolated(t *testing.T) {
	images := &fakeImages{fail: map[string]error{"http://x/tom.png": errors.New("connection reset")}}
	saver := &memSaver{}
	e := &Exporter{Images: images, Saver: saver}

	sel := NewSelection()
	sel.SelectAll(samplePets())

	batch := e.DownloadSelected(context.Background(), samplePets(), sel)
	results := collect(batch)

	require.Len(t, results, len(samplePets()))

	var failed []string
	for _, r := range results {
		if !r.Success() {
			failed = append(failed, r.Pet.Title)
			assert.Empty(t, r.Path)
		}
	}

	assert.Equal(t, []string{"tom"}, failed)
	assert.Len(t, saver.files, len(samplePets())-1)
	assert.NotContains(t, saver.files, "tom.jpg")
}

func TestExporter_EmptySelection(t *testing.T) {
	images := &fakeImages{}
	e := &Exporter{Images: images, Saver: &memSaver{}}

	batch := e.DownloadSelected(context.Background(), samplePets(), NewSelection())
	assert.Equal(t, 0, batch.Total)

	select {
	case <-batch.Done():
	case <-time.After(time.Second):
		t.Fatal("empty batch did not finish")
	}

	assert.Empty(t, collect(batch))
	assert.Empty(t, images.Calls())
}

func TestExporter_ItemsRunConcurrently(t *testing.T) {
	images := &fakeImages{block: make(chan struct{})}
	e := &Exporter{Images: images, Saver: &memSaver{}}

	sel := NewSelection()
	sel.SelectAll(samplePets())

	batch := e.DownloadSelected(context.Background(), samplePets(), sel)

	// every item is in flight before any of them completes
	require.Eventually(t, func() bool {
		return len(images.Calls()) == len(samplePets())
	}, time.Second, 5*time.Millisecond)

	close(images.block)
	batch.Wait()
}

func TestExporter_ParallelLimit(t *testing.T) {
	images := &fakeImages{block: make(chan struct{})}
	e := &Exporter{Images: images, Saver: &memSaver{}, Parallel: 2}

	sel := NewSelection()
	sel.SelectAll(samplePets())

	batch := e.DownloadSelected(context.Background(), samplePets(), sel)

	require.Eventually(t, func() bool {
		return len(images.Calls()) == 2
	}, time.Second, 5*time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	assert.Len(t, images.Calls(), 2)

	close(images.block)
	batch.Wait()
	assert.Len(t, images.Calls(), len(samplePets()))
}

func TestExporter_UnreadEventsDoNotBlock(t *testing.T) {
	e := &Exporter{Images: &fakeImages{}, Saver: &memSaver{}}

	sel := NewSelection()
	sel.SelectAll(samplePets())

	batch := e.DownloadSelected(context.Background(), samplePets(), sel)

	select {
	case <-batch.Done():
	case <-time.After(time.Second):
		t.Fatal("batch blocked on unread events")
	}
}

func TestDirSaver_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	s := DirSaver{Dir: dir}

	path, err := s.Save("Rex.jpg", []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Rex.jpg"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("img"), data)

	// overwrites
	_, err = s.Save("Rex.jpg", []byte("v2"))
	require.NoError(t, err)
	data, _ = os.ReadFile(path)
	assert.Equal(t, []byte("v2"), data)

	// path separators stay inside the directory
	path, err = s.Save("../escape.jpg", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
}

func TestDirSaver_DirIsAFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "exports")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	path, err := DirSaver{Dir: file}.Save("Rex.jpg", []byte("img"))
	require.Error(t, err)
	assert.Empty(t, path)
	assert.Contains(t, err.Error(), "save Rex.jpg")
}

func TestExporter_WithDirSaver(t *testing.T) {
	dir := t.TempDir()
	e := &Exporter{Images: &fakeImages{}, Saver: DirSaver{Dir: dir}}

	sel := NewSelection()
	sel.Toggle("Rex")

	batch := e.DownloadSelected(context.Background(), []model.Pet{pet("Rex", "a dog")}, sel)
	batch.Wait()

	data, err := os.ReadFile(filepath.Join(dir, "Rex.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("bytes of http://x/rex.png"), data)
}
