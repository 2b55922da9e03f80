package photos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"datenight/internal/restaurant"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --------------------------------------------------
// ExtractImage
// --------------------------------------------------

func doc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return d
}

func TestExtractImage(t *testing.T) {
	base, _ := url.Parse("https://felixla.com/menu/")

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "og image wins over img",
			html: `<head><meta property="og:image" content="https://cdn.felixla.com/hero.jpg"></head><body><img src="/room.jpg"></body>`,
			want: "https://cdn.felixla.com/hero.jpg",
		},
		{
			name: "twitter image",
			html: `<head><meta name="twitter:image" content="/social.png"></head>`,
			want: "https://felixla.com/social.png",
		},
		{
			name: "image_src link",
			html: `<head><link rel="image_src" href="thumb.jpg"></head>`,
			want: "https://felixla.com/menu/thumb.jpg",
		},
		{
			name: "first plausible img skips logos and pixels",
			html: `<body><img src="/logo.png"><img src="/p.gif" width="1"><img src="data:image/png;base64,xx"><img data-src="/dining-room.jpg"></body>`,
			want: "https://felixla.com/dining-room.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractImage(doc(t, tt.html), base)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractImage_None(t *testing.T) {
	_, ok := ExtractImage(doc(t, `<body><img src="/icon.svg"><p>hi</p></body>`), nil)
	assert.False(t, ok)
}

// --------------------------------------------------
// Fetcher
// --------------------------------------------------

func siteServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><meta property="og:image" content="/hero.jpg"></head></html>`)
	})
	mux.HandleFunc("/empty", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>nothing</body></html>`)
	})
	mux.HandleFunc("/hero.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("jpegbytes"))
	})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	return httptest.NewServer(mux)
}

func TestFetcher_ImageURLAndDownload(t *testing.T) {
	srv := siteServer()
	defer srv.Close()

	f := NewFetcher(srv.Client(), 0)
	ctx := context.Background()

	img, err := f.ImageURL(ctx, srv.URL+"/")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/hero.jpg", img)

	data, contentType, err := f.Download(ctx, img)
	require.NoError(t, err)
	assert.Equal(t, "jpegbytes", string(data))
	assert.Equal(t, "image/jpeg", contentType)

	_, err = f.ImageURL(ctx, srv.URL+"/empty")
	assert.ErrorIs(t, err, ErrNoImage)

	_, err = f.ImageURL(ctx, srv.URL+"/gone")
	assert.Error(t, err)
}

func TestFetcher_RespectsContext(t *testing.T) {
	f := NewFetcher(nil, 0.001)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.ImageURL(ctx, "http://127.0.0.1:1/")
	assert.Error(t, err)
}

// --------------------------------------------------
// Backfiller
// --------------------------------------------------

type fakeFinder struct {
	calls []string
	fail  map[string]bool
}

func (f *fakeFinder) ImageURL(_ context.Context, page string) (string, error) {
	f.calls = append(f.calls, page)
	if f.fail[page] {
		return "", ErrNoImage
	}
	return page + "/hero.jpg", nil
}

type fakeMirror struct {
	keys    []string
	failing bool
}

func (m *fakeMirror) Download(context.Context, string) ([]byte, string, error) {
	return []byte("img"), "image/png", nil
}

func (m *fakeMirror) Upload(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	if m.failing {
		return "", errors.New("bucket down")
	}
	data, _ := io.ReadAll(body)
	if string(data) != "img" {
		return "", errors.New("unexpected body")
	}
	m.keys = append(m.keys, key)
	return "https://cdn.example/" + key, nil
}

func backfillRecords() []*restaurant.Restaurant {
	return []*restaurant.Restaurant{
		{Name: "Has Photo", Slug: "has-photo", Website: "https://a", Photos: []string{"https://a/p.jpg"}},
		{Name: "No Site", Slug: "no-site"},
		{Name: "Bestia", Slug: "bestia", Website: "https://bestia"},
		{Name: "Broken", Slug: "broken", Website: "https://broken"},
		{Name: "Retry", Slug: "retry", Website: "https://retry", Photos: []string{Placeholder}},
	}
}

func fixedNow() time.Time { return time.Date(2026, 2, 14, 19, 0, 0, 0, time.UTC) }

func TestBackfiller_Run(t *testing.T) {
	finder := &fakeFinder{fail: map[string]bool{"https://broken": true}}
	var checkpoints []int

	b := NewBackfiller(finder, Options{
		CheckpointPath: filepath.Join(t.TempDir(), "checkpoint.json"),
		Every:          2,
		Now:            fixedNow,
		OnCheckpoint: func(_ []*restaurant.Restaurant, cp Checkpoint) error {
			checkpoints = append(checkpoints, cp.NextIndex)
			return nil
		},
	}, nil)

	records := backfillRecords()
	cp, err := b.Run(context.Background(), records)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://bestia", "https://broken", "https://retry"}, finder.calls)
	assert.Equal(t, []int{2, 4, 5}, checkpoints)
	assert.Equal(t, 5, cp.NextIndex)
	assert.Equal(t, 2, cp.Found)
	assert.Equal(t, 1, cp.Failed)
	assert.Equal(t, 2, cp.Skipped)
	assert.Equal(t, fixedNow(), cp.UpdatedAt)

	assert.Equal(t, []string{"https://a/p.jpg"}, records[0].Photos)
	assert.Equal(t, []string{Placeholder}, records[1].Photos)
	assert.Equal(t, []string{"https://bestia/hero.jpg"}, records[2].Photos)
	assert.Equal(t, []string{Placeholder}, records[3].Photos)
	assert.Equal(t, []string{"https://retry/hero.jpg"}, records[4].Photos)
}

func TestBackfiller_ResumesFromCheckpoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.json")
	records := backfillRecords()
	require.NoError(t, SaveCheckpoint(path, Checkpoint{
		Fingerprint: Fingerprint(records),
		Total:       len(records),
		NextIndex:   3,
		Found:       1,
	}))

	finder := &fakeFinder{}
	b := NewBackfiller(finder, Options{CheckpointPath: path, Now: fixedNow}, nil)

	cp, err := b.Run(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://broken", "https://retry"}, finder.calls)
	assert.Equal(t, 3, cp.Found)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "completed run leaves no checkpoint")
}

func TestBackfiller_SecondRunSeesNewRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.json")
	a := &restaurant.Restaurant{Name: "A", Slug: "a", Website: "https://a"}
	bb := &restaurant.Restaurant{Name: "B", Slug: "b", Website: "https://b"}

	_, err := NewBackfiller(&fakeFinder{}, Options{CheckpointPath: path, Now: fixedNow}, nil).
		Run(context.Background(), []*restaurant.Restaurant{a, bb})
	require.NoError(t, err)

	c := &restaurant.Restaurant{Name: "C", Slug: "c", Website: "https://c"}
	finder := &fakeFinder{}
	cp, err := NewBackfiller(finder, Options{CheckpointPath: path, Now: fixedNow}, nil).
		Run(context.Background(), []*restaurant.Restaurant{c, a, bb})
	require.NoError(t, err)

	assert.Equal(t, []string{"https://c"}, finder.calls)
	assert.Equal(t, []string{"https://c/hero.jpg"}, c.Photos)
	assert.Equal(t, 1, cp.Found)
	assert.Equal(t, 2, cp.Skipped)
}

func TestBackfiller_StaleCheckpointStartsOver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.json")
	require.NoError(t, SaveCheckpoint(path, Checkpoint{Fingerprint: "other", Total: 5, NextIndex: 4, Found: 9}))

	finder := &fakeFinder{}
	b := NewBackfiller(finder, Options{CheckpointPath: path, Now: fixedNow}, nil)

	cp, err := b.Run(context.Background(), backfillRecords())
	require.NoError(t, err)
	assert.Equal(t, []string{"https://bestia", "https://broken", "https://retry"}, finder.calls)
	assert.Equal(t, 2, cp.Found)
	assert.Equal(t, 1, cp.Failed)
}

func TestBackfiller_InterruptedRunKeepsCheckpoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.json")
	ctx, cancel := context.WithCancel(context.Background())

	records := backfillRecords()
	b := NewBackfiller(&fakeFinder{}, Options{
		CheckpointPath: path,
		Every:          2,
		Now:            fixedNow,
		OnCheckpoint: func(_ []*restaurant.Restaurant, cp Checkpoint) error {
			if cp.NextIndex == 2 {
				cancel()
			}
			return nil
		},
	}, nil)

	_, err := b.Run(ctx, records)
	require.ErrorIs(t, err, context.Canceled)

	saved, err := LoadCheckpoint(path)
	require.NoError(t, err)
	assert.Equal(t, 2, saved.NextIndex)
	assert.Equal(t, Fingerprint(records), saved.Fingerprint)
	assert.Equal(t, len(records), saved.Total)
}

func TestFingerprint_IgnoresPhotos(t *testing.T) {
	records := backfillRecords()
	before := Fingerprint(records)
	records[1].Photos = []string{Placeholder}
	assert.Equal(t, before, Fingerprint(records))

	reordered := []*restaurant.Restaurant{records[1], records[0], records[2], records[3], records[4]}
	assert.NotEqual(t, before, Fingerprint(reordered))
}

func TestBackfiller_Mirror(t *testing.T) {
	mirror := &fakeMirror{}
	b := NewBackfiller(&fakeFinder{}, Options{Downloader: mirror, Uploader: mirror, Now: fixedNow}, nil)

	records := []*restaurant.Restaurant{{Name: "Bestia", Slug: "bestia", Website: "https://bestia"}}
	cp, err := b.Run(context.Background(), records)
	require.NoError(t, err)

	require.Len(t, mirror.keys, 1)
	assert.True(t, strings.HasPrefix(mirror.keys[0], "photos/bestia-"))
	assert.True(t, strings.HasSuffix(mirror.keys[0], ".png"))
	assert.Equal(t, []string{"https://cdn.example/" + mirror.keys[0]}, records[0].Photos)
	assert.Equal(t, 1, cp.Mirrored)
}

func TestBackfiller_MirrorFailureKeepsSourceURL(t *testing.T) {
	mirror := &fakeMirror{failing: true}
	b := NewBackfiller(&fakeFinder{}, Options{Downloader: mirror, Uploader: mirror, Now: fixedNow}, nil)

	records := []*restaurant.Restaurant{{Name: "Bestia", Slug: "bestia", Website: "https://bestia"}}
	cp, err := b.Run(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://bestia/hero.jpg"}, records[0].Photos)
	assert.Zero(t, cp.Mirrored)
}

func TestBackfiller_CheckpointErrorStops(t *testing.T) {
	b := NewBackfiller(&fakeFinder{}, Options{
		Every: 1,
		OnCheckpoint: func([]*restaurant.Restaurant, Checkpoint) error {
			return errors.New("disk full")
		},
	}, nil)

	cp, err := b.Run(context.Background(), backfillRecords())
	assert.Error(t, err)
	assert.Equal(t, 1, cp.NextIndex)
}

func TestLoadCheckpoint_Missing(t *testing.T) {
	cp, err := LoadCheckpoint(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)
	assert.Zero(t, cp.NextIndex)
}
