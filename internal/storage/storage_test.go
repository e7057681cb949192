package storage

import (
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capisen/backoffice/config"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	cfg := &config.Config{}
	cfg.Storage.Dir = t.TempDir()
	cfg.Storage.SigningKey = "test-signing-key"
	cfg.Server.BaseURL = "http://localhost:8080/"
	store, err := NewDiskStore(cfg)
	require.NoError(t, err)
	return store
}

func TestSaveOpenRoundTrip(t *testing.T) {
	store := newTestStore(t)
	key := "submissions/1/2/rib.pdf"

	require.NoError(t, store.Save(key, strings.NewReader("contenu du fichier")))
	rc, err := store.Open(key)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "contenu du fichier", string(data))
}

func TestSaveRejectsTraversalKey(t *testing.T) {
	store := newTestStore(t)
	err := store.Save("../outside.txt", strings.NewReader("x"))
	assert.Error(t, err)
}

func TestSignedURLRoundTrip(t *testing.T) {
	store := newTestStore(t)
	signed, err := store.SignedURL("documents/3/guide.pdf", "guide.pdf", time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(signed, "http://localhost:8080/api/v1/files?token="))

	parsed, err := url.Parse(signed)
	require.NoError(t, err)
	key, fileName, err := store.Verify(parsed.Query().Get("token"))
	require.NoError(t, err)
	assert.Equal(t, "documents/3/guide.pdf", key)
	assert.Equal(t, "guide.pdf", fileName)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	store := newTestStore(t)
	signed, err := store.SignedURL("documents/3/guide.pdf", "guide.pdf", -time.Minute)
	require.NoError(t, err)

	parsed, err := url.Parse(signed)
	require.NoError(t, err)
	_, _, err = store.Verify(parsed.Query().Get("token"))
	assert.Error(t, err)
}

func TestTamperedTokenIsRejected(t *testing.T) {
	store := newTestStore(t)
	signed, err := store.SignedURL("documents/3/guide.pdf", "guide.pdf", time.Minute)
	require.NoError(t, err)

	parsed, err := url.Parse(signed)
	require.NoError(t, err)
	token := parsed.Query().Get("token")
	_, _, err = store.Verify(token[:len(token)-2] + "xx")
	assert.Error(t, err)
}

func TestSignedURLRequiresKey(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Dir = t.TempDir()
	store, err := NewDiskStore(cfg)
	require.NoError(t, err)

	_, err = store.SignedURL("k", "f", time.Minute)
	assert.Error(t, err)
}
