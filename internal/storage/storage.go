// Package storage holds step documents and learner submissions on local
// disk and hands out time-limited signed download URLs, mirroring the
// bucket + signed-URL surface of a hosted object store.
package storage

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/capisen/backoffice/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

type Store interface {
	Save(key string, r io.Reader) error
	Open(key string) (io.ReadCloser, error)
	// SignedURL returns an absolute URL that redeems to the object for
	// the given duration.
	SignedURL(key, fileName string, ttl time.Duration) (string, error)
	// Verify checks a signed token and returns the object key and the
	// download file name it was issued for.
	Verify(token string) (key string, fileName string, err error)
}

type diskStore struct {
	root       string
	signingKey []byte
	baseURL    string
}

func NewDiskStore(cfg *config.Config) (Store, error) {
	if cfg.Storage.SigningKey == "" {
		log.Warn().Msg("STORAGE_SIGNING_KEY is not set. Signed downloads will be non-functional.")
	}
	if err := os.MkdirAll(cfg.Storage.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir %s: %w", cfg.Storage.Dir, err)
	}
	return &diskStore{
		root:       cfg.Storage.Dir,
		signingKey: []byte(cfg.Storage.SigningKey),
		baseURL:    strings.TrimRight(cfg.Server.BaseURL, "/"),
	}, nil
}

// resolve maps an object key to a path under root, rejecting traversal.
func (s *diskStore) resolve(key string) (string, error) {
	if strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(s.root, filepath.Clean("/"+key)), nil
}

func (s *diskStore) Save(key string, r io.Reader) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create object dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create object %s: %w", key, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("failed to write object %s: %w", key, err)
	}
	return nil
}

func (s *diskStore) Open(key string) (io.ReadCloser, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

type downloadClaims struct {
	Key      string `json:"key"`
	FileName string `json:"file_name"`
	jwt.RegisteredClaims
}

func (s *diskStore) SignedURL(key, fileName string, ttl time.Duration) (string, error) {
	if len(s.signingKey) == 0 {
		return "", fmt.Errorf("storage signing key is not configured")
	}
	claims := downloadClaims{
		Key:      key,
		FileName: fileName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign download token: %w", err)
	}
	return fmt.Sprintf("%s/api/v1/files?token=%s", s.baseURL, url.QueryEscape(token)), nil
}

func (s *diskStore) Verify(token string) (string, string, error) {
	var claims downloadClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return "", "", fmt.Errorf("invalid download token: %w", err)
	}
	if !parsed.Valid {
		return "", "", fmt.Errorf("invalid download token")
	}
	return claims.Key, claims.FileName, nil
}
