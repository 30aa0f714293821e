package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	amazonapi "github.com/belo-research/amazon-product-api"
)

// Document is one cached marketplace page.
type Document struct {
	ID          string
	PageKey     string
	Kind        amazonapi.Kind
	Content     string
	ContentHash string
	FetchedAt   time.Time
}

// DocumentCache stores fetched page bodies keyed by the canonical page
// identity. One row per page; a refetch overwrites the previous body.
type DocumentCache struct {
	db *DB
}

// NewDocumentCache creates a new DocumentCache.
func NewDocumentCache(db *DB) *DocumentCache {
	return &DocumentCache{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// Put stores the body for a page, replacing any previous copy.
func (c *DocumentCache) Put(ctx context.Context, req amazonapi.PageRequest, body string) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO documents (id, page_key, kind, content, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(page_key) DO UPDATE SET
			content = excluded.content,
			content_hash = excluded.content_hash,
			fetched_at = excluded.fetched_at
	`, uuid.New().String(), req.Key(), string(req.Kind), body, hashContent(body),
		time.Now().UTC().Format(time.RFC3339))
	return err
}

// Get retrieves the cached document for a page. When maxAge > 0,
// entries older than maxAge are treated as absent.
func (c *DocumentCache) Get(ctx context.Context, req amazonapi.PageRequest, maxAge time.Duration) (*Document, error) {
	var doc Document
	var kind, fetchedAt string

	err := c.db.QueryRowContext(ctx, `
		SELECT id, page_key, kind, content, content_hash, fetched_at
		FROM documents
		WHERE page_key = ?
	`, req.Key()).Scan(&doc.ID, &doc.PageKey, &kind, &doc.Content, &doc.ContentHash, &fetchedAt)

	if err == sql.ErrNoRows {
		return nil, amazonapi.Errorf(amazonapi.ENOTFOUND, "document not cached")
	}
	if err != nil {
		return nil, err
	}

	doc.Kind = amazonapi.Kind(kind)
	doc.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}

	if maxAge > 0 && time.Since(doc.FetchedAt) > maxAge {
		return nil, amazonapi.Errorf(amazonapi.ENOTFOUND, "cached document expired")
	}
	return &doc, nil
}

// Purge removes entries fetched before the cutoff and reports how many
// rows were deleted.
func (c *DocumentCache) Purge(ctx context.Context, before time.Time) (int64, error) {
	res, err := c.db.ExecContext(ctx,
		"DELETE FROM documents WHERE fetched_at < ?",
		before.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
