package data

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/model"
)

// catalogCursor is the keyset position of a catalog row in (created_at DESC, id DESC) order.
type catalogCursor struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
}

func encodeCatalogCursor(cur catalogCursor) (string, error) {
	raw, err := json.Marshal(cur)
	if err != nil {
		return "", fmt.Errorf("marshal cursor: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func decodeCatalogCursor(token string) (catalogCursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return catalogCursor{}, fmt.Errorf("%w: decode: %w", ErrInvalidCursor, err)
	}

	var cur catalogCursor
	if err := json.Unmarshal(raw, &cur); err != nil {
		return catalogCursor{}, fmt.Errorf("%w: unmarshal: %w", ErrInvalidCursor, err)
	}
	if cur.ID == "" || cur.CreatedAt.IsZero() {
		return catalogCursor{}, fmt.Errorf("%w: missing position", ErrInvalidCursor)
	}
	return cur, nil
}

// EncodeCatalogCursor builds the cursor token for an entry.
func EncodeCatalogCursor(e *model.CatalogEntry) (string, error) {
	if e == nil {
		return "", fmt.Errorf("%w: nil entry", ErrInvalidCursor)
	}
	return encodeCatalogCursor(catalogCursor{CreatedAt: e.CreatedAt, ID: e.ID})
}

// ValidateCatalogCursor reports whether token is a well-formed catalog cursor.
func ValidateCatalogCursor(token string) error {
	_, err := decodeCatalogCursor(token)
	return err
}

// pageCursors returns (next, prev) tokens for a page presented newest first.
func pageCursors(entries []*model.CatalogEntry) (*string, *string, error) {
	if len(entries) == 0 {
		return nil, nil, nil
	}
	next, err := EncodeCatalogCursor(entries[len(entries)-1])
	if err != nil {
		return nil, nil, err
	}
	prev, err := EncodeCatalogCursor(entries[0])
	if err != nil {
		return nil, nil, err
	}
	return &next, &prev, nil
}
