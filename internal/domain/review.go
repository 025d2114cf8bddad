package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ReviewID is the opaque identifier the backend assigns to a review.
// The backend may serialize it as a JSON number or a JSON string; both decode
// into the same textual form so it can be used as a render key.
type ReviewID string

// UnmarshalJSON accepts numeric and string identifiers.
func (id *ReviewID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("review id: %w", err)
		}
		*id = ReviewID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("review id: %w", err)
	}
	*id = ReviewID(n.String())
	return nil
}

// String returns the identifier text.
func (id ReviewID) String() string {
	return string(id)
}

// Review is a single product review as served by the review backend.
// It is received verbatim and never mutated client-side.
type Review struct {
	ID            ReviewID `json:"id"`
	UserName      string   `json:"user_name"`
	ProductName   string   `json:"product_name"`
	ProductReview string   `json:"product_review"`
	CreatedAt     string   `json:"created_at"`
	ContactNumber string   `json:"contact_number"`
}
