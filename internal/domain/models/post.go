package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// PostID is the service-assigned identifier. It is opaque: services send it
// either as a JSON number or as a JSON string.
type PostID string

func (id PostID) String() string {
	return string(id)
}

func (id *PostID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = PostID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("post id must be a string or a number: %w", err)
	}
	*id = PostID(n.String())
	return nil
}

type Post struct {
	ID        PostID     `json:"id"`
	Title     string     `json:"title" validate:"required"`
	Content   string     `json:"content" validate:"required"`
	ImageURL  string     `json:"imageURL,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

func (p *Post) HasTags() bool {
	return len(p.Tags) > 0
}
