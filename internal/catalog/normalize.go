package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/inovacc/petgallery/internal/encoding"
	"github.com/inovacc/petgallery/internal/model"
)

// Record is one raw catalog entry as sent by the source
type Record struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Created     string `json:"created"`
}

// Normalize maps one raw record to a Pet. The title doubles as the id.
func Normalize(r Record) model.Pet {
	return model.Pet{
		ID:          r.Title,
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    r.URL,
		CreatedAt:   r.Created,
	}
}

// Decode parses a catalog payload and normalizes every record.
// Anything other than a JSON array of objects fails as a whole.
func Decode(data []byte) ([]model.Pet, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotAList
	}

	records, err := encoding.ParseJSON[[]json.RawMessage](trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotAList, err)
	}

	pets := make([]model.Pet, 0, len(*records))

	for i, raw := range *records {
		if t := bytes.TrimSpace(raw); len(t) == 0 || t[0] != '{' {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrNotAList, i)
		}

		rec, err := encoding.ParseJSON[Record](raw)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}

		pets = append(pets, Normalize(*rec))
	}

	return pets, nil
}
