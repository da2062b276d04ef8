package codec

import (
	"encoding/json"
	"fmt"

	"github.com/perfgate/perfgate/pkg/canonical"
)

// JSONCodec is the identity encoding: a direct recursive serialization,
// reversible by any JSON parser with zero information loss.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Encode(doc *canonical.Document) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode json: %w", err)
	}
	return string(data) + "\n", nil
}

// Decode parses JSON codec output back into a canonical document.
func (JSONCodec) Decode(text string) (*canonical.Document, error) {
	var doc canonical.Document
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode json: %w", err)
	}
	return &doc, nil
}
