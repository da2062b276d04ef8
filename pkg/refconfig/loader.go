package refconfig

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var requiredSections = []string{"loadConfig", "environment", "scenarioConfig", "fieldMetadata"}

// referenceSchema constrains the shape of a reference configuration beyond
// the required-section check.
const referenceSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["loadConfig", "environment", "scenarioConfig", "fieldMetadata"],
  "properties": {
    "loadConfig": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "properties": {
          "label": {"type": "string"},
          "fields": {"type": "object"}
        }
      }
    },
    "environment": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "properties": {
          "label": {"type": "string"},
          "url": {"type": "string"}
        }
      }
    },
    "scenarioConfig": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "properties": {
          "label": {"type": "string"},
          "fields": {"type": "object"}
        }
      }
    },
    "fieldMetadata": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "properties": {
          "label": {"type": "string"},
          "type": {"type": "string"},
          "unit": {"type": "string"},
          "help": {"type": "string"},
          "min": {"type": "number"}
        }
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func schema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = jsonschema.CompileString("reference.schema.json", referenceSchema)
	})
	return compiledSchema, schemaErr
}

// Parse validates and decodes raw reference-configuration JSON. A missing
// required section or a schema violation is a fatal load error.
func Parse(data []byte) (*Config, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse reference config: %w", err)
	}

	for _, section := range requiredSections {
		if _, ok := raw[section]; !ok {
			return nil, fmt.Errorf("reference config missing required section %q", section)
		}
	}

	s, err := schema()
	if err != nil {
		return nil, fmt.Errorf("failed to compile reference schema: %w", err)
	}
	var generic interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("failed to parse reference config: %w", err)
	}
	if err := s.Validate(generic); err != nil {
		return nil, fmt.Errorf("reference config failed schema validation: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode reference config: %w", err)
	}
	return &cfg, nil
}

// LoadFile loads a reference configuration from a local file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference config: %w", err)
	}
	return Parse(data)
}

// Fetcher fetches a reference configuration over HTTP. A new Fetch cancels
// any prior request still in flight: last request wins, no queueing.
type Fetcher struct {
	client *http.Client

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewFetcher creates a Fetcher. A nil client gets a 30 second default.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Fetcher{client: client}
}

// Fetch retrieves and parses the reference configuration at url.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Config, error) {
	f.mu.Lock()
	if f.cancel != nil {
		f.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.mu.Unlock()
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reference config: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reference config fetch returned HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference config response: %w", err)
	}
	return Parse(data)
}
