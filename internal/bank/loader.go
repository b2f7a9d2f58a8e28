package bank

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// LoadError indicates the remote answer bank could not be fetched or
// decoded. It is fatal to the session: a partial or empty bank silently
// degrades answering to random selection, so there is no retry.
type LoadError struct {
	URL string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load answer bank from %s: %v", e.URL, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// remoteEntry is the wire shape served by the quiz backend.
type remoteEntry struct {
	Pregunta  string `json:"pregunta"`
	Respuesta string `json:"respuesta"`
}

// payloadSchema describes the expected remote payload. Validation runs
// before decoding so that entries with missing fields fail loudly instead
// of producing a silently unusable bank.
const payloadSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["pregunta", "respuesta"],
		"properties": {
			"pregunta": {"type": "string", "minLength": 1},
			"respuesta": {"type": "string"}
		}
	}
}`

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	var def any
	if err := json.Unmarshal([]byte(payloadSchema), &def); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}
	c := jsonschema.NewCompiler()
	const schemaURL = "schema://answer-bank.json"
	if err := c.AddResource(schemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(schemaURL)
})

// FetchRemote performs an HTTP GET against url and builds a bank from the
// returned JSON array of {pregunta, respuesta} objects. Any non-2xx status
// or payload that fails schema validation yields a *LoadError. A nil
// client uses http.DefaultClient.
func FetchRemote(ctx context.Context, client *http.Client, url string) (Bank, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Bank{}, &LoadError{URL: url, Err: err}
	}

	resp, err := client.Do(req)
	if err != nil {
		return Bank{}, &LoadError{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Bank{}, &LoadError{URL: url, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Bank{}, &LoadError{URL: url, Err: err}
	}

	bank, err := Parse(body)
	if err != nil {
		return Bank{}, &LoadError{URL: url, Err: err}
	}
	return bank, nil
}

// Parse validates raw JSON against the payload schema and builds a bank
// preserving payload order.
func Parse(raw []byte) (Bank, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Bank{}, fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compileSchema()
	if err != nil {
		return Bank{}, fmt.Errorf("compile payload schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return Bank{}, fmt.Errorf("schema validation failed: %w", err)
	}

	var remote []remoteEntry
	if err := json.Unmarshal(raw, &remote); err != nil {
		return Bank{}, err
	}

	entries := make([]Entry, 0, len(remote))
	for _, r := range remote {
		e, err := NewEntry(r.Pregunta, r.Respuesta)
		if err != nil {
			return Bank{}, err
		}
		entries = append(entries, e)
	}
	return New(entries...), nil
}
