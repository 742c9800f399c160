package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"spacia-portal/internal/models"

	"gopkg.in/yaml.v3"
)

// LoadDraft reads a property draft from a YAML (or JSON) file. "-" reads stdin.
func LoadDraft(path string, stdin io.Reader) (models.PropertyDraft, error) {
	var draft models.PropertyDraft

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return draft, fmt.Errorf("failed to read draft: %v", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&draft); err != nil {
		if err == io.EOF {
			return draft, fmt.Errorf("draft %s is empty", path)
		}
		return draft, fmt.Errorf("failed to parse draft: %v", err)
	}
	return draft, nil
}

// WriteDraft prints draft in the format LoadDraft reads.
func WriteDraft(w io.Writer, draft models.PropertyDraft) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(draft); err != nil {
		return fmt.Errorf("failed to encode draft: %v", err)
	}
	return enc.Close()
}
