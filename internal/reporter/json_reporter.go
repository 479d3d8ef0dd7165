package reporter

import (
	"encoding/json"
	"io"

	"github.com/sl4desec/subpeek/internal/common"
	"github.com/sl4desec/subpeek/internal/models"
)

// WriteJSON writes fingerprints as one indented JSON array followed by a
// newline. A nil or empty slice is written as [].
func WriteJSON(w io.Writer, fingerprints []models.Fingerprint) error {
	if fingerprints == nil {
		fingerprints = []models.Fingerprint{}
	}

	data, err := json.MarshalIndent(fingerprints, "", "  ")
	if err != nil {
		return common.WrapError(err, "failed to marshal results")
	}

	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return common.WrapError(err, "failed to write results")
	}
	return nil
}
