package artifacts

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
	"go.trai.ch/ledger/internal/core/domain"
	"go.trai.ch/zerr"
)

// reportSchema describes the persisted report. File entries are plain paths; the legacy
// {"path": "..."} object form is still accepted.
const reportSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": {
    "type": "array",
    "items": {
      "type": "object",
      "required": ["files", "builtBy"],
      "properties": {
        "files": {
          "type": "array",
          "items": {
            "oneOf": [
              {"type": "string"},
              {
                "type": "object",
                "required": ["path"],
                "properties": {"path": {"type": "string"}}
              }
            ]
          }
        },
        "builtBy": {"type": "array", "items": {"type": "string"}}
      }
    }
  }
}`

var reportSchemaLoader = gojsonschema.NewStringLoader(reportSchema)

// CreateReport snapshots the history of every artifact type of the holder. Files and
// producers are resolved at call time.
func (h *Holder) CreateReport() domain.Report {
	h.mu.RLock()
	histories := make(map[domain.ArtifactType][]*domain.FileCollection, len(h.records))
	for _, rec := range h.records {
		histories[rec.artifact] = append([]*domain.FileCollection(nil), rec.history...)
	}
	h.mu.RUnlock()

	report := make(domain.Report, len(histories))
	for t, history := range histories {
		entries := make([]domain.ArtifactData, 0, len(history))
		for _, entry := range history {
			entries = append(entries, newArtifactData(entry))
		}
		report[t] = entries
	}
	return report
}

func newArtifactData(set domain.FileSet) domain.ArtifactData {
	deps := set.BuildDependencies()
	builtBy := make([]string, 0, len(deps))
	for _, d := range deps {
		builtBy = append(builtBy, d.String())
	}
	files := set.Files()
	if files == nil {
		files = []string{}
	}
	return domain.ArtifactData{Files: files, BuiltBy: builtBy}
}

// MarshalReport serializes a report keyed by artifact type name. Paths that are not valid
// UTF-8 cannot be represented in JSON and are rejected with ErrMalformedReport.
func MarshalReport(report domain.Report) ([]byte, error) {
	doc := make(map[string][]domain.ArtifactData, len(report))
	for t, history := range report {
		entries := make([]domain.ArtifactData, 0, len(history))
		for _, e := range history {
			if err := checkEncodable(t, e); err != nil {
				return nil, err
			}
			entries = append(entries, domain.ArtifactData{
				Files:   nonNil(e.Files),
				BuiltBy: nonNil(e.BuiltBy),
			})
		}
		doc[t.Name] = entries
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to marshal artifacts report")
	}
	return data, nil
}

// WriteReport writes the serialized report to w.
func WriteReport(w io.Writer, report domain.Report) error {
	data, err := MarshalReport(report)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return zerr.Wrap(err, "failed to write artifacts report")
	}
	return nil
}

// ParseReport reads a serialized report. Keys resolve through catalog.
func ParseReport(data []byte, catalog *domain.Catalog) (domain.Report, error) {
	if !gjson.ValidBytes(data) {
		return nil, zerr.Wrap(domain.ErrMalformedReport, "report is not valid JSON")
	}
	if err := validateReport(data); err != nil {
		return nil, err
	}

	report := make(domain.Report)
	var parseErr error
	gjson.ParseBytes(data).ForEach(func(key, value gjson.Result) bool {
		t, err := catalog.Lookup(key.String())
		if err != nil {
			parseErr = err
			return false
		}
		history := make([]domain.ArtifactData, 0, len(value.Array()))
		for _, entry := range value.Array() {
			history = append(history, parseArtifactData(entry))
		}
		report[t] = history
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return report, nil
}

// ReadReport reads and parses a serialized report from r.
func ReadReport(r io.Reader, catalog *domain.Catalog) (domain.Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read artifacts report")
	}
	return ParseReport(data, catalog)
}

func parseArtifactData(entry gjson.Result) domain.ArtifactData {
	files := make([]string, 0)
	for _, f := range entry.Get("files").Array() {
		if f.IsObject() {
			files = append(files, f.Get("path").String())
			continue
		}
		files = append(files, f.String())
	}
	builtBy := make([]string, 0)
	for _, b := range entry.Get("builtBy").Array() {
		builtBy = append(builtBy, b.String())
	}
	return domain.ArtifactData{Files: files, BuiltBy: builtBy}
}

func validateReport(data []byte) error {
	result, err := gojsonschema.Validate(reportSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return zerr.Wrap(domain.ErrMalformedReport, err.Error())
	}
	if result.Valid() {
		return nil
	}
	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return zerr.With(zerr.Wrap(domain.ErrMalformedReport, "report does not match schema"), "problems", strings.Join(problems, "; "))
}

func checkEncodable(t domain.ArtifactType, e domain.ArtifactData) error {
	for _, values := range [][]string{e.Files, e.BuiltBy} {
		for _, v := range values {
			if !utf8.ValidString(v) {
				err := zerr.With(zerr.Wrap(domain.ErrMalformedReport, "path is not valid UTF-8"), "artifact", t.Name)
				return zerr.With(err, "path", strconv.Quote(v))
			}
		}
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
