/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package mapping

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	apperrors "github.com/NVIDIA/discovery-preflight/pkg/errors"
	"github.com/NVIDIA/discovery-preflight/pkg/finding"
)

// Encoding names reported by ParseCSV.
const (
	EncodingUTF8    = "utf-8"
	EncodingUTF8BOM = "utf-8-bom"
	EncodingUTF16   = "utf-16"
	EncodingLatin1  = "latin-1"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// ErrNoRows is returned when a mapping file has a header but no data rows.
var ErrNoRows = errors.New("mapping file contains no data rows")

// Parsed is the result of reading a mapping CSV.
type Parsed struct {
	Rows     []Row
	Header   []string
	Encoding string
	// Warnings are non-fatal findings about the file shape, such as rows
	// with missing or extra cells.
	Warnings finding.List
}

// ParseFile reads and parses the mapping CSV at path.
func ParseFile(path string) (*Parsed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeNotFound, "mapping file not found", err)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to read mapping file", err)
	}
	return ParseCSV(path, data)
}

// ParseCSV parses mapping CSV content. source names the input in warnings.
func ParseCSV(source string, data []byte) (*Parsed, error) {
	text, enc, err := decode(data)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, "failed to decode mapping file", err)
	}

	r := csv.NewReader(bytes.NewReader(text))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "mapping file is empty")
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, "failed to read mapping header", err)
	}

	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = NormalizeHeader(h)
	}

	out := &Parsed{Header: keys, Encoding: enc}

	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, "failed to read mapping row", err)
		}
		line, _ := r.FieldPos(0)

		if isBlank(record) {
			continue
		}

		switch {
		case len(record) < len(keys):
			out.Warnings = append(out.Warnings, finding.Warning(finding.KindMalformedArtifact, source,
				fmt.Sprintf("line %d has %d cells, expected %d; missing cells treated as empty", line, len(record), len(keys))))
		case len(record) > len(keys):
			out.Warnings = append(out.Warnings, finding.Warning(finding.KindMalformedArtifact, source,
				fmt.Sprintf("line %d has %d cells, expected %d; extra cells ignored", line, len(record), len(keys))))
		}

		fields := make(map[string]string, len(keys))
		for i, k := range keys {
			if k == "" {
				continue
			}
			if i < len(record) {
				fields[k] = record[i]
			} else {
				fields[k] = ""
			}
		}
		out.Rows = append(out.Rows, Row{Line: line, Fields: fields})
	}

	if len(out.Rows) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, "mapping file has no data", ErrNoRows)
	}

	slog.Debug("mapping file parsed",
		"source", source,
		"encoding", enc,
		"rows", len(out.Rows),
		"warnings", len(out.Warnings))

	return out, nil
}

// headerAliases maps alternate spellings, already normalized, to their
// column key.
var headerAliases = map[string]string{
	"functional_group":  ColFunctionalGroup,
	"group_name":        ColFunctionalGroup,
	"group":             ColFunctionalGroup,
	"servicetag":        ColServiceTag,
	"svc_tag":           ColServiceTag,
	"host_name":         ColHostname,
	"admin_mac_address": ColAdminMAC,
	"admin_ip_address":  ColAdminIP,
	"bmc_mac_address":   ColBMCMAC,
	"bmc_ip_address":    ColBMCIP,
}

// NormalizeHeader maps a header cell to its column key: trimmed, lower case,
// with spaces and hyphens replaced by underscores, then resolved through
// the known aliases.
func NormalizeHeader(h string) string {
	h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	h = strings.ToLower(h)
	h = strings.NewReplacer(" ", "_", "-", "_").Replace(h)
	if col, ok := headerAliases[h]; ok {
		return col
	}
	return h
}

func decode(data []byte) ([]byte, string, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return data[len(bomUTF8):], EncodingUTF8BOM, nil
	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
		return out, EncodingUTF16, err
	case utf8.Valid(data):
		return data, EncodingUTF8, nil
	default:
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		return out, EncodingLatin1, err
	}
}

func isBlank(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
