/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package hosts

import (
	"bufio"
	"bytes"
	"context"
	"strings"

	"github.com/NVIDIA/discovery-preflight/pkg/defaults"
)

// DefaultBMCSuffix is appended to a node host name to form its BMC host name.
const DefaultBMCSuffix = defaults.BMCSuffix

// Source identifies which address of a record an entry binds.
type Source string

const (
	SourceAdmin Source = "admin"
	SourceBMC   Source = "bmc"
)

// Entry is one host name to address binding.
type Entry struct {
	Hostname  string `json:"hostname" yaml:"hostname"`
	IPAddress string `json:"ipAddress" yaml:"ipAddress"`
	Source    Source `json:"source" yaml:"source"`
}

// Store persists the resolution table.
type Store interface {
	// Read returns the table lines in order. A table that does not exist yet
	// is returned as empty.
	Read(ctx context.Context) ([]Line, error)
	// Write atomically replaces the whole table.
	Write(ctx context.Context, lines []Line) error
}

// Line is one line of the resolution table.
type Line struct {
	IPAddress string
	Hostnames []string
	Comment   string

	// raw is the source text, kept so untouched lines render verbatim.
	raw string
}

// NewLine returns an entry line binding hostname to ip.
func NewLine(ip string, hostnames ...string) Line {
	return Line{IPAddress: ip, Hostnames: hostnames}
}

// ParseLine parses one line of /etc/hosts syntax.
func ParseLine(raw string) Line {
	l := Line{raw: raw}
	body := raw
	if i := strings.IndexByte(body, '#'); i >= 0 {
		l.Comment = strings.TrimSpace(body[i+1:])
		body = body[:i]
	}
	fields := strings.Fields(body)
	if len(fields) >= 2 {
		l.IPAddress = fields[0]
		l.Hostnames = fields[1:]
	}
	return l
}

// IsEntry reports whether the line binds a name.
func (l Line) IsEntry() bool {
	return l.IPAddress != "" && len(l.Hostnames) > 0
}

// Hostname returns the name the line binds, or "" for non-entry lines.
func (l Line) Hostname() string {
	if !l.IsEntry() {
		return ""
	}
	return l.Hostnames[0]
}

// String renders the line. Parsed lines render as they were read.
func (l Line) String() string {
	if l.raw != "" || !l.IsEntry() {
		return l.raw
	}
	s := l.IPAddress + "\t" + strings.Join(l.Hostnames, " ")
	if l.Comment != "" {
		s += " # " + l.Comment
	}
	return s
}

// Parse splits table content into lines.
func Parse(data []byte) []Line {
	var lines []Line
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, ParseLine(strings.TrimRight(sc.Text(), "\r")))
	}
	return lines
}

// Render joins lines into table content with a trailing newline.
func Render(lines []Line) []byte {
	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l.String())
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func cloneLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	for i, l := range lines {
		l.Hostnames = append([]string(nil), l.Hostnames...)
		out[i] = l
	}
	return out
}
