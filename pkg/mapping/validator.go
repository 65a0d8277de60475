/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package mapping

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/NVIDIA/discovery-preflight/pkg/address"
	"github.com/NVIDIA/discovery-preflight/pkg/defaults"
	"github.com/NVIDIA/discovery-preflight/pkg/finding"
)

// Result is the outcome of validating a mapping dataset.
type Result struct {
	// Skipped is true when validation was not required.
	Skipped bool `json:"skipped" yaml:"skipped"`
	// Total is the number of input rows.
	Total int `json:"total" yaml:"total"`
	// Accepted holds the rows with zero findings, in input order.
	Accepted []Record `json:"accepted" yaml:"accepted"`
	// Findings holds every finding, in input order.
	Findings finding.List `json:"findings,omitempty" yaml:"findings,omitempty"`
}

// Valid reports whether the whole dataset passed: no findings at all.
func (r *Result) Valid() bool {
	return len(r.Findings) == 0
}

// Validator validates mapping datasets. The zero value is ready to use and
// derives BMC host names with defaults.BMCSuffix.
type Validator struct {
	bmcSuffix string
}

// Option configures a Validator.
type Option func(*Validator)

// WithBMCSuffix sets the suffix the host table appends to a node host name
// to form its BMC host name. Host names are checked for uniqueness against
// these derived names too. An empty suffix keeps the default.
func WithBMCSuffix(suffix string) Option {
	return func(v *Validator) {
		if suffix != "" {
			v.bmcSuffix = suffix
		}
	}
}

// NewValidator returns a Validator.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{bmcSuffix: defaults.BMCSuffix}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *Validator) suffix() string {
	if v.bmcSuffix == "" {
		return defaults.BMCSuffix
	}
	return v.bmcSuffix
}

// uniqueKey describes one uniqueness set.
type uniqueKey struct {
	field     string
	normalize func(Record) string
}

var uniqueKeys = []uniqueKey{
	{FieldServiceTag, func(r Record) string { return strings.ToUpper(r.ServiceTag) }},
	{FieldAdminMAC, func(r Record) string { return address.NormalizeMAC(r.AdminMAC) }},
	{FieldBMCMAC, func(r Record) string { return address.NormalizeMAC(r.BMCMAC) }},
	{FieldAdminIP, func(r Record) string { return r.AdminIP }},
	{FieldBMCIP, func(r Record) string { return r.BMCIP }},
}

// nameUse is the first row to claim a host table name.
type nameUse struct {
	row Row
	bmc bool
}

// candidate is a row that passed field and format checks.
type candidate struct {
	row    Row
	record Record
	failed bool
}

// Validate checks rows when required is true. When required is false it
// returns a skipped result without inspecting the rows.
func (v *Validator) Validate(rows []Row, required bool) *Result {
	res := &Result{Total: len(rows), Accepted: []Record{}}
	if !required {
		res.Skipped = true
		return res
	}

	candidates := make([]*candidate, 0, len(rows))
	for _, row := range rows {
		if fs := checkRequired(row); len(fs) > 0 {
			res.Findings = append(res.Findings, fs...)
			continue
		}
		rec := recordFromRow(row)
		if fs := checkFormats(row, rec); len(fs) > 0 {
			res.Findings = append(res.Findings, fs...)
			continue
		}
		candidates = append(candidates, &candidate{row: row, record: rec})
	}

	// first occurrence per field and value, identified by row
	seen := make([]map[string]Row, len(uniqueKeys))
	for i := range seen {
		seen[i] = make(map[string]Row)
	}

	// admin and BMC host names share one namespace in the host table
	names := make(map[string]nameUse)
	suffix := v.suffix()

	for _, c := range candidates {
		if f := checkNames(names, c, suffix); f != nil {
			res.Findings = append(res.Findings, *f)
			c.failed = true
		}

		for i, k := range uniqueKeys {
			val := k.normalize(c.record)
			if first, dup := seen[i][val]; dup {
				res.Findings = append(res.Findings, finding.ForField(finding.KindDuplicateKey, c.row.ID(), k.field,
					fmt.Sprintf("%s %q on line %d already used by %s on line %d",
						k.field, fieldValue(c.record, k.field), c.row.Line, first.ID(), first.Line)))
				c.failed = true
				continue
			}
			seen[i][val] = c.row
		}

		if c.record.AdminIP == c.record.BMCIP {
			res.Findings = append(res.Findings, finding.ForField(finding.KindDuplicateKey, c.row.ID(), FieldBMCIP,
				fmt.Sprintf("bmcIp %q on line %d equals adminIp of the same record", c.record.BMCIP, c.row.Line)))
			c.failed = true
		}
		if address.NormalizeMAC(c.record.AdminMAC) == address.NormalizeMAC(c.record.BMCMAC) {
			res.Findings = append(res.Findings, finding.ForField(finding.KindDuplicateKey, c.row.ID(), FieldBMCMAC,
				fmt.Sprintf("bmcMac %q on line %d equals adminMac of the same record", c.record.BMCMAC, c.row.Line)))
			c.failed = true
		}
	}

	for _, c := range candidates {
		if !c.failed {
			res.Accepted = append(res.Accepted, c.record)
		}
	}

	slog.Debug("mapping dataset validated",
		"rows", res.Total,
		"accepted", len(res.Accepted),
		"findings", len(res.Findings))

	return res
}

// checkNames claims the admin and BMC host names of c, or reports the first
// name another row already holds. A row that collides claims neither name.
func checkNames(names map[string]nameUse, c *candidate, suffix string) *finding.Finding {
	admin := c.record.Hostname
	bmc := c.record.Hostname + suffix

	for _, n := range []struct {
		name string
		bmc  bool
	}{{admin, false}, {bmc, true}} {
		first, dup := names[strings.ToLower(n.name)]
		if !dup {
			continue
		}
		var detail string
		switch {
		case !n.bmc && !first.bmc:
			detail = fmt.Sprintf("hostname %q on line %d already used by %s on line %d",
				admin, c.row.Line, first.row.ID(), first.row.Line)
		case !n.bmc:
			detail = fmt.Sprintf("hostname %q on line %d collides with the BMC host name of %s on line %d",
				admin, c.row.Line, first.row.ID(), first.row.Line)
		default:
			detail = fmt.Sprintf("BMC host name %q derived from hostname %q on line %d already used by %s on line %d",
				bmc, admin, c.row.Line, first.row.ID(), first.row.Line)
		}
		f := finding.ForField(finding.KindDuplicateKey, c.row.ID(), FieldHostname, detail)
		return &f
	}

	names[strings.ToLower(admin)] = nameUse{row: c.row}
	names[strings.ToLower(bmc)] = nameUse{row: c.row, bmc: true}
	return nil
}

func checkRequired(row Row) finding.List {
	var out finding.List
	for _, c := range requiredColumns {
		if row.Get(c.key) == "" {
			out = append(out, finding.ForField(finding.KindMissingField, row.ID(), c.field,
				fmt.Sprintf("required field %s is missing or empty on line %d", c.field, row.Line)))
		}
	}
	return out
}

func checkFormats(row Row, rec Record) finding.List {
	var out finding.List
	bad := func(field, value, want string) {
		out = append(out, finding.ForField(finding.KindInvalidAddressFormat, row.ID(), field,
			fmt.Sprintf("%s %q on line %d is not a valid %s", field, value, row.Line, want)))
	}

	if !address.IsValidHostname(rec.Hostname) {
		bad(FieldHostname, rec.Hostname, "RFC 1123 host name")
	}
	if !address.IsValidMAC(rec.AdminMAC) {
		bad(FieldAdminMAC, rec.AdminMAC, "MAC-48 address")
	}
	if !address.IsValidIPv4(rec.AdminIP) {
		bad(FieldAdminIP, rec.AdminIP, "IPv4 address")
	}
	if !address.IsValidMAC(rec.BMCMAC) {
		bad(FieldBMCMAC, rec.BMCMAC, "MAC-48 address")
	}
	if !address.IsValidIPv4(rec.BMCIP) {
		bad(FieldBMCIP, rec.BMCIP, "IPv4 address")
	}
	return out
}

func fieldValue(r Record, field string) string {
	switch field {
	case FieldServiceTag:
		return r.ServiceTag
	case FieldHostname:
		return r.Hostname
	case FieldAdminMAC:
		return r.AdminMAC
	case FieldBMCMAC:
		return r.BMCMAC
	case FieldAdminIP:
		return r.AdminIP
	case FieldBMCIP:
		return r.BMCIP
	default:
		return ""
	}
}
