/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package mapping

import (
	"fmt"
	"strings"
)

// Column keys used in Row.Fields.
const (
	ColFunctionalGroup = "functional_group_name"
	ColServiceTag      = "service_tag"
	ColHostname        = "hostname"
	ColAdminMAC        = "admin_mac"
	ColAdminIP         = "admin_ip"
	ColBMCMAC          = "bmc_mac"
	ColBMCIP           = "bmc_ip"
)

// Record field names as reported in findings.
const (
	FieldFunctionalGroup = "functionalGroup"
	FieldServiceTag      = "serviceTag"
	FieldHostname        = "hostname"
	FieldAdminMAC        = "adminMac"
	FieldAdminIP         = "adminIp"
	FieldBMCMAC          = "bmcMac"
	FieldBMCIP           = "bmcIp"
)

type column struct {
	key   string
	field string
}

// requiredColumns lists every required column in report order.
var requiredColumns = []column{
	{ColFunctionalGroup, FieldFunctionalGroup},
	{ColServiceTag, FieldServiceTag},
	{ColHostname, FieldHostname},
	{ColAdminMAC, FieldAdminMAC},
	{ColAdminIP, FieldAdminIP},
	{ColBMCMAC, FieldBMCMAC},
	{ColBMCIP, FieldBMCIP},
}

// RequiredColumns returns the column keys every row must carry.
func RequiredColumns() []string {
	out := make([]string, len(requiredColumns))
	for i, c := range requiredColumns {
		out[i] = c.key
	}
	return out
}

// Row is one raw input row.
type Row struct {
	// Line is the 1-based source line, or the 1-based position when the row
	// did not come from a file.
	Line   int
	Fields map[string]string
}

// Get returns the trimmed value of a column.
func (r Row) Get(key string) string {
	return strings.TrimSpace(r.Fields[key])
}

// ID returns the row's identifier for findings: the service tag when known,
// otherwise "row N".
func (r Row) ID() string {
	if tag := r.Get(ColServiceTag); tag != "" {
		return tag
	}
	return fmt.Sprintf("row %d", r.Line)
}

// Record is a validated node mapping. Records are never modified after
// construction.
type Record struct {
	FunctionalGroup string `json:"functionalGroup" yaml:"functionalGroup"`
	ServiceTag      string `json:"serviceTag" yaml:"serviceTag"`
	Hostname        string `json:"hostname" yaml:"hostname"`
	AdminMAC        string `json:"adminMac" yaml:"adminMac"`
	AdminIP         string `json:"adminIp" yaml:"adminIp"`
	BMCMAC          string `json:"bmcMac" yaml:"bmcMac"`
	BMCIP           string `json:"bmcIp" yaml:"bmcIp"`
}

func recordFromRow(r Row) Record {
	return Record{
		FunctionalGroup: r.Get(ColFunctionalGroup),
		ServiceTag:      r.Get(ColServiceTag),
		Hostname:        r.Get(ColHostname),
		AdminMAC:        r.Get(ColAdminMAC),
		AdminIP:         r.Get(ColAdminIP),
		BMCMAC:          r.Get(ColBMCMAC),
		BMCIP:           r.Get(ColBMCIP),
	}
}

// NewRows builds rows from plain maps, numbering them from 1.
func NewRows(maps ...map[string]string) []Row {
	rows := make([]Row, len(maps))
	for i, m := range maps {
		rows[i] = Row{Line: i + 1, Fields: m}
	}
	return rows
}
