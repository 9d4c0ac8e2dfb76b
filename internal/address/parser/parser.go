// Package parser splits a sanitized address into street/city/state/zip
// components on a best-effort basis. The split only enriches the provider
// query; a wrong or failed guess falls back to sending the whole string as
// the street line and never fails the request.
package parser

import (
	"regexp"
	"strings"
)

var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// Components is the best-effort structured form of an address.
type Components struct {
	Street string
	City   string
	State  string
	Zip    string
}

// Parse tokenizes an address. Trailing zip and two-letter state tokens are
// peeled off the end; a comma, when present, separates street from city.
func Parse(address string) Components {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return Components{Street: address}
	}

	fields := strings.Fields(strings.ReplaceAll(trimmed, ",", " , "))

	var comps Components

	if n := len(fields); n > 1 && zipPattern.MatchString(fields[n-1]) {
		comps.Zip = fields[n-1]
		fields = trimTrailingComma(fields[:n-1])
	}

	// A trailing two-letter token is only read as a state when written in
	// uppercase or set off by a comma; otherwise "130 Jackson St" would lose
	// its street type to the state slot.
	if n := len(fields); n > 1 && isStateToken(fields[n-1]) &&
		(fields[n-1] == strings.ToUpper(fields[n-1]) || fields[n-2] == ",") {
		comps.State = strings.ToUpper(fields[n-1])
		fields = trimTrailingComma(fields[:n-1])
	}

	street, city := splitStreetCity(fields)
	comps.Street = street
	comps.City = city

	if comps.Street == "" {
		// Nothing recognizable; hand the provider the raw text.
		return Components{Street: trimmed}
	}
	return comps
}

// splitStreetCity separates the remaining tokens at the last comma. Without a
// comma everything is treated as the street line.
func splitStreetCity(fields []string) (string, string) {
	last := -1
	for i, f := range fields {
		if f == "," {
			last = i
		}
	}
	if last < 0 {
		return strings.Join(fields, " "), ""
	}

	street := strings.Join(dropCommas(fields[:last]), " ")
	city := strings.Join(dropCommas(fields[last+1:]), " ")
	return street, city
}

func isStateToken(s string) bool {
	if len(s) != 2 {
		return false
	}
	for i := 0; i < 2; i++ {
		c := s[i]
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
			return false
		}
	}
	return true
}

func trimTrailingComma(fields []string) []string {
	if n := len(fields); n > 0 && fields[n-1] == "," {
		return fields[:n-1]
	}
	return fields
}

func dropCommas(fields []string) []string {
	out := fields[:0:0]
	for _, f := range fields {
		if f != "," {
			out = append(out, f)
		}
	}
	return out
}
