// Package metadata holds the Dublin Core container parsed from OAI
// responses and the flat record schema it normalizes into.
package metadata

import "strings"

// MultiValueSeparator joins repeated Dublin Core elements in flat fields.
const MultiValueSeparator = " | "

// DublinCore is the oai_dc metadata container of one record. Every
// element may repeat, so all fields are slices; normalization decides
// which take the first occurrence and which are joined.
type DublinCore struct {
	Titles       []string `xml:"title"`
	Creators     []string `xml:"creator"`
	Subjects     []string `xml:"subject"`
	Descriptions []string `xml:"description"`
	Publishers   []string `xml:"publisher"`
	Dates        []string `xml:"date"`
	Types        []string `xml:"type"`
	Sources      []string `xml:"source"`
	Languages    []string `xml:"language"`
	Relations    []string `xml:"relation"`
	Coverages    []string `xml:"coverage"`
}

// firstText returns the first occurrence, trimmed, or "".
func firstText(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}

// allText joins all non-empty occurrences, each trimmed.
func allText(values []string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, MultiValueSeparator)
}

// Normalize flattens the container into a Record. The identifier is the
// raw OAI identifier; the source URL is derived from it via rules.
func (dc *DublinCore) Normalize(identifier string, rules []URLRule) Record {
	return Record{
		Identifier:  identifier,
		URL:         DeriveURL(identifier, rules),
		Title:       firstText(dc.Titles),
		Author:      allText(dc.Creators),
		Date:        firstText(dc.Dates),
		Description: firstText(dc.Descriptions),
		Subject:     allText(dc.Subjects),
		Type:        firstText(dc.Types),
		Source:      firstText(dc.Sources),
		Language:    firstText(dc.Languages),
		Relation:    allText(dc.Relations),
		Coverage:    allText(dc.Coverages),
		Publisher:   firstText(dc.Publishers),
	}
}
