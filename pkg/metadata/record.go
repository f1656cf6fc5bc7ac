package metadata

import "strings"

// Record is the flat, export-ready view of one harvested document. The
// JSON keys are the wire schema the downstream Airtable import expects,
// so they stay in French.
type Record struct {
	URL         string `json:"url_persee"`
	Title       string `json:"titre"`
	Author      string `json:"auteur"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Subject     string `json:"sujet"`
	Type        string `json:"type"`
	Source      string `json:"source"`
	Language    string `json:"langue"`
	Relation    string `json:"relation"`
	Coverage    string `json:"couverture"`
	Publisher   string `json:"editeur"`
	SetName     string `json:"set_name"`
	Identifier  string `json:"identifier_oai"`
}

// Columns is the fixed CSV column order.
var Columns = []string{
	"url_persee", "titre", "auteur", "date", "description",
	"sujet", "type", "source", "langue", "relation",
	"couverture", "editeur", "set_name", "identifier_oai",
}

// Row returns the record's values in Columns order. Columns without a
// matching field come out empty rather than erroring.
func (r Record) Row(columns []string) []string {
	row := make([]string, len(columns))
	for i, col := range columns {
		switch col {
		case "url_persee":
			row[i] = r.URL
		case "titre":
			row[i] = r.Title
		case "auteur":
			row[i] = r.Author
		case "date":
			row[i] = r.Date
		case "description":
			row[i] = r.Description
		case "sujet":
			row[i] = r.Subject
		case "type":
			row[i] = r.Type
		case "source":
			row[i] = r.Source
		case "langue":
			row[i] = r.Language
		case "relation":
			row[i] = r.Relation
		case "couverture":
			row[i] = r.Coverage
		case "editeur":
			row[i] = r.Publisher
		case "set_name":
			row[i] = r.SetName
		case "identifier_oai":
			row[i] = r.Identifier
		}
	}
	return row
}

// URLRule maps an identifier naming convention to a human-facing URL
// prefix. The marker is searched as a substring; everything after it
// becomes the URL tail.
type URLRule struct {
	Marker string `mapstructure:"marker"`
	Prefix string `mapstructure:"prefix"`
}

// DefaultURLRules covers the two identifier patterns Persée uses.
func DefaultURLRules() []URLRule {
	return []URLRule{
		{Marker: "persee:article/", Prefix: "https://www.persee.fr/doc/"},
		{Marker: "persee:issue/", Prefix: "https://www.persee.fr/issue/"},
	}
}

// DeriveURL resolves an identifier against the first matching rule.
// Identifiers matching no rule yield "" — the heuristic is lossy and
// tied to the repository's naming convention.
func DeriveURL(identifier string, rules []URLRule) string {
	for _, rule := range rules {
		if idx := strings.Index(identifier, rule.Marker); idx >= 0 {
			return rule.Prefix + identifier[idx+len(rule.Marker):]
		}
	}
	return ""
}
