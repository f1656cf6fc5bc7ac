package harvester

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/b33n-tech/scrapper-persee/internal/oai"
	"github.com/b33n-tech/scrapper-persee/pkg/config"
	"github.com/b33n-tech/scrapper-persee/pkg/metadata"
)

func TestDedupeFirstOccurrenceWins(t *testing.T) {
	ids := []SetIdentifier{
		{Identifier: "A", SetID: "s1", SetName: "S1"},
		{Identifier: "B", SetID: "s1", SetName: "S1"},
		{Identifier: "A", SetID: "s2", SetName: "S2"},
		{Identifier: "C", SetID: "s1", SetName: "S1"},
		{Identifier: "B", SetID: "s3", SetName: "S3"},
	}

	unique := Dedupe(ids)

	want := []SetIdentifier{
		{Identifier: "A", SetID: "s1", SetName: "S1"},
		{Identifier: "B", SetID: "s1", SetName: "S1"},
		{Identifier: "C", SetID: "s1", SetName: "S1"},
	}
	if len(unique) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(unique))
	}
	for i := range want {
		if unique[i] != want[i] {
			t.Errorf("entry %d: got %+v, want %+v", i, unique[i], want[i])
		}
	}
}

func TestDedupeEmpty(t *testing.T) {
	if got := Dedupe(nil); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestRestrictSets(t *testing.T) {
	sets := []oai.Set{
		{Spec: "a", Name: "A"},
		{Spec: "b", Name: "B"},
		{Spec: "c", Name: "C"},
	}

	kept := restrictSets(sets, []string{"c", "a"})
	if len(kept) != 2 || kept[0].Spec != "a" || kept[1].Spec != "c" {
		t.Errorf("expected discovery order [a c], got %+v", kept)
	}

	if got := restrictSets(sets, nil); len(got) != 3 {
		t.Errorf("empty selection should keep everything, got %+v", got)
	}
}

func testConfig(endpoint string) *config.Config {
	return &config.Config{
		Endpoint:       endpoint,
		MetadataPrefix: "oai_dc",
		Delay:          0,
		DiscoveryDelay: 0,
		Timeout:        5 * time.Second,
		OutputDir:      ".",
		LogLevel:       "error",
		URLRules:       metadata.DefaultURLRules(),
	}
}

// mockRepo serves a two-set repository where set "bad" always errors
// and identifier "oai:persee:article/shared_1" belongs to both sets.
func mockRepo(t *testing.T) *httptest.Server {
	t.Helper()
	const envelope = `<?xml version="1.0" encoding="UTF-8"?>
<OAI-PMH xmlns="http://www.openarchives.org/OAI/2.0/">`

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch q.Get("verb") {
		case "ListSets":
			fmt.Fprintf(w, `%s<ListSets>
<set><setSpec>good</setSpec><setName>EPHE good</setName></set>
<set><setSpec>bad</setSpec><setName>EPHE bad</setName></set>
<set><setSpec>twin</setSpec><setName>EPHE twin</setName></set>
</ListSets></OAI-PMH>`, envelope)
		case "ListIdentifiers":
			switch q.Get("set") {
			case "good":
				fmt.Fprintf(w, `%s<ListIdentifiers>
<header><identifier>oai:persee:article/shared_1</identifier></header>
<header><identifier>oai:persee:article/only_good</identifier></header>
</ListIdentifiers></OAI-PMH>`, envelope)
			case "bad":
				http.Error(w, "boom", http.StatusInternalServerError)
			case "twin":
				fmt.Fprintf(w, `%s<ListIdentifiers>
<header><identifier>oai:persee:article/shared_1</identifier></header>
<header><identifier>oai:persee:issue/twin_2</identifier></header>
</ListIdentifiers></OAI-PMH>`, envelope)
			}
		case "GetRecord":
			id := q.Get("identifier")
			if strings.Contains(id, "only_good") {
				// No metadata container: silently skipped.
				fmt.Fprintf(w, `%s<GetRecord><record>
<header><identifier>%s</identifier></header>
</record></GetRecord></OAI-PMH>`, envelope, id)
				return
			}
			fmt.Fprintf(w, `%s<GetRecord><record>
<header><identifier>%s</identifier></header>
<metadata><oai_dc:dc xmlns:oai_dc="http://www.openarchives.org/OAI/2.0/oai_dc/"
 xmlns:dc="http://purl.org/dc/elements/1.1/">
<dc:title>Titre de %s</dc:title>
<dc:creator>Auteur</dc:creator>
</oai_dc:dc></metadata></record></GetRecord></OAI-PMH>`, envelope, id, id)
		}
	}))
}

func TestRunPipeline(t *testing.T) {
	srv := mockRepo(t)
	defer srv.Close()

	svc := NewService(testConfig(srv.URL))
	session, err := svc.Run(context.Background(), "ephe", nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(session.Sets) != 3 {
		t.Fatalf("expected 3 sets, got %d", len(session.Sets))
	}

	// The erroring set contributes nothing; shared_1 is deduplicated
	// and keeps the attribution of its first set.
	if len(session.Identifiers) != 3 {
		t.Fatalf("expected 3 unique identifiers, got %d: %+v", len(session.Identifiers), session.Identifiers)
	}
	if session.Identifiers[0].Identifier != "oai:persee:article/shared_1" || session.Identifiers[0].SetName != "EPHE good" {
		t.Errorf("first identifier: got %+v", session.Identifiers[0])
	}

	// only_good has no metadata container: skipped, not an error.
	if len(session.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(session.Records))
	}
	if session.Skipped != 1 {
		t.Errorf("expected 1 skipped identifier, got %d", session.Skipped)
	}
	if len(session.Errors) != 0 {
		t.Errorf("expected no fetch errors, got %+v", session.Errors)
	}

	rec := session.Records[0]
	if rec.SetName != "EPHE good" {
		t.Errorf("record set name: got %q", rec.SetName)
	}
	if rec.URL != "https://www.persee.fr/doc/shared_1" {
		t.Errorf("record URL: got %q", rec.URL)
	}
}

func TestRunWithSetRestriction(t *testing.T) {
	srv := mockRepo(t)
	defer srv.Close()

	svc := NewService(testConfig(srv.URL))
	session, err := svc.Run(context.Background(), "ephe", []string{"twin"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(session.Sets) != 1 || session.Sets[0].Spec != "twin" {
		t.Fatalf("expected only set twin, got %+v", session.Sets)
	}
	if len(session.Records) != 2 {
		t.Errorf("expected 2 records, got %d", len(session.Records))
	}
	if session.Records[1].URL != "https://www.persee.fr/issue/twin_2" {
		t.Errorf("issue URL: got %q", session.Records[1].URL)
	}
}

func TestFetchRecordsCap(t *testing.T) {
	srv := mockRepo(t)
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRecords = 1
	svc := NewService(cfg)

	session, err := svc.Run(context.Background(), "ephe", []string{"twin"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(session.Records) != 1 {
		t.Errorf("expected the cap to hold at 1 record, got %d", len(session.Records))
	}
}

func TestFetchRecordsErrorContinues(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		id := r.URL.Query().Get("identifier")
		if id == "oai:persee:article/broken" {
			http.Error(w, "boom", http.StatusBadGateway)
			return
		}
		fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<OAI-PMH xmlns="http://www.openarchives.org/OAI/2.0/"><GetRecord><record>
<header><identifier>%s</identifier></header>
<metadata><oai_dc:dc xmlns:oai_dc="http://www.openarchives.org/OAI/2.0/oai_dc/"
 xmlns:dc="http://purl.org/dc/elements/1.1/"><dc:title>ok</dc:title></oai_dc:dc>
</metadata></record></GetRecord></OAI-PMH>`, id)
	}))
	defer srv.Close()

	svc := NewService(testConfig(srv.URL))
	ids := []SetIdentifier{
		{Identifier: "oai:persee:article/broken", SetName: "S"},
		{Identifier: "oai:persee:article/fine", SetName: "S"},
	}

	records, fetchErrs, skipped := svc.FetchRecords(context.Background(), ids, 0)

	if calls != 2 {
		t.Errorf("expected both identifiers attempted, got %d calls", calls)
	}
	if len(records) != 1 || records[0].Identifier != "oai:persee:article/fine" {
		t.Errorf("records: got %+v", records)
	}
	if len(fetchErrs) != 1 || fetchErrs[0].Identifier != "oai:persee:article/broken" {
		t.Errorf("fetch errors: got %+v", fetchErrs)
	}
	if skipped != 0 {
		t.Errorf("skipped: got %d", skipped)
	}
}
