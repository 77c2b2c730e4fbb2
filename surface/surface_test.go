package surface

import (
	"strings"
	"testing"

	"github.com/Jan2821/Jan-OS/compose"
)

func doc(target, title string) *compose.Document {
	return &compose.Document{
		Kind:     compose.KindCaseFile,
		TargetID: target,
		Header:   compose.Header{Title: title, Date: "14.03.2026"},
		Sections: []compose.Section{
			{Kind: compose.SectionText, Title: "Sachverhalt", Text: "Testtext"},
		},
	}
}

func TestRegistry_MountReplaces(t *testing.T) {
	r := NewRegistry(Config{})

	r.Mount(doc("pdf-case-file", "Erster"))
	r.Mount(doc("pdf-case-file", "Zweiter"))

	got, ok := r.Lookup("pdf-case-file")
	if !ok {
		t.Fatal("lookup failed after mount")
	}
	if got.Header.Title != "Zweiter" {
		t.Errorf("replacement incomplete: %q", got.Header.Title)
	}
	if ids := r.IDs(); len(ids) != 1 {
		t.Errorf("ids = %v", ids)
	}
}

func TestRegistry_LookupIsSideEffectFree(t *testing.T) {
	r := NewRegistry(Config{})
	r.Mount(doc("pdf-autopsy", "Bericht"))

	for i := 0; i < 3; i++ {
		if _, ok := r.Lookup("pdf-autopsy"); !ok {
			t.Fatalf("lookup %d consumed the mount", i)
		}
	}
	if _, ok := r.Lookup("pdf-traffic"); ok {
		t.Error("lookup invented a mount")
	}
}

func TestRegistry_Unmount(t *testing.T) {
	r := NewRegistry(Config{})
	r.Mount(doc("pdf-fax-log", "Protokoll"))
	r.Unmount("pdf-fax-log")
	if _, ok := r.Lookup("pdf-fax-log"); ok {
		t.Error("document still mounted after unmount")
	}
	// Unmounting a missing id is a no-op.
	r.Unmount("pdf-fax-log")
}

func TestRegistry_MountNilIgnored(t *testing.T) {
	r := NewRegistry(Config{})
	r.Mount(nil)
	r.Mount(&compose.Document{})
	if ids := r.IDs(); len(ids) != 0 {
		t.Errorf("ids = %v", ids)
	}
}

func TestHTML_RendersDocument(t *testing.T) {
	r := NewRegistry(Config{})
	r.Mount(doc("pdf-case-file", "Polizeibericht"))

	html, ok := r.HTML("pdf-case-file")
	if !ok {
		t.Fatal("no html for mounted target")
	}
	for _, want := range []string{"Polizeibericht", "Sachverhalt", "Testtext", "210mm"} {
		if !strings.Contains(html, want) {
			t.Errorf("html missing %q", want)
		}
	}
	if _, ok := r.HTML("pdf-traffic"); ok {
		t.Error("html produced for unmounted target")
	}
}

func TestHTML_SanitizesFreeText(t *testing.T) {
	r := NewRegistry(Config{})
	d := doc("pdf-case-file", "Bericht")
	d.Sections[0].Text = `Einbruch <script>alert("x")</script> gemeldet`
	r.Mount(d)

	html, ok := r.HTML("pdf-case-file")
	if !ok {
		t.Fatal("no html")
	}
	if strings.Contains(html, "<script>") {
		t.Error("script tag survived sanitization")
	}
	if !strings.Contains(html, "Einbruch") {
		t.Error("legitimate text was stripped")
	}
}

func TestHTML_EmptyTableState(t *testing.T) {
	r := NewRegistry(Config{})
	r.Mount(&compose.Document{
		Kind:     compose.KindFaxLog,
		TargetID: "pdf-fax-log",
		Header:   compose.Header{Title: "SENDEPROTOKOLL / FAX", Date: "14.03.2026"},
		Sections: []compose.Section{{
			Kind: compose.SectionTable,
			Table: &compose.Table{
				Columns:   []string{"ZEIT", "EMPFÄNGER", "STATUS", "INHALT (AUSZUG)"},
				EmptyText: "Keine Einträge.",
			},
		}},
	})
	html, _ := r.HTML("pdf-fax-log")
	if !strings.Contains(html, "Keine Einträge.") {
		t.Error("empty-state row missing")
	}
}
