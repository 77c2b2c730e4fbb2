package compose

import "strings"

// AutopsyInput is the view of an autopsy record projected into an
// Obduktionsbericht.
type AutopsyInput struct {
	ID               string
	DeceasedName     string
	DateOfDeath      string
	CauseOfDeath     string
	ExternalInjuries string
	InternalFindings string
	Toxicology       string
	ExaminerNotes    string
	GeneratedSummary string // best-effort AI text, may be empty
}

// summaryPlaceholder closes the report when neither the AI summary nor the
// examiner produced text yet.
const summaryPlaceholder = "Zusammenfassung folgt nach Abschluss aller Untersuchungen."

// Autopsy composes the printable forensic report. The summary section
// falls through AI summary → examiner notes → fixed placeholder.
func (c *Composer) Autopsy(in AutopsyInput) (*Document, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, ErrIncomplete
	}

	summary := orElse(in.GeneratedSummary, orElse(in.ExaminerNotes, summaryPlaceholder))

	return &Document{
		Kind:     KindAutopsy,
		TargetID: TargetAutopsy,
		Header: Header{
			Title:    "Obduktionsbericht",
			Subtitle: "Institut für Rechtsmedizin",
			Ref:      in.ID,
			Date:     dateDE(c.cfg.Now()),
		},
		Sections: []Section{
			{
				Kind: SectionIdentity,
				Fields: []Field{
					{Label: "Verstorbene(r)", Value: in.DeceasedName},
					{Label: "Todeszeitpunkt", Value: strings.Replace(in.DateOfDeath, "T", " ", 1) + " Uhr"},
					{Label: "Todesursache", Value: in.CauseOfDeath},
				},
			},
			{
				Kind:  SectionText,
				Title: "1. Äußere Leichenschau",
				Text:  orElse(in.ExternalInjuries, "Keine besonderen Auffälligkeiten."),
			},
			{
				Kind:  SectionText,
				Title: "2. Innere Leichenschau",
				Text:  orElse(in.InternalFindings, "Ausstehend."),
			},
			{
				Kind:  SectionText,
				Title: "3. Toxikologie",
				Text:  orElse(in.Toxicology, "Proben im Labor."),
			},
			{
				Kind:  SectionText,
				Title: "4. Zusammenfassung & Beurteilung",
				Text:  summary,
			},
			{
				Kind:       SectionSignatures,
				Signatures: []string{"Unterschrift Rechtsmediziner", "Amtliches Siegel Stadt Polizei"},
			},
		},
	}, nil
}
