package compose

import "strings"

// CaseFileInput is the view of a police case projected into a Polizeibericht.
type CaseFileInput struct {
	ID          string
	Title       string
	Description string
	Officer     string
	DateCreated string
	Status      string
	Suspects    []string
	Evidence    []string
}

// CaseFile composes the printable case record. A case must be selected:
// without an id there is nothing to file.
func (c *Composer) CaseFile(in CaseFileInput) (*Document, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, ErrIncomplete
	}

	return &Document{
		Kind:     KindCaseFile,
		TargetID: TargetCaseFile,
		Header: Header{
			Title:    "Polizeibericht",
			Subtitle: "Dienststelle 01 • Musterstadt",
			Date:     dateDE(c.cfg.Now()),
		},
		Sections: []Section{
			{
				Kind: SectionIdentity,
				Fields: []Field{
					{Label: "Aktenzeichen", Value: in.ID},
					{Label: "Datum", Value: in.DateCreated},
					{Label: "Sachbearbeiter", Value: in.Officer},
					{Label: "Status", Value: in.Status},
				},
			},
			{
				Kind:  SectionText,
				Title: "Sachverhalt",
				Text:  in.Description,
			},
			{
				Kind:  SectionText,
				Title: "Beteiligte / Verdächtige",
				Text:  orElse(strings.Join(in.Suspects, ", "), "Keine Angaben"),
			},
			{
				Kind:  SectionText,
				Title: "Beweismittel",
				Text:  orElse(strings.Join(in.Evidence, ", "), "Keine Beweismittel gelistet"),
			},
			{
				Kind:       SectionSignatures,
				Signatures: []string{"Unterschrift Beamter", "Dienstsiegel"},
			},
		},
	}, nil
}
