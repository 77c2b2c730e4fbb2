package compose

// FaxEntry is one prior transmission on the fax log.
type FaxEntry struct {
	Timestamp string
	Recipient string
	Status    string
	Content   string
}

// FaxLogInput is the view of the fax journal projected into a
// Sendeprotokoll. An empty journal still composes: the log prints its
// empty-state row.
type FaxLogInput struct {
	Terminal string
	Entries  []FaxEntry
}

// FaxLog composes the printable transmission journal.
func (c *Composer) FaxLog(in FaxLogInput) (*Document, error) {
	rows := make([][]string, 0, len(in.Entries))
	for _, e := range in.Entries {
		rows = append(rows, []string{
			e.Timestamp,
			e.Recipient,
			e.Status,
			excerpt(e.Content, 50),
		})
	}

	return &Document{
		Kind:     KindFaxLog,
		TargetID: TargetFaxLog,
		Header: Header{
			Title:    "SENDEPROTOKOLL / FAX",
			Subtitle: "Terminal: " + orElse(in.Terminal, "WACHE-OS-01"),
			Date:     dateDE(c.cfg.Now()),
		},
		Sections: []Section{
			{
				Kind: SectionTable,
				Table: &Table{
					Columns:   []string{"ZEIT", "EMPFÄNGER", "STATUS", "INHALT (AUSZUG)"},
					Rows:      rows,
					EmptyText: "Keine Einträge.",
				},
			},
		},
		Footer: "Dieses Dokument wurde elektronisch erstellt und ist ohne Unterschrift gültig.",
	}, nil
}
