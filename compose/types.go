package compose

// Target ids of the six composer outputs. A mounted document is addressed
// by one of these; the export layer never invents ids of its own.
const (
	TargetCaseFile        = "pdf-case-file"
	TargetCitation        = "pdf-traffic"
	TargetAutopsy         = "pdf-autopsy"
	TargetFaxLog          = "pdf-fax-log"
	TargetSalesContract   = "pdf-sales-doc"
	TargetWorkshopInvoice = "pdf-workshop-invoice"
)

// Kind identifies a document variant.
type Kind string

const (
	KindCaseFile        Kind = "case_file"
	KindCitation        Kind = "citation"
	KindAutopsy         Kind = "autopsy"
	KindFaxLog          Kind = "fax_log"
	KindSalesContract   Kind = "sales_contract"
	KindWorkshopInvoice Kind = "workshop_invoice"
)

// SectionKind is the structural type of a document section.
type SectionKind string

const (
	SectionIdentity   SectionKind = "identity"
	SectionText       SectionKind = "text"
	SectionTable      SectionKind = "table"
	SectionImage      SectionKind = "image"
	SectionSignatures SectionKind = "signatures"
	SectionAmount     SectionKind = "amount"
)

// Document is the print-ready output of a composer: a tree of typed
// sections carrying display data only. It is either fully computed or not
// produced at all — no section is ever missing because an input was blank;
// blanks are resolved to their fixed fallback wording at compose time.
type Document struct {
	Kind     Kind      `json:"kind"`
	TargetID string    `json:"target_id"`
	Header   Header    `json:"header"`
	Sections []Section `json:"sections"`
	Footer   string    `json:"footer,omitempty"`
}

// Header is the letterhead block of a document.
type Header struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle,omitempty"`
	Lines    []string `json:"lines,omitempty"` // org / address lines
	Ref      string   `json:"ref,omitempty"`   // document reference number
	Date     string   `json:"date"`            // preformatted, de-DE
}

// Section is one block of a document body. Exactly the fields implied by
// its Kind are populated.
type Section struct {
	Kind       SectionKind `json:"section_kind"`
	Title      string      `json:"title,omitempty"`
	Fields     []Field     `json:"fields,omitempty"`     // identity
	Text       string      `json:"text,omitempty"`       // text, amount
	Table      *Table      `json:"table,omitempty"`      // table
	Image      *Image      `json:"image,omitempty"`      // image
	Signatures []string    `json:"signatures,omitempty"` // signature captions
}

// Field is a label/value pair inside an identity block.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Table is a tabular section. EmptyText renders as a single spanning row
// when there are no data rows.
type Table struct {
	Columns   []string   `json:"columns"`
	Rows      [][]string `json:"rows"`
	Footer    []Field    `json:"footer,omitempty"`
	EmptyText string     `json:"empty_text,omitempty"`
}

// Image is an embedded evidence photo. When Data is empty the section
// renders Placeholder instead.
type Image struct {
	MIME        string `json:"mime,omitempty"`
	Data        []byte `json:"data,omitempty"`
	Caption     string `json:"caption,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
}
