package compose

import (
	"fmt"
	"strings"
	"time"

	"github.com/Jan2821/Jan-OS/finance"
)

// CitationInput is the view of a traffic violation projected into a
// Bußgeldbescheid.
type CitationInput struct {
	ID            string
	DriverName    string
	LicensePlate  string
	VehicleModel  string
	Kind          finance.ViolationKind
	Location      string
	SpeedLimit    int
	ActualSpeed   int
	FineAmount    float64 // committed amount, not recomputed here
	Date          time.Time
	EvidenceImage []byte // optional camera photo
	EvidenceMIME  string
}

// violationWording spells out the offence. Speeding gets the computed
// differential appended, everything else its catalogue name.
func violationWording(in CitationInput) string {
	switch in.Kind {
	case finance.ViolationSpeeding:
		return fmt.Sprintf("Geschwindigkeitsüberschreitung (%d km/h zu schnell)", in.ActualSpeed-in.SpeedLimit)
	case finance.ViolationRedLight:
		return "Missachtung des Rotlichts"
	case finance.ViolationDUI:
		return "Fahren unter Alkoholeinfluss"
	case finance.ViolationParking:
		return "Unzulässiges Parken"
	default:
		return string(in.Kind)
	}
}

// Citation composes the printable fine notice.
func (c *Composer) Citation(in CitationInput) (*Document, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, ErrIncomplete
	}

	identity := []Field{
		{Label: "Tatbestand", Value: violationWording(in)},
		{Label: "Fahrzeug", Value: in.VehicleModel},
		{Label: "Kennzeichen", Value: in.LicensePlate},
	}
	if in.Kind == finance.ViolationSpeeding {
		identity = append(identity,
			Field{Label: "Gemessene Geschwindigkeit", Value: fmt.Sprintf("%d km/h (abzgl. Toleranz)", in.ActualSpeed)},
			Field{Label: "Erlaubte Geschwindigkeit", Value: fmt.Sprintf("%d km/h", in.SpeedLimit)},
		)
	}

	image := &Image{
		Placeholder: "Kein Bildmaterial im Druck beigefügt",
	}
	if len(in.EvidenceImage) > 0 {
		image = &Image{
			MIME:    in.EvidenceMIME,
			Data:    in.EvidenceImage,
			Caption: "Beweismittel: Fotoaufnahme",
		}
	}

	return &Document{
		Kind:     KindCitation,
		TargetID: TargetCitation,
		Header: Header{
			Title:    "Polizeipräsidium",
			Subtitle: "Bußgeldstelle",
			Lines:    []string{"Stadt Musterstadt • Verwaltungsbezirk I"},
			Ref:      in.ID,
			Date:     dateDE(c.cfg.Now()),
		},
		Sections: []Section{
			{
				Kind:  SectionText,
				Title: "Zeugenfragebogen / Bussgeldbescheid",
				Text: fmt.Sprintf(
					"Sehr geehrte(r) Verkehrsteilnehmer(in), Ihnen wird zur Last gelegt, am %s um %s Uhr in %s folgende Ordnungswidrigkeit begangen zu haben:",
					dateDE(in.Date), clockDE(in.Date), in.Location),
			},
			{
				Kind:   SectionIdentity,
				Title:  orElse(in.DriverName, "An den Fahrzeughalter"),
				Fields: identity,
			},
			{
				Kind: SectionAmount,
				Text: euro(in.FineAmount),
			},
			{
				Kind:  SectionImage,
				Image: image,
			},
		},
		Footer: "Gemäß Bußgeldkatalog (§ 49 StVO) wurde gegen Sie ein Verwarnungsgeld / Bußgeld festgesetzt.",
	}, nil
}
