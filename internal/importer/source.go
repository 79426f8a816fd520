package importer

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// SourceCard is one <card> element of the card database XML
type SourceCard struct {
	ID             string   `xml:"id,attr"`
	Type           string   `xml:"type,attr"`
	Name           string   `xml:"name"`
	Clans          []string `xml:"clan"`
	Force          string   `xml:"force"`
	Chi            string   `xml:"chi"`
	Cost           string   `xml:"cost"`
	Focus          string   `xml:"focus"`
	PersonalHonor  string   `xml:"personal_honor"`
	HonorReq       string   `xml:"honor_req"`
	GoldProduction string   `xml:"gold_production"`
	Text           Markup   `xml:"text"`
	Editions       []string `xml:"edition"`
	Rarity         string   `xml:"rarity"`
	Artist         string   `xml:"artist"`
	Flavor         Markup   `xml:"flavor"`
	Legal          []string `xml:"legal"`
	Image          string   `xml:"image"`
	BackImage      string   `xml:"back_image"`
	BackText       Markup   `xml:"back_text"`
}

type sourceDatabase struct {
	Cards []SourceCard `xml:"card"`
}

// Markup is element content that may hold escaped or literal HTML. Nested
// elements are written back as tags so the text normalizer sees them.
type Markup string

func (m *Markup) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var b strings.Builder
	depth := 0
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			b.WriteString("<" + t.Name.Local + ">")
		case xml.EndElement:
			if depth == 0 {
				*m = Markup(strings.TrimSpace(b.String()))
				return nil
			}
			depth--
			if !voidElements[strings.ToLower(t.Name.Local)] {
				b.WriteString("</" + t.Name.Local + ">")
			}
		case xml.CharData:
			b.Write(t)
		}
	}
}

// voidElements never carry a closing tag in the rewritten markup
var voidElements = map[string]bool{"br": true, "hr": true, "img": true}

// Parse decodes the card database XML
func Parse(r io.Reader) ([]SourceCard, error) {
	dec := xml.NewDecoder(r)
	// The database uses HTML entities such as &nbsp; inside text
	dec.Strict = false
	dec.Entity = xml.HTMLEntity
	dec.AutoClose = xml.HTMLAutoClose

	var db sourceDatabase
	if err := dec.Decode(&db); err != nil {
		return nil, fmt.Errorf("parse card database: %w", err)
	}
	return db.Cards, nil
}
