// Package goquery provides HTML-backed implementations of cellscan's
// extraction interfaces using CSS selection and document-tree traversal.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/cellscan"
	"golang.org/x/net/html"
)

// Compile-time interface verification.
var _ cellscan.Extractor = (*Extractor)(nil)

// Extractor parses a product detail page into a cellscan.Cell.
//
// Two addressing strategies are used side by side, because the source pages
// render the two field groups differently. The overview fields (origin,
// format, dimensions, weight) sit as "Label value" pairs inside a single
// markup element and are read off the document tree. The rating sections
// (capacity, current, energy, power, densities) share one contiguous text
// stream with no structural delimiters and are sliced out of the
// whitespace-normalized flat text by label adjacency.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses the page and returns the populated cell record.
// Individual fields that fail to extract are left nil; only a page that
// yields neither a name nor a slug is rejected, with an EUNPROCESSABLE
// error the caller can classify as a parse failure.
func (e *Extractor) Extract(htmlSrc, detailURL string) (*cellscan.Cell, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlSrc))
	if err != nil {
		return nil, cellscan.Errorf(cellscan.EINVALID, "failed to parse HTML: %v", err)
	}

	cell := &cellscan.Cell{
		Slug:      cellscan.SlugFromURL(detailURL),
		DetailURL: detailURL,
		RawHTML:   htmlSrc,
	}

	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		cell.Name = &h1
	}

	if cell.Name == nil && cell.Slug == "" {
		return nil, cellscan.Errorf(cellscan.EUNPROCESSABLE, "cell name and slug not found")
	}

	// Overview fields, addressed through the document tree.
	cell.CellOrigin = labelValue(doc, "Cell Origin")
	cell.CellFormat = labelValue(doc, "Cell Format")
	cell.DimensionsRaw = labelValue(doc, "Dimen")
	if cell.DimensionsRaw != nil {
		cell.DiameterMM, cell.HeightMM = cellscan.ParseDimensions(*cell.DimensionsRaw)
	}
	if w := labelValue(doc, "Weight"); w != nil {
		cell.WeightG = cellscan.ParseWeight(*w)
	}

	// Rating sections, sliced out of the flat text.
	flat := flatText(doc)

	capacity := cellscan.Section(flat, "Capacity")
	current := cellscan.Section(flat, "Current")
	energy := cellscan.Section(flat, "Energy")
	power := cellscan.Section(flat, "Power")
	energyDensity := cellscan.Section(flat, "Energy Density")
	powerDensity := cellscan.Section(flat, "Power Density")

	cell.NominalCapacityAh = cellscan.FirstNumber(capacity, cellscan.PatNominalCapacity)
	cell.C10CapacityAh = cellscan.FirstNumber(capacity, cellscan.PatC10Capacity)
	cell.ContinuousCurrentA = cellscan.FirstNumber(current, cellscan.PatContinuousCurrent)
	cell.PeakCurrentA = cellscan.FirstNumber(current, cellscan.PatPeakCurrent)
	cell.C10EnergyWh = cellscan.FirstNumber(energy, cellscan.PatC10Energy)
	cell.ContinuousPowerW = cellscan.FirstNumber(power, cellscan.PatContinuousPower)
	cell.PeakPowerW = cellscan.FirstNumber(power, cellscan.PatPeakPower)
	cell.EnergyDensityWhKg = cellscan.FirstNumber(energyDensity, cellscan.PatGravimetricEnergy)
	cell.EnergyDensityWhL = cellscan.FirstNumber(energyDensity, cellscan.PatVolumetricEnergy)
	cell.PowerDensityKWKg = cellscan.FirstNumber(powerDensity, cellscan.PatGravimetricPower)
	cell.PowerDensityKWL = cellscan.FirstNumber(powerDensity, cellscan.PatVolumetricPower)

	// Model metadata and operating envelope, matched against the whole
	// flat text since their labels are unique on the page.
	cell.ModelVersion = cellscan.ParseModelVersion(flat)
	cell.ModelReleaseDate = cellscan.ParseReleaseDate(flat)

	cell.SoCMinPct, cell.SoCMaxPct = cellscan.ParseRange(flat, "State of Charge Range", "%")
	cell.DischargeMinA, cell.ChargeMaxA, cell.CRateMin, cell.CRateMax = cellscan.ParseCurrentWindow(flat)
	cell.VoltageMinV, cell.VoltageMaxV = cellscan.ParseRange(flat, "Voltage Range", "V")
	// "Temper" rather than "Temperature": the rendered heading carries a
	// soft hyphen between syllables on some pages.
	cell.TempMinC, cell.TempMaxC = cellscan.ParseRange(flat, "Temper", "°C")

	cellscan.Derive(cell)

	return cell, nil
}

// labelValue locates the first text node (in document order) whose trimmed
// content starts with prefix, and returns the rendered text of its
// containing element with the first occurrence of the prefix removed.
// Returns nil when no node matches or the remainder is empty.
func labelValue(doc *goquery.Document, prefix string) *string {
	root := doc.Get(0)
	if root == nil {
		return nil
	}

	node := findTextNode(root, prefix)
	if node == nil || node.Parent == nil {
		return nil
	}

	full := renderedText(node.Parent)
	value := strings.TrimSpace(strings.Replace(full, prefix, "", 1))
	if value == "" {
		return nil
	}
	return &value
}

// findTextNode returns the first text node in document order whose trimmed
// content begins with prefix.
func findTextNode(n *html.Node, prefix string) *html.Node {
	if n.Type == html.TextNode && strings.HasPrefix(strings.TrimSpace(n.Data), prefix) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findTextNode(c, prefix); found != nil {
			return found
		}
	}
	return nil
}

// renderedText concatenates an element's descendant text nodes,
// space-joined and trimmed.
func renderedText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				if b.Len() > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// flatText renders the whole document as whitespace-normalized flat text:
// all text nodes in document order, space-joined, with script and style
// content skipped.
func flatText(doc *goquery.Document) string {
	root := doc.Get(0)
	if root == nil {
		return ""
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				if b.Len() > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return cellscan.NormalizeWhitespace(b.String())
}
