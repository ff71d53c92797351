
package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"dictproxy/internal/models"
)

// Selectors for the Britannica dictionary page layout.
const (
	selEntry         = "div.entry_v2"
	selHeadword      = "span.hw_txt"
	selHomograph     = "sup.homograph"
	selPronunciation = "span.hpron_word"
	selPartOfSpeech  = "span.fl"
	selGrammar       = "span.gram"
	selStyleLabel    = "span.sl"
	selSense         = "div.sense"
	selDefinition    = "span.def_text"
	selExample       = "div.vi_content"
	selUsageNote     = "span.snote"
)

type Extractor struct{}

func New() *Extractor { return &Extractor{} }

// Extract walks every entry block of the page and returns one Entry per
// block in document order. Markup that does not match the expected layout
// produces fewer or emptier entries, never an error.
func (e *Extractor) Extract(html string) []models.Entry {
	entries := []models.Entry{}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return entries
	}
	root := newNode(doc.Selection)

	for _, block := range root.All(selEntry) {
		entries = append(entries, extractEntry(block))
	}
	return entries
}

func extractEntry(block Node) models.Entry {
	entry := models.NewEntry()

	if hw, ok := block.First(selHeadword); ok {
		entry.Word = hw.Text()
		if hom, ok := hw.FirstText(selHomograph); ok {
			entry.Homograph = &hom
		}
	}

	for _, pron := range block.All(selPronunciation) {
		entry.Pronunciations = append(entry.Pronunciations, pron.Text())
	}

	if pos, ok := block.FirstText(selPartOfSpeech); ok {
		entry.PartOfSpeech = pos
	}

	if gram, ok := block.FirstText(selGrammar); ok {
		gram = stripBrackets(gram)
		entry.Grammar = &gram
	}

	if sl, ok := block.FirstText(selStyleLabel); ok {
		entry.StyleLabel = &sl
	}

	for _, sense := range block.All(selSense) {
		def := extractDefinition(sense)
		if !def.IsEmpty() {
			entry.Definitions = append(entry.Definitions, def)
		}
	}

	for _, note := range block.All(selUsageNote) {
		if txt := note.Text(); txt != "" {
			entry.Notes = append(entry.Notes, txt)
		}
	}

	return entry
}

func extractDefinition(sense Node) models.Definition {
	def := models.Definition{Examples: []string{}}
	if txt, ok := sense.FirstText(selDefinition); ok {
		def.Text = txt
	}
	for _, ex := range sense.All(selExample) {
		// blank example blocks would let an otherwise empty sense through
		if txt := ex.Text(); txt != "" {
			def.Examples = append(def.Examples, txt)
		}
	}
	return def
}

// stripBrackets turns "[count]" into "count".
func stripBrackets(s string) string {
	s = strings.TrimLeft(s, "[")
	s = strings.TrimRight(s, "]")
	return strings.TrimSpace(s)
}
