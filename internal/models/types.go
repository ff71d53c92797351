
package models

// Entry is one headword block of a dictionary page.
type Entry struct {
	Word           string       `json:"word"`
	Homograph      *string      `json:"homograph,omitempty"`
	Pronunciations []string     `json:"pronunciations"`
	PartOfSpeech   string       `json:"part_of_speech"`
	Grammar        *string      `json:"grammar,omitempty"`
	StyleLabel     *string      `json:"style_label,omitempty"`
	Definitions    []Definition `json:"definitions"`
	Notes          []string     `json:"notes"`
}

// Definition is a single sense inside an Entry.
type Definition struct {
	Text     string   `json:"text"`
	Examples []string `json:"examples"`
}

// IsEmpty reports whether the sense carries neither text nor examples.
func (d Definition) IsEmpty() bool {
	return d.Text == "" && len(d.Examples) == 0
}

// NewEntry returns an Entry with all collections initialized so that
// it encodes as [] rather than null.
func NewEntry() Entry {
	return Entry{
		Pronunciations: []string{},
		Definitions:    []Definition{},
		Notes:          []string{},
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// LookupRecord is one line of CLI output.
type LookupRecord struct {
	Word    string  `json:"word"`
	Entries []Entry `json:"entries,omitempty"`
	Error   string  `json:"error,omitempty"`
}
