
package extractor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

func TestExtract_FullPage(t *testing.T) {
	entries := New().Extract(loadFixture(t, "stat.html"))
	require.Len(t, entries, 2)

	// the homograph marker sits inside the headword span, so its text is
	// part of the headword text
	first := entries[0]
	assert.Equal(t, "stat1", first.Word)
	require.NotNil(t, first.Homograph)
	assert.Equal(t, "1", *first.Homograph)
	assert.Equal(t, []string{"/ˈstæt/", "/stat/"}, first.Pronunciations)
	assert.Equal(t, "noun", first.PartOfSpeech)
	require.NotNil(t, first.Grammar)
	assert.Equal(t, "count", *first.Grammar)
	require.NotNil(t, first.StyleLabel)
	assert.Equal(t, "informal", *first.StyleLabel)

	require.Len(t, first.Definitions, 2)
	assert.Equal(t, "a unit of statistics", first.Definitions[0].Text)
	assert.Equal(t, []string{"He checked the player's stats.", "The stats look good."}, first.Definitions[0].Examples)
	assert.Equal(t, "", first.Definitions[1].Text)
	assert.Equal(t, []string{"Get me the chart, stat!"}, first.Definitions[1].Examples)

	assert.Equal(t, []string{"usually plural"}, first.Notes)

	second := entries[1]
	assert.Equal(t, "stat2", second.Word)
	require.NotNil(t, second.Homograph)
	assert.Equal(t, "2", *second.Homograph)
	assert.Equal(t, "adverb", second.PartOfSpeech)
	assert.Nil(t, second.Grammar)
	assert.Nil(t, second.StyleLabel)
	require.Len(t, second.Definitions, 1)
	assert.Equal(t, "immediately", second.Definitions[0].Text)
	assert.Empty(t, second.Definitions[0].Examples)
	assert.Empty(t, second.Notes)
}

func TestExtract_NoEntryBlocks(t *testing.T) {
	entries := New().Extract(`<html><body><div class="entry">nope</div></body></html>`)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)

	assert.Empty(t, New().Extract(""))
}

func TestExtract_BlockWithoutHeadword(t *testing.T) {
	entries := New().Extract(`<div class="entry_v2"><span class="fl">verb</span></div>`)
	require.Len(t, entries, 1)
	assert.Equal(t, "", entries[0].Word)
	assert.Nil(t, entries[0].Homograph)
	assert.Equal(t, "verb", entries[0].PartOfSpeech)
	assert.Equal(t, []string{}, entries[0].Pronunciations)
	assert.Equal(t, []string{}, entries[0].Notes)
}

func TestExtract_EmptyBlockStillEmitted(t *testing.T) {
	entries := New().Extract(`<div class="entry_v2"></div><div class="entry_v2"></div>`)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, "", e.Word)
		assert.Empty(t, e.Definitions)
	}
}

func TestExtract_HeadwordIsTrimmed(t *testing.T) {
	html := `<div class="entry_v2"><span class="hw_txt">
		  run  </span></div>`
	entries := New().Extract(html)
	require.Len(t, entries, 1)
	assert.Equal(t, "run", entries[0].Word)
}

func TestExtract_HeadwordKeepsInnerWhitespaceAndCase(t *testing.T) {
	html := `<div class="entry_v2"><span class="hw_txt"> Ad  Hoc </span></div>`
	entries := New().Extract(html)
	require.Len(t, entries, 1)
	assert.Equal(t, "Ad  Hoc", entries[0].Word)
}

func TestExtract_DropsEmptySenses(t *testing.T) {
	html := `<div class="entry_v2">
		<div class="sense"></div>
		<div class="sense"><span class="def_text">   </span><div class="vi_content">  </div></div>
		<div class="sense"><span class="def_text">kept</span></div>
	</div>`
	entries := New().Extract(html)
	require.Len(t, entries, 1)
	require.Len(t, entries[0].Definitions, 1)
	assert.Equal(t, "kept", entries[0].Definitions[0].Text)
	for _, d := range entries[0].Definitions {
		assert.False(t, d.IsEmpty())
	}
}

func TestExtract_GrammarBrackets(t *testing.T) {
	cases := map[string]string{
		"[count]":           "count",
		" [ noncount ] ":    "noncount",
		"[[plural]]":        "plural",
		"count":             "count",
		"[count, noncount]": "count, noncount",
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			html := `<div class="entry_v2"><span class="gram">` + in + `</span></div>`
			entries := New().Extract(html)
			require.Len(t, entries, 1)
			require.NotNil(t, entries[0].Grammar)
			assert.Equal(t, want, *entries[0].Grammar)
		})
	}
}

func TestExtract_LookupsScopedToBlock(t *testing.T) {
	html := `
	<span class="fl">global</span>
	<div class="entry_v2"><span class="hw_txt">one</span></div>
	<div class="entry_v2"><span class="hw_txt">two</span><span class="fl">noun</span><span class="fl">verb</span></div>`
	entries := New().Extract(html)
	require.Len(t, entries, 2)
	assert.Equal(t, "", entries[0].PartOfSpeech)
	assert.Equal(t, "noun", entries[1].PartOfSpeech)
}

func TestExtract_FirstDefinitionTextPerSense(t *testing.T) {
	html := `<div class="entry_v2"><div class="sense">
		<span class="def_text">first</span>
		<span class="def_text">second</span>
	</div></div>`
	entries := New().Extract(html)
	require.Len(t, entries, 1)
	require.Len(t, entries[0].Definitions, 1)
	assert.Equal(t, "first", entries[0].Definitions[0].Text)
}

func TestExtract_SkipsBlankNotes(t *testing.T) {
	html := `<div class="entry_v2">
		<span class="snote">  </span>
		<span class="snote">often used figuratively</span>
	</div>`
	entries := New().Extract(html)
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"often used figuratively"}, entries[0].Notes)
}

func TestNode_ZeroValue(t *testing.T) {
	var n Node
	_, ok := n.First("span")
	assert.False(t, ok)
	assert.Empty(t, n.All("span"))
	assert.Equal(t, "", n.Text())
}
