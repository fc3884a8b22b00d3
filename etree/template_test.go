package etree_test

import (
	"testing"

	xmltree "github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wikimeta/commonsmeta"
	"github.com/wikimeta/commonsmeta/etree"
)

// mustParse parses a parse tree XML fragment for tests.
func mustParse(t *testing.T, xml string) *xmltree.Element {
	t.Helper()
	root, err := etree.Parse(xml)
	require.NoError(t, err)
	return root
}

func TestFindTemplate(t *testing.T) {
	t.Parallel()

	t.Run("finds a template by title", func(t *testing.T) {
		t.Parallel()

		root := mustParse(t, `<root><template><title>Information</title></template></root>`)

		tpl, err := etree.FindTemplate(root, "information")
		require.NoError(t, err)

		title, err := etree.TemplateTitle(tpl)
		require.NoError(t, err)
		assert.Equal(t, "Information", title)
	})

	t.Run("compares titles in capitalized form only", func(t *testing.T) {
		t.Parallel()

		root := mustParse(t, `<root><template><title>information</title></template></root>`)

		_, err := etree.FindTemplate(root, "Information")
		assert.NoError(t, err)

		// Only the first rune is normalized, so internal case still counts.
		_, err = etree.FindTemplate(root, "INFORMATION")
		assert.Equal(t, commonsmeta.ENOTFOUND, commonsmeta.ErrorCode(err))
	})

	t.Run("returns the first match in child order", func(t *testing.T) {
		t.Parallel()

		root := mustParse(t, `<root>
			<template><title>Information</title><part><name>Author</name>=<value>first</value></part></template>
			<template><title>information</title><part><name>Author</name>=<value>second</value></part></template>
		</root>`)

		tpl, err := etree.FindTemplate(root, "information")
		require.NoError(t, err)

		value, err := etree.FindParameterByName(tpl, "author")
		require.NoError(t, err)
		assert.Equal(t, "first", etree.FlattenText(value))
	})

	t.Run("ignores non-template children", func(t *testing.T) {
		t.Parallel()

		root := mustParse(t, `<root>some text<ext><name>ref</name></ext><template><title>Location</title></template></root>`)

		_, err := etree.FindTemplate(root, "location")
		assert.NoError(t, err)
	})

	t.Run("returns ENOTFOUND when no template matches", func(t *testing.T) {
		t.Parallel()

		root := mustParse(t, `<root><template><title>Location</title></template></root>`)

		_, err := etree.FindTemplate(root, "information")
		assert.Equal(t, commonsmeta.ENOTFOUND, commonsmeta.ErrorCode(err))
	})

	t.Run("returns EMALFORMED for a template without a title", func(t *testing.T) {
		t.Parallel()

		root := mustParse(t, `<root><template><part><name>1</name>=<value>x</value></part></template></root>`)

		_, err := etree.FindTemplate(root, "information")
		assert.Equal(t, commonsmeta.EMALFORMED, commonsmeta.ErrorCode(err))
	})
}

func TestTemplateTitle(t *testing.T) {
	t.Parallel()

	t.Run("trims the title text", func(t *testing.T) {
		t.Parallel()

		root := mustParse(t, `<root><template><title> Information </title></template></root>`)

		title, err := etree.TemplateTitle(root.ChildElements()[0])
		require.NoError(t, err)
		assert.Equal(t, "Information", title)
	})

	t.Run("returns EMALFORMED when the title is missing", func(t *testing.T) {
		t.Parallel()

		root := mustParse(t, `<root><template/></root>`)

		_, err := etree.TemplateTitle(root.ChildElements()[0])
		assert.Equal(t, commonsmeta.EMALFORMED, commonsmeta.ErrorCode(err))
	})
}

func TestFindParameterByName(t *testing.T) {
	t.Parallel()

	t.Run("matches names regardless of leading letter case", func(t *testing.T) {
		t.Parallel()

		root := mustParse(t, `<root><template><title>Information</title><part><name>description</name>=<value>A lighthouse</value></part></template></root>`)
		tpl := root.ChildElements()[0]

		value, err := etree.FindParameterByName(tpl, "Description")
		require.NoError(t, err)
		assert.Equal(t, "A lighthouse", etree.FlattenText(value))
	})

	t.Run("returns the first matching part", func(t *testing.T) {
		t.Parallel()

		root := mustParse(t, `<root><template><title>Information</title>
			<part><name>Author</name>=<value>first</value></part>
			<part><name>author</name>=<value>second</value></part>
		</template></root>`)
		tpl := root.ChildElements()[0]

		value, err := etree.FindParameterByName(tpl, "author")
		require.NoError(t, err)
		assert.Equal(t, "first", etree.FlattenText(value))
	})

	t.Run("returns ENOTFOUND when no part matches", func(t *testing.T) {
		t.Parallel()

		root := mustParse(t, `<root><template><title>Information</title><part><name>Date</name>=<value>2012</value></part></template></root>`)
		tpl := root.ChildElements()[0]

		_, err := etree.FindParameterByName(tpl, "author")
		assert.Equal(t, commonsmeta.ENOTFOUND, commonsmeta.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for a template with no parts", func(t *testing.T) {
		t.Parallel()

		root := mustParse(t, `<root><template><title>Information</title></template></root>`)
		tpl := root.ChildElements()[0]

		_, err := etree.FindParameterByName(tpl, "author")
		assert.Equal(t, commonsmeta.ENOTFOUND, commonsmeta.ErrorCode(err))
	})

	t.Run("returns EMALFORMED when a matched name has no value", func(t *testing.T) {
		t.Parallel()

		root := mustParse(t, `<root><template><title>Information</title><part><name>Author</name></part></template></root>`)
		tpl := root.ChildElements()[0]

		_, err := etree.FindParameterByName(tpl, "author")
		assert.Equal(t, commonsmeta.EMALFORMED, commonsmeta.ErrorCode(err))
	})
}

func TestFindParameterByIndex(t *testing.T) {
	t.Parallel()

	t.Run("matches a named positional parameter like 1=", func(t *testing.T) {
		t.Parallel()

		root := mustParse(t, `<root><template><title>en</title><part><name>1</name>=<value>English text</value></part></template></root>`)
		tpl := root.ChildElements()[0]

		value, err := etree.FindParameterByIndex(tpl, 1)
		require.NoError(t, err)
		assert.Equal(t, "English text", etree.FlattenText(value))
	})

	t.Run("falls back to the index attribute", func(t *testing.T) {
		t.Parallel()

		root := mustParse(t, `<root><template><title>en</title><part><name index="1"/><value>English text</value></part></template></root>`)
		tpl := root.ChildElements()[0]

		value, err := etree.FindParameterByIndex(tpl, 1)
		require.NoError(t, err)
		assert.Equal(t, "English text", etree.FlattenText(value))
	})

	t.Run("both index signals select the same parameter", func(t *testing.T) {
		t.Parallel()

		byText := mustParse(t, `<root><template><title>en</title><part><name>2</name>=<value>second</value></part></template></root>`)
		byAttr := mustParse(t, `<root><template><title>en</title><part><name index="2"/><value>second</value></part></template></root>`)

		v1, err := etree.FindParameterByIndex(byText.ChildElements()[0], 2)
		require.NoError(t, err)
		v2, err := etree.FindParameterByIndex(byAttr.ChildElements()[0], 2)
		require.NoError(t, err)

		assert.Equal(t, etree.FlattenText(v1), etree.FlattenText(v2))
	})

	t.Run("returns ENOTFOUND for an absent index", func(t *testing.T) {
		t.Parallel()

		root := mustParse(t, `<root><template><title>en</title><part><name index="1"/><value>only</value></part></template></root>`)
		tpl := root.ChildElements()[0]

		_, err := etree.FindParameterByIndex(tpl, 2)
		assert.Equal(t, commonsmeta.ENOTFOUND, commonsmeta.ErrorCode(err))
	})
}

func TestMultilingualText(t *testing.T) {
	t.Parallel()

	t.Run("separates default text from language wrappers", func(t *testing.T) {
		t.Parallel()

		root := mustParse(t, `<root><value>Default text <template><title>en</title><part><name index="1"/><value>English text</value></part></template></value></root>`)

		texts, err := etree.MultilingualText(root.ChildElements()[0])
		require.NoError(t, err)

		assert.Equal(t, map[string]string{
			"default": "Default text ",
			"en":      "English text",
		}, texts)
	})

	t.Run("reads wrappers with explicit 1= parameters", func(t *testing.T) {
		t.Parallel()

		root := mustParse(t, `<root><value><template><title>de</title><part><name>1</name>=<value>Deutscher Text</value></part></template></value></root>`)

		texts, err := etree.MultilingualText(root.ChildElements()[0])
		require.NoError(t, err)

		assert.Equal(t, map[string]string{"de": "Deutscher Text"}, texts)
	})

	t.Run("two-character titles are language codes, three are not", func(t *testing.T) {
		t.Parallel()

		// The length heuristic misreads any short-named template as a
		// language wrapper; this pins the boundary.
		root := mustParse(t, `<root><value><template><title>ab</title><part><name index="1"/><value>short</value></part></template><template><title>abc</title><part><name index="1"/><value>long</value></part></template></value></root>`)

		texts, err := etree.MultilingualText(root.ChildElements()[0])
		require.NoError(t, err)

		assert.Equal(t, map[string]string{"ab": "short"}, texts)
	})

	t.Run("whitespace-only text yields no default key", func(t *testing.T) {
		t.Parallel()

		root := mustParse(t, `<root><value>
		</value></root>`)

		texts, err := etree.MultilingualText(root.ChildElements()[0])
		require.NoError(t, err)

		assert.Empty(t, texts)
	})

	t.Run("is idempotent over the same subtree", func(t *testing.T) {
		t.Parallel()

		root := mustParse(t, `<root><value>Plain <template><title>fr</title><part><name index="1"/><value>Un phare</value></part></template></value></root>`)
		value := root.ChildElements()[0]

		first, err := etree.MultilingualText(value)
		require.NoError(t, err)
		second, err := etree.MultilingualText(value)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("flattens nested markup inside a wrapper value", func(t *testing.T) {
		t.Parallel()

		root := mustParse(t, `<root><value><template><title>en</title><part><name index="1"/><value>The <b>old</b> lighthouse</value></part></template></value></root>`)

		texts, err := etree.MultilingualText(root.ChildElements()[0])
		require.NoError(t, err)

		assert.Equal(t, "The old lighthouse", texts["en"])
	})

	t.Run("propagates EMALFORMED from a titleless nested template", func(t *testing.T) {
		t.Parallel()

		root := mustParse(t, `<root><value><template><part><name index="1"/><value>x</value></part></template></value></root>`)

		_, err := etree.MultilingualText(root.ChildElements()[0])
		assert.Equal(t, commonsmeta.EMALFORMED, commonsmeta.ErrorCode(err))
	})
}

func TestFlattenText(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `<root><value>a<x>b<y>c</y></x>d</value></root>`)

	assert.Equal(t, "abcd", etree.FlattenText(root.ChildElements()[0]))
}
