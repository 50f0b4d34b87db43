package binding

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalBody_OrderAndOmissions(t *testing.T) {
	b := newTestBinder(t)
	parts := resolveParts(t, b,
		builtinPart("id", "int"),
		builtinPart("tag", "string"),
		builtinPart("note", "string"),
	)

	// "tag" has no value and must leave no placeholder behind.
	elements, err := b.MarshalBody(parts, Params{"note": "checked", "id": 42})
	require.NoError(t, err)

	require.Len(t, elements, 2)
	assert.Equal(t, "id", elements[0].Tag)
	assert.Equal(t, "42", elements[0].Text())
	assert.Equal(t, "note", elements[1].Tag)
	assert.Equal(t, "checked", elements[1].Text())
}

func TestMarshalBody_RepeatedValuesAreAdjacent(t *testing.T) {
	b := newTestBinder(t)
	parts := resolveParts(t, b,
		builtinPart("id", "int"),
		builtinPart("tag", "string"),
	)

	elements, err := b.MarshalBody(parts, Params{
		"id":  42,
		"tag": []any{"a", "b"},
	})
	require.NoError(t, err)

	var tags []string
	for _, el := range elements {
		tags = append(tags, el.Tag)
	}
	assert.Equal(t, []string{"id", "tag", "tag"}, tags)

	out := serialize(t, elements)
	assert.Contains(t, out, "<id>42</id><tag>a</tag><tag>b</tag>")
}

func TestMarshalBody_NestedStructure(t *testing.T) {
	b := newTestBinder(t)
	parts := resolveParts(t, b, elementPart("parameters", "GetPetRequest"))

	elements, err := b.MarshalBody(parts, Params{
		"parameters": map[string]any{
			"id":  7,
			"tag": []any{"small", "furry"},
		},
	})
	require.NoError(t, err)
	require.Len(t, elements, 1)

	out := serialize(t, elements)
	assert.Contains(t, out, `<tns:GetPetRequest xmlns:tns="urn:com:example:petstore">`)
	assert.Contains(t, out, "<tns:id>7</tns:id><tns:tag>small</tns:tag><tns:tag>furry</tns:tag>")
}

func TestMarshalBody_OccurrencesBeyondMaxOccurs(t *testing.T) {
	b := newTestBinder(t)
	parts := resolveParts(t, b, elementPart("parameters", "GetPetRequest"))

	// id declares maxOccurs="1"; three occurrences marshal regardless.
	elements, err := b.MarshalBody(parts, Params{
		"parameters": map[string]any{"id": []any{1, 2, 3}},
	})
	require.NoError(t, err)

	children := elements[0].ChildElements()
	require.Len(t, children, 3)
	for _, child := range children {
		assert.Equal(t, "id", child.Tag)
	}
}

func TestMarshalBody_EmptySequenceEmitsNothing(t *testing.T) {
	b := newTestBinder(t)
	parts := resolveParts(t, b, builtinPart("tag", "string"))

	elements, err := b.MarshalBody(parts, Params{"tag": []any{}})
	require.NoError(t, err)
	assert.Empty(t, elements)
}

func TestMarshalBody_NilValue(t *testing.T) {
	b := newTestBinder(t)
	parts := resolveParts(t, b, builtinPart("id", "int"))

	elements, err := b.MarshalBody(parts, Params{"id": nil})
	require.NoError(t, err)
	require.Len(t, elements, 1)
	assert.Equal(t, "", elements[0].Text())
}

func TestMarshalBody_UnknownChild(t *testing.T) {
	b := newTestBinder(t)
	parts := resolveParts(t, b, elementPart("parameters", "GetPetRequest"))

	_, err := b.MarshalBody(parts, Params{
		"parameters": map[string]any{"id": 1, "color": "black"},
	})
	require.Error(t, err)

	var unbound *UnboundValueError
	require.True(t, errors.As(err, &unbound))
	assert.Equal(t, "parameters.color", unbound.Path)
}

func TestMarshalBody_ScalarWhereStructureDeclared(t *testing.T) {
	b := newTestBinder(t)
	parts := resolveParts(t, b, elementPart("parameters", "GetPetRequest"))

	_, err := b.MarshalBody(parts, Params{"parameters": 5})
	require.Error(t, err)

	var unbound *UnboundValueError
	require.True(t, errors.As(err, &unbound))
	assert.Contains(t, unbound.Reason, "nested structure was declared")
}

func TestMarshalBody_StructureWhereScalarDeclared(t *testing.T) {
	b := newTestBinder(t)
	parts := resolveParts(t, b, builtinPart("id", "int"))

	_, err := b.MarshalBody(parts, Params{"id": map[string]any{"x": 1}})
	require.Error(t, err)

	var unbound *UnboundValueError
	require.True(t, errors.As(err, &unbound))
	assert.Contains(t, unbound.Reason, "text content was declared")
}

func TestMarshalBody_NoPartialOutputOnError(t *testing.T) {
	b := newTestBinder(t)
	parts := resolveParts(t, b,
		builtinPart("id", "int"),
		elementPart("parameters", "GetPetRequest"),
	)

	elements, err := b.MarshalBody(parts, Params{
		"id":         42,
		"parameters": "not-a-structure",
	})
	assert.Error(t, err)
	assert.Nil(t, elements)
}

func TestMarshalBody_TypePartWrapper(t *testing.T) {
	b := newTestBinder(t)
	parts := resolveParts(t, b, typePart("entry", "Pet"))

	elements, err := b.MarshalBody(parts, Params{
		"entry": map[string]any{"id": 3, "name": "Rex", "available": true},
	})
	require.NoError(t, err)
	require.Len(t, elements, 1)

	// The wrapper is synthesized from the part name and carries no
	// namespace; its children keep the schema's qualified form.
	assert.Equal(t, "entry", elements[0].Tag)
	out := serialize(t, elements)
	assert.Contains(t, out, `<entry xmlns:ns1="urn:com:example:petstore">`)
	assert.Contains(t, out, "<ns1:id>3</ns1:id><ns1:name>Rex</ns1:name><ns1:available>true</ns1:available>")
}
