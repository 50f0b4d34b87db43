package binding

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalBody_ScalarAndRepeated(t *testing.T) {
	b := newTestBinder(t)
	parts := resolveParts(t, b,
		builtinPart("id", "int"),
		builtinPart("tag", "string"),
	)

	values, err := b.UnmarshalBody(parts, bodyElements(t, "<id>42</id><tag>a</tag><tag>b</tag>"))
	require.NoError(t, err)

	assert.Equal(t, Params{
		"id":  int64(42),
		"tag": []any{"a", "b"},
	}, values)
}

func TestUnmarshalBody_OmittedPart(t *testing.T) {
	b := newTestBinder(t)
	parts := resolveParts(t, b,
		builtinPart("id", "int"),
		builtinPart("tag", "string"),
	)

	values, err := b.UnmarshalBody(parts, bodyElements(t, "<tag>a</tag>"))
	require.NoError(t, err)
	assert.Equal(t, Params{"tag": "a"}, values)
}

func TestUnmarshalBody_EmptyBody(t *testing.T) {
	b := newTestBinder(t)
	parts := resolveParts(t, b, builtinPart("id", "int"))

	values, err := b.UnmarshalBody(parts, nil)
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestUnmarshalBody_UnknownElement(t *testing.T) {
	b := newTestBinder(t)
	parts := resolveParts(t, b,
		builtinPart("id", "int"),
		builtinPart("tag", "string"),
	)

	values, err := b.UnmarshalBody(parts, bodyElements(t, "<bogus>1</bogus>"))
	require.Error(t, err)
	assert.Nil(t, values, "no partial mapping on error")

	var unexpected *UnexpectedElementError
	require.True(t, errors.As(err, &unexpected))
	assert.Equal(t, "bogus", unexpected.Name.Local)
	assert.Equal(t, []string{"id", "tag"}, unexpected.Expected)
}

func TestUnmarshalBody_OutOfOrderElement(t *testing.T) {
	b := newTestBinder(t)
	parts := resolveParts(t, b,
		builtinPart("id", "int"),
		builtinPart("tag", "string"),
	)

	// The scan is forward-only: once "tag" has matched, an "id" arriving
	// later no longer has a part to bind to.
	values, err := b.UnmarshalBody(parts, bodyElements(t, "<tag>a</tag><id>1</id>"))
	require.Error(t, err)
	assert.Nil(t, values)

	var unexpected *UnexpectedElementError
	require.True(t, errors.As(err, &unexpected))
	assert.Equal(t, "id", unexpected.Name.Local)
}

func TestUnmarshalBody_SeparatedRunsNotMerged(t *testing.T) {
	b := newTestBinder(t)
	parts := resolveParts(t, b,
		builtinPart("tag", "string"),
		builtinPart("id", "int"),
	)

	// Two runs of "tag" separated by "id" must not collapse into one
	// repeated value; the second run has no remaining part and is
	// reported instead.
	values, err := b.UnmarshalBody(parts, bodyElements(t, "<tag>a</tag><id>1</id><tag>b</tag>"))
	require.Error(t, err)
	assert.Nil(t, values)

	var unexpected *UnexpectedElementError
	require.True(t, errors.As(err, &unexpected))
	assert.Equal(t, "tag", unexpected.Name.Local)
}

func TestUnmarshalBody_NestedStructure(t *testing.T) {
	b := newTestBinder(t)
	parts := resolveParts(t, b, elementPart("parameters", "GetPetRequest"))

	fragment := `<GetPetRequest xmlns="urn:com:example:petstore"><id>7</id><tag>small</tag></GetPetRequest>`
	values, err := b.UnmarshalBody(parts, bodyElements(t, fragment))
	require.NoError(t, err)

	assert.Equal(t, Params{
		"parameters": map[string]any{
			"id":  int64(7),
			"tag": []any{"small"},
		},
	}, values)
}

func TestUnmarshalBody_NestedScalarKinds(t *testing.T) {
	b := newTestBinder(t)
	parts := resolveParts(t, b, typePart("pet", "Pet"))

	fragment := `<pet><id>5</id><name>Rex</name><available>true</available></pet>`
	values, err := b.UnmarshalBody(parts, bodyElements(t, fragment))
	require.NoError(t, err)

	assert.Equal(t, Params{
		"pet": map[string]any{
			"id":        int64(5),
			"name":      "Rex",
			"available": true,
		},
	}, values)
}

func TestUnmarshalBody_NestedSeparatedRuns(t *testing.T) {
	b := newTestBinder(t)
	parts := resolveParts(t, b, typePart("pet", "Pet"))

	// A second run of "id" after "name" has no unconsumed particle left in
	// the sequence.
	fragment := `<pet><id>1</id><name>Rex</name><id>2</id></pet>`
	values, err := b.UnmarshalBody(parts, bodyElements(t, fragment))
	require.Error(t, err)
	assert.Nil(t, values)
}

func TestUnmarshalBody_AllGroupIsOrderFree(t *testing.T) {
	b := newTestBinder(t)
	parts := resolveParts(t, b, typePart("prefs", "Prefs"))

	fragment := `<prefs><food>fish</food><color>black</color></prefs>`
	values, err := b.UnmarshalBody(parts, bodyElements(t, fragment))
	require.NoError(t, err)

	assert.Equal(t, Params{
		"prefs": map[string]any{
			"color": "black",
			"food":  "fish",
		},
	}, values)
}

func TestUnmarshalBody_UnknownNestedElement(t *testing.T) {
	b := newTestBinder(t)
	parts := resolveParts(t, b, typePart("pet", "Pet"))

	fragment := `<pet><id>1</id><bogus>x</bogus></pet>`
	values, err := b.UnmarshalBody(parts, bodyElements(t, fragment))
	require.Error(t, err)
	assert.Nil(t, values)

	var unexpected *UnexpectedElementError
	require.True(t, errors.As(err, &unexpected))
	assert.Equal(t, "bogus", unexpected.Name.Local)
	assert.Equal(t, []string{"name", "available"}, unexpected.Expected)
}

func TestUnmarshalBody_DecodeFailure(t *testing.T) {
	b := newTestBinder(t)
	parts := resolveParts(t, b, builtinPart("id", "int"))

	values, err := b.UnmarshalBody(parts, bodyElements(t, "<id>forty-two</id>"))
	require.Error(t, err)
	assert.Nil(t, values)
	assert.Contains(t, err.Error(), "invalid integer")
}

func TestUnmarshalBody_QualifiedReplyElements(t *testing.T) {
	b := newTestBinder(t)
	parts := resolveParts(t, b, elementPart("result", "GetPetResponse"))

	// Matching is by local name, whatever prefix the server chose.
	fragment := `<m:GetPetResponse xmlns:m="urn:com:example:petstore">` +
		`<m:pet><m:id>1</m:id><m:name>Rex</m:name><m:available>false</m:available></m:pet>` +
		`</m:GetPetResponse>`
	values, err := b.UnmarshalBody(parts, bodyElements(t, fragment))
	require.NoError(t, err)

	assert.Equal(t, Params{
		"result": map[string]any{
			"pet": []any{map[string]any{
				"id":        int64(1),
				"name":      "Rex",
				"available": false,
			}},
		},
	}, values)
}
