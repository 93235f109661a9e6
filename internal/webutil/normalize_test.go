package webutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTagsJSONArray(t *testing.T) {
	tags := ParseTags([]string{`["gpu","nvidia"," rtx "]`})
	assert.Equal(t, []string{"gpu", "nvidia", "rtx"}, tags)
}

func TestParseTagsCommaSeparated(t *testing.T) {
	tags := ParseTags([]string{"gpu, nvidia,, rtx"})
	assert.Equal(t, []string{"gpu", "nvidia", "rtx"}, tags)
}

func TestParseTagsRepeatedValues(t *testing.T) {
	tags := ParseTags([]string{"gpu", " nvidia ", ""})
	assert.Equal(t, []string{"gpu", "nvidia"}, tags)
}

func TestParseTagsMalformedJSON(t *testing.T) {
	assert.Empty(t, ParseTags([]string{`["broken`}))
}

func TestParseIndexedObjects(t *testing.T) {
	form := map[string][]string{
		"specs[0][name]":  {"VRAM"},
		"specs[0][value]": {"16 GB"},
		"specs[2][name]":  {"TDP"},
		"specs[2][value]": {"320 W"},
		"specs[1][name]":  {"Bus"},
		"other[0][name]":  {"ignored"},
		"specs[x][name]":  {"ignored"},
		"loose":           {"ignored"},
	}

	objects := ParseIndexedObjects(form, "specs")
	assert.Len(t, objects, 3)
	assert.Equal(t, "VRAM", objects[0]["name"])
	assert.Equal(t, "Bus", objects[1]["name"])
	assert.Equal(t, "TDP", objects[2]["name"])
	assert.Equal(t, "320 W", objects[2]["value"])
}

func TestParseIndexedObjectsSparseIndexesKeepOrder(t *testing.T) {
	form := map[string][]string{
		"affiliate_links[5][merchant_name]": {"Newegg"},
		"affiliate_links[1][merchant_name]": {"Amazon"},
	}

	objects := ParseIndexedObjects(form, "affiliate_links")
	assert.Len(t, objects, 2)
	assert.Equal(t, "Amazon", objects[0]["merchant_name"])
	assert.Equal(t, "Newegg", objects[1]["merchant_name"])
}

func TestParseBool(t *testing.T) {
	assert.True(t, ParseBool("true"))
	assert.True(t, ParseBool("1"))
	assert.True(t, ParseBool(" YES "))
	assert.False(t, ParseBool("false"))
	assert.False(t, ParseBool("0"))
	assert.False(t, ParseBool(""))
	assert.False(t, ParseBool("on"))
}
