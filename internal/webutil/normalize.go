package webutil

import (
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ParseTags is the single normalization point for tag input. It accepts
// the shapes clients actually send:
//
//   - a JSON array string: `["gpu","nvidia"]`
//   - a comma-separated string: "gpu, nvidia"
//   - repeated form values (pass them as distinct elements of values)
//
// Blank entries are dropped and whitespace is trimmed. Input that cannot
// be interpreted yields an empty result rather than an error; tags are
// best-effort metadata and must never fail the enclosing request.
func ParseTags(values []string) []string {
	var out []string

	appendTag := func(raw string) {
		tag := strings.TrimSpace(raw)
		if tag != "" {
			out = append(out, tag)
		}
	}

	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, "[") {
			var arr []string
			if err := json.Unmarshal([]byte(trimmed), &arr); err == nil {
				for _, tag := range arr {
					appendTag(tag)
				}
			}
			// Malformed JSON arrays are silently dropped.
			continue
		}

		for _, part := range strings.Split(trimmed, ",") {
			appendTag(part)
		}
	}

	return out
}

var indexedKeyPattern = regexp.MustCompile(`^(\w+)\[(\d+)\]\[(\w+)\]$`)

// ParseIndexedObjects is the single normalization point for
// bracket-indexed form input such as
//
//	specs[0][name]=VRAM  specs[0][value]=16 GB  specs[1][name]=TDP
//
// It collects every form key of shape prefix[i][field] into one map per
// index and returns the maps ordered by index. Keys with other prefixes
// or malformed brackets are ignored.
func ParseIndexedObjects(form map[string][]string, prefix string) []map[string]string {
	byIndex := make(map[int]map[string]string)

	for key, values := range form {
		m := indexedKeyPattern.FindStringSubmatch(key)
		if m == nil || m[1] != prefix || len(values) == 0 {
			continue
		}

		idx, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}

		if byIndex[idx] == nil {
			byIndex[idx] = make(map[string]string)
		}
		byIndex[idx][m[3]] = values[0]
	}

	indexes := make([]int, 0, len(byIndex))
	for idx := range byIndex {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	out := make([]map[string]string, 0, len(indexes))
	for _, idx := range indexes {
		out = append(out, byIndex[idx])
	}
	return out
}

// ParseBool interprets the string booleans multipart forms deliver:
// "true"/"1"/"yes" are true, everything else is false.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
