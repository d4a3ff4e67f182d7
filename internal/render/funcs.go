package render

import (
	"fmt"
	"path"
	"strconv"
	"strings"
	"text/template"
	"unicode/utf8"
)

func funcMap() template.FuncMap {
	return template.FuncMap{
		"has":        has,
		"yamlList":   yamlList,
		"pathParent": pathParent,
		"underline":  underline,
		"years":      years,
		"copyright":  copyright,
		"imageName":  imageName,
		"lower":      strings.ToLower,
	}
}

// has reports whether list (a []any from the context) holds the string item.
// A missing list holds nothing.
func has(list any, item string) bool {
	items, _ := list.([]any)
	for _, it := range items {
		if s, ok := it.(string); ok && s == item {
			return true
		}
	}
	return false
}

// yamlList renders a list of strings as a YAML flow sequence, quoting the
// items YAML would otherwise misread (versions such as 1.20 become floats).
func yamlList(list any) (string, error) {
	if list == nil {
		return "[]", nil
	}
	items, ok := list.([]any)
	if !ok {
		return "", fmt.Errorf("yamlList: %T is not a list", list)
	}
	parts := make([]string, len(items))
	for i, it := range items {
		s, ok := it.(string)
		if !ok {
			return "", fmt.Errorf("yamlList: item %d is %T, not a string", i, it)
		}
		if s == "" || strings.ContainsAny(s, `.",:#[]{}`) {
			s = strconv.Quote(s)
		}
		parts[i] = s
	}
	return "[" + strings.Join(parts, ", ") + "]", nil
}

func pathParent(p string) string {
	return path.Dir(p)
}

func underline(s string) string {
	return strings.Repeat("=", utf8.RuneCountInString(s))
}

func year(ctx map[string]any, key string) (int64, bool) {
	switch y := ctx[key].(type) {
	case int64:
		return y, true
	case float64:
		return int64(y), true
	}
	return 0, false
}

// years renders the activity period as "2020" or "2019-2024".
func years(ctx map[string]any) string {
	first, okFirst := year(ctx, "first_activity_year")
	last, okLast := year(ctx, "last_activity_year")
	switch {
	case okFirst && okLast && first != last:
		return fmt.Sprintf("%d-%d", first, last)
	case okLast:
		return strconv.FormatInt(last, 10)
	case okFirst:
		return strconv.FormatInt(first, 10)
	}
	return ""
}

// copyright builds "Copyright (c) <years> <holder>", leaving out the parts
// the context does not know.
func copyright(ctx map[string]any, mark string) string {
	parts := []string{"Copyright", mark}
	if y := years(ctx); y != "" {
		parts = append(parts, y)
	}
	if name, _ := ctx["full_name"].(string); name != "" {
		parts = append(parts, name)
	}
	return strings.Join(parts, " ")
}

// imageName names the container image built from dockerfile: owner/name for
// the main Dockerfile and owner/name-<stem> for the others.
func imageName(ctx map[string]any, dockerfile string) string {
	owner, _ := ctx["repo_owner"].(string)
	name, _ := ctx["repo_name"].(string)
	base := "${{ github.repository }}"
	if owner != "" && name != "" {
		base = strings.ToLower(owner + "/" + name)
	}
	lower := strings.ToLower(path.Base(dockerfile))
	if lower == "dockerfile" {
		return base
	}
	return base + "-" + strings.TrimSuffix(lower, ".dockerfile")
}
