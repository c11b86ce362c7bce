package document

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// FrontMatter splits a leading YAML block delimited by --- lines from the
// Markdown body. A missing or malformed block yields nil and the input.
func FrontMatter(markdown string) (map[string]interface{}, string) {
	lines := strings.Split(markdown, "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[0]) != "---" {
		return nil, markdown
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != "---" {
			continue
		}
		var meta map[string]interface{}
		if err := yaml.Unmarshal([]byte(strings.Join(lines[1:i], "\n")), &meta); err != nil {
			return nil, markdown
		}
		return meta, strings.Join(lines[i+1:], "\n")
	}

	return nil, markdown
}

// Title returns the document title: the front matter title if any,
// otherwise the first level-one heading.
func Title(markdown string) string {
	meta, body := FrontMatter(markdown)
	if title, ok := meta["title"].(string); ok && strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title)
	}

	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}
