package annotations

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/morozRed/mdtree/internal/diag"
)

// Parse reads an annotation file. name is used in error positions only.
func Parse(name, text string) (*Config, error) {
	cfg := NewConfig(name)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimPrefix(text, "\ufeff")

	var current map[string]string
	for idx, line := range strings.Split(text, "\n") {
		lineNo := idx + 1
		fail := func(format string, args ...any) error {
			return &diag.Error{
				Kind:   diag.KindMalformedConfig,
				File:   name,
				Line:   lineNo,
				Detail: fmt.Sprintf(format, args...),
			}
		}

		body := strings.TrimLeft(line, " \t")
		lead := line[:len(line)-len(body)]
		if strings.Contains(lead, "\t") {
			return nil, fail("tab indentation is not allowed")
		}
		body = strings.TrimRight(body, " \t")
		if body == "" || strings.HasPrefix(body, "#") {
			continue
		}

		switch len(lead) {
		case 0:
			key, rest, err := splitKey(body)
			if err != nil {
				return nil, fail("%v", err)
			}
			if stripComment(rest) != "" {
				return nil, fail("section %q must not have a value", key)
			}
			if key == "" {
				return nil, fail("section name is empty")
			}
			key = CanonicalSection(key)
			if _, ok := cfg.Sections[key]; !ok {
				cfg.Sections[key] = map[string]string{}
			}
			current = cfg.Sections[key]
		case 2:
			if current == nil {
				return nil, fail("entry outside of any section")
			}
			key, rest, err := splitKey(body)
			if err != nil {
				return nil, fail("%v", err)
			}
			value, err := parseScalar(rest)
			if err != nil {
				return nil, fail("entry %q: %v", key, err)
			}
			if value == "" {
				return nil, fail("entry %q has no value", key)
			}
			current[NormalizeKey(key)] = value
		default:
			return nil, fail("indentation must be 0 or 2 spaces, got %d", len(lead))
		}
	}

	return cfg, nil
}

// splitKey separates "key: rest". Quoted keys may contain colons; bare keys
// end at the first ": " or at a trailing ":".
func splitKey(body string) (string, string, error) {
	if body[0] == '"' || body[0] == '\'' {
		end, err := closingQuote(body)
		if err != nil {
			return "", "", err
		}
		key, err := decodeQuoted(body[:end+1])
		if err != nil {
			return "", "", err
		}
		after := strings.TrimLeft(body[end+1:], " ")
		if !strings.HasPrefix(after, ":") {
			return "", "", fmt.Errorf("expected ':' after key %q", key)
		}
		return key, strings.TrimSpace(after[1:]), nil
	}

	if idx := strings.Index(body, ": "); idx >= 0 {
		return strings.TrimSpace(body[:idx]), strings.TrimSpace(body[idx+2:]), nil
	}
	if strings.HasSuffix(body, ":") {
		return strings.TrimSpace(strings.TrimSuffix(body, ":")), "", nil
	}
	return "", "", fmt.Errorf("expected 'key:' but found %q", body)
}

// parseScalar decodes a quoted YAML scalar or a bare value with a trailing
// comment removed.
func parseScalar(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if raw[0] != '"' && raw[0] != '\'' {
		return stripComment(raw), nil
	}

	end, err := closingQuote(raw)
	if err != nil {
		return "", err
	}
	if rest := strings.TrimSpace(raw[end+1:]); rest != "" && !strings.HasPrefix(rest, "#") {
		return "", fmt.Errorf("unexpected text %q after quoted value", rest)
	}
	return decodeQuoted(raw[:end+1])
}

// closingQuote returns the index of the quote closing s[0].
func closingQuote(s string) (int, error) {
	quote := s[0]
	for i := 1; i < len(s); i++ {
		switch {
		case quote == '"' && s[i] == '\\':
			i++
		case s[i] == quote:
			if quote == '\'' && i+1 < len(s) && s[i+1] == '\'' {
				i++
				continue
			}
			return i, nil
		}
	}
	return 0, fmt.Errorf("unterminated %c quote", quote)
}

func decodeQuoted(scalar string) (string, error) {
	var value string
	if err := yaml.Unmarshal([]byte(scalar), &value); err != nil {
		return "", fmt.Errorf("invalid quoted value %s: %w", scalar, err)
	}
	return value, nil
}

// stripComment drops a trailing "#comment" that is preceded by whitespace, or
// the whole value when it starts with "#".
func stripComment(value string) string {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "#") {
		return ""
	}
	for i := 1; i < len(value); i++ {
		if value[i] == '#' && (value[i-1] == ' ' || value[i-1] == '\t') {
			return strings.TrimSpace(value[:i])
		}
	}
	return value
}
