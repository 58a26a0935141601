package llm

import "strings"

// ExtractText pulls the user-safe text payload out of a loosely-typed model
// response. It is a total function: unrecognized shapes yield "" rather than
// an error, and the whole object is never stringified — upstream responses
// may embed client credentials or configuration that must not reach callers.
//
// Extraction strategies are tried in a fixed order; the first match wins.
func ExtractText(resp any) string {
	if resp == nil {
		return ""
	}
	if s, ok := resp.(string); ok {
		return s
	}

	obj, ok := resp.(map[string]any)
	if !ok {
		return ""
	}

	for _, strategy := range extractors {
		if text, ok := strategy(obj); ok {
			return text
		}
	}
	return ""
}

type extractor func(map[string]any) (string, bool)

var extractors = []extractor{
	stringField("text"),
	stringField("outputText"),
	stringField("output"),
	fromOutputArray,
	fromResultArray,
	fromChoices,
}

func stringField(key string) extractor {
	return func(obj map[string]any) (string, bool) {
		s, ok := obj[key].(string)
		return s, ok
	}
}

// fromOutputArray handles responses-API style payloads: output is an array
// whose entries are strings, {content: [{text}]} items, or {text} items.
func fromOutputArray(obj map[string]any) (string, bool) {
	entries, ok := obj["output"].([]any)
	if !ok {
		return "", false
	}

	var parts []string
	for _, entry := range entries {
		switch e := entry.(type) {
		case string:
			if e != "" {
				parts = append(parts, e)
			}
		case map[string]any:
			if text := entryText(e); text != "" {
				parts = append(parts, text)
			}
		}
	}
	return strings.Join(parts, "\n"), true
}

func entryText(entry map[string]any) string {
	if content, ok := entry["content"].([]any); ok && len(content) > 0 {
		if first, ok := content[0].(map[string]any); ok {
			if text, ok := first["text"].(string); ok {
				return text
			}
		}
	}
	if text, ok := entry["text"].(string); ok {
		return text
	}
	return ""
}

// fromResultArray handles {result: [{content: {text}}]} payloads.
func fromResultArray(obj map[string]any) (string, bool) {
	entries, ok := obj["result"].([]any)
	if !ok {
		return "", false
	}

	for _, entry := range entries {
		e, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		content, ok := e["content"].(map[string]any)
		if !ok {
			continue
		}
		if text, ok := content["text"].(string); ok {
			return text, true
		}
	}
	return "", false
}

// fromChoices handles chat-completions style payloads.
func fromChoices(obj map[string]any) (string, bool) {
	choices, ok := obj["choices"].([]any)
	if !ok || len(choices) == 0 {
		return "", false
	}

	first, ok := choices[0].(map[string]any)
	if !ok {
		return "", false
	}

	if message, ok := first["message"].(map[string]any); ok {
		if content, ok := message["content"].(string); ok {
			return content, true
		}
	}
	if text, ok := first["text"].(string); ok {
		return text, true
	}
	return "", false
}
