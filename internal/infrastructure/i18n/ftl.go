package i18n

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

// The resource format is a fluent-style key/value file:
//
//	# comment
//	## section header
//	error-division-by-zero = Cannot divide by zero
//	error-undefined-variable = Undefined variable "{ $name }"
//
// Comment lines, section headers and blank lines carry no data. Every other
// line must be `key = value`; values may embed `{ $name }` placeholders that
// are substituted at resolve time.

// parseMessages parses a resource into a key→template map. It fails on the
// first malformed line, so callers never observe a partial catalog.
func parseMessages(data []byte) (map[string]string, error) {
	messages := map[string]string{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if !found || !isValidKey(key) {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedResource, lineNo, line)
		}
		messages[key] = value
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read resource: %w", err)
	}
	return messages, nil
}

func isValidKey(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		b := key[i]
		switch {
		case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z':
		case i > 0 && (b == '-' || b == '_' || (b >= '0' && b <= '9')):
		default:
			return false
		}
	}
	return true
}

// Unmarshal adapts parseMessages to go-i18n's UnmarshalFunc so .ftl resources
// can be loaded straight into a Bundle.
func Unmarshal(data []byte, v interface{}) error {
	messages, err := parseMessages(data)
	if err != nil {
		return err
	}
	raw := make(map[string]interface{}, len(messages))
	for key, value := range messages {
		raw[key] = value
	}
	switch out := v.(type) {
	case *interface{}:
		*out = raw
	case *map[string]interface{}:
		*out = raw
	default:
		return fmt.Errorf("ftl: unsupported unmarshal target %T", v)
	}
	return nil
}

// expandTemplate substitutes `{ $name }` placeholders from args. In strict
// mode a placeholder without a matching argument is an error; otherwise it is
// left in place, which is the degraded behavior the UI path wants. Braces
// that do not open a placeholder pass through literally.
func expandTemplate(template string, args map[string]string, strict bool) (string, error) {
	var b strings.Builder
	for i := 0; i < len(template); {
		if template[i] != '{' {
			b.WriteByte(template[i])
			i++
			continue
		}
		end := strings.IndexByte(template[i:], '}')
		if end < 0 {
			b.WriteByte(template[i])
			i++
			continue
		}
		inner := strings.TrimSpace(template[i+1 : i+end])
		if !strings.HasPrefix(inner, "$") {
			b.WriteString(template[i : i+end+1])
			i += end + 1
			continue
		}
		name := strings.TrimSpace(inner[1:])
		value, ok := args[name]
		if !ok {
			if strict {
				return "", fmt.Errorf("%w: %s", ErrMissingArgument, name)
			}
			b.WriteString(template[i : i+end+1])
			i += end + 1
			continue
		}
		b.WriteString(value)
		i += end + 1
	}
	return b.String(), nil
}
