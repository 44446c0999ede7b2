package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTemplate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		args     map[string]string
		want     string
	}{
		{"no placeholders", "plain text", nil, "plain text"},
		{"single", `hello { $name }`, map[string]string{"name": "world"}, "hello world"},
		{"tight spacing", `hello {$name}`, map[string]string{"name": "world"}, "hello world"},
		{"repeated", `{ $a } and { $a }`, map[string]string{"a": "x"}, "x and x"},
		{"two placeholders", `{ $a }+{ $b }`, map[string]string{"a": "1", "b": "2"}, "1+2"},
		{"literal braces", "set {1, 2}", nil, "set {1, 2}"},
		{"unclosed brace", "open { brace", nil, "open { brace"},
		{"extra args ignored", "plain", map[string]string{"unused": "x"}, "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := expandTemplate(tt.template, tt.args, true)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestExpandTemplateStrictMissingArgument(t *testing.T) {
	_, err := expandTemplate(`hello { $name }`, nil, true)
	assert.ErrorIs(t, err, ErrMissingArgument)
	assert.Contains(t, err.Error(), "name")
}

func TestExpandTemplateLenientKeepsPlaceholder(t *testing.T) {
	out, err := expandTemplate(`hello { $name }`, nil, false)
	require.NoError(t, err)
	assert.Equal(t, `hello { $name }`, out)
}

func TestUnmarshal(t *testing.T) {
	data := []byte("greeting = Hello\nfarewell = Bye")

	var v interface{}
	require.NoError(t, Unmarshal(data, &v))
	m, ok := v.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Hello", m["greeting"])
	assert.Equal(t, "Bye", m["farewell"])

	var direct map[string]interface{}
	require.NoError(t, Unmarshal(data, &direct))
	assert.Equal(t, "Hello", direct["greeting"])

	var wrong int
	assert.Error(t, Unmarshal(data, &wrong))
}

func TestParseMessagesStopsAtFirstBadLine(t *testing.T) {
	_, err := parseMessages([]byte("ok = fine\nbroken"))
	assert.ErrorIs(t, err, ErrMalformedResource)
}
