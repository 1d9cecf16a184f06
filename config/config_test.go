package config

import (
	"testing"

	"github.com/carlmjohnson/be"
)

func TestMaskSensitiveValue(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{
			name:     "mask key",
			value:    "sk-ant-123456",
			expected: "sk-a*********",
		},
		{
			name:     "mask short key",
			value:    "abc",
			expected: "***",
		},
		{
			name:     "empty key",
			value:    "",
			expected: "(not set)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MaskSensitiveValue(tt.value)
			be.Equal(t, tt.expected, result)
		})
	}
}

func TestRows(t *testing.T) {
	rows := Rows(Config{DataDir: "/tmp/finpal", AnthropicAPIKey: "secret-key"}, Preferences{Theme: "dark", Offline: true})

	values := make(map[string]string)
	for _, r := range rows {
		be.Equal(t, 3, len(r))
		values[r[0]] = r[1]
	}

	be.Equal(t, "dark", values["Theme"])
	be.Equal(t, "true", values["Offline Mode"])
	be.Equal(t, "file", values["Storage"])
	be.Equal(t, "mock", values["Assistant"])
	be.Equal(t, "secr******", values["Anthropic API Key"])
	be.Equal(t, "(placeholder)", values["Camera"])
}

func TestSetConfig(t *testing.T) {
	m := New()
	m.SetConfig(Config{Debug: true}, Preferences{Theme: "system"})

	be.Equal(t, len(Rows(Config{}, Preferences{})), len(m.configTable.Rows()))
}
