package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingValueString(t *testing.T) {
	tests := []struct {
		name  string
		value SettingValue
		want  string
	}{
		{"string", StringSetting("BGRA8"), "BGRA8"},
		{"whole number", NumberSetting(4), "4"},
		{"fractional number", NumberSetting(1.5), "1.5"},
		{"bool", BoolSetting(true), "true"},
		{"list", ListSetting("adreno", "mali"), "adreno,mali"},
		{"empty list", ListSetting(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.String())
		})
	}
}

func TestSettingValueUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		json string
		want SettingValue
	}{
		{"string", `"stable"`, StringSetting("stable")},
		{"number", `8`, NumberSetting(8)},
		{"bool", `false`, BoolSetting(false)},
		{"list", `["a","b"]`, ListSetting("a", "b")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v SettingValue
			require.NoError(t, json.Unmarshal([]byte(tt.json), &v))
			assert.Equal(t, tt.want.Kind(), v.Kind())
			assert.Equal(t, tt.want.String(), v.String())
		})
	}
}

func TestSettingValueUnmarshalRejectsObjects(t *testing.T) {
	var v SettingValue
	assert.Error(t, json.Unmarshal([]byte(`{"nested":1}`), &v))
}

func TestSettingValueRoundTripInsideProfile(t *testing.T) {
	p := &Profile{
		ID:     "p1",
		Name:   "Test",
		Source: SourceLocal,
		Settings: map[string]SettingValue{
			"translation_preset": StringSetting("compatibility"),
			"cpu_core_limit":     NumberSetting(4),
			"esync":              BoolSetting(true),
		},
	}
	data, err := json.Marshal(p)
	require.NoError(t, err)

	var got Profile
	require.NoError(t, json.Unmarshal(data, &got))
	preset, ok := got.Setting("translation_preset")
	require.True(t, ok)
	assert.Equal(t, "compatibility", preset.String())
	cores, ok := got.Setting("cpu_core_limit")
	require.True(t, ok)
	assert.Equal(t, float64(4), cores.Number())
	esync, ok := got.Setting("esync")
	require.True(t, ok)
	assert.True(t, esync.Bool())
}
