package vault

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	dserrors "github.com/systmms/vaultstep/internal/errors"
)

func TestEngineFor(t *testing.T) {
	t.Parallel()

	e, err := EngineFor("1")
	require.NoError(t, err)
	assert.Equal(t, "1", e.Version())

	e, err = EngineFor("2")
	require.NoError(t, err)
	assert.Equal(t, "2", e.Version())

	_, err = EngineFor("3")
	assert.Error(t, err)
}

func TestEngine_URL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		engine Engine
		base   string
		path   string
		want   string
	}{
		{name: "v1", engine: KV1{}, base: "http://vault:8200", path: "secret/app", want: "http://vault:8200/v1/secret/app"},
		{name: "v1 trailing slash", engine: KV1{}, base: "http://vault:8200/", path: "/secret/app", want: "http://vault:8200/v1/secret/app"},
		{name: "v2", engine: KV2{}, base: "http://vault:8200", path: "secret/app", want: "http://vault:8200/v1/secret/data/app"},
		{name: "v2 nested", engine: KV2{}, base: "http://vault:8200", path: "kv/team/ci/app", want: "http://vault:8200/v1/kv/data/team/ci/app"},
		{name: "v2 mount only", engine: KV2{}, base: "http://vault:8200", path: "secret", want: "http://vault:8200/v1/secret/data/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.engine.URL(tt.base, tt.path))
		})
	}
}

func TestEngine_Unwrap(t *testing.T) {
	t.Parallel()

	data, err := KV1{}.Unwrap("secret/app", []byte(`{"data":{"key":1,"nested":{"v":"x"}},"lease_duration":0}`))
	require.NoError(t, err)
	assert.Equal(t, json.Number("1"), data["key"])
	assert.Equal(t, map[string]interface{}{"v": "x"}, data["nested"])

	data, err = KV2{}.Unwrap("secret/app", []byte(`{"data":{"data":{"key":1.50},"metadata":{"version":3}}}`))
	require.NoError(t, err)
	assert.Equal(t, json.Number("1.50"), data["key"])
	assert.NotContains(t, data, "metadata")
}

func TestEngine_Unwrap_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		engine  Engine
		body    string
		wantMsg string
	}{
		{name: "not JSON", engine: KV1{}, body: `<html>`, wantMsg: "invalid response"},
		{name: "v1 missing data", engine: KV1{}, body: `{"errors":[]}`, wantMsg: "unexpected response"},
		{name: "v1 data not object", engine: KV1{}, body: `{"data":"x"}`, wantMsg: "unexpected response"},
		{name: "v2 given v1 envelope", engine: KV2{}, body: `{"data":{"key":"v"}}`, wantMsg: "unexpected response"},
		{name: "v2 deleted version", engine: KV2{}, body: `{"data":{"data":null,"metadata":{}}}`, wantMsg: "unexpected response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.engine.Unwrap("secret/app", []byte(tt.body))
			require.Error(t, err)

			var respErr *dserrors.ResponseError
			require.ErrorAs(t, err, &respErr)
			assert.Equal(t, "secret/app", respErr.Path)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
