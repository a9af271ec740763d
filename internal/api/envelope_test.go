package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ATRam3/campus-safe-admin-sub000/internal/models"
)

func TestDecodePayload(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    []string
		wantErr bool
	}{
		{
			name: "single envelope",
			body: `{"data": ["a", "b"]}`,
			want: []string{"a", "b"},
		},
		{
			name: "double-wrapped envelope",
			body: `{"data": {"data": ["a", "b"]}}`,
			want: []string{"a", "b"},
		},
		{
			name: "null data decodes as empty",
			body: `{"data": null}`,
			want: nil,
		},
		{
			name: "empty object body decodes as empty",
			body: `{}`,
			want: nil,
		},
		{
			name:    "non-envelope body fails loudly",
			body:    `["a", "b"]`,
			wantErr: true,
		},
		{
			name:    "missing data field with other keys fails loudly",
			body:    `{"result": ["a"]}`,
			wantErr: true,
		},
		{
			name:    "mismatched data shape fails loudly",
			body:    `{"data": {"name": "x"}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			err := decodePayload([]byte(tt.body), &got)
			if tt.wantErr {
				var apiErr *Error
				require.Error(t, err)
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, KindBadEnvelope, apiErr.Kind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodePayload_Object(t *testing.T) {
	body := `{"data": {"id": "z1", "name": "Library Steps", "severity": "high"}}`

	var zone models.Zone
	require.NoError(t, decodePayload([]byte(body), &zone))
	assert.Equal(t, "z1", zone.ID)
	assert.Equal(t, "Library Steps", zone.Name)
	assert.Equal(t, models.SeverityHigh, zone.Severity)
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "radius out of range", errorMessage([]byte(`{"message": "radius out of range"}`)))
	assert.Equal(t, "boom", errorMessage([]byte(`{"error": "boom"}`)))
	assert.Equal(t, "", errorMessage([]byte(`not json`)))
}
