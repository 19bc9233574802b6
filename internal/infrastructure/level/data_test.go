package level

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_NormalizesMissingArrays(t *testing.T) {
	d, err := ParseJSON([]byte(`{
		"levelId": "bare",
		"spawn": {"x": 10, "y": 100},
		"solids": [{"x": 0, "y": 100, "w": 200, "h": 20}]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "bare", d.LevelID)
	assert.NotNil(t, d.Coins)
	assert.Empty(t, d.Coins)
	assert.NotNil(t, d.Enemies)
	assert.Empty(t, d.Enemies)
	assert.Nil(t, d.Goal)
}

func TestParseJSON_FillsCoinIDs(t *testing.T) {
	d, err := ParseJSON([]byte(`{
		"levelId": "coins",
		"solids": [{"x": 0, "y": 100, "w": 200, "h": 20}],
		"coins": [{"x": 1, "y": 2}, {"id": "gold", "x": 3, "y": 4}]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "coin-0", d.Coins[0].ID)
	assert.Equal(t, "gold", d.Coins[1].ID)
}

func TestParseJSON_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"malformed", `{"levelId":`, nil},
		{"no solids", `{"levelId": "empty", "solids": []}`, ErrNoSolids},
		{"missing solids", `{"levelId": "empty"}`, ErrNoSolids},
		{"degenerate solid", `{"levelId": "flat", "solids": [{"x": 0, "y": 0, "w": 10, "h": 0}]}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.data))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
