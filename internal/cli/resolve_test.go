package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRef(t *testing.T) {
	all := []candidate{
		{id: "abc12345-0000", name: "Todo"},
		{id: "abc99999-0000", name: "Doing"},
		{id: "fff00000-0000", name: "todo"},
	}

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{"exact id", "fff00000-0000", "fff00000-0000", ""},
		{"unique prefix", "abc1", "abc12345-0000", ""},
		{"ambiguous prefix", "abc", "", "ambiguous"},
		{"name case-insensitive", "DOING", "abc99999-0000", ""},
		{"ambiguous name", "TODO", "", "ambiguous"},
		{"unknown", "Backlog", "", "not found"},
		{"blank", "  ", "", "required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveRef("column", tt.input, all)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
