package store

import (
	"path/filepath"
	"testing"

	"entgo.io/ent"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/datapath/ent/schema"
)

// TestSchemaMatchesEntDeclarations checks that every field declared in
// ent/schema has a column in the table migrate creates.
func TestSchemaMatchesEntDeclarations(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "schema.db"))
	require.NoError(t, err)
	defer st.Close()

	tests := []struct {
		table  string
		fields []ent.Field
	}{
		{"users", schema.User{}.Fields()},
		{"user_progress", schema.UserProgress{}.Fields()},
		{"llm_requests", schema.LLMRequest{}.Fields()},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			rows, err := st.DB().Query("SELECT name FROM pragma_table_info(?)", tt.table)
			require.NoError(t, err)
			defer rows.Close()

			columns := map[string]bool{}
			for rows.Next() {
				var name string
				require.NoError(t, rows.Scan(&name))
				columns[name] = true
			}
			require.NoError(t, rows.Err())
			require.NotEmpty(t, columns, "table %s missing", tt.table)

			for _, f := range tt.fields {
				d := f.Descriptor()
				col := d.Name
				if d.StorageKey != "" {
					col = d.StorageKey
				}
				require.True(t, columns[col], "%s.%s has no column", tt.table, col)
			}
		})
	}
}
