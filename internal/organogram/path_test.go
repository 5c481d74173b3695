package organogram

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaskPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TaskPath
		wantErr bool
	}{
		{
			name:  "canonical",
			input: "Population → Generator → Faker Integration",
			want:  TaskPath{Domain: "Population", Component: "Generator", Task: "Faker Integration"},
		},
		{
			name:  "no spaces around separator",
			input: "Population→Generator→Faker Integration",
			want:  TaskPath{Domain: "Population", Component: "Generator", Task: "Faker Integration"},
		},
		{
			name:  "extra whitespace trimmed",
			input: "  Interface  →\tWeb App →  Landing Page  ",
			want:  TaskPath{Domain: "Interface", Component: "Web App", Task: "Landing Page"},
		},
		{name: "one segment", input: "Population", wantErr: true},
		{name: "two segments", input: "A → B", wantErr: true},
		{name: "four segments", input: "A → B → C → D", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
		{name: "empty domain", input: " → B → C", wantErr: true},
		{name: "empty component", input: "A →  → C", wantErr: true},
		{name: "empty task", input: "A → B → ", wantErr: true},
		{name: "ascii arrow is not a separator", input: "A -> B -> C", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTaskPath(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidPath))

				var pathErr *InvalidPathError
				require.ErrorAs(t, err, &pathErr)
				assert.Equal(t, tt.input, pathErr.Path)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJoinPath(t *testing.T) {
	path := JoinPath("Population", "Generator", "Faker Integration")
	assert.Equal(t, "Population → Generator → Faker Integration", path)

	parsed, err := ParseTaskPath(path)
	require.NoError(t, err)
	assert.Equal(t, path, parsed.String())
}

func TestInvalidPathError_Message(t *testing.T) {
	_, err := ParseTaskPath("A → B")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 3 segments, got 2")

	_, err = ParseTaskPath("A →  → C")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty component segment")
}

func TestLabels(t *testing.T) {
	assert.Len(t, Labels(), 9)
	for _, label := range Labels() {
		assert.True(t, label.Valid(), label)
	}
	assert.False(t, Label("Task) DETACH DELETE (n").Valid())
	assert.False(t, Label("task").Valid())

	labels := Labels()
	labels[0] = "Mutated"
	assert.Equal(t, LabelDomain, Labels()[0])
}
