package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glp360/riskscore/internal/answers"
	"github.com/glp360/riskscore/internal/catalog"
	"github.com/glp360/riskscore/internal/visibility"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadAnswers(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
		want answers.Set
	}{
		{
			name: "yaml scalars and lists",
			file: "a.yaml",
			body: "q1: q1_c\nq8: [q8_a, q8_d]\n",
			want: answers.Set{"q1": {"q1_c"}, "q8": {"q8_a", "q8_d"}},
		},
		{
			name: "json",
			file: "a.json",
			body: `{"q1": "q1_b", "q12": ["q12_d"]}`,
			want: answers.Set{"q1": {"q1_b"}, "q12": {"q12_d"}},
		},
		{
			name: "empty yaml",
			file: "a.yml",
			body: "",
			want: answers.Set{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readAnswers(writeFile(t, tt.file, tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadAnswers_Invalid(t *testing.T) {
	_, err := readAnswers(writeFile(t, "a.json", `{"q1": 3}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse answers")

	_, err = readAnswers(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestCheckBranch(t *testing.T) {
	assert.NoError(t, checkBranch(catalog.Default(), visibility.DefaultRules()))

	c, err := catalog.New([]catalog.Question{
		{ID: "q12", Type: catalog.TypeSingle, Options: []catalog.Option{{ID: "a", Label: "A"}}},
	})
	require.NoError(t, err)

	err = checkBranch(c, visibility.DefaultRules())
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, `"q12" is inside the always-visible prefix`)
	assert.Contains(t, msg, `"q12" must be multi-select`)
	assert.Contains(t, msg, `"q13" is missing`)
	assert.Equal(t, 1, strings.Count(msg, `"q14"`))
}

func TestMaxPoints(t *testing.T) {
	c := catalog.Default()

	q1, _ := c.Question("q1")
	assert.Equal(t, 4, maxPoints(q1))

	q12, _ := c.Question("q12")
	assert.Equal(t, 10, maxPoints(q12))
}
