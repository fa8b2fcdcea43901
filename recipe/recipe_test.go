package recipe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndBuild(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		literal string
		flags   string
	}{
		{
			name: "start",
			yaml: `
steps:
  - start: true
    exactly: 1
    of: "p"
`,
			literal: `(?:^)(?:(?:p){1,1})`,
		},
		{
			name: "either or",
			yaml: `
steps:
  - start: true
  - either: {steps: [{exactly: 1, of: "p"}]}
    or: {steps: [{exactly: 2, of: "q"}]}
    end: true
`,
			literal: `(?:^)(?:(?:(?:(?:p){1,1}))|(?:(?:(?:q){2,2})))(?:$)`,
		},
		{
			name: "min max and classes",
			yaml: `
flags: [multi_line, case_insensitive]
steps:
  - min: 1
    max: 3
    from: "pq-"
  - exactly: 1
    not_from: "]"
    reluctant: true
    capture: true
`,
			literal: `(?:(?:[pq\-]){1,3})((?:[^\]]){1,1}?)`,
			flags:   "im",
		},
		{
			name: "like and lookahead",
			yaml: `
steps:
  - exactly: 2
    like:
      steps:
        - min: 1
          of: "a.b"
  - max: 1
    any: true
    followed_by: {steps: [{exactly: 1, of: "x"}]}
    not_followed_by: {steps: [{exactly: 1, of: "y"}]}
`,
			literal: `(?:(?:(?:(?:a\.b){1,})){2,2})(?:(?:.){0,1})(?=(?:(?:x){1,1}))(?!(?:(?:y){1,1}))`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)

			b := r.Builder()
			assert.Equal(t, tt.literal, b.Literal())
			assert.Equal(t, tt.flags, b.Flags())
			assert.NoError(t, b.Err())
		})
	}
}

func TestBuiltRecipeMatches(t *testing.T) {
	r, err := Parse([]byte(`
steps:
  - min: 1
    max: 3
    of: p
  - exactly: 1
    of: dart
    capture: true
  - exactly: 1
    from: pqr
`))
	require.NoError(t, err)

	p, err := r.Builder().Compile()
	require.NoError(t, err)

	m := p.FindStringSubmatch("pdartq")
	require.Len(t, m, 2)
	assert.Equal(t, "dart", m[1])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want []error
	}{
		{
			name: "unknown flag",
			yaml: "flags: [dot_all]\nsteps: []\n",
			want: []error{ErrUnknownFlag},
		},
		{
			name: "either without or",
			yaml: "steps:\n  - either: {steps: [{exactly: 1, of: p}]}\n",
			want: []error{ErrUnpairedAlternation},
		},
		{
			name: "two specs",
			yaml: "steps:\n  - exactly: 1\n    of: p\n    any: true\n",
			want: []error{ErrConflictingSpec},
		},
		{
			name: "nested problems are collected",
			yaml: `
flags: [sticky]
steps:
  - exactly: 1
    like:
      steps:
        - or: {steps: []}
`,
			want: []error{ErrUnknownFlag, ErrUnpairedAlternation},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			for _, want := range tt.want {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("steps: [\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recipe: decode")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "word.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps:\n  - min: 1\n    from: abc\n"), 0o600))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, `(?:(?:[abc]){1,})`, r.Builder().Literal())

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
