package members

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/kovetskiy/tally/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountMembers(t *testing.T) {
	tests := map[string]struct {
		input       string
		want        int
		expectedErr string
	}{
		"sequence":                  {input: "members: [a, b, c]", want: 3},
		"block sequence":            {input: "members:\n  - a\n  - b\n", want: 2},
		"empty sequence":            {input: "members: []", want: 0},
		"absent":                    {input: "name: x", want: 0},
		"null":                      {input: "members:", want: 0},
		"explicit null":             {input: "members: ~", want: 0},
		"mapping":                   {input: "members: {a: 1, b: 2}", want: 2},
		"false":                     {input: "members: false", want: 0},
		"zero":                      {input: "members: 0", want: 0},
		"empty string":              {input: `members: ""`, want: 0},
		"alias":                     {input: "team: &t [a, b]\nmembers: *t", want: 2},
		"duplicate key":             {input: "members: [a]\nmembers: [a, b]", want: 2},
		"nested ignored":            {input: "group:\n  members: [a, b]", want: 0},
		"non-string key":            {input: "1: [a, b]", want: 0},
		"scalar":                    {input: "members: alice", expectedErr: "not a list"},
		"number":                    {input: "members: 3", expectedErr: "not a list"},
		"empty document":            {input: "", expectedErr: "document is empty"},
		"comment only":              {input: "# nothing here\n", expectedErr: "document is empty"},
		"null document":             {input: "~", expectedErr: "not a mapping"},
		"list document":             {input: "- a\n- b", expectedErr: "not a mapping"},
		"malformed":                 {input: "members: [a, b", expectedErr: "unable to parse yaml"},
		"multi document":            {input: "members: [a]\n---\nmembers: [a, b]\n", expectedErr: "expected a single document"},
		"malformed second document": {input: "members: [a]\n---\nmembers: [unclosed\n", expectedErr: "unable to parse yaml"},
		"merge mapping":             {input: "<<: {members: [a, b]}\n", want: 2},
		"merge alias":               {input: "base: &base\n  members: [a, b, c]\nteam:\n  x: 1\n<<: *base\n", want: 3},
		"merge sequence":            {input: "<<: [{name: x}, {members: [a]}, {members: [a, b]}]\n", want: 1},
		"explicit wins":             {input: "<<: {members: [a, b]}\nmembers: [a]\n", want: 1},
		"merge without members":     {input: "<<: {name: x}\n", want: 0},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			actual, err := CountMembers([]byte(tt.input))
			if tt.expectedErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, actual)
			}
		})
	}
}

func TestCountMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	_, err := Count(vfs.LocalOS, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")
}

func TestCountReportsPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("members: [a"), 0o644))

	_, err := Count(vfs.LocalOS, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestScan(t *testing.T) {
	scanner := NewScanner(vfs.LocalOS)

	report, err := scanner.Scan("testdata/sample_data/*.yaml")
	require.NoError(t, err)

	assert.Equal(t, "testdata/sample_data/*.yaml", report.Pattern)
	assert.Equal(t, []Entry{
		{Path: filepath.FromSlash("testdata/sample_data/astronomy.yaml"), Members: 3},
		{Path: filepath.FromSlash("testdata/sample_data/biology.yaml"), Members: 0},
		{Path: filepath.FromSlash("testdata/sample_data/chemistry.yaml"), Members: 0},
		{Path: filepath.FromSlash("testdata/sample_data/dynamics.yaml"), Members: 0},
	}, report.Entries)
}

func TestScanNoMatches(t *testing.T) {
	report, err := NewScanner(vfs.LocalOS).Scan(filepath.Join(t.TempDir(), "*.yaml"))
	require.NoError(t, err)
	assert.Empty(t, report.Entries)
}

func TestScanBadPattern(t *testing.T) {
	_, err := NewScanner(vfs.LocalOS).Scan("[")
	assert.Error(t, err)
}

func TestScanRecursive(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "a", "b"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "top.yaml"), []byte("members: [x]"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a", "b", "deep.yaml"), []byte("members: [x, y]"), 0o644))

	report, err := NewScanner(vfs.LocalOS).Scan(filepath.Join(dir, "**", "*.yaml"))
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Path: filepath.Join(dir, "a", "b", "deep.yaml"), Members: 2},
		{Path: filepath.Join(dir, "top.yaml"), Members: 1},
	}, report.Entries)
}

func TestScanErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("members: [x]"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("members: [x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.yaml"), []byte("members: [x, y]"), 0o644))

	pattern := filepath.Join(dir, "*.yaml")

	t.Run("abort by default", func(t *testing.T) {
		_, err := NewScanner(vfs.LocalOS).Scan(pattern)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "b.yaml")
	})

	t.Run("skip", func(t *testing.T) {
		var failed []string

		scanner := NewScanner(vfs.LocalOS)
		scanner.OnError = func(err error, path string) error {
			failed = append(failed, filepath.Base(path))
			return nil
		}

		report, err := scanner.Scan(pattern)
		require.NoError(t, err)
		assert.Equal(t, []string{"b.yaml"}, failed)
		assert.Equal(t, []Entry{
			{Path: filepath.Join(dir, "a.yaml"), Members: 1},
			{Path: filepath.Join(dir, "c.yaml"), Members: 2},
		}, report.Entries)
	})

	t.Run("handler aborts", func(t *testing.T) {
		stop := errors.New("stop")

		scanner := NewScanner(vfs.LocalOS)
		scanner.OnError = func(err error, path string) error {
			return stop
		}

		_, err := scanner.Scan(pattern)
		assert.Equal(t, stop, err)
	})
}

func TestScanFS(t *testing.T) {
	opener := vfs.FSOpener{FS: fstest.MapFS{
		"sample_data/a.yaml": &fstest.MapFile{Data: []byte("members: [x, y]")},
		"sample_data/b.yaml": &fstest.MapFile{Data: []byte("name: b")},
		"sample_data/c.txt":  &fstest.MapFile{Data: []byte("members: [x]")},
		"other/sample.yaml":  &fstest.MapFile{Data: []byte("members: [x]")},
	}}

	report, err := NewScanner(opener).Scan(DefaultPattern)
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Path: "sample_data/a.yaml", Members: 2},
		{Path: "sample_data/b.yaml", Members: 0},
	}, report.Entries)
}
