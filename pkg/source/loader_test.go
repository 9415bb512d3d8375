package source

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattcl/confpiler/pkg/value"
)

func setupTestFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
	return fs
}

func TestLoaderFormats(t *testing.T) {
	fs := setupTestFS(t, map[string]string{
		"conf/app.yaml": "foo:\n  bar: 10\n  baz: false\nhoof: doof\nlist: [1, two]\nempty: ~\n",
		"conf/app.yml":  "foo:\n  bar: 10\n",
		"conf/app.json": `{"foo": {"bar": 10, "baz": false}, "hoof": "doof", "list": [1, "two"], "empty": null}`,
		"conf/app.toml": "hoof = \"doof\"\nlist = [1, 2]\n\n[foo]\nbar = 10\nbaz = false\n",
		"conf/app.ini":  "hoof = doof\n\n[foo]\nbar = 10\nbaz = false\n",
	})

	tests := []struct {
		name string
		path string
		want value.Table
	}{
		{
			name: "yaml",
			path: "conf/app.yaml",
			want: value.Table{
				"foo":   value.Table{"bar": value.Int(10), "baz": value.Bool(false)},
				"hoof":  value.String("doof"),
				"list":  value.Array{value.Int(1), value.String("two")},
				"empty": value.Null{},
			},
		},
		{
			name: "yml",
			path: "conf/app.yml",
			want: value.Table{
				"foo": value.Table{"bar": value.Int(10)},
			},
		},
		{
			name: "json",
			path: "conf/app.json",
			want: value.Table{
				"foo":   value.Table{"bar": value.Int(10), "baz": value.Bool(false)},
				"hoof":  value.String("doof"),
				"list":  value.Array{value.Int(1), value.String("two")},
				"empty": value.Null{},
			},
		},
		{
			name: "toml",
			path: "conf/app.toml",
			want: value.Table{
				"foo":  value.Table{"bar": value.Int(10), "baz": value.Bool(false)},
				"hoof": value.String("doof"),
				"list": value.Array{value.Int(1), value.Int(2)},
			},
		},
		{
			name: "ini values are strings",
			path: "conf/app.ini",
			want: value.Table{
				"foo":  value.Table{"bar": value.String("10"), "baz": value.String("false")},
				"hoof": value.String("doof"),
			},
		},
	}

	loader := NewLoader(fs)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := loader.Load(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoaderKeepsScalarText(t *testing.T) {
	fs := setupTestFS(t, map[string]string{
		"ids.json": `{"id": 9007199254740993, "big": 123456789012345678, "huge": 18446744073709551616, "ratio": 0.25}`,
		"dates.yaml": "d: 2001-12-14\n" +
			"ts: 2001-12-14t21:59:43.10-05:00\n" +
			"quoted: \"2001-12-14\"\n" +
			"base: &when 2020-01-02\n" +
			"alias: *when\n" +
			"dates: [2001-12-14, 2002-01-01]\n",
	})
	loader := NewLoader(fs)

	got, err := loader.Load("ids.json")
	require.NoError(t, err)
	assert.Equal(t, value.Table{
		"id":    value.Int(9007199254740993),
		"big":   value.Int(123456789012345678),
		"huge":  value.String("18446744073709551616"),
		"ratio": value.Float(0.25),
	}, got)

	got, err = loader.Load("dates.yaml")
	require.NoError(t, err)
	assert.Equal(t, value.Table{
		"d":      value.String("2001-12-14"),
		"ts":     value.String("2001-12-14t21:59:43.10-05:00"),
		"quoted": value.String("2001-12-14"),
		"base":   value.String("2020-01-02"),
		"alias":  value.String("2020-01-02"),
		"dates":  value.Array{value.String("2001-12-14"), value.String("2002-01-01")},
	}, got)
}

func TestLoaderResolve(t *testing.T) {
	fs := setupTestFS(t, map[string]string{
		"conf/default.yaml":   "a: 1\n",
		"conf/default.json":   `{"a": 2}`,
		"conf/only.ini":       "a = 3\n",
		"conf/upper.YAML":     "a: 4\n",
		"conf/notes.txt":      "hello",
		"conf/dir.toml/x.txt": "nested",
	})
	loader := NewLoader(fs)

	tests := []struct {
		name     string
		source   string
		wantPath string
		wantExt  string
		wantErr  error
	}{
		{name: "exact file", source: "conf/default.yaml", wantPath: "conf/default.yaml", wantExt: "yaml"},
		{name: "json before yaml", source: "conf/default", wantPath: "conf/default.json", wantExt: "json"},
		{name: "ini last", source: "conf/only", wantPath: "conf/only.ini", wantExt: "ini"},
		{name: "extension is case insensitive", source: "conf/upper.YAML", wantPath: "conf/upper.YAML", wantExt: "yaml"},
		{name: "unsupported extension", source: "conf/notes.txt", wantErr: ErrUnsupportedFormat},
		{name: "missing", source: "conf/missing", wantErr: ErrSourceNotFound},
		{name: "directory is not a source", source: "conf/dir", wantErr: ErrSourceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, ext, err := loader.Resolve(tt.source)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, path)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}

func TestLoaderEmptyFile(t *testing.T) {
	fs := setupTestFS(t, map[string]string{
		"empty.yaml": "",
		"blank.toml": "\n  \n",
	})
	loader := NewLoader(fs)

	for _, path := range []string{"empty.yaml", "blank.toml"} {
		got, err := loader.Load(path)
		require.NoError(t, err)
		assert.Equal(t, value.Table{}, got)
	}
}

func TestLoaderErrors(t *testing.T) {
	fs := setupTestFS(t, map[string]string{
		"bad.json":      `{"a": `,
		"trailing.json": `{"a": 1} {"b": 2}`,
		"list.yaml":     "- 1\n- 2\n",
	})
	loader := NewLoader(fs)

	_, err := loader.Load("bad.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse bad.json")

	_, err = loader.Load("trailing.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse trailing.json")

	_, err = loader.Load("list.yaml")
	require.Error(t, err)

	_, err = loader.Load("missing.yaml")
	assert.ErrorIs(t, err, ErrSourceNotFound)
}

func TestLoaderWithParser(t *testing.T) {
	fs := setupTestFS(t, map[string]string{
		"conf/app.conf": "a = 1\n",
	})

	loader := NewLoader(fs, WithParser(".conf", IniParser()))

	got, err := loader.Load("conf/app")
	require.NoError(t, err)
	assert.Equal(t, value.Table{"a": value.String("1")}, got)
}
