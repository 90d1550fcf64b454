package envfile_test

import (
	"strings"
	"testing"

	"github.com/arthur-debert/archup/pkg/envfile"
	"github.com/arthur-debert/archup/pkg/errors"
	"github.com/arthur-debert/archup/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	fs := testutil.NewMemFS(t, map[string]string{
		"/cfg/project.env": "DB_NAME='shopdb'\nDB_NAME_SUFFIX=x\nPROJECT_NAME=\"shop\"\nEMPTY=\n# comment\n",
	})

	tests := []struct {
		name string
		path string
		key  string
		def  string
		want string
	}{
		{"single quoted", "/cfg/project.env", envfile.KeyDBName, "myDatabase", "shopdb"},
		{"double quoted", "/cfg/project.env", envfile.KeyProjectName, "myProject", "shop"},
		{"absent key", "/cfg/project.env", envfile.KeyDBPassword, "root", "root"},
		{"empty value", "/cfg/project.env", "EMPTY", "fallback", "fallback"},
		{"missing file", "/cfg/missing.env", envfile.KeyDBName, "myDatabase", "myDatabase"},
		{"no path", "", envfile.KeyDBName, "myDatabase", "myDatabase"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := envfile.Lookup(fs, tt.path, tt.key, tt.def)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewSecretKey(t *testing.T) {
	key, err := envfile.NewSecretKey(envfile.SecretKeyLength)
	require.NoError(t, err)
	assert.Len(t, key, 64)
	assert.False(t, strings.ContainsAny(key, "!\"'\\$`"))

	other, err := envfile.NewSecretKey(envfile.SecretKeyLength)
	require.NoError(t, err)
	assert.NotEqual(t, key, other)

	_, err = envfile.NewSecretKey(0)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestCompose(t *testing.T) {
	tests := []struct {
		name   string
		source string
		extra  string
		want   string
	}{
		{
			name:   "appends secret",
			source: "A=1",
			extra:  "B=two\n",
			want:   "A=1\nB=\"two\"\nSECRET_KEY=\"s\"\n",
		},
		{
			name: "empty sources",
			want: "SECRET_KEY=\"s\"\n",
		},
		{
			name:   "extra overrides source in place",
			source: "DEBUG=False\nNAME=shop\n",
			extra:  "DEBUG=True\n",
			want:   "DEBUG=\"True\"\nNAME=\"shop\"\nSECRET_KEY=\"s\"\n",
		},
		{
			name:   "source secret is kept",
			source: "SECRET_KEY=\"from-source\"\nDEBUG=False\n",
			extra:  "DEBUG=True\n",
			want:   "SECRET_KEY=\"from-source\"\nDEBUG=\"True\"\n",
		},
		{
			name:   "empty secret is replaced",
			source: "SECRET_KEY=\nA=1\n",
			want:   "SECRET_KEY=\"s\"\nA=1\n",
		},
		{
			name:   "repeated key within one file",
			source: "A=1\nB=2\nA=3\n",
			want:   "A=3\nB=2\nSECRET_KEY=\"s\"\n",
		},
		{
			name:   "leading zeros survive",
			source: "PORT=0800\n",
			want:   "PORT=\"0800\"\nSECRET_KEY=\"s\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := envfile.Compose([]byte(tt.source), []byte(tt.extra), "s")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			values, err := envfile.Parse([]byte(got))
			require.NoError(t, err)
			assert.Equal(t, strings.Count(got, "\n"), len(values), "every key appears once")
		})
	}
}

func TestGenerate(t *testing.T) {
	opts := envfile.GenerateOptions{
		Source: "/cfg/project.env",
		Extra:  "/work/shop/build/env.txt",
		Dest:   "/work/.env",
	}

	t.Run("creates then leaves unchanged", func(t *testing.T) {
		fs := testutil.NewMemFS(t, map[string]string{
			opts.Source: "DB_NAME=shopdb\n",
			opts.Extra:  "DEBUG=True\n",
		})

		outcome, err := envfile.Generate(fs, opts)
		require.NoError(t, err)
		assert.Equal(t, envfile.Created, outcome)

		first := testutil.ReadFile(t, fs, opts.Dest)
		assert.True(t, strings.HasPrefix(first, "DB_NAME=\"shopdb\"\nDEBUG=\"True\"\nSECRET_KEY=\""))

		values, err := envfile.Parse([]byte(first))
		require.NoError(t, err)
		assert.Len(t, values[envfile.KeySecretKey], envfile.SecretKeyLength)

		outcome, err = envfile.Generate(fs, opts)
		require.NoError(t, err)
		assert.Equal(t, envfile.Unchanged, outcome)
		assert.Equal(t, first, testutil.ReadFile(t, fs, opts.Dest))
	})

	t.Run("updates and keeps secret", func(t *testing.T) {
		fs := testutil.NewMemFS(t, map[string]string{
			opts.Source: "DB_NAME=newdb\n",
			opts.Extra:  "DEBUG=False\n",
			opts.Dest:   "DB_NAME=old\nSECRET_KEY=\"keepme\"\n",
		})

		outcome, err := envfile.Generate(fs, opts)
		require.NoError(t, err)
		assert.Equal(t, envfile.Updated, outcome)
		assert.Equal(t, "DB_NAME=\"newdb\"\nDEBUG=\"False\"\nSECRET_KEY=\"keepme\"\n", testutil.ReadFile(t, fs, opts.Dest))
	})

	t.Run("keys shared by both inputs are written once", func(t *testing.T) {
		fs := testutil.NewMemFS(t, map[string]string{
			opts.Source: "SECRET_KEY=\"from-source\"\nDEBUG=False\n",
			opts.Extra:  "DEBUG=True\n",
			opts.Dest:   "SECRET_KEY=\"stale\"\n",
		})

		_, err := envfile.Generate(fs, opts)
		require.NoError(t, err)

		got := testutil.ReadFile(t, fs, opts.Dest)
		assert.Equal(t, 1, strings.Count(got, "SECRET_KEY="))
		assert.Equal(t, 1, strings.Count(got, "DEBUG="))

		values, err := envfile.Parse([]byte(got))
		require.NoError(t, err)
		assert.Equal(t, "from-source", values[envfile.KeySecretKey])
		assert.Equal(t, "True", values["DEBUG"])
	})

	t.Run("missing project env.txt", func(t *testing.T) {
		fs := testutil.NewMemFS(t, map[string]string{opts.Source: "A=1\n"})

		_, err := envfile.Generate(fs, opts)
		assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
		assert.Equal(t, opts.Extra, errors.GetErrorDetails(err)["path"])
	})
}
