package confkit

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	t.Setenv("CONFKIT_TEST_DIR", "sub")

	assert.Equal(t, filepath.Join("/etc/app", "market.yaml"), ResolvePath("/etc/app", "market.yaml"))
	assert.Equal(t, "/abs/market.yaml", ResolvePath("/etc/app", "/abs/market.yaml"))
	assert.Equal(t, filepath.Join("/etc/app", "sub", "market.yaml"),
		ResolvePath("/etc/app", "${CONFKIT_TEST_DIR}/market.yaml"))
}

func TestBaseDir(t *testing.T) {
	assert.Equal(t, "/etc/app", BaseDir("/etc/app/signalist.yaml"))
}

type sectionPayload struct {
	Name string
}

func TestSectionHydrate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "section.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: test"), 0o644))

	loader := func(p string) (*sectionPayload, error) {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		assert.Equal(t, "name: test", string(data))
		return &sectionPayload{Name: "test"}, nil
	}

	s := Section[sectionPayload]{File: "section.yaml"}
	require.NoError(t, s.Hydrate(dir, loader))
	require.NotNil(t, s.Value)
	assert.Equal(t, "test", s.Value.Name)
	assert.Equal(t, path, s.File)
}

func TestSectionHydrateEmptyFileIsNoop(t *testing.T) {
	s := Section[sectionPayload]{}
	require.NoError(t, s.Hydrate("/anywhere", func(string) (*sectionPayload, error) {
		return nil, errors.New("loader should not run")
	}))
	assert.Nil(t, s.Value)
}

func TestSectionHydratePropagatesLoaderError(t *testing.T) {
	s := Section[sectionPayload]{File: "missing.yaml"}
	err := s.Hydrate(t.TempDir(), func(p string) (*sectionPayload, error) {
		return nil, os.ErrNotExist
	})
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Nil(t, s.Value)
}

func TestProjectRoot(t *testing.T) {
	root, err := ProjectRoot()
	require.NoError(t, err)
	require.NotEmpty(t, root)
	assert.True(t, fileExists(filepath.Join(root, "go.mod")), "project root should contain go.mod")
}
