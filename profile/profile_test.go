package profile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aither64/haveup/profile"
)

func testStore() profile.Store {
	return profile.Store{
		Default: profile.Section{
			Name: profile.DefaultName,
			Values: map[string]string{
				"publicurl": "http://x/pub",
				"uploadurl": "user@h:/var/www",
				"hashname":  "false",
			},
		},
		Sections: []profile.Section{
			{Name: "images-large", Values: map[string]string{"subdir": "large"}},
			{Name: "images", Values: map[string]string{"subdir": "img", "hashname": "true"}},
			{Name: "img", Values: map[string]string{"subdir": "short"}},
			{Name: "docs", Values: map[string]string{"publicurl": "http://docs/pub"}},
		},
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		profile    string
		wantName   string
		wantSubdir string
	}{
		{
			name:     "default sentinel",
			profile:  profile.DefaultName,
			wantName: profile.DefaultName,
		},
		{
			name:     "empty name is default",
			profile:  "",
			wantName: profile.DefaultName,
		},
		{
			name:       "exact match wins over earlier prefix match",
			profile:    "images",
			wantName:   "images",
			wantSubdir: "img",
		},
		{
			name:       "exact match",
			profile:    "img",
			wantName:   "img",
			wantSubdir: "short",
		},
		{
			name:       "first declared prefix match wins",
			profile:    "ima",
			wantName:   "images-large",
			wantSubdir: "large",
		},
		{
			name:       "prefix is literal",
			profile:    "do",
			wantName:   "docs",
			wantSubdir: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := profile.Resolve(tt.profile, testStore())
			require.NoError(t, err)

			assert.Equal(t, tt.wantName, p.Name)
			subdir, _ := p.Get("subdir")
			assert.Equal(t, tt.wantSubdir, subdir)
		})
	}
}

func TestResolve_LayersOverDefault(t *testing.T) {
	p, err := profile.Resolve("images", testStore())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"publicurl": "http://x/pub",
		"uploadurl": "user@h:/var/www",
		"hashname":  "true",
		"subdir":    "img",
	}, p.Values)

	p, err = profile.Resolve("docs", testStore())
	require.NoError(t, err)
	publicURL, ok := p.Get("publicurl")
	assert.True(t, ok)
	assert.Equal(t, "http://docs/pub", publicURL)
}

func TestResolve_DoesNotMutateStore(t *testing.T) {
	store := testStore()

	p, err := profile.Resolve("images", store)
	require.NoError(t, err)
	p.Values["publicurl"] = "changed"

	assert.Equal(t, "http://x/pub", store.Default.Values["publicurl"])
	assert.Equal(t, "img", store.Sections[1].Values["subdir"])
}

func TestResolve_NotFound(t *testing.T) {
	_, err := profile.Resolve("video", testStore())
	require.Error(t, err)
	assert.ErrorIs(t, err, profile.ErrProfileNotFound)
	assert.Contains(t, err.Error(), "video")
}

func TestResolve_DefaultWithEmptyStore(t *testing.T) {
	p, err := profile.Resolve(profile.DefaultName, profile.Store{})
	require.NoError(t, err)
	assert.Equal(t, profile.DefaultName, p.Name)
	assert.Empty(t, p.Values)

	_, err = profile.Resolve("anything", profile.Store{})
	assert.ErrorIs(t, err, profile.ErrProfileNotFound)
}

func TestStore_Names(t *testing.T) {
	assert.Equal(t, []string{"images-large", "images", "img", "docs"}, testStore().Names())
}

func TestNewSection(t *testing.T) {
	t.Run("stringifies scalars and lists", func(t *testing.T) {
		s, err := profile.NewSection("images", map[string]any{
			"publicurl": "http://x/pub",
			"hashname":  true,
			"port":      22,
			"checksum":  []any{"md5", "sha256"},
			"empty":     nil,
		})
		require.NoError(t, err)

		assert.Equal(t, "images", s.Name)
		assert.Equal(t, map[string]string{
			"publicurl": "http://x/pub",
			"hashname":  "true",
			"port":      "22",
			"checksum":  "md5,sha256",
			"empty":     "",
		}, s.Values)
	})

	t.Run("requires a name", func(t *testing.T) {
		_, err := profile.NewSection("", map[string]any{"subdir": "img"})
		assert.ErrorIs(t, err, profile.ErrUnnamedSection)
	})

	t.Run("rejects nested maps", func(t *testing.T) {
		_, err := profile.NewSection("images", map[string]any{
			"nested": map[string]any{"a": "b"},
		})
		assert.Error(t, err)
	})
}
