package prefs

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const path = "/home/user/.config/canvasplay/state.json"

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	s := NewStore(afero.NewMemMapFs(), path)
	p, err := s.Load()
	assert.Error(t, err)
	assert.Equal(t, Defaults(), p)
	assert.True(t, p.Autoplay)
	assert.Equal(t, 1.0, p.Volume)
	assert.Empty(t, p.CurrentVideoId)
}

func TestLoadCorruptFileGivesDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, path, []byte("{autoplay: "), 0o644))

	p, err := NewStore(fs, path).Load()
	assert.Error(t, err)
	assert.Equal(t, Defaults(), p)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewStore(fs, path)

	want := Prefs{Autoplay: false, Volume: 0.35, CurrentVideoId: "video-7"}
	require.NoError(t, s.Save(want))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	raw, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"currentVideoId": "video-7"`)
}

func TestLoadPartialFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, path, []byte(`{"currentVideoId": "b"}`), 0o644))

	p, err := NewStore(fs, path).Load()
	require.NoError(t, err)
	assert.Equal(t, Prefs{Autoplay: true, Volume: 1, CurrentVideoId: "b"}, p)
}

func TestLoadClampsVolume(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, path, []byte(`{"volume": 4.5, "autoplay": false}`), 0o644))

	p, err := NewStore(fs, path).Load()
	require.NoError(t, err)
	assert.Equal(t, 1.0, p.Volume)
	assert.False(t, p.Autoplay)
}

func TestLoadMalformedFieldsKeepDefaults(t *testing.T) {
	cases := []struct {
		name string
		body string
		want Prefs
	}{
		{"both bad", `{"autoplay": "yes please", "volume": "loud"}`, Prefs{Autoplay: true, Volume: 1}},
		{"bad volume", `{"autoplay": false, "volume": [1], "currentVideoId": "c"}`, Prefs{Autoplay: false, Volume: 1, CurrentVideoId: "c"}},
		{"bad autoplay", `{"autoplay": {"on": true}, "volume": 0.2}`, Prefs{Autoplay: true, Volume: 0.2}},
		{"bad id", `{"currentVideoId": {"id": "x"}}`, Prefs{Autoplay: true, Volume: 1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, path, []byte(c.body), 0o644))

			p, err := NewStore(fs, path).Load()
			require.NoError(t, err)
			assert.Equal(t, c.want, p)
		})
	}
}

func TestSaveFailsOnReadOnlyFs(t *testing.T) {
	s := NewStore(afero.NewReadOnlyFs(afero.NewMemMapFs()), path)
	assert.Error(t, s.Save(Defaults()))
}

func TestDefaultPath(t *testing.T) {
	assert.Contains(t, DefaultPath(), "canvasplay")
	assert.Equal(t, path, NewStore(nil, path).Path())
}
