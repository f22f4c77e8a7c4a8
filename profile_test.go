package finder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadProfile(t *testing.T) {
	t.Run("common", func(t *testing.T) {
		data := `
min_size = 16
section  = ".code"
output   = "caves.txt"
`
		profile, err := LoadProfile([]byte(data))
		require.NoError(t, err)

		require.Equal(t, uint64(16), profile.MinSize)
		require.Equal(t, ".code", profile.Section)
		require.Equal(t, "caves.txt", profile.Output)
	})

	t.Run("empty document", func(t *testing.T) {
		profile, err := LoadProfile(nil)
		require.NoError(t, err)

		require.Zero(t, profile.MinSize)
		require.Empty(t, profile.Section)
		require.Empty(t, profile.Output)
	})

	t.Run("invalid toml", func(t *testing.T) {
		profile, err := LoadProfile([]byte("min_size = ["))
		require.Error(t, err)
		require.Nil(t, profile)
	})

	t.Run("invalid section name", func(t *testing.T) {
		profile, err := LoadProfile([]byte(`section = ".waytoolongname"`))
		errStr := "section name size can not be longer than 8 bytes"
		require.EqualError(t, err, errStr)
		require.Nil(t, profile)
	})
}

func TestProfile_Check(t *testing.T) {
	t.Run("common", func(t *testing.T) {
		profile := Profile{
			MinSize: 32,
			Section: ".text",
		}

		err := profile.Check()
		require.NoError(t, err)
	})

	t.Run("empty section", func(t *testing.T) {
		profile := Profile{}

		err := profile.Check()
		require.NoError(t, err)
	})
}
