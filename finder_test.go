package finder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	t.Run("common", func(t *testing.T) {
		text := []byte{0x90, 0xCC, 0xCC, 0xCC, 0x90, 0xCC, 0xCC}
		image := buildTestImage64(t,
			&testSection{name: ".text", va: 0x1000, data: text},
		)

		result, err := Find(image, &Options{MinSize: 3})
		require.NoError(t, err)

		require.Equal(t, "x64", result.Architecture)
		require.Equal(t, ".text", result.Section.Name)
		require.Len(t, result.Caves, 1)
		cave := result.Caves[0]
		require.Equal(t, uint32(0x1001), cave.RVA)
		require.Equal(t, uint64(3), cave.Size)
		require.Equal(t, result.Section.OffsetToRawData+1, cave.Offset)
	})

	t.Run("no matches", func(t *testing.T) {
		image := buildTestImage64(t,
			&testSection{name: ".text", va: 0x1000, data: []byte{0x90, 0xC3}},
		)

		result, err := Find(image, &Options{MinSize: 1})
		require.NoError(t, err)
		require.Empty(t, result.Caves)
	})

	t.Run("nil options", func(t *testing.T) {
		image := buildTestImage64(t,
			&testSection{name: ".text", va: 0x1000, data: []byte{0xCC, 0x90}},
		)

		result, err := Find(image, nil)
		require.NoError(t, err)
		require.Len(t, result.Caves, 1)
	})

	t.Run("custom section", func(t *testing.T) {
		image := buildTestImage64(t,
			&testSection{name: ".text", va: 0x1000, data: []byte{0x90}},
			&testSection{name: ".code", va: 0x2000, data: []byte{0xCC, 0xCC, 0xCC}},
		)

		result, err := Find(image, &Options{MinSize: 2, Section: ".code"})
		require.NoError(t, err)
		require.Len(t, result.Caves, 1)
		require.Equal(t, uint32(0x2000), result.Caves[0].RVA)
	})

	t.Run("progress callback", func(t *testing.T) {
		text := []byte{0x90, 0xCC, 0xCC, 0xCC, 0x90}
		image := buildTestImage64(t,
			&testSection{name: ".text", va: 0x1000, data: text},
		)

		var scanned int
		opts := Options{
			MinSize: 2,
			OnProgress: func(n int) {
				scanned += n
			},
		}
		result, err := Find(image, &opts)
		require.NoError(t, err)
		require.Len(t, result.Caves, 1)
		require.Equal(t, len(text), scanned)
	})

	t.Run("unsupported architecture", func(t *testing.T) {
		image := buildTestImage32(t,
			&testSection{name: ".text", va: 0x1000, data: []byte{0xCC, 0xCC, 0xCC}},
		)

		result, err := Find(image, &Options{MinSize: 1})
		require.ErrorIs(t, err, ErrUnsupportedArch)
		require.Nil(t, result)
	})

	t.Run("no code section", func(t *testing.T) {
		image := buildTestImage64(t,
			&testSection{name: ".data", va: 0x2000, data: []byte{0xCC, 0xCC, 0xCC}},
		)

		result, err := Find(image, &Options{MinSize: 1})
		require.ErrorIs(t, err, ErrSectionNotFound)
		require.Nil(t, result)
	})

	t.Run("section out of bounds", func(t *testing.T) {
		image := buildTestImage64(t,
			&testSection{name: ".text", va: 0x1000, data: []byte{0xCC}, rawSize: 0x40000},
		)

		result, err := Find(image, &Options{MinSize: 1})
		require.ErrorIs(t, err, ErrSectionOutOfBounds)
		require.Nil(t, result)
	})

	t.Run("invalid image", func(t *testing.T) {
		result, err := Find([]byte("not a pe image"), &Options{MinSize: 1})
		require.Error(t, err)
		require.Nil(t, result)
	})
}

func TestNewCaveRecords(t *testing.T) {
	section := &Section{
		Name:            ".text",
		VirtualAddress:  0x1000,
		OffsetToRawData: 0x400,
	}
	caves := []*Cave{
		{Offset: 1, Size: 3},
		{Offset: 16, Size: 48},
	}

	records := NewCaveRecords(section, caves)
	require.Len(t, records, 2)
	require.Equal(t, &CaveRecord{Offset: 0x401, RVA: 0x1001, Size: 3}, records[0])
	require.Equal(t, &CaveRecord{Offset: 0x410, RVA: 0x1010, Size: 48}, records[1])
}
