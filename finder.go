package finder

import (
	"errors"
)

// DefaultSection is the code section name that is scanned when the
// options do not select another one.
const DefaultSection = ".text"

var (
	// ErrUnsupportedArch means the image is a valid PE file but is not
	// a 64-bit one.
	ErrUnsupportedArch = errors.New("unsupported pe image architecture")

	// ErrSectionNotFound means the image has no section with the
	// target name.
	ErrSectionNotFound = errors.New("cannot find section in image")

	// ErrSectionOutOfBounds means the section raw data range in the
	// section table exceeds the file buffer.
	ErrSectionOutOfBounds = errors.New("section raw data out of bounds")
)

// Options contains options about find code caves.
type Options struct {
	// specify the minimum cave size in bytes.
	MinSize uint64 `toml:"min_size" json:"min_size"`

	// specify the target section name, ".text" when empty.
	Section string `toml:"section" json:"section"`

	// receive the number of scanned bytes, for progress display.
	OnProgress func(n int) `toml:"-" json:"-"`
}

// CaveRecord describes a found code cave with its locations in both
// the file layout and the loaded image.
type CaveRecord struct {
	Offset uint32 `json:"offset"`
	RVA    uint32 `json:"rva"`
	Size   uint64 `json:"size"`
}

// Result contains the result about find code caves.
type Result struct {
	Architecture string
	Section      *Section
	Caves        []*CaveRecord
}

// Find is used to find code caves inside one section of a 64-bit PE
// image. The whole pipeline fails fast, either every stage succeeds
// and a (possibly empty) cave list is returned, or no byte is scanned.
func Find(image []byte, opts *Options) (*Result, error) {
	if opts == nil {
		opts = new(Options)
	}
	img, err := ParseImage(image)
	if err != nil {
		return nil, err
	}
	name := opts.Section
	if name == "" {
		name = DefaultSection
	}
	section, err := img.Section(name)
	if err != nil {
		return nil, err
	}
	data, err := img.SectionData(section)
	if err != nil {
		return nil, err
	}
	caves := ScanCaves(data, opts.MinSize, opts.OnProgress)
	result := Result{
		Architecture: img.Architecture,
		Section:      section,
		Caves:        NewCaveRecords(section, caves),
	}
	return &result, nil
}

// NewCaveRecords is used to translate raw scan results to cave records
// with the file offset and the rva of the owning section applied.
func NewCaveRecords(section *Section, caves []*Cave) []*CaveRecord {
	records := make([]*CaveRecord, len(caves))
	for i, cave := range caves {
		records[i] = &CaveRecord{
			Offset: section.OffsetToRawData + uint32(cave.Offset), // #nosec G115
			RVA:    CaveRVA(section, cave),
			Size:   uint64(cave.Size),
		}
	}
	return records
}
