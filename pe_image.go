package finder

import (
	"bytes"
	"debug/pe"
	"fmt"
)

// Section contains the basic info of section.
type Section struct {
	Name            string `toml:"name"               json:"name"`
	VirtualAddress  uint32 `toml:"virtual_address"    json:"virtual_address"`
	VirtualSize     uint32 `toml:"virtual_size"       json:"virtual_size"`
	OffsetToRawData uint32 `toml:"offset_to_raw_data" json:"offset_to_raw_data"`
	SizeOfRawData   uint32 `toml:"size_of_raw_data"   json:"size_of_raw_data"`
}

// Image contains the parsed 64-bit PE image and its raw file data.
type Image struct {
	Architecture string
	IsDLL        bool
	ImageSize    uint32
	ImageBase    uint64
	EntryPoint   uint32
	Sections     []*Section

	raw []byte
}

// ParseImage is used to parse a raw file buffer as a 64-bit PE image.
// Images with other architectures are rejected before any section is read.
func ParseImage(image []byte) (*Image, error) {
	peFile, err := pe.NewFile(bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pe image: %w", err)
	}
	if peFile.Machine != pe.IMAGE_FILE_MACHINE_AMD64 {
		return nil, fmt.Errorf("%w: machine type 0x%X", ErrUnsupportedArch, peFile.Machine)
	}
	hdr, ok := peFile.OptionalHeader.(*pe.OptionalHeader64)
	if !ok {
		return nil, fmt.Errorf("%w: no 64-bit optional header", ErrUnsupportedArch)
	}
	sections := make([]*Section, len(peFile.Sections))
	for i, section := range peFile.Sections {
		sections[i] = &Section{
			Name:            section.Name,
			VirtualAddress:  section.VirtualAddress,
			VirtualSize:     section.VirtualSize,
			OffsetToRawData: section.Offset,
			SizeOfRawData:   section.Size,
		}
	}
	img := Image{
		Architecture: "x64",
		IsDLL:        peFile.Characteristics&pe.IMAGE_FILE_DLL != 0,
		ImageSize:    hdr.SizeOfImage,
		ImageBase:    hdr.ImageBase,
		EntryPoint:   hdr.AddressOfEntryPoint,
		Sections:     sections,
		raw:          image,
	}
	return &img, nil
}

// Section is used to find the first section with the target name.
// The match is exact and case-sensitive, sections are searched in
// file order, so duplicate names resolve to the first one.
func (img *Image) Section(name string) (*Section, error) {
	for _, section := range img.Sections {
		if section.Name == name {
			return section, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrSectionNotFound, name)
}

// SectionData is used to slice the raw data of the target section from
// the file buffer. Both the offset and the size come from the section
// table, the range is checked against the buffer before any access and
// is never clamped.
func (img *Image) SectionData(section *Section) ([]byte, error) {
	// the arithmetic is done in uint64, uint32 inputs can not overflow it
	offset := uint64(section.OffsetToRawData)
	end := offset + uint64(section.SizeOfRawData)
	if end > uint64(len(img.raw)) {
		return nil, fmt.Errorf(
			"%w: section %s raw data [0x%X, 0x%X) exceeds image size 0x%X",
			ErrSectionOutOfBounds, section.Name, offset, end, len(img.raw),
		)
	}
	return img.raw[offset:end], nil
}
