package finder

// Info contains the image analyze result.
type Info struct {
	Architecture string
	IsDLL        bool
	ImageSize    uint32
	ImageBase    uint64
	EntryPoint   uint32
	Sections     []*Section

	NumCaves       int
	TotalCaveBytes uint64
	LargestCave    uint64
}

// Analyze is used to analyze the code caves inside the target pe image
// file. Only the headers and the section table are inspected, the scan
// covers the default code section.
func Analyze(image []byte, minSize uint64) (*Info, error) {
	img, err := ParseImage(image)
	if err != nil {
		return nil, err
	}
	section, err := img.Section(DefaultSection)
	if err != nil {
		return nil, err
	}
	data, err := img.SectionData(section)
	if err != nil {
		return nil, err
	}
	caves := ScanCaves(data, minSize, nil)
	info := Info{
		Architecture: img.Architecture,
		IsDLL:        img.IsDLL,
		ImageSize:    img.ImageSize,
		ImageBase:    img.ImageBase,
		EntryPoint:   img.EntryPoint,
		Sections:     img.Sections,
		NumCaves:     len(caves),
	}
	for _, cave := range caves {
		size := uint64(cave.Size)
		info.TotalCaveBytes += size
		if size > info.LargestCave {
			info.LargestCave = size
		}
	}
	return &info, nil
}
