package finder

// caveByte is the int3 instruction opcode that compilers and linkers
// use as padding inside code sections.
const caveByte = 0xCC

// Cave describes a maximal run of the cave byte inside a scanned slice.
// The offset is relative to the start of the slice.
type Cave struct {
	Offset int
	Size   int
}

// ScanCaves is used to scan a section slice for every maximal run of
// the cave byte that is at least minSize bytes long. Runs are reported
// in ascending offset order and are never merged or truncated, a run
// that touches the end of the slice still counts. With minSize zero
// every run is reported, including single bytes.
//
// The progress callback receives the number of scanned bytes as the
// scan advances, it has no effect on the result and may be nil.
func ScanCaves(section []byte, minSize uint64, progress func(n int)) []*Cave {
	if progress == nil {
		progress = func(int) {}
	}
	var caves []*Cave
	for addr := 0; addr < len(section); addr++ {
		if section[addr] != caveByte {
			progress(1)
			continue
		}
		caveSize := 1
		for j := addr + 1; j < len(section); j++ {
			if section[j] != caveByte {
				break
			}
			caveSize++
		}
		progress(caveSize)
		if uint64(caveSize) >= minSize {
			caves = append(caves, &Cave{
				Offset: addr,
				Size:   caveSize,
			})
		}
		// the loop increment steps over the last byte of the run
		addr += caveSize - 1
	}
	return caves
}

// CaveRVA is used to translate a cave offset inside a section slice to
// the relative virtual address in the loaded image.
func CaveRVA(section *Section, cave *Cave) uint32 {
	return section.VirtualAddress + uint32(cave.Offset) // #nosec G115
}
