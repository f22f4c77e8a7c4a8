package finder

import (
	"fmt"
	"io"
)

// WriteReport is used to write one line per cave record to the output,
// in input order, with the 0-indexed form:
//
//	0. at 0x1001 length = 3
func WriteReport(output io.Writer, caves []*CaveRecord) error {
	for i, cave := range caves {
		_, err := fmt.Fprintf(output, "%d. at 0x%x length = %d\n", i, cave.RVA, cave.Size)
		if err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}
