package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	finder "github.com/RSSU-Shellcode/PE-Cave-Finder"
)

var (
	target   string
	minSize  uint64
	minCaves int
)

func init() {
	flag.StringVar(&target, "path", "", "target directory path for scan")
	flag.Uint64Var(&minSize, "m", 16, "set minimal cave size to consider, in bytes")
	flag.IntVar(&minCaves, "mnc", 1, "set minimum number of caves to report")
	flag.Parse()
}

func main() {
	if target == "" {
		flag.Usage()
		return
	}
	err := filepath.Walk(target, func(path string, file os.FileInfo, _ error) error {
		if file == nil || file.IsDir() {
			return nil
		}
		ext := filepath.Ext(file.Name())
		if ext != ".exe" && ext != ".dll" {
			return nil
		}
		image, err := os.ReadFile(path) // #nosec
		if err != nil {
			return nil
		}
		info, err := finder.Analyze(image, minSize)
		if err != nil {
			return nil
		}
		if info.NumCaves < minCaves {
			return nil
		}
		fmt.Println("found target:", path)
		fmt.Println("num caves:      ", info.NumCaves)
		fmt.Println("total cave size:", humanize.IBytes(info.TotalCaveBytes))
		fmt.Println("largest cave:   ", humanize.IBytes(info.LargestCave))
		return nil
	})
	if err != nil {
		fmt.Println(err)
	}
}
