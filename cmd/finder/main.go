package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	finder "github.com/RSSU-Shellcode/PE-Cave-Finder"
)

var (
	output  string
	minSize uint64
	section string
	cfg     string
	noBar   bool
)

func init() {
	flag.StringVar(&output, "o", "", "set output list file path, stdout when empty")
	flag.StringVar(&output, "output", "", "alias of -o")
	flag.Uint64Var(&minSize, "m", 0, "set minimal cave size to consider, in bytes")
	flag.Uint64Var(&minSize, "min-size", 0, "alias of -m")
	flag.StringVar(&section, "s", "", "set target section name, \".text\" when empty")
	flag.StringVar(&cfg, "c", "", "set scan profile file path with toml format")
	flag.BoolVar(&noBar, "np", false, "disable the scan progress bar")
	flag.Parse()
}

func main() {
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if cfg == "" && !flagSet("m", "min-size") {
		flag.Usage()
		os.Exit(2)
	}
	input := flag.Arg(0)
	applyProfile()
	if section == "" {
		section = finder.DefaultSection
	}

	infoKV("selected executable", input)
	infoKV("selected minimal size", humanize.IBytes(minSize))

	image, err := os.ReadFile(input) // #nosec
	checkError("failed to read executable", err)
	infoKV("read executable", humanize.IBytes(uint64(len(image))))

	img, err := finder.ParseImage(image)
	checkError("failed to parse executable", err)
	infoKV("parsed executable", img.Architecture)

	sec, err := img.Section(section)
	checkError("failed to find "+section, err)
	infoKV("found "+section, fmt.Sprintf("pointer to raw data = 0x%X", sec.OffsetToRawData))

	data, err := img.SectionData(sec)
	checkError("failed to get "+section, err)

	infoKV("scanning "+section+" for int3 sequences",
		fmt.Sprintf("size of raw data = %s", humanize.IBytes(uint64(len(data)))))

	var (
		bar        *pb.ProgressBar
		onProgress func(n int)
	)
	if !noBar {
		bar = pb.Full.Start(len(data))
		bar.Set(pb.Bytes, true)
		onProgress = func(n int) {
			bar.Add(n)
		}
	}
	caves := finder.ScanCaves(data, minSize, onProgress)
	if bar != nil {
		bar.Finish()
	}
	infoKV("scan completed", fmt.Sprintf("%d match(es) on 0xcc", len(caves)))

	records := finder.NewCaveRecords(sec, caves)
	w := io.Writer(os.Stdout)
	if output != "" {
		file, err := os.Create(output) // #nosec
		checkError("failed to create output file", err)
		defer func() { _ = file.Close() }()
		w = file
	}
	err = finder.WriteReport(w, records)
	checkError("failed to write report", err)
}

// applyProfile fills flags that were not set on the command line from
// the scan profile, explicit flags always win.
func applyProfile() {
	if cfg == "" {
		return
	}
	infoKV("load scan profile", cfg)
	data, err := os.ReadFile(cfg) // #nosec
	checkError("failed to read scan profile", err)
	profile, err := finder.LoadProfile(data)
	checkError("failed to load scan profile", err)
	if !flagSet("m", "min-size") {
		minSize = profile.MinSize
	}
	if !flagSet("s") {
		section = profile.Section
	}
	if !flagSet("o", "output") {
		output = profile.Output
	}
}

func flagSet(names ...string) bool {
	var set bool
	flag.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				set = true
				return
			}
		}
	})
	return set
}

var (
	infoColor  = color.New(color.FgCyan)
	errorColor = color.New(color.FgRed, color.Bold)
)

func infoKV(key string, value any) {
	fmt.Printf("%s %v\n", infoColor.Sprint(key), value)
}

func checkError(key string, err error) {
	if err == nil {
		return
	}
	msg := strings.ToLower(err.Error())
	_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", errorColor.Sprint(key), msg)
	os.Exit(1)
}
