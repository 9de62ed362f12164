package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/kisom/goutils/lib"
	"github.com/kisom/updata"
)

func describe(w io.Writer, c *updata.Container) error {
	fmt.Fprintf(w, "%s: %d images, %d bytes\n", c.Path, len(c.Records), len(c.Data))

	for i, r := range c.Records {
		h, err := updata.DecodeHeader(c.Data, r)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "%02d: %s\n", i, r.Name)
		fmt.Fprintf(w, "\toffset:   %#08x\n", r.Offset)
		fmt.Fprintf(w, "\tversion:  %#08x\n", h.Version)
		fmt.Fprintf(w, "\thardware: %q\n", h.HardwareString())
		fmt.Fprintf(w, "\tbuilt:    %s %s\n", h.Date, h.Time)
		fmt.Fprintf(w, "\theader:   %d bytes, %d blocks\n", h.HeaderSize, len(h.BlockTable))
		fmt.Fprintf(w, "\tbody:     %d bytes (%s)\n", h.BodySize, updata.HumanSize(r.BodySize))
		fmt.Fprintf(w, "\tdigest:   %s\n", r.Digest(c.Data))
	}

	return nil
}

func scanFile(path string) error {
	c, err := updata.Open(path)
	if err != nil {
		return err
	}
	defer c.Close()

	return describe(os.Stdout, c)
}

func main() {
	flag.Parse()

	failed := false
	for _, path := range flag.Args() {
		if err := scanFile(path); err != nil {
			lib.Warn(err, "%s", path)
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}
