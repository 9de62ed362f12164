// splitupdata lists or unpacks the images inside an UPDATE.APP.
//
//	splitupdata [-l | -u] [-o dir] [UPDATE.APP]
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/kisom/goutils/die"
	"github.com/kisom/updata"
)

const (
	opList   = "list"
	opUnpack = "unpack"

	defaultInput  = "UPDATE.APP"
	defaultOutput = "output"
)

type options struct {
	operation string
	input     string
	outDir    string
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// parseArgs follows the old splitter: the last operation flag wins,
// any argument naming a file is the input, and anything else is
// reported and skipped.
func parseArgs(w io.Writer, args []string) options {
	opts := options{
		operation: opList,
		input:     defaultInput,
		outDir:    defaultOutput,
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-l":
			opts.operation = opList
		case arg == "-u":
			opts.operation = opUnpack
		case arg == "-o" && i+1 < len(args):
			i++
			opts.outDir = args[i]
		case isFile(arg):
			opts.input = arg
		default:
			fmt.Fprintln(w, "ignore unrecognized option:", arg)
		}
	}

	return opts
}

func run(w io.Writer, opts options) error {
	c, err := updata.Open(opts.input)
	if err != nil {
		return err
	}
	defer c.Close()

	if err = c.List(w); err != nil {
		return err
	}

	if opts.operation == opUnpack {
		return c.Extract(opts.outDir)
	}
	return nil
}

func main() {
	opts := parseArgs(os.Stdout, os.Args[1:])
	die.If(run(os.Stdout, opts))
}
