// Binary elvalidate checks natural-deduction proof documents, or opens
// an interactive shell over one.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	log "github.com/golang/glog"

	"github.com/jangjunha/elementary-logic-validator/interpreter"
)

var (
	interactive = flag.Bool("i", false, "open an interactive shell instead of checking and exiting")
	out         = flag.String("out", "", "if non-empty, write output to this file instead of stdout")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: elvalidate [flags] <proof-file>\n\n")
		fmt.Fprintf(os.Stderr, "Checks a natural-deduction proof document, one \"sentence ; rule\" row per line.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExit codes:\n")
		fmt.Fprintf(os.Stderr, "  0  every row valid\n")
		fmt.Fprintf(os.Stderr, "  1  at least one row invalid or incomplete\n")
		fmt.Fprintf(os.Stderr, "  2  the file could not be loaded\n")
	}
	flag.Parse()

	var writer io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Exit(err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				log.Exit(err)
			}
		}()
		writer = f
	}

	i := interpreter.New(writer)

	if *interactive {
		if err := i.Loop(); err != io.EOF {
			log.Exit(err)
		}
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := i.Load(args[0]); err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			log.Errorf("could not load %s: %v", args[0], err)
			log.Flush()
			os.Exit(2)
		}
		log.Warningf("problems while loading %s: %v", args[0], err)
	}
	valid := i.Check()
	for _, v := range valid {
		if !v {
			os.Exit(1)
		}
	}
	os.Exit(0)
}
