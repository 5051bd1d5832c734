package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/woozymasta/tofixlint/internal/geo"
	"github.com/woozymasta/tofixlint/internal/tofix"

	"github.com/goccy/go-json"
	"github.com/jessevdk/go-flags"
	"github.com/tdewolff/minify/v2"
	mjson "github.com/tdewolff/minify/v2/json"
)

type Options struct {
	Input    string `short:"i" long:"in"       description:"Input YAML file path. Reads from stdin if empty"`
	Output   string `short:"o" long:"out"      description:"Output file path. Writes to stdout if empty"`
	Minify   bool   `short:"m" long:"minify"   description:"Write minified JSON"`
	Validate bool   `short:"v" long:"validate" description:"Validate the converted collection and fail on findings"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	// Read Input
	var inputData []byte
	var err error

	if opts.Input != "" {
		inputData, err = os.ReadFile(opts.Input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
			os.Exit(1)
		}
	} else {
		inputData, err = io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			os.Exit(1)
		}
	}

	data, err := geo.YAMLToJSON(inputData)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error converting YAML: %v\n", err)
		os.Exit(1)
	}

	if opts.Validate {
		if errs := tofix.Validate(data); errs != nil {
			for _, msg := range errs {
				fmt.Fprintf(os.Stderr, "- %s\n", msg)
			}
			fmt.Fprintf(os.Stderr, "Validation failed with %d errors\n", len(errs))
			os.Exit(1)
		}
	}

	// format
	var outputData []byte
	if opts.Minify {
		m := minify.New()
		m.AddFunc("application/json", mjson.Minify)
		outputData, err = m.Bytes("application/json", data)
	} else {
		var buf bytes.Buffer
		err = json.Indent(&buf, data, "", "  ")
		outputData = buf.Bytes()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting JSON: %v\n", err)
		os.Exit(1)
	}

	if opts.Output != "" {
		err = os.WriteFile(opts.Output, outputData, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Successfully converted %s to %s\n", displayName(opts.Input), opts.Output)
	} else {
		fmt.Println(string(outputData))
	}
}

func displayName(path string) string {
	if path == "" {
		return "stdin"
	}
	return path
}
