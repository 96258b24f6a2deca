// abitc converts documents between JSON, YAML and ABIT and inspects ABIT
// documents.
//
//	abitc --in doc.json --out doc.abit
//	abitc --from abit --to json --in doc.abit
//	abitc --from abit --info --in doc.abit
package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/dadrian/abit"
	"github.com/dadrian/abit/textdoc"
)

type options struct {
	in, out       string
	from, to      string
	hexOut        bool
	validate      bool
	info          bool
	blobThreshold int
	binaryKeys    string
	verbose       bool
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "abitc: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var opts options
	flagSet := pflag.NewFlagSet("abitc", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&opts.in, "in", "i", "-", "input file (or - for stdin)")
	flagSet.StringVarP(&opts.out, "out", "o", "-", "output file (or - for stdout)")
	flagSet.StringVar(&opts.from, "from", "json", "input format: json, yaml or abit")
	flagSet.StringVar(&opts.to, "to", "abit", "output format: abit or json")
	flagSet.BoolVar(&opts.hexOut, "hex", false, "write hex-encoded ABIT bytes instead of binary")
	flagSet.BoolVar(&opts.validate, "validate", false, "validate only; parse and encode without writing output")
	flagSet.BoolVar(&opts.info, "info", false, "print a summary of the root entries and the document digest")
	flagSet.IntVar(&opts.blobThreshold, "blob-threshold", textdoc.DefaultBlobInlineThreshold, "largest blob written as base58btc in JSON output")
	flagSet.StringVar(&opts.binaryKeys, "binary-keys", "", "regular expression matching keys whose text values are multibase blobs")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log progress to stderr")
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	inBytes, err := readInput(opts.in, stdin)
	if err != nil {
		return err
	}
	logger.Debug("read input", "path", opts.in, "bytes", len(inBytes))

	start := time.Now()
	tree, err := parse(inBytes, opts)
	if err != nil {
		return fmt.Errorf("parse %s: %w", opts.from, err)
	}
	logger.Debug("parsed document", "format", opts.from, "entries", tree.Len(), "elapsed", time.Since(start))

	encoded, err := abit.Marshal(tree)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	logger.Debug("encoded document", "bytes", len(encoded))

	if opts.info {
		return printInfo(stdout, tree, encoded)
	}

	if opts.validate {
		// Validation-only: success => exit 0, no output
		if opts.from == "abit" && !bytes.Equal(encoded, inBytes) {
			return fmt.Errorf("validate: re-encoding differs from input")
		}
		if _, err := abit.Unmarshal(encoded); err != nil {
			return fmt.Errorf("validate: %w", err)
		}
		return nil
	}

	var outBytes []byte
	switch opts.to {
	case "abit":
		outBytes = encoded
	case "json":
		outBytes, err = textdoc.ToJSONIndent(tree, opts.blobThreshold, "  ")
		if err != nil {
			return err
		}
		outBytes = append(outBytes, '\n')
	default:
		return fmt.Errorf("unknown output format %q", opts.to)
	}

	return writeOutput(opts.out, stdout, outBytes, opts.hexOut && opts.to == "abit")
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return b, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return b, nil
}

func parse(data []byte, opts options) (*abit.Tree, error) {
	var matcher textdoc.KeyMatcher
	if opts.binaryKeys != "" {
		m, err := textdoc.MatchKeys(opts.binaryKeys)
		if err != nil {
			return nil, fmt.Errorf("--binary-keys: %w", err)
		}
		matcher = m
	}
	switch opts.from {
	case "json":
		return textdoc.FromJSON(data, matcher)
	case "yaml":
		return textdoc.FromYAML(data, matcher)
	case "abit":
		return abit.NewDecoder(bytes.NewReader(data)).Decode()
	default:
		return nil, fmt.Errorf("unknown input format %q", opts.from)
	}
}

func writeOutput(path string, stdout io.Writer, data []byte, hexOut bool) error {
	w := stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	if hexOut {
		enc := hex.NewEncoder(w)
		if _, err := enc.Write(data); err != nil {
			return fmt.Errorf("write hex: %w", err)
		}
		// add trailing newline for text output convenience
		_, err := w.Write([]byte("\n"))
		return err
	}
	_, err := w.Write(data)
	return err
}

func printInfo(w io.Writer, tree *abit.Tree, encoded []byte) error {
	for key, v := range tree.All() {
		enc, err := abit.MarshalValue(v)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%q\t%v\t%d\n", key, v.Kind(), len(enc)); err != nil {
			return err
		}
	}
	digest, err := abit.Digest(tree)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Entries: %d\nSize: %d\nDigest: blake3:%s\n", tree.Len(), len(encoded), hex.EncodeToString(digest[:]))
	return err
}
