// Command xscc inspects translator configuration.
//
// Usage:
//
//	xscc [options] [options-file]
//
// Examples:
//
//	xscc shader.yaml                              # Validate and print the options
//	xscc -stage pixel -format json                # Print defaults with overrides as JSON
//	xscc -conversion vector-compare,wrap-unary    # Select several conversions
//	xscc -diagnostics json -sm 4.0 -stage hull    # Report problems as JSON
//	xscc -intrinsics                              # List the global intrinsics
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"

	xsc "github.com/OscarGame/XShaderCompiler"
	"github.com/OscarGame/XShaderCompiler/analyzer"
	"github.com/OscarGame/XShaderCompiler/convert"
	"github.com/OscarGame/XShaderCompiler/diag"
	"github.com/OscarGame/XShaderCompiler/shader"
)

var (
	format     = flag.String("format", "yaml", "output format: yaml or json")
	stage      = flag.String("stage", "", "override the shader stage")
	model      = flag.String("sm", "", "override the shader model, e.g. 5.0")
	entry      = flag.String("entry", "", "override the entry point name")
	conversion = flag.String("conversion", "", "override the conversions, comma separated, e.g. all, none or vector-compare,implicit-casts")
	diagFormat = flag.String("diagnostics", "text", "diagnostics format: text or json")
	intrinsics = flag.Bool("intrinsics", false, "list the global intrinsics and exit")
	version    = flag.Bool("version", false, "print version")
)

const xsccVersion = "0.1.0-dev"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("xscc version %s\n", xsccVersion)
		return
	}

	outFormat, err := parseFormat(*format)
	if err != nil {
		fatalf("%v", err)
	}

	if *intrinsics {
		if err := writeIntrinsics(); err != nil {
			fatalf("Error writing intrinsics: %v", err)
		}
		return
	}

	opts := xsc.DefaultOptions()
	if args := flag.Args(); len(args) > 0 {
		opts, err = xsc.LoadOptionsFile(args[0])
		if err != nil {
			fatalf("Error loading options: %v", err)
		}
	}
	ov := overrides{stage: *stage, model: *model, entry: *entry, conversion: *conversion}
	if err := ov.apply(&opts); err != nil {
		fatalf("Invalid option: %v", err)
	}

	diags, checkErr := xsc.Check(opts)
	if err := writeDiagnostics(os.Stderr, diags, *diagFormat); err != nil {
		fatalf("Error writing diagnostics: %v", err)
	}
	if checkErr != nil {
		os.Exit(1)
	}

	data, err := opts.Marshal(outFormat)
	if err != nil {
		fatalf("Error encoding options: %v", err)
	}
	if _, err := os.Stdout.Write(data); err != nil {
		fatalf("Error writing output: %v", err)
	}
}

func parseFormat(name string) (xsc.Format, error) {
	switch name {
	case "yaml", "yml":
		return xsc.FormatYAML, nil
	case "json":
		return xsc.FormatJSON, nil
	default:
		return 0, fmt.Errorf("unknown output format %q", name)
	}
}

// overrides holds the option values given on the command line. Empty
// fields leave the loaded options unchanged.
type overrides struct {
	stage      string
	model      string
	entry      string
	conversion string
}

func (o overrides) apply(opts *xsc.Options) error {
	if o.stage != "" {
		s, err := shader.ParseStage(o.stage)
		if err != nil {
			return err
		}
		opts.Stage = s
	}
	if o.model != "" {
		sm, err := shader.ParseShaderModel(o.model)
		if err != nil {
			return err
		}
		opts.ShaderModel = sm
	}
	if o.entry != "" {
		opts.EntryPoint = o.entry
	}
	if o.conversion != "" {
		f, err := convert.ParseFlags(strings.Split(o.conversion, ","))
		if err != nil {
			return err
		}
		opts.Conversion = f
	}
	return nil
}

// writeDiagnostics reports diags to w. The JSON report is written even
// when there is nothing to report; text output is silent then.
func writeDiagnostics(w io.Writer, diags diag.List, format string) error {
	switch format {
	case "json":
		return diag.WriteJSON(w, diags)
	case "text":
		if len(diags) == 0 {
			return nil
		}
		_, err := fmt.Fprintln(w, diags.FormatAll(""))
		return err
	default:
		return fmt.Errorf("unknown diagnostics format %q", format)
	}
}

type intrinsicInfo struct {
	Name           string             `json:"name"`
	MinArgs        int                `json:"min_args"`
	MaxArgs        int                `json:"max_args"`
	MinShaderModel shader.ShaderModel `json:"min_shader_model"`
}

func writeIntrinsics() error {
	entries := analyzer.Intrinsics()
	infos := make([]intrinsicInfo, len(entries))
	for i, e := range entries {
		infos[i] = intrinsicInfo{
			Name:           e.Intrinsic.String(),
			MinArgs:        e.MinArgs,
			MaxArgs:        e.MaxArgs,
			MinShaderModel: e.MinShaderModel,
		}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(infos)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: xscc [options] [options.yaml|options.json]\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  xscc shader.yaml                Validate and print options\n")
	fmt.Fprintf(os.Stderr, "  xscc -stage pixel -format json  Print defaults with overrides\n")
	fmt.Fprintf(os.Stderr, "  xscc -conversion vector-compare,wrap-unary  Select conversions\n")
	fmt.Fprintf(os.Stderr, "  xscc -diagnostics json -sm 4.0 -stage hull  Report problems as JSON\n")
	fmt.Fprintf(os.Stderr, "  xscc -intrinsics                List the global intrinsics\n")
}
