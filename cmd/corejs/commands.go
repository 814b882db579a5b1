package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pawk0/core-js-101/interchange"
	"github.com/pawk0/core-js-101/shape"
)

// cmdArea: area of a rectangle, a circle, or a shape read as JSON
func cmdArea(e *env, args []string) error {
	var width, height, radius float64
	var shapeName string

	flagSet := newFlagSet(e, "area", "(--width W --height H | --radius R | --shape NAME [file])")
	flagSet.Float64Var(&width, "width", 0, "rectangle width")
	flagSet.Float64Var(&height, "height", 0, "rectangle height")
	flagSet.Float64Var(&radius, "radius", 0, "circle radius")
	flagSet.StringVar(&shapeName, "shape", "", "read the shape as JSON and bind it to NAME ("+strings.Join(shape.Names(), ", ")+")")
	if ok, err := parseFlags(flagSet, args); !ok {
		return err
	}

	var s shape.Shape
	switch {
	case flagSet.Changed("shape"):
		d, err := shape.Lookup(shapeName)
		if err != nil {
			return err
		}
		data, err := readInput(e, flagSet.Args())
		if err != nil {
			return err
		}
		inst, err := interchange.Deserialize(d, string(data))
		if err != nil {
			return err
		}
		e.log.Debug("bound shape", "descriptor", inst.Descriptor(), "fields", inst.Keys())
		s = inst.Caps()
	case flagSet.Changed("radius"):
		if flagSet.Changed("width") || flagSet.Changed("height") {
			return fmt.Errorf("--radius cannot be combined with --width or --height")
		}
		s = shape.NewCircle(radius)
	case flagSet.Changed("width") && flagSet.Changed("height"):
		s = shape.NewRectangle(width, height)
	default:
		return fmt.Errorf("area needs --width and --height, --radius, or --shape")
	}
	if flagSet.NArg() > 0 && !flagSet.Changed("shape") {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(flagSet.Args(), " "))
	}

	fmt.Fprintln(e.stdout, formatNumber(s.Area()))
	return nil
}

// cmdSerialize: any codec -> canonical interchange text
func cmdSerialize(e *env, args []string) error {
	var from, indent string

	flagSet := newFlagSet(e, "serialize", "[--from CODEC] [--indent S] [file]")
	flagSet.StringVar(&from, "from", "json", "input codec ("+strings.Join(interchange.CodecNames(), ", ")+")")
	flagSet.StringVar(&indent, "indent", e.cfg.Serialize.Indent, "indent per nesting level; empty for compact output")
	if ok, err := parseFlags(flagSet, args); !ok {
		return err
	}

	v, err := decodeInput(e, from, flagSet.Args())
	if err != nil {
		return err
	}

	var text string
	if indent == "" {
		text, err = interchange.Serialize(v)
	} else {
		text, err = interchange.SerializeIndent(v, indent)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, text)
	return nil
}

// cmdConvert: one codec -> another
func cmdConvert(e *env, args []string) error {
	var from, to string

	flagSet := newFlagSet(e, "convert", "[--from CODEC] [--to CODEC] [file]")
	flagSet.StringVar(&from, "from", "json", "input codec")
	flagSet.StringVar(&to, "to", e.cfg.Convert.DefaultTo, "output codec ("+strings.Join(interchange.CodecNames(), ", ")+")")
	if ok, err := parseFlags(flagSet, args); !ok {
		return err
	}

	out, err := interchange.LookupCodec(to)
	if err != nil {
		return err
	}
	v, err := decodeInput(e, from, flagSet.Args())
	if err != nil {
		return err
	}
	data, err := out.Encode(v)
	if err != nil {
		return err
	}
	e.log.Debug("encoded output", "codec", out.Name(), "bytes", len(data))

	if isText(out) && (len(data) == 0 || data[len(data)-1] != '\n') {
		data = append(data, '\n')
	}
	_, err = e.stdout.Write(data)
	return err
}

// cmdFingerprint: input -> BLAKE3 digest of its canonical text
func cmdFingerprint(e *env, args []string) error {
	var from string

	flagSet := newFlagSet(e, "fingerprint", "[--from CODEC] [file]")
	flagSet.StringVar(&from, "from", "json", "input codec")
	if ok, err := parseFlags(flagSet, args); !ok {
		return err
	}

	v, err := decodeInput(e, from, flagSet.Args())
	if err != nil {
		return err
	}
	digest, err := interchange.Fingerprint(v)
	if err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, digest)
	return nil
}

func cmdVersion(e *env, args []string) error {
	fmt.Fprintf(e.stdout, "corejs %s\n", version)
	return nil
}

func decodeInput(e *env, from string, args []string) (*interchange.Value, error) {
	in, err := interchange.LookupCodec(from)
	if err != nil {
		return nil, err
	}
	data, err := readInput(e, args)
	if err != nil {
		return nil, err
	}
	v, err := in.Decode(data)
	if err != nil {
		return nil, err
	}
	e.log.Debug("decoded input", "codec", in.Name(), "bytes", len(data), "kind", v.Kind())
	return v, nil
}

func isText(c interchange.Codec) bool {
	switch c.Name() {
	case "json", "jsonc", "yaml":
		return true
	}
	return false
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
