package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/shapestone/shape-url/pkg/url"
)

// options are the persistent flags shared by every subcommand.
type options struct {
	output  string
	verbose bool
	out     io.Writer
	errOut  io.Writer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	opts := &options{out: out, errOut: errOut}
	cmd := &cobra.Command{
		Use:           "shapeurl",
		Short:         "Parse and inspect URLs per the WHATWG URL Standard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	addGlobalFlags(cmd.PersistentFlags(), opts)

	cmd.AddCommand(
		newParseCmd(opts),
		newSetCmd(opts),
		newHostCmd(opts),
		newFormCmd(opts),
	)
	return cmd
}

func addGlobalFlags(fs *pflag.FlagSet, opts *options) {
	fs.StringVarP(&opts.output, "output", "o", "text", "Output format: text, json or yaml")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "Log validation errors to stderr")
}

// parser returns a url.Parser that logs validation errors when -v is set.
func (o *options) parser() *url.Parser {
	p := &url.Parser{}
	if o.verbose {
		p.LogOutput = zerolog.ConsoleWriter{Out: o.errOut, NoColor: true}
	}
	return p
}

// render writes v as JSON or YAML, or calls text for the text format.
func (o *options) render(v interface{}, text func(io.Writer)) error {
	switch o.output {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return errors.Wrap(err, "json encoding error")
		}
		fmt.Fprintln(o.out, string(data))
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return errors.Wrap(err, "yaml encoding error")
		}
		fmt.Fprint(o.out, string(data))
	case "text", "":
		text(o.out)
	default:
		return errors.Errorf("unknown output format %q", o.output)
	}
	return nil
}

// printURL renders the components of u.
func (o *options) printURL(u *url.URL) error {
	fields := url.NodeToInterface(url.URLToNode(u)).(map[string]interface{})
	return o.render(fields, func(w io.Writer) {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "%-9s %v\n", k+":", fields[k])
		}
	})
}
