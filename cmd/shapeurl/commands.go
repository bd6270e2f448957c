package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/shapestone/shape-url/pkg/form"
	"github.com/shapestone/shape-url/pkg/url"
)

func newParseCmd(opts *options) *cobra.Command {
	var base string
	cmd := &cobra.Command{
		Use:   "parse <input>",
		Short: "Parse a URL and print its components",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := opts.parser()
			if base != "" {
				b, err := url.Parse(base)
				if err != nil {
					return errors.Wrap(err, "base URL error")
				}
				p.Base = b
			}
			u, err := p.Parse(args[0])
			if err != nil {
				return errors.Wrap(err, "parse error")
			}
			return opts.printURL(u)
		},
	}
	cmd.Flags().StringVarP(&base, "base", "b", "", "Base URL for relative input")
	return cmd
}

// setters maps component names accepted by the set command to URL setters.
var setters = map[string]func(*url.URL, string) error{
	"href":     (*url.URL).SetHref,
	"scheme":   (*url.URL).SetScheme,
	"username": (*url.URL).SetUsername,
	"password": (*url.URL).SetPassword,
	"host":     (*url.URL).SetHost,
	"hostname": (*url.URL).SetHostname,
	"port":     (*url.URL).SetPort,
	"path":     (*url.URL).SetPath,
	"query":    (*url.URL).SetQuery,
	"fragment": (*url.URL).SetFragment,
}

func newSetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "set <url> <component> <value>",
		Short: "Change one component of a URL and print the result",
		Long: "Change one component of a URL and print the result.\n\nComponents: " +
			"href, scheme, username, password, host, hostname, port, path, query, fragment.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, ok := setters[strings.ToLower(args[1])]
			if !ok {
				return errors.Errorf("unknown component %q", args[1])
			}
			u, err := opts.parser().Parse(args[0])
			if err != nil {
				return errors.Wrap(err, "parse error")
			}
			if err := set(u, args[2]); err != nil {
				return errors.Wrap(err, "set error")
			}
			return opts.printURL(u)
		},
	}
}

type hostView struct {
	Kind    string `json:"kind" yaml:"kind"`
	Host    string `json:"host" yaml:"host"`
	Unicode string `json:"unicode" yaml:"unicode"`
}

func newHostCmd(opts *options) *cobra.Command {
	var opaque bool
	cmd := &cobra.Command{
		Use:   "host <input>",
		Short: "Parse a host as a special (or, with --opaque, non-special) URL would",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := url.ParseHost(args[0], !opaque)
			if err != nil {
				return errors.Wrap(err, "host error")
			}
			v := hostView{Kind: h.Kind.String(), Host: h.String(), Unicode: h.Unicode()}
			return opts.render(v, func(w io.Writer) {
				fmt.Fprintf(w, "kind:    %s\nhost:    %s\nunicode: %s\n", v.Kind, v.Host, v.Unicode)
			})
		},
	}
	cmd.Flags().BoolVar(&opaque, "opaque", false, "Parse as the host of a non-special URL")
	return cmd
}

type pairView struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

func newFormCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "form <query>",
		Short: "Decode application/x-www-form-urlencoded data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs := form.Parse(strings.TrimPrefix(args[0], "?"))
			views := make([]pairView, len(pairs))
			for i, p := range pairs {
				views[i] = pairView{Name: p.Name, Value: p.Value}
			}
			return opts.render(views, func(w io.Writer) {
				for _, p := range pairs {
					fmt.Fprintf(w, "%q = %q\n", p.Name, p.Value)
				}
			})
		},
	}
}
