package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kjk/javaprops/log"
	"github.com/kjk/javaprops/properties"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
	"github.com/toon-format/toon-go"
)

func (c *Cmd) getCmd() *cobra.Command {
	var def string
	cmd := &cobra.Command{
		Use:   "get FILE KEY",
		Short: "print value of a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			key := args[1]
			v, ok := p.Get(key)
			if !ok {
				if !cmd.Flags().Changed("default") {
					return fmt.Errorf("%w: '%s'", errKeyNotFound, key)
				}
				v = def
			}
			cmd.Println(v)
			return nil
		},
	}
	cmd.Flags().StringVar(&def, "default", "", "value printed if key is not set")
	return cmd
}

func (c *Cmd) setCmd() *cobra.Command {
	var comment string
	cmd := &cobra.Command{
		Use:   "set FILE KEY VALUE",
		Short: "set value of a key, creating FILE if needed",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, key, val := args[0], args[1], args[2]
			p, err := c.loadForEdit(cmd.Context(), path)
			if err != nil {
				return err
			}
			prev, existed := p.Set(key, val)
			if existed && prev == val {
				log.Verbosef("'%s' already set to '%s'\n", key, val)
				return nil
			}
			if err = c.save(p, path, comment); err != nil {
				return err
			}
			log.Event("set", "file", path, "key", key, "value", val, "prev", prev)
			return nil
		},
	}
	cmd.Flags().StringVar(&comment, "comment", "", "comment written at the top of the file")
	return cmd
}

func (c *Cmd) rmCmd() *cobra.Command {
	var comment string
	cmd := &cobra.Command{
		Use:   "rm FILE KEY",
		Short: "remove a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, key := args[0], args[1]
			p, err := c.loadForEdit(cmd.Context(), path)
			if err != nil {
				return err
			}
			prev, ok := p.Remove(key)
			if !ok {
				return fmt.Errorf("%w: '%s'", errKeyNotFound, key)
			}
			if err = c.save(p, path, comment); err != nil {
				return err
			}
			log.Event("rm", "file", path, "key", key, "prev", prev)
			return nil
		},
	}
	cmd.Flags().StringVar(&comment, "comment", "", "comment written at the top of the file")
	return cmd
}

func (c *Cmd) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list FILE",
		Short: "list all properties, including defaults",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return p.List(cmd.OutOrStdout())
		},
	}
}

func (c *Cmd) namesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "names FILE",
		Short: "print names of all properties, including defaults",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, name := range p.Names() {
				cmd.Println(name)
			}
			return nil
		},
	}
}

const (
	formatJSON = "json"
	formatTOON = "toon"
)

func exportData(p *properties.Properties, format string) ([]byte, error) {
	m := map[string]any{}
	for k, v := range p.All() {
		m[k] = v
	}
	switch format {
	case formatJSON:
		d, err := json.Marshal(m)
		if err != nil {
			return nil, err
		}
		return pretty.Pretty(d), nil
	case formatTOON:
		d, err := toon.Marshal(m)
		if err != nil {
			return nil, err
		}
		if len(d) > 0 && d[len(d)-1] != '\n' {
			d = append(d, '\n')
		}
		return d, nil
	}
	return nil, fmt.Errorf("unknown format '%s', must be %s or %s", format, formatJSON, formatTOON)
}

func (c *Cmd) exportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "print all properties, including defaults, as json or toon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			d, err := exportData(p, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(d)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "json or toon")
	return cmd
}

// normalizedLines returns entries as sorted, escaped "key=value\n" lines
// so that files that only differ in order, comments or escaping compare equal
func normalizedLines(p *properties.Properties) []string {
	var res []string
	for _, e := range p.Entries() {
		s := properties.EscapeKey(e.Key) + "=" + properties.Escape(e.Value) + "\n"
		res = append(res, s)
	}
	return res
}

func diffProperties(a, b *properties.Properties, nameA, nameB string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        normalizedLines(a),
		B:        normalizedLines(b),
		FromFile: nameA,
		ToFile:   nameB,
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}

func (c *Cmd) diffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff FILE1 FILE2",
		Short: "show differences between properties in two files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a := properties.New()
			if err := c.loadInto(ctx, a, args[0]); err != nil {
				return err
			}
			b := properties.New()
			if err := c.loadInto(ctx, b, args[1]); err != nil {
				return err
			}
			s, err := diffProperties(a, b, args[0], args[1])
			if err != nil {
				return err
			}
			s = strings.TrimSuffix(s, "\n")
			if s != "" {
				cmd.Println(s)
			}
			return nil
		},
	}
}
