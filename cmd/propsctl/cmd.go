package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/kjk/javaprops/log"
	"github.com/kjk/javaprops/properties"
	"github.com/kjk/javaprops/u"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/encoding/unicode"
)

// names of global options, also PROPSCTL_${NAME} env variables
const (
	optVerbose     = "verbose"
	optLogDir      = "log-dir"
	optUTF8        = "utf8"
	optNoTimestamp = "no-timestamp"
	optDefaults    = "defaults"
	optStrict      = "strict"
)

var errKeyNotFound = errors.New("key not found")

type Cmd struct {
	Out io.Writer

	v *viper.Viper
}

func (c *Cmd) Run(ctx context.Context, args []string) error {
	c.v = viper.New()
	c.v.SetEnvPrefix("PROPSCTL")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "propsctl",
		Short:         "inspect and edit Java .properties files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.Init(&log.Config{
				Dir: c.v.GetString(optLogDir),
				Out: cmd.ErrOrStderr(),
			})
			log.Verbose = c.v.GetBool(optVerbose)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.BoolP(optVerbose, "v", false, "verbose logging")
	flags.String(optLogDir, "", "directory for log files")
	flags.Bool(optUTF8, false, "files are UTF-8 instead of ISO-8859-1")
	flags.Bool(optNoTimestamp, false, "don't write timestamp comment")
	flags.String(optDefaults, "", "file with default values")
	flags.Bool(optStrict, false, "fail on lines without '=' or ':'")
	if err := c.v.BindPFlags(flags); err != nil {
		return err
	}

	root.AddCommand(c.getCmd())
	root.AddCommand(c.setCmd())
	root.AddCommand(c.rmCmd())
	root.AddCommand(c.listCmd())
	root.AddCommand(c.namesCmd())
	root.AddCommand(c.exportCmd())
	root.AddCommand(c.diffCmd())

	root.SetArgs(args)
	if c.Out != nil {
		root.SetOut(c.Out)
	}
	return root.ExecuteContext(ctx)
}

func (c *Cmd) newReader(r io.Reader) *properties.Reader {
	var pr *properties.Reader
	if c.v.GetBool(optUTF8) {
		pr = properties.NewReaderEncoding(r, unicode.UTF8)
	} else {
		pr = properties.NewReader(r)
	}
	pr.Strict = c.v.GetBool(optStrict)
	return pr
}

func (c *Cmd) newWriter(w io.Writer) *properties.Writer {
	pw := properties.NewWriter(w)
	pw.UTF8 = c.v.GetBool(optUTF8)
	pw.NoTimestamp = c.v.GetBool(optNoTimestamp)
	return pw
}

// loadInto loads src (file, url or "-") into p
func (c *Cmd) loadInto(ctx context.Context, p *properties.Properties, src string) error {
	r, err := u.OpenSource(ctx, src)
	if err != nil {
		return err
	}
	defer u.CloseNoError(r)
	if err = p.LoadFrom(c.newReader(r)); err != nil {
		return fmt.Errorf("loading '%s': %w", src, err)
	}
	log.Verbosef("loaded '%s':\n%s", src, spew.Sdump(p.Entries()))
	return nil
}

// load loads src with defaults from --defaults
func (c *Cmd) load(ctx context.Context, src string) (*properties.Properties, error) {
	var defaults *properties.Properties
	if path := c.v.GetString(optDefaults); path != "" {
		defaults = properties.New()
		if err := c.loadInto(ctx, defaults, path); err != nil {
			return nil, err
		}
	}
	p := properties.NewWithDefaults(defaults)
	if err := c.loadInto(ctx, p, src); err != nil {
		return nil, err
	}
	return p, nil
}

// loadForEdit loads a file that will be re-written. Missing file
// is an empty file. Defaults are not used so that they are
// not written back
func (c *Cmd) loadForEdit(ctx context.Context, path string) (*properties.Properties, error) {
	if u.IsURL(path) || path == "-" {
		return nil, fmt.Errorf("can only edit files, not '%s'", path)
	}
	p := properties.New()
	if !u.FileExists(path) {
		log.Verbosef("'%s' doesn't exist, creating\n", path)
		return p, nil
	}
	if err := c.loadInto(ctx, p, path); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *Cmd) save(p *properties.Properties, path string, comments string) error {
	return u.WriteFileAtomic(path, func(w io.Writer) error {
		return p.StoreTo(c.newWriter(w), comments)
	})
}
