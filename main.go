package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/heathj/goevents/config"
	"github.com/heathj/goevents/dom"
	"github.com/heathj/goevents/event"
	"github.com/heathj/goevents/script"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		logrus.WithError(err).Fatal("goevents")
	}
}

// run parses a page (a file argument or stdin), runs a script against it,
// takes the document through its lifecycle and prints the resulting markup.
func run(args []string, stdin io.Reader, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	lvl, err := cfg.Level()
	if err != nil {
		return err
	}
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(lvl)

	fs := flag.NewFlagSet("goevents", flag.ContinueOnError)
	scriptPath := fs.String("script", cfg.Script, "JavaScript file to run against the page")
	if err := fs.Parse(args); err != nil {
		return err
	}

	page := stdin
	if fs.NArg() > 0 {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			return errors.Wrap(err, "open page")
		}
		defer f.Close()
		page = f
	}

	doc, err := dom.Parse(page, dom.WithFocusinSupport(cfg.Focusin), dom.WithLogger(log))
	if err != nil {
		return err
	}
	eng := event.NewEngine(event.WithLogger(log))
	host := script.New(doc, eng, log)

	if *scriptPath != "" {
		src, err := os.ReadFile(*scriptPath)
		if err != nil {
			return errors.Wrap(err, "read script")
		}
		if _, err := host.Run(string(src)); err != nil {
			return err
		}
	}

	doc.Complete()
	ran := doc.Window().RunTasks()
	log.WithField("method", "run").Debugf("[MAIN]: %d deferred tasks", ran)

	_, err = fmt.Fprintln(stdout, doc.Node.String())
	return err
}
