package main

import (
	"context"
	"flag"
	"os"

	"github.com/coreos/go-systemd/daemon"
	"github.com/juju/errors"
	"github.com/temoto/paystation/helpers/cli"
	"github.com/temoto/paystation/internal/ui"
	"github.com/temoto/paystation/log2"
	"github.com/temoto/paystation/state"
)

var log = log2.NewStderr(log2.LInfo)

func main() {
	cmdline := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flagConfig := cmdline.String("config", "paystation.hcl", "")
	flagDebug := cmdline.Bool("debug", false, "debug logging")
	_ = cmdline.Parse(os.Args[1:])

	if sdnotify("STATUS=start") {
		// we're under systemd, assume systemd journal logging, remove timestamp
		log.SetFlags(log2.LServiceFlags)
	} else {
		log.SetFlags(log2.LInteractiveFlags)
	}
	ctx, g := state.NewContext(log)
	g.MustInit(ctx, readConfig(*flagConfig))
	if *flagDebug {
		log.SetLevel(log2.LDebug)
	}

	sh := ui.NewShell(ctx, os.Stdout)
	sh.Intro()
	sdnotify(daemon.SdNotifyReady)
	cli.MainLoop(g.Alive, g.Config.UI.Prompt, newExecutor(ctx, sh), sh.Complete)

	sh.Shutdown(ctx)
	sdnotify("STOPPING=1")
}

// Missing config file is fine, built-in defaults apply.
func readConfig(path string) *state.Config {
	c, err := state.ReadConfigSources(log, state.NewOsFullReader(), state.ConfigSource{Name: path, Optional: true})
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	return c
}

func newExecutor(ctx context.Context, sh *ui.Shell) func(string) {
	g := state.GetGlobal(ctx)
	return func(line string) {
		if err := sh.Exec(ctx, line); err != nil {
			g.Error(err)
		}
	}
}

func sdnotify(s string) bool {
	ok, err := daemon.SdNotify(false, s)
	if err != nil {
		log.Fatal("sdnotify: ", errors.ErrorStack(err))
	}
	return ok
}
