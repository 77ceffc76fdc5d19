package cli

import (
	"bufio"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/c-bata/go-prompt"
	"github.com/mattn/go-isatty"
	"github.com/temoto/alive/v2"
)

// MainLoop feeds input lines to exec until input ends, a signal arrives or a.Stop().
// Terminal gets interactive prompt with completion, otherwise stdin is read line by line.
// Returns after the command in progress is finished.
func MainLoop(a *alive.Alive, prefix string, exec func(line string), complete prompt.Completer) {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)
	defer signal.Stop(signalCh)
	go func() {
		select {
		case <-signalCh:
			a.Stop()
		case <-a.StopChan():
		}
	}()

	guarded := Guard(a, exec)
	if isatty.IsTerminal(os.Stdin.Fd()) {
		p := prompt.New(guarded, complete, prompt.OptionPrefix(prefix))
		go func() {
			p.Run()
			a.Stop()
		}()
	} else {
		go func() {
			ReadLines(a, os.Stdin, guarded)
			a.Stop()
		}()
	}
	a.Wait()
}

// Guard runs exec as alive task, lines arriving after Stop are ignored.
func Guard(a *alive.Alive, exec func(line string)) func(string) {
	return func(line string) {
		if !a.Add(1) {
			return
		}
		defer a.Done()
		exec(line)
	}
}

// ReadLines calls exec for every trimmed line of r while a is running.
func ReadLines(a *alive.Alive, r io.Reader, exec func(line string)) {
	scanner := bufio.NewScanner(r)
	for a.IsRunning() && scanner.Scan() {
		exec(strings.TrimSpace(scanner.Text()))
	}
}
