package ui

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/juju/errors"
	"github.com/skip2/go-qrcode"
	"github.com/temoto/paystation/currency"
	"github.com/temoto/paystation/log2"
	"github.com/temoto/paystation/paystation"
	"github.com/temoto/paystation/state"
)

const usage = `syntax: commands separated by whitespace
(coins)
- 5 10 25  insert coin
- coin=N   insert coin of value N
(session)
- display  show parking time bought
- buy      print receipt, start new session
- cancel   return inserted money, start new session
(service)
- empty    collect inserted money
- log      show coins inserted in this session
- log=yes  enable debug logging
- log=no   disable debug logging
`

// Shell translates operator text commands to pay station operations.
type Shell struct {
	g   *state.Global
	out io.Writer
}

type command struct {
	name string
	f    func(ctx context.Context) error
}

func NewShell(ctx context.Context, out io.Writer) *Shell {
	return &Shell{
		g:   state.GetGlobal(ctx),
		out: out,
	}
}

func (self *Shell) Intro() {
	self.printf("%s\n", self.g.Config.UI.MsgIntro)
}

// Exec parses whole line first, nothing runs if any word is invalid.
// Rejected coin is reported to operator and does not stop the line.
func (self *Shell) Exec(ctx context.Context, line string) error {
	words := strings.Fields(line)
	cmds := make([]command, 0, len(words))
	for _, word := range words {
		cmd, err := self.parseCommand(word)
		if err != nil {
			return errors.Annotatef(err, "line='%s'", line)
		}
		cmds = append(cmds, cmd)
	}
	for _, cmd := range cmds {
		if err := cmd.f(ctx); err != nil {
			return errors.Annotatef(err, "command=%s", cmd.name)
		}
	}
	return nil
}

// Shutdown returns money of unfinished session.
func (self *Shell) Shutdown(ctx context.Context) {
	ps := self.g.Station
	if ps.InsertedSoFar() == 0 {
		return
	}
	report := ps.Cancel()
	self.g.Log.Infof("shutdown with active session, returned=%s", report.Total())
	self.printf("returned=%s\n", report.Total())
}

func (self *Shell) Complete(d prompt.Document) []prompt.Suggest {
	suggests := []prompt.Suggest{
		{Text: "5", Description: "insert coin 5"},
		{Text: "10", Description: "insert coin 10"},
		{Text: "25", Description: "insert coin 25"},
		{Text: "coin=N", Description: "insert coin of value N"},
		{Text: "display", Description: "show parking time bought"},
		{Text: "buy", Description: "print receipt"},
		{Text: "cancel", Description: "return inserted money"},
		{Text: "empty", Description: "collect inserted money"},
		{Text: "log", Description: "show coins inserted"},
		{Text: "help", Description: "show usage"},
	}
	return prompt.FilterHasPrefix(suggests, d.GetWordBeforeCursor(), true)
}

func (self *Shell) parseCommand(word string) (command, error) {
	switch {
	case word == "help":
		return command{word, self.doUsage}, nil
	case word == "display":
		return command{word, self.doDisplay}, nil
	case word == "buy":
		return command{word, self.doBuy}, nil
	case word == "cancel":
		return command{word, self.doCancel}, nil
	case word == "empty":
		return command{word, self.doEmpty}, nil
	case word == "log":
		return command{word, self.doInsertionLog}, nil
	case word == "log=yes":
		return command{word, self.doLogLevel(log2.LDebug)}, nil
	case word == "log=no":
		return command{word, self.doLogLevel(log2.LInfo)}, nil
	}

	s := strings.TrimPrefix(word, "coin=")
	i, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return command{}, errors.NotValidf("command=%s", word)
	}
	coin := currency.Nominal(i)
	return command{word, func(ctx context.Context) error { return self.doCoin(ctx, coin) }}, nil
}

func (self *Shell) doUsage(ctx context.Context) error {
	self.printf("%s", usage)
	return nil
}

func (self *Shell) doCoin(ctx context.Context, coin currency.Nominal) error {
	ps := self.g.Station
	err := ps.AddPayment(coin)
	if paystation.IsIllegalCoin(err) {
		self.g.Log.Debugf("ui coin rejected err=%v", err)
		self.printf("%s coin=%d\n", self.g.Config.UI.MsgRejected, coin)
		return nil
	}
	if err != nil {
		return err
	}
	self.printf("accepted coin=%d credit=%s display=%d min\n", coin, ps.InsertedSoFar(), ps.ReadDisplay())
	return nil
}

func (self *Shell) doDisplay(ctx context.Context) error {
	self.printf("display=%d min\n", self.g.Station.ReadDisplay())
	return nil
}

func (self *Shell) doBuy(ctx context.Context) error {
	r := self.g.Station.Buy()
	self.printf("receipt minutes=%d id=%s\n", r.Value(), r.ID().String())
	if !self.g.Config.UI.ReceiptQR {
		return nil
	}
	qr, err := r.QR(qrcode.Medium)
	if err != nil {
		return err
	}
	self.printf("%s", qr.ToString(false))
	return nil
}

func (self *Shell) doCancel(ctx context.Context) error {
	report := self.g.Station.Cancel()
	self.printf("returned=%s\n", report.Total())
	return nil
}

func (self *Shell) doEmpty(ctx context.Context) error {
	self.printf("collected=%s\n", self.g.Station.Empty())
	return nil
}

func (self *Shell) doInsertionLog(ctx context.Context) error {
	il := self.g.Station.InsertionLog()
	if il.Len() == 0 {
		self.printf("log empty\n")
		return nil
	}
	for i, coin := range il {
		self.printf("log %d:%d\n", i, coin)
	}
	return nil
}

func (self *Shell) doLogLevel(level log2.Level) func(context.Context) error {
	return func(ctx context.Context) error {
		self.g.Log.SetLevel(level)
		return nil
	}
}

func (self *Shell) printf(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(self.out, format, args...); err != nil {
		self.g.Log.Errorf("ui output err=%v", err)
	}
}
