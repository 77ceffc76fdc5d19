package state

import (
	"context"
	"fmt"
	"strings"

	"github.com/juju/errors"
	"github.com/temoto/alive/v2"
	"github.com/temoto/paystation/helpers"
	"github.com/temoto/paystation/log2"
	"github.com/temoto/paystation/paystation"
)

const (
	DefaultPrompt      = "paystation> "
	DefaultMsgIntro    = "Insert coins: 5, 10, 25"
	DefaultMsgRejected = "coin rejected, please try another"
)

type Global struct {
	Alive   *alive.Alive
	Config  *Config
	Log     *log2.Log
	Station *paystation.PayStation
}

const ContextKey = "run/state-global"

func NewContext(log *log2.Log) (context.Context, *Global) {
	if log == nil {
		panic("code error state.NewContext() log=nil")
	}

	g := &Global{
		Alive:   alive.NewAlive(),
		Log:     log,
		Station: paystation.New(log),
	}
	ctx := context.Background()
	ctx = context.WithValue(ctx, log2.ContextKey, log)
	ctx = context.WithValue(ctx, ContextKey, g)
	return ctx, g
}

func GetGlobal(ctx context.Context) *Global {
	v := ctx.Value(ContextKey)
	if v == nil {
		panic(fmt.Sprintf("context['%s'] is nil", ContextKey))
	}
	if g, ok := v.(*Global); ok {
		return g
	}
	panic(fmt.Sprintf("context['%s'] expected type *Global actual=%#v", ContextKey, v))
}

// If `Init` fails, consider `Global` is in broken state.
func (g *Global) Init(ctx context.Context, cfg *Config) error {
	g.Config = cfg
	errs := make([]error, 0)

	if cfg.Log.Debug {
		g.Log.SetLevel(log2.LDebug)
	}

	if cfg.UI.Prompt == "" {
		cfg.UI.Prompt = DefaultPrompt
	} else if strings.ContainsAny(cfg.UI.Prompt, "\r\n") {
		errs = append(errs, errors.NotValidf("config: ui.prompt with line break"))
	}
	if cfg.UI.MsgIntro == "" {
		cfg.UI.MsgIntro = DefaultMsgIntro
	}
	if cfg.UI.MsgRejected == "" {
		cfg.UI.MsgRejected = DefaultMsgRejected
	}
	g.Log.Debugf("config: ui.receipt_qr=%t", cfg.UI.ReceiptQR)

	return helpers.FoldErrors(errs)
}

func (g *Global) MustInit(ctx context.Context, cfg *Config) {
	err := g.Init(ctx, cfg)
	if err != nil {
		g.Log.Fatal(errors.ErrorStack(err))
	}
}

func (g *Global) Error(err error, args ...interface{}) {
	if err != nil {
		if len(args) != 0 {
			msg := args[0].(string)
			args = args[1:]
			err = errors.Annotatef(err, msg, args...)
		}
		g.Log.Errorf("%s", errors.ErrorStack(err))
	}
}
