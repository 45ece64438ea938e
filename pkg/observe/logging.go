package observe

import (
	"log/slog"

	"github.com/dshills/alma/pkg/watch"
)

// NewLogListener returns a listener that records every committed change on
// logger at info level. A nil logger uses slog.Default().
func NewLogListener(logger *slog.Logger) watch.Listener {
	if logger == nil {
		logger = slog.Default()
	}
	return watch.ListenerFunc(func(v *watch.Var, rec watch.ChangeRecord) error {
		attrs := []any{
			slog.String("variable", v.Name()),
			slog.Int("index", rec.Index),
			slog.Any("value", rec.Value),
		}
		if rec.Label != "" {
			attrs = append(attrs, slog.String("label", rec.Label))
		}
		logger.Info("variable changed", attrs...)
		return nil
	})
}
