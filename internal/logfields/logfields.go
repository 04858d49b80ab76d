package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPackage  = "package"
	KeyVersion  = "version"
	KeyVariant  = "variant"
	KeyProcess  = "process_type"
	KeyStage    = "stage"
	KeyPath     = "path"
	KeyRevision = "revision"
	KeyHook     = "hook"
	KeyError    = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Package(name string) slog.Attr { return slog.String(KeyPackage, name) }
func Version(v string) slog.Attr    { return slog.String(KeyVersion, v) }
func Variant(index int) slog.Attr   { return slog.Int(KeyVariant, index) }
func Process(name string) slog.Attr { return slog.String(KeyProcess, name) }
func Stage(name string) slog.Attr   { return slog.String(KeyStage, name) }
func Path(p string) slog.Attr       { return slog.String(KeyPath, p) }
func Revision(rev string) slog.Attr { return slog.String(KeyRevision, rev) }
func Hook(name string) slog.Attr    { return slog.String(KeyHook, name) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
