package frontend

import "strings"

// builtinModules are the runtime's core modules. They are never read from disk.
var builtinModules = map[string]bool{
	"assert": true, "async_hooks": true, "buffer": true, "child_process": true,
	"cluster": true, "console": true, "constants": true, "crypto": true,
	"dgram": true, "diagnostics_channel": true, "dns": true, "domain": true,
	"events": true, "fs": true, "http": true, "http2": true, "https": true,
	"inspector": true, "module": true, "net": true, "os": true, "path": true,
	"perf_hooks": true, "process": true, "punycode": true, "querystring": true,
	"readline": true, "repl": true, "stream": true, "string_decoder": true,
	"sys": true, "timers": true, "tls": true, "trace_events": true, "tty": true,
	"url": true, "util": true, "v8": true, "vm": true, "wasi": true,
	"worker_threads": true, "zlib": true,
}

// isBuiltin reports whether request names a core module, including "node:" requests
// and sub-paths such as "fs/promises".
func isBuiltin(request string) bool {
	if strings.HasPrefix(request, "node:") {
		return true
	}
	name, _, _ := strings.Cut(request, "/")
	return builtinModules[name]
}
