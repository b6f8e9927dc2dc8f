package nicklife

import (
	"fmt"
	"os"
	"runtime"

	"github.com/davecgh/go-spew/spew"
)

// Dump pretty-prints values with their call site. Intended for local debugging;
// the Lambda mains gate it behind DEBUG_DUMP_REQUESTS.
func Dump(v ...any) {
	_, file, line, _ := runtime.Caller(1)
	args := append([]any{fmt.Sprintf("%s:%d:", file, line)}, v...)
	spew.Dump(args...)
}

// DumpEnabled reports whether request dumping was switched on via env.
func DumpEnabled() bool {
	return os.Getenv("DEBUG_DUMP_REQUESTS") != ""
}
