// Package logging provides the low-ceremony, process-wide logger used by
// the pipeline, grounded on nihei9-9gram's log/logger.go: a package-level
// *log.Logger, initialized once, writing structured key=value lines rather
// than free text, without pulling in an external leveled-logging library
// neither the teacher (vartan) nor its pack neighbor (9gram) import.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

var l *log.Logger

// Init points the package-level logger at w. Defaults to os.Stderr if
// never called.
func Init(w io.Writer) {
	l = log.New(w, "", log.LstdFlags)
}

func logger() *log.Logger {
	if l == nil {
		l = log.New(os.Stderr, "", log.LstdFlags)
	}
	return l
}

// Event writes one structured line: "msg key1=val1 key2=val2 ...".
func Event(msg string, kv ...any) {
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(&b, " %v=%v", kv[i], kv[i+1])
	}
	logger().Print(b.String())
}
