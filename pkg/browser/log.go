package browser

import (
	"fmt"
	"strings"

	"github.com/chromedp/cdproto/runtime"
)

func (b *Browser) writeBrowserLog(format string, a ...any) {
	b.browserLogMu.Lock()
	defer b.browserLogMu.Unlock()
	b.browserLog.Write(fmt.Sprintf(format, a...))
}

// Log returns the last console messages of the page, oldest first.
func (b *Browser) Log() []string {
	b.browserLogMu.Lock()
	defer b.browserLogMu.Unlock()
	result := []string{}
	b.browserLog.Reader = b.browserLog.Writer
	var i int32
	for ; i < b.browserLog.Size; i++ {
		elem := b.browserLog.Read()
		str, ok := elem.(string)
		if !ok {
			continue
		}
		result = append(result, str)
	}
	return result
}

func consoleLine(ev *runtime.EventConsoleAPICalled) string {
	parts := make([]string, 0, len(ev.Args))
	for _, arg := range ev.Args {
		parts = append(parts, remoteObjectString(arg))
	}
	return fmt.Sprintf("%s: %s", ev.Type, strings.Join(parts, " "))
}
