package preview

import (
	"fmt"
	"strings"
	"time"

	"github.com/gookit/color"
)

func printFiles(files []string, rendered map[string]time.Time, limit int, maxWidth int) string {
	var sb strings.Builder
	pathSize := max(maxWidth-16, 20)
	for i, name := range files {
		if i >= limit {
			fmt.Fprintf(&sb, "and %d more files...\n", len(files)-limit)
			break
		}
		at, ok := rendered[name]
		status := color.Gray.Sprint("pending ")
		if ok {
			status = color.Green.Sprint(at.Format(time.TimeOnly))
		}
		fmt.Fprintf(&sb, " %s  %s\n", status, color.Cyan.Sprint(tail(name, pathSize)))
	}
	return sb.String()
}

func tail(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return "..." + string(r[len(r)-(n-3):])
}
