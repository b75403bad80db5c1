package admin

import (
	"bufio"
	"os"
	"strings"

	"github.com/umitdogu/proxysql-monitor/internal/model"
)

// DatasetLogs is filled from the log file on disk rather than an admin query.
const DatasetLogs = "logs"

// DefaultLogFile is where ProxySQL writes its log on a stock install.
const DefaultLogFile = "/var/lib/proxysql/proxysql.log"

// TailLog reads the last maxLines parseable entries from the ProxySQL log
// file and returns them as [timestamp, level, message] rows, oldest first.
// A missing or unreadable file yields no rows; the log view degrades to
// empty like any other failed dataset.
func TailLog(path string, maxLines int) []model.Row {
	if maxLines <= 0 {
		maxLines = 100
	}
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	rows := make([]model.Row, 0, maxLines)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		row, ok := ParseLogLine(sc.Text())
		if !ok {
			continue
		}
		rows = append(rows, row)
		if len(rows) > maxLines {
			rows = rows[1:]
		}
	}
	return rows
}

// ParseLogLine parses one ProxySQL log line of the form
// "2025-03-01 12:00:00 [INFO] message" into [timestamp, level, message].
// Lines that do not start with a timestamp (table dumps, config echoes)
// are rejected.
func ParseLogLine(line string) (model.Row, bool) {
	line = strings.TrimSpace(line)
	if len(line) <= 20 {
		return nil, false
	}
	if line[4] != '-' || line[7] != '-' || line[10] != ' ' || line[13] != ':' || line[16] != ':' {
		return nil, false
	}
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 3 {
		return nil, false
	}
	timestamp := parts[0] + " " + parts[1]
	message := parts[2]

	level := "INFO"
	upper := strings.ToUpper(message)
	switch {
	case strings.Contains(upper, "[ERROR]"):
		level = "ERROR"
	case strings.Contains(upper, "[WARN]"), strings.Contains(upper, "[WARNING]"):
		level = "WARN"
	case strings.Contains(upper, "[DEBUG]"):
		level = "DEBUG"
	}
	return model.Row{timestamp, level, message}, true
}
