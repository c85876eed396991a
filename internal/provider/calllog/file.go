// Package calllog provides CallLogProvider implementations: a file-backed
// provider reading a call-log export (JSON array or JSONL) plus a watcher
// for live updates, and an in-memory provider for tests.
package calllog

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/bytedance/sonic"

	"callscope/internal/core/model"
	"callscope/internal/provider"
	"callscope/internal/util"
)

// PermissionName is the logical permission guarding call-log reads.
const PermissionName = "call_log.read"

// FileProvider reads call-log entries from an export file, the shape
// produced by call-log backup tools: either one JSON array or one JSON
// object per line.
type FileProvider struct {
	path string
}

// NewFileProvider creates a provider for the export file at path.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

// Path returns the export file path.
func (p *FileProvider) Path() string {
	return p.path
}

// Available reports whether an export path is configured and present.
func (p *FileProvider) Available() bool {
	if p.path == "" {
		return false
	}
	_, err := os.Stat(p.path)
	return err == nil
}

// Check probes read access to the export file.
func (p *FileProvider) Check(name string) provider.PermissionStatus {
	if name != PermissionName {
		return provider.PermissionDenied
	}
	f, err := os.Open(p.path)
	if err != nil {
		return provider.PermissionDenied
	}
	f.Close()
	return provider.PermissionGranted
}

// Request re-probes read access; for a file there is nothing to prompt.
func (p *FileProvider) Request(name string) provider.PermissionStatus {
	return p.Check(name)
}

// Load reads the export and returns up to limit entries with timestamps
// at or after minTimestamp (epoch milliseconds), newest first. Malformed
// lines are skipped, not fatal: exports are appended to by other tools
// and a torn write must not poison the whole snapshot.
func (p *FileProvider) Load(ctx context.Context, limit int, minTimestamp int64) ([]model.CallLogEntry, error) {
	if p.path == "" {
		return nil, fmt.Errorf("call log export path not configured: %w", provider.ErrProviderUnavailable)
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return nil, fmt.Errorf("call log export %s: %w", p.path, provider.ErrProviderUnavailable)
		case os.IsPermission(err):
			return nil, fmt.Errorf("call log export %s: %w", p.path, provider.ErrPermissionDenied)
		default:
			return nil, fmt.Errorf("read call log export: %w", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := parseExport(data)
	if err != nil {
		return nil, err
	}

	return filterEntries(entries, limit, minTimestamp), nil
}

// parseExport decodes either a whole-file JSON array or JSONL.
func parseExport(data []byte) ([]model.CallLogEntry, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var entries []model.CallLogEntry
		if err := sonic.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("decode call log export: %w", err)
		}
		return entries, nil
	}

	var entries []model.CallLogEntry
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry model.CallLogEntry
		if err := sonic.Unmarshal(line, &entry); err != nil {
			util.LogDebugf("Skipping malformed call log line %d: %v", lineNo, err)
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan call log export: %w", err)
	}
	return entries, nil
}

// filterEntries applies the minTimestamp filter, orders newest first, and
// truncates to limit. Entries with unparseable timestamps survive a zero
// lower bound so the mapper can apply its own default.
func filterEntries(entries []model.CallLogEntry, limit int, minTimestamp int64) []model.CallLogEntry {
	filtered := make([]model.CallLogEntry, 0, len(entries))
	for _, e := range entries {
		if minTimestamp > 0 && entryMillis(e) < minTimestamp {
			continue
		}
		filtered = append(filtered, e)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return entryMillis(filtered[i]) > entryMillis(filtered[j])
	})

	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered
}

func entryMillis(e model.CallLogEntry) int64 {
	millis, err := strconv.ParseInt(e.Timestamp, 10, 64)
	if err != nil {
		return 0
	}
	return millis
}
