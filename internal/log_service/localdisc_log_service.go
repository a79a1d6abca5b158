package log_service

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// LocalDiscLogService appends formatted events to <logDir>/<clientID>.log.
type LocalDiscLogService struct {
	logDir   string
	clientID string
	mu       sync.Mutex
	logger   *log.Logger
	minLevel int
}

func NewLocalDiscLogService(logDir string, clientID string) (*LocalDiscLogService, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	filePath := filepath.Join(logDir, fmt.Sprintf("%s.log", clientID))
	file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &LocalDiscLogService{
		logDir:   logDir,
		clientID: clientID,
		logger:   log.New(file, "", 0),
		minLevel: InfoLevelValue,
	}, nil
}

func (ls *LocalDiscLogService) SetMinLogLevel(level string) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.minLevel = GetLevelValue(strings.ToUpper(strings.TrimSpace(level)))
}

func (ls *LocalDiscLogService) log(level string, event LogEvent) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if GetLevelValue(level) < ls.minLevel {
		return
	}

	ts := event.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	clientID := event.ClientID
	if clientID == "" {
		clientID = ls.clientID
	}

	keys := make([]string, 0, len(event.Metadata))
	for k := range event.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var meta strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&meta, " %s=%v", k, event.Metadata[k])
	}

	ls.logger.Printf("%s [%s] %s %s%s", ts.Format(time.RFC3339Nano), level, clientID, event.Message, meta.String())
}

func (ls *LocalDiscLogService) Debug(event LogEvent) { ls.log(DebugLevel, event) }
func (ls *LocalDiscLogService) Info(event LogEvent)  { ls.log(InfoLevel, event) }
func (ls *LocalDiscLogService) Warn(event LogEvent)  { ls.log(WarnLevel, event) }
func (ls *LocalDiscLogService) Error(event LogEvent) { ls.log(ErrorLevel, event) }
