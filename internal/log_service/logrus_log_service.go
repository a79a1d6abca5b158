package log_service

import (
	"github.com/sirupsen/logrus"
)

// LogrusLogService adapts a logrus logger to the LogService interface, for
// embedders that already run logrus and want client logs in the same stream.
type LogrusLogService struct {
	logger   *logrus.Logger
	clientID string
}

func NewLogrusLogService(logger *logrus.Logger, clientID string) *LogrusLogService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogrusLogService{logger: logger, clientID: clientID}
}

func (ls *LogrusLogService) entry(event LogEvent) *logrus.Entry {
	fields := logrus.Fields{}
	for k, v := range event.Metadata {
		fields[k] = v
	}
	clientID := event.ClientID
	if clientID == "" {
		clientID = ls.clientID
	}
	fields["client"] = clientID
	if !event.Timestamp.IsZero() {
		return ls.logger.WithFields(fields).WithTime(event.Timestamp)
	}
	return ls.logger.WithFields(fields)
}

func (ls *LogrusLogService) Debug(event LogEvent) { ls.entry(event).Debug(event.Message) }
func (ls *LogrusLogService) Info(event LogEvent)  { ls.entry(event).Info(event.Message) }
func (ls *LogrusLogService) Warn(event LogEvent)  { ls.entry(event).Warn(event.Message) }
func (ls *LogrusLogService) Error(event LogEvent) { ls.entry(event).Error(event.Message) }
