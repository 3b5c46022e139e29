package liblogger

import "time"

// TimerSet holds all timers used in processLogs
type TimerSet struct {
	flushTicker     *time.Ticker
	heartbeatTicker *time.Ticker
	heartbeatChan   <-chan time.Time
}

// setupProcessingTimers creates and configures all necessary timers for the processor
func (l *Logger) setupProcessingTimers() *TimerSet {
	timers := &TimerSet{}

	flushInterval := l.cfg.flushInterval()
	if flushInterval < minWaitTime {
		flushInterval = minWaitTime
	}
	timers.flushTicker = time.NewTicker(flushInterval)

	timers.heartbeatChan = l.setupHeartbeatTimer(timers)

	return timers
}

// closeProcessingTimers stops all active timers
func (l *Logger) closeProcessingTimers(timers *TimerSet) {
	timers.flushTicker.Stop()
	if timers.heartbeatTicker != nil {
		timers.heartbeatTicker.Stop()
	}
}

// setupHeartbeatTimer configures the heartbeat timer if enabled, a nil channel never fires
func (l *Logger) setupHeartbeatTimer(timers *TimerSet) <-chan time.Time {
	if l.cfg.HeartbeatIntervalS <= 0 {
		return nil
	}
	timers.heartbeatTicker = time.NewTicker(time.Duration(l.cfg.HeartbeatIntervalS) * time.Second)
	return timers.heartbeatTicker.C
}
