package nicklife

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// TurnLogger is the interface for recording dialogue turns.
type TurnLogger interface {
	LogTurn(turn TurnLog) error
}

// NewTurnLogFilePath returns a file path based on the skill name so logs from
// the two skills are easy to tell apart.
func NewTurnLogFilePath(skill string) string {
	return fmt.Sprintf(
		"./logs/%d.%s.json",
		time.Now().Unix(),
		strings.ReplaceAll(strings.ToLower(skill), " ", "_"),
	)
}

// TurnLog represents one handled intent within a conversation.
type TurnLog struct {
	Intent     string    `json:"intent"`
	Timestamp  time.Time `json:"timestamp"`
	Speech     string    `json:"speech"`
	EndSession bool      `json:"end_session"`
	Candidates int       `json:"candidates,omitempty"`
	Index      int       `json:"index,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// FileTurnLogger accumulates turns and flushes them at the end of a run.
type FileTurnLogger struct {
	turns  []TurnLog
	writer io.Writer
}

// NewFileTurnLogger creates a new file-based turn logger.
func NewFileTurnLogger(writer io.Writer) *FileTurnLogger {
	return &FileTurnLogger{
		turns:  make([]TurnLog, 0),
		writer: writer,
	}
}

// LogTurn appends the turn to the buffer (does not flush immediately).
func (l *FileTurnLogger) LogTurn(turn TurnLog) error {
	l.turns = append(l.turns, turn)
	return nil
}

// Flush writes all accumulated turns to the writer.
func (l *FileTurnLogger) Flush() error {
	if l.writer == nil {
		return nil
	}

	data, err := json.MarshalIndent(map[string]any{
		"conversation": map[string]any{
			"timestamp": time.Now(),
			"turns":     l.turns,
		},
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal turn log: %w", err)
	}

	if _, err := l.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write turn log: %w", err)
	}

	l.turns = l.turns[:0]
	return nil
}

// NoOpTurnLogger discards all turns.
type NoOpTurnLogger struct{}

// NewNoOpTurnLogger creates a new no-op turn logger.
func NewNoOpTurnLogger() *NoOpTurnLogger {
	return &NoOpTurnLogger{}
}

// LogTurn discards the turn.
func (l *NoOpTurnLogger) LogTurn(turn TurnLog) error {
	return nil
}

// StdoutTurnLogger logs each turn as a JSON line to stdout (for Lambda/CloudWatch).
type StdoutTurnLogger struct{}

// NewStdoutTurnLogger creates a new stdout-based turn logger.
func NewStdoutTurnLogger() *StdoutTurnLogger {
	return &StdoutTurnLogger{}
}

// LogTurn writes the turn as a JSON line to os.Stdout.
func (l *StdoutTurnLogger) LogTurn(turn TurnLog) error {
	data, err := json.Marshal(turn)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}
