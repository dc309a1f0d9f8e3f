package model

import "strconv"

// Fields is the ordered list of column names in the generated command log.
// Used for the CSV header and for validating files read back from disk.
var Fields = []string{
	"command_id", "raw_command", "base_command", "shell_type",
	"exit_code", "timestamp", "sudo_used", "working_directory",
	"user_id", "user_name", "host_name", "risk_level",
}

// TimestampLayout is ISO-8601 with millisecond precision and a Z suffix.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// CommandEvent represents a single synthetic shell command execution.
// Field names and order match the columns consumed by the query engine.
type CommandEvent struct {
	CommandID        string `json:"command_id"`
	RawCommand       string `json:"raw_command"`
	BaseCommand      string `json:"base_command"`
	ShellType        string `json:"shell_type"`
	ExitCode         int    `json:"exit_code"`
	Timestamp        string `json:"timestamp"`
	SudoUsed         bool   `json:"sudo_used"`
	WorkingDirectory string `json:"working_directory"`
	UserID           int    `json:"user_id"`
	UserName         string `json:"user_name"`
	HostName         string `json:"host_name"`
	RiskLevel        int    `json:"risk_level"`
}

// Record encodes the event as a row in Fields order.
// Booleans are written as the lowercase literals true/false.
func (e *CommandEvent) Record() []string {
	return []string{
		e.CommandID,
		e.RawCommand,
		e.BaseCommand,
		e.ShellType,
		strconv.Itoa(e.ExitCode),
		e.Timestamp,
		strconv.FormatBool(e.SudoUsed),
		e.WorkingDirectory,
		strconv.Itoa(e.UserID),
		e.UserName,
		e.HostName,
		strconv.Itoa(e.RiskLevel),
	}
}
