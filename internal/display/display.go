// Package display is the run's console and log-file reporter. It is an
// explicit value handed to callers, not process-global state, so the rest of
// the tool stays testable.
package display

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	bannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	infoBadge   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).SetString("[*]")
	errorBadge  = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("160")).
			SetString("[!]")
)

const banner = `
 ____         __            _ ____              _
/ ___|  __ _ / _| __ _ _ __(_) __ )  ___   ___ | | _____
\___ \ / _` + "`" + ` | |_ / _` + "`" + ` | '__| |  _ \ / _ \ / _ \| |/ / __|
 ___) | (_| |  _| (_| | |  | | |_) | (_) | (_) |   <\__ \
|____/ \__,_|_|  \__,_|_|  |_|____/ \___/ \___/|_|\_\___/
`

// Reporter writes user-facing messages to stdout/stderr and a plain-text
// copy of everything to the run's log file.
type Reporter struct {
	logPath string
	logFile *os.File
	logger  *slog.Logger
}

// New creates a Reporter whose log file is info_<bookID>.log in dir, prints
// the banner, and logs the opening line.
func New(dir, bookID string) (*Reporter, error) {
	logPath := filepath.Join(dir, fmt.Sprintf("info_%s.log", bookID))
	f, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("creating log file %s: %w", logPath, err)
	}

	r := &Reporter{
		logPath: logPath,
		logFile: f,
		logger:  slog.New(slog.NewTextHandler(f, nil)),
	}

	fmt.Println(bannerStyle.Render(strings.Trim(banner, "\n")))
	fmt.Println(strings.Repeat("~", 32))
	r.logger.Info("** Welcome to SafariBooks **")
	return r, nil
}

// Info reports a progress message.
func (r *Reporter) Info(msg string) {
	fmt.Printf("%s %s\n", infoBadge, msg)
	r.logger.Info(msg)
}

// Infof is Info with formatting.
func (r *Reporter) Infof(format string, args ...any) {
	r.Info(fmt.Sprintf(format, args...))
}

// Warn reports a non-fatal problem.
func (r *Reporter) Warn(msg string) {
	fmt.Printf("%s %s\n", infoBadge, msg)
	r.logger.Warn(msg)
}

// Error reports a fatal error message. The caller decides the exit; the
// reporter only does the writing.
func (r *Reporter) Error(msg string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", errorBadge, msg)
	r.logger.Error(msg)
}

// OutputDir announces the final output directory.
func (r *Reporter) OutputDir(dir string) {
	r.Infof("Output directory:\n %s", dir)
}

// LogPath returns the path of the run's log file.
func (r *Reporter) LogPath() string {
	return r.logPath
}

// Close flushes and closes the log file.
func (r *Reporter) Close() error {
	return r.logFile.Close()
}

// CleanupLog removes the log file after a successful run unless preserve is
// set. Call after Close.
func (r *Reporter) CleanupLog(preserve bool) error {
	if preserve {
		return nil
	}
	return os.Remove(r.logPath)
}
