package web

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// ErrUnsupportedURL is returned for URLs that are not http or https.
var ErrUnsupportedURL = errors.New("unsupported url")

// Opener hands a URL to something that can display it.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// CommandFunc builds the command used to open a URL.
type CommandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// SystemOpener opens URLs in the platform's default browser.
type SystemOpener struct {
	goos    string
	command CommandFunc
}

// NewSystemOpener returns an opener for the running platform.
func NewSystemOpener() *SystemOpener {
	return &SystemOpener{goos: runtime.GOOS, command: exec.CommandContext}
}

func (o *SystemOpener) Open(ctx context.Context, raw string) error {
	if err := checkURL(raw); err != nil {
		return err
	}
	name, args := browserCommand(o.goos, raw)
	cmd := o.command(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening %s: %w", raw, err)
	}
	// The launcher exits on its own; reap it in the background.
	go cmd.Wait()
	return nil
}

func browserCommand(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %q", ErrUnsupportedURL, raw)
	}
	return nil
}
