// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"streamplay/cli/internal/api"
	"streamplay/cli/internal/gate"
	"streamplay/cli/internal/httperrors"
	"streamplay/cli/internal/logging"

	"atomicgo.dev/cursor"

	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// renderGate draws the sign-in prompt when the session gate opens. It is
// subscribed once per process; closing the gate draws nothing, the box simply
// stops appearing.
func renderGate(st gate.State) {
	if !st.Visible {
		return
	}
	pterm.Println()
	pterm.DefaultBox.
		WithTitle(pterm.NewStyle(pterm.FgYellow, pterm.Bold).Sprint("Sign in required")).
		Println(st.Message + "\nRun 'streamplay login' to sign in.")
	pterm.Println()
}

// startInlineSpinner starts a simple inline spinner animation on a single line.
// It displays rotating animation frames followed by the provided text, updating
// the same line in the terminal. The spinner runs in a separate goroutine and
// can be stopped by calling the returned function.
//
// The cursor is hidden while the spinner runs and restored when it stops. The
// spinner clears its line completely on stop so subsequent output starts on a
// clean line.
func startInlineSpinner(w io.Writer, text string, frames []string, interval time.Duration) func() {
	cursor.Hide()
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		i := 0
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				line := fmt.Sprintf("%s %s", frames[i%len(frames)], text)
				// Clear the spinner line completely, then return
				fmt.Fprintf(w, "\r%*s\r", len(line), "")
				return
			case <-ticker.C:
				line := fmt.Sprintf("%s %s", frames[i%len(frames)], text)
				if len(line) > 2000 {
					line = line[:2000]
				}
				fmt.Fprintf(w, "\r%s", line)
				i++
			}
		}
	}()
	return func() {
		close(stop)
		wg.Wait()
		cursor.Show()
	}
}

var spinnerFrames = []string{"|", "/", "-", "\\"}

// presentAPIError reports a failed backend call and returns the error the
// command should surface. Session errors are swallowed: the gate subscription
// has already drawn the sign-in prompt and a second message would only repeat
// it. Backend rejections show the server's message; transport failures get
// connectivity hints.
func presentAPIError(action string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, api.ErrAuthRequired) || errors.Is(err, api.ErrSessionExpired) {
		return nil
	}
	var se *api.StatusError
	if errors.As(err, &se) {
		fmt.Printf("❌ Could not %s: %s\n", action, se.Message)
		return se
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		return httperrors.FormatNetworkError(err, action)
	}
	pterm.Println(logging.PresentError(action, err))
	return err
}

// promptLine reads one line of input after printing prompt.
func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echoing it. It prints a newline
// itself since the suppressed echo swallows the user's Enter.
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// renderVideoTable prints a listing of videos as a pterm table.
func renderVideoTable(videos []api.Video) {
	data := pterm.TableData{{"ID", "Title", "Channel", "Views", "Duration"}}
	for _, v := range videos {
		channel := v.Owner.Username
		if channel == "" {
			channel = v.Owner.ID
		}
		data = append(data, []string{
			v.ID,
			truncate(v.Title, 40),
			channel,
			fmt.Sprintf("%d", v.Views),
			formatDuration(v.Duration),
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// formatDuration renders a duration in seconds as m:ss or h:mm:ss.
func formatDuration(seconds float64) string {
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}
