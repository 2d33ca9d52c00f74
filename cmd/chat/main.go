package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hackgods/doctor-booking-assistant/internal/client"
	"github.com/hackgods/doctor-booking-assistant/internal/roster"
)

func main() {
	api := flag.String("api", envOr("CHAT_API_URL", "http://localhost:8080"), "base url of the api server")
	timeout := flag.Duration("timeout", 10*time.Second, "per message timeout")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	session := client.NewSession(*api)
	if err := run(ctx, session, os.Stdin, os.Stdout, *timeout); err != nil {
		fmt.Fprintln(os.Stderr, "chat:", err)
		os.Exit(1)
	}
}

// run drives one session from in until EOF, "exit" or "quit".
func run(ctx context.Context, session *client.Session, in io.Reader, out io.Writer, timeout time.Duration) error {
	rosterCtx, cancel := context.WithTimeout(ctx, timeout)
	doctors, err := session.FetchRoster(rosterCtx)
	cancel()
	if err != nil {
		fmt.Fprintf(out, "(could not load doctors: %v)\n", err)
	} else {
		printDoctors(out, doctors)
	}

	printed := 0
	printed = printNew(out, session.Messages(), printed)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "appointments":
			printAppointments(out, session)
			continue
		}

		sendCtx, cancel := context.WithTimeout(ctx, timeout)
		_, err := session.Send(sendCtx, line)
		cancel()
		if err != nil && !errors.Is(err, client.ErrEmptyMessage) {
			return err
		}

		if ctx.Err() != nil {
			return nil
		}
		// the user line is already on screen
		printed++
		printed = printNew(out, session.Messages(), printed)
	}
}

func printNew(out io.Writer, messages []client.Message, from int) int {
	for _, m := range messages[from:] {
		switch m.Role {
		case client.RoleSystem:
			fmt.Fprintf(out, "  %s\n\n", m.Content)
		default:
			fmt.Fprintf(out, "assistant: %s\n\n", m.Content)
		}
	}
	return len(messages)
}

func printDoctors(out io.Writer, doctors []roster.Doctor) {
	fmt.Fprintln(out, "Available doctors:")
	for _, d := range doctors {
		fmt.Fprintf(out, "  %s (%s) %.1f  %s\n", d.Name, d.Specialty, d.Rating, strings.Join(d.Availability, ", "))
	}
	fmt.Fprintln(out)
}

func printAppointments(out io.Writer, session *client.Session) {
	appts := session.Appointments()
	if len(appts) == 0 {
		fmt.Fprintln(out, "  no appointments yet")
		return
	}
	for _, a := range appts {
		fmt.Fprintf(out, "  %s %s  %s (%s)  %s\n", a.Date, a.Time, a.DoctorName, a.Specialty, a.Status)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
