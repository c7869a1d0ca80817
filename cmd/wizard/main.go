// Interactive CLI that drives the booking wizard against a running
// collaborator server.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"tixground/internal/shared/config"
	"tixground/internal/wizard"
	"tixground/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	appLogger := logger.GetDefault()

	if err := godotenv.Load(); err != nil {
		appLogger.Info("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	client, err := wizard.NewClient(cfg.BaseURL)
	if err != nil {
		appLogger.Error("Failed to create client", slog.Any("error", err))
		os.Exit(1)
	}

	w := wizard.New(wizard.Config{
		Client:    client,
		LoadDelay: cfg.Payment.LoadDelay,
		Logger:    appLogger,
		Notify: func(message string) {
			fmt.Printf(">> %s\n", message)
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Feed payment sentinels from the collaborator's long-poll channel
	// into the wizard. Duplicates and stray deliveries are no-ops.
	go func() {
		for {
			sentinel, ok, err := client.PollPaymentEvents(ctx)
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				appLogger.WithError(err).Warn("payment poll failed")
				continue
			}
			if ok {
				w.HandleSentinel(sentinel)
			}
		}
	}()

	fmt.Printf("Booking wizard connected to %s\n", cfg.BaseURL)
	fmt.Println("Commands: login <user> <pass> | dates | date <label> | seats | select <id> | next | challenge | respond <text> | pay | cancel | status | quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("[%s] > ", w.Step())
		if !scanner.Scan() {
			break
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "login":
			if len(fields) != 3 {
				fmt.Println("usage: login <user> <pass>")
				continue
			}
			if err := w.Login(ctx, fields[1], fields[2]); err != nil {
				fmt.Printf("login: %v\n", err)
				continue
			}
			fmt.Printf("Dates: %s\n", strings.Join(w.Dates(), ", "))

		case "dates":
			fmt.Printf("Dates: %s\n", strings.Join(w.Dates(), ", "))

		case "date":
			if len(fields) != 2 {
				fmt.Println("usage: date <label>")
				continue
			}
			if err := w.ChooseDate(ctx, fields[1]); err != nil {
				fmt.Printf("date: %v\n", err)
				continue
			}
			printSeats(w.Seats())

		case "seats":
			printSeats(w.Seats())

		case "select":
			if len(fields) != 2 {
				fmt.Println("usage: select <id>")
				continue
			}
			if err := w.SelectSeat(fields[1]); err != nil {
				fmt.Printf("select: %v\n", err)
				continue
			}
			fmt.Printf("Selected %s\n", fields[1])

		case "next":
			if err := w.Next(ctx); err != nil {
				fmt.Printf("next: %v\n", err)
				continue
			}
			fetchChallenge(ctx, client, w, appLogger)

		case "challenge":
			// Refetch after a rejected booking regenerated the image
			fetchChallenge(ctx, client, w, appLogger)

		case "respond":
			if len(fields) < 2 {
				fmt.Println("usage: respond <text>")
				continue
			}
			if err := w.SetResponse(strings.Join(fields[1:], " ")); err != nil {
				fmt.Printf("respond: %v\n", err)
			}

		case "pay":
			if err := w.Pay(); err != nil {
				fmt.Printf("pay: %v\n", err)
				continue
			}
			fmt.Printf("Payment overlay opening; complete the form at %s\n", client.PaymentURL())

		case "cancel":
			w.CancelPayment()
			fmt.Println("Payment attempt cancelled")

		case "status":
			fmt.Printf("step=%s overlay=%s seat=%q challenge=%q\n",
				w.Step(), w.Overlay(), w.SelectedSeat(), w.ChallengeRef())

		case "quit", "exit":
			return

		default:
			fmt.Printf("unknown command: %s\n", fields[0])
		}
	}
}

func printSeats(seats []wizard.Seat) {
	available := 0
	for _, s := range seats {
		if !s.IsBooked {
			available++
		}
	}
	fmt.Printf("Seats: %d total, %d available\n", len(seats), available)
	for _, s := range seats {
		if !s.IsBooked {
			fmt.Printf("  %s (row %d, col %d)\n", s.ID, s.Row, s.Col)
		}
	}
}

// fetchChallenge downloads the fresh challenge image to a temp file so the
// user can open it, and reports where it landed.
func fetchChallenge(ctx context.Context, client *wizard.Client, w *wizard.Wizard, log *logger.Logger) {
	img, err := client.FetchChallenge(ctx, w.ChallengeRef())
	if err != nil {
		fmt.Printf("challenge fetch: %v\n", err)
		return
	}

	f, err := os.CreateTemp("", "challenge-*.svg")
	if err != nil {
		log.WithError(err).Warn("could not save challenge image")
		return
	}
	defer f.Close()

	if _, err := f.Write(img); err != nil {
		log.WithError(err).Warn("could not save challenge image")
		return
	}
	fmt.Printf("Challenge image saved to %s; respond <text> when read\n", f.Name())
}
