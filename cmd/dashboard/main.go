// Command dashboard is an interactive terminal view of the NFL schedule.
// It reads one command per line from stdin and redraws after every change.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"nfl_dashboard/service/internal/client"
	"nfl_dashboard/service/internal/config"
	"nfl_dashboard/service/internal/dashboard"
	"nfl_dashboard/service/internal/models"
	"nfl_dashboard/service/internal/normalize"
	"nfl_dashboard/service/internal/schedule"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const helpText = `Commands:
  year N      select season year
  week N      select week
  season N    select season type (1 preseason, 2 regular, 3 postseason)
  open ID     open matchup details for a game
  close       close matchup details
  refresh     reload the schedule
  help        show this help
  quit        exit`

// screen serializes redraws and drops out-of-order state copies
type screen struct {
	mu   sync.Mutex
	out  io.Writer
	last uint64
}

func (s *screen) draw(st dashboard.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st.Version < s.last {
		return
	}
	s.last = st.Version
	render(s.out, st)
}

func main() {
	cfg := config.MustLoad()

	// Logs go to stderr so they do not interleave with the screen
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid display timezone")
	}

	espn := client.NewClient(client.Options{
		BaseURL:       cfg.ESPNBaseURL,
		UserAgent:     cfg.ESPNUserAgent,
		Timeout:       cfg.ESPNTimeout,
		MaxConcurrent: cfg.ESPNMaxConcurrent,
	})
	svc := schedule.NewService(espn, normalize.New(normalize.WithLocation(loc)))

	scr := &screen{out: os.Stdout}
	d := dashboard.New(svc, dashboard.WithOnChange(scr.draw))
	defer d.Close()

	fmt.Fprintln(os.Stdout, "Loading current week...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ESPNTimeout)
	err = d.Start(ctx)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start dashboard")
	}

	fmt.Fprintln(os.Stdout, helpText)
	if err := run(d, os.Stdin, os.Stdout); err != nil {
		log.Error().Err(err).Msg("Input error")
	}
}

// run executes commands until quit or end of input
func run(d *dashboard.Dashboard, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		quit, err := execute(d, scanner.Text(), out)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}

// execute runs one command line against the dashboard
func execute(d *dashboard.Dashboard, line string, out io.Writer) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		fmt.Fprintln(out, helpText)
		return false, nil
	case "close":
		d.CloseGame()
		return false, nil
	case "refresh":
		return false, d.Refresh()
	case "open":
		if len(args) != 1 {
			return false, errors.New("usage: open ID")
		}
		return false, d.OpenGame(args[0])
	case "year", "week", "season":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: %s N", cmd)
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return false, fmt.Errorf("%s must be a number", cmd)
		}
		switch cmd {
		case "year":
			return false, d.SetYear(n)
		case "week":
			return false, d.SetWeek(n)
		default:
			return false, d.SetSeasonType(models.SeasonType(n))
		}
	default:
		return false, fmt.Errorf("unknown command %q, type help", fields[0])
	}
}
