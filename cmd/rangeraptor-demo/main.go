// Command rangeraptor-demo is a thin exerciser of
// internal/service.Service: it builds a small fixed in-memory
// transitdata.Provider, converts its flags into a raptor.Request, and
// prints the resulting Pareto set. It is not a routing product
// surface — see internal/service for the actual search orchestration.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/transitrouting/rangeraptor/internal/service"
	"github.com/transitrouting/rangeraptor/internal/transitdata"
	"github.com/transitrouting/rangeraptor/raptor"
)

var (
	flagFrom               int
	flagTo                 int
	flagDepartureHHMM      string
	flagWindowMinutes      int
	flagBoardSlackSeconds  int
	flagAdditionalTransfer int
	flagMultiCriteria      bool
	flagVerbose            bool
)

func main() {
	root := &cobra.Command{
		Use:   "rangeraptor-demo",
		Short: "Run one Range-Raptor search against a small fixed network",
		Long: `rangeraptor-demo builds a three-stop fixture network (one pattern, two trips)
in memory, runs a Range-Raptor search between --from and --to, and
prints every Pareto-optimal path found.`,
		RunE: runDemo,
	}

	root.Flags().IntVar(&flagFrom, "from", 0, "origin stop index")
	root.Flags().IntVar(&flagTo, "to", 2, "destination stop index")
	root.Flags().StringVar(&flagDepartureHHMM, "depart", "08:00", "earliest departure time, HH:MM")
	root.Flags().IntVar(&flagWindowMinutes, "window", 30, "search window in minutes")
	root.Flags().IntVar(&flagBoardSlackSeconds, "board-slack", 60, "minimum board slack in seconds")
	root.Flags().IntVar(&flagAdditionalTransfer, "additional-transfers", 3, "additional transfers searched past the first destination arrival")
	root.Flags().BoolVar(&flagMultiCriteria, "multi-criteria", false, "use the MULTI_CRITERIA profile instead of STANDARD")
	root.Flags().BoolVar(&flagVerbose, "verbose", false, "emit debug-level round/iteration logging")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runDemo(cmd *cobra.Command, args []string) error {
	level := zerolog.InfoLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()

	provider := fixtureProvider()
	svc := service.New(service.Config{Provider: provider, Logger: logger})

	departureSeconds, err := parseHHMM(flagDepartureHHMM)
	if err != nil {
		return err
	}

	req := raptor.Request{
		Profile:                     raptor.ProfileStandard,
		SearchForward:               true,
		EarliestDepartureTime:       departureSeconds,
		LatestArrivalTime:           departureSeconds + flagWindowMinutes*60 + 3600,
		SearchWindowInSeconds:       flagWindowMinutes * 60,
		AccessLegs:                  []raptor.TransferLeg{{Stop: flagFrom, DurationSeconds: 0}},
		EgressLegs:                  []raptor.TransferLeg{{Stop: flagTo, DurationSeconds: 0}},
		BoardSlackInSeconds:         flagBoardSlackSeconds,
		NumberOfAdditionalTransfers: flagAdditionalTransfer,
	}
	if flagMultiCriteria {
		req.Profile = raptor.ProfileMultiCriteria
	}

	result, err := svc.Route(context.Background(), req)
	if err != nil {
		return fmt.Errorf("route: %w", err)
	}

	if len(result.Paths) == 0 {
		fmt.Println("no paths found")
		return nil
	}

	for i, p := range result.Paths {
		fmt.Printf("path %d: depart %s arrive %s (%d transfer(s))\n",
			i, formatHHMM(p.DepartureTime()), formatHHMM(p.ArrivalTime()), p.NumberOfTransfers())
		for _, leg := range p.Legs {
			fmt.Printf("  %-8s stop %d @ %s -> stop %d @ %s\n",
				leg.Kind, leg.FromStop, formatHHMM(leg.FromTime), leg.ToStop, formatHHMM(leg.ToTime))
		}
	}
	return nil
}

// fixtureProvider builds a three-stop network: one pattern from stop 0
// to stop 2 via stop 1, two trips an hour apart.
func fixtureProvider() *transitdata.Provider {
	p := transitdata.New(3)
	p.AddPattern([]int{0, 1, 2}, []*transitdata.Schedule{
		{
			Departures: []int{8 * 3600, 8*3600 + 300, 0},
			Arrivals:   []int{0, 8*3600 + 330, 8*3600 + 600},
		},
		{
			Departures: []int{9 * 3600, 9*3600 + 300, 0},
			Arrivals:   []int{0, 9*3600 + 330, 9*3600 + 600},
		},
	})
	return p
}

func parseHHMM(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, want HH:MM: %w", s, err)
	}
	return t.Hour()*3600 + t.Minute()*60, nil
}

func formatHHMM(secondsSinceMidnight int) string {
	h := secondsSinceMidnight / 3600
	m := (secondsSinceMidnight % 3600) / 60
	return fmt.Sprintf("%02d:%02d", h, m)
}
