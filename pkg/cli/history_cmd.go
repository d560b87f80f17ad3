package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/junzis/opensky-go/pkg/opensky"
	"github.com/junzis/opensky-go/pkg/query"
	"github.com/junzis/opensky-go/pkg/trino"
)

// queryFlags holds the shared filter flags of the data commands.
type queryFlags struct {
	start     string
	stop      string
	duration  string
	icao24    string
	callsign  string
	departure string
	arrival   string
	airport   string
	bounds    string
	limit     int
}

func (qf *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&qf.start, "start", "", "Range start, \"YYYY-MM-DD\" or \"YYYY-MM-DD HH:MM:SS\" (UTC)")
	cmd.Flags().StringVar(&qf.stop, "stop", "", "Range stop, \"YYYY-MM-DD\" or \"YYYY-MM-DD HH:MM:SS\" (UTC)")
	cmd.Flags().StringVar(&qf.duration, "duration", "", "Range length counted from --start (30m, 2h, 1d, 1w)")
	cmd.Flags().StringVar(&qf.icao24, "icao24", "", "Transponder address filter, % and _ are wildcards")
	cmd.Flags().StringVar(&qf.callsign, "callsign", "", "Callsign filter, % and _ are wildcards")
	cmd.Flags().StringVar(&qf.departure, "departure", "", "Departure airport ICAO code")
	cmd.Flags().StringVar(&qf.arrival, "arrival", "", "Arrival airport ICAO code")
	cmd.Flags().StringVar(&qf.airport, "airport", "", "Departure or arrival airport ICAO code")
	cmd.Flags().StringVar(&qf.bounds, "bounds", "", "Bounding box as west,south,east,north degrees")
	cmd.Flags().IntVar(&qf.limit, "limit", 0, "Maximum number of rows")
}

// params resolves the flags into query parameters.
func (qf *queryFlags) params() (opensky.QueryParams, error) {
	start, stop, err := parseWindow(qf.start, qf.stop, qf.duration)
	if err != nil {
		return opensky.QueryParams{}, err
	}
	bounds, err := parseBounds(qf.bounds)
	if err != nil {
		return opensky.QueryParams{}, err
	}

	return opensky.QueryParams{
		ICAO24:           qf.icao24,
		Start:            start,
		Stop:             stop,
		Callsign:         qf.callsign,
		Bounds:           bounds,
		DepartureAirport: qf.departure,
		ArrivalAirport:   qf.arrival,
		Airport:          qf.airport,
		Limit:            qf.limit,
	}, nil
}

func newHistoryCmd() *cobra.Command {
	var (
		qf        queryFlags
		output    string
		showQuery bool
		noCache   bool
		progress  bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Query historical state vectors",
		Long: "Query the state_vectors_data4 table for historical aircraft states. " +
			"Results are cached locally as parquet files and reused for identical parameters.",
		Example: `  # One hour of states for a single transponder
  opensky history --icao24 485020 --start "2025-01-01 10:00:00" --stop "2025-01-01 11:00:00"

  # All KLM flights over a day, exported to parquet
  opensky history --callsign KLM% --start 2025-01-01 --duration 1d -o klm.parquet

  # Traffic around Schiphol, bypassing the cache
  opensky history --airport EHAM --start 2025-01-01 --stop 2025-01-01 --no-cache`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := qf.params()
			if err != nil {
				return err
			}
			if showQuery {
				fmt.Println(query.History(p))
				return nil
			}
			slog.Debug("history request\n" + query.Preview(p))

			client, err := newClient()
			if err != nil {
				return err
			}

			opts := trino.HistoryOptions{NoCache: noCache}
			if progress {
				opts.Observe = progressObserver()
			}
			f, err := client.History(cmd.Context(), p, opts)
			if err != nil {
				return err
			}

			if output != "" {
				return exportFrame(f, output)
			}
			printFrame(f)
			return nil
		},
	}

	qf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write results to a .csv or .parquet file")
	cmd.Flags().BoolVar(&showQuery, "show-query", false, "Print the generated SQL instead of running it")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Evict any cached entry and query the engine")
	cmd.Flags().BoolVar(&progress, "progress", false, "Report execution progress on stderr")

	return cmd
}

func newFlightListCmd() *cobra.Command {
	var (
		qf        queryFlags
		output    string
		showQuery bool
		progress  bool
	)

	cmd := &cobra.Command{
		Use:   "flightlist",
		Short: "Query the flight list table",
		Long: "Query the flights_data4 table for flight-level records: one row per " +
			"flight with first/last seen times and estimated airports.",
		Example: `  # Flights departing Schiphol on a day
  opensky flightlist --departure EHAM --start 2025-01-01 --stop 2025-01-01

  # All flights of one aircraft in a week
  opensky flightlist --icao24 485020 --start 2025-01-01 --duration 1w -o flights.csv`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := qf.params()
			if err != nil {
				return err
			}
			if showQuery {
				fmt.Println(query.FlightList(p))
				return nil
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			opts := trino.HistoryOptions{}
			if progress {
				opts.Observe = progressObserver()
			}
			f, err := client.FlightList(cmd.Context(), p, opts)
			if err != nil {
				return err
			}

			if output != "" {
				return exportFrame(f, output)
			}
			printFrame(f)
			return nil
		},
	}

	qf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write results to a .csv or .parquet file")
	cmd.Flags().BoolVar(&showQuery, "show-query", false, "Print the generated SQL instead of running it")
	cmd.Flags().BoolVar(&progress, "progress", false, "Report execution progress on stderr")

	return cmd
}

func newRawDataCmd() *cobra.Command {
	var (
		qf        queryFlags
		table     string
		output    string
		showQuery bool
		progress  bool
	)

	cmd := &cobra.Command{
		Use:   "rawdata",
		Short: "Query a raw sensor table",
		Long:  "Query one of the unprojected raw Mode S tables (rollcall or all-call replies, ACAS, identification, operational status, position or velocity reports).",
		Example: `  # Raw rollcall replies for one aircraft over ten minutes
  opensky rawdata --table rollcall_replies --icao24 485020 \
    --start "2025-01-01 10:00:00" --duration 10m -o raw.parquet`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := rawTableByName(table)
			if err != nil {
				return err
			}
			p, err := qf.params()
			if err != nil {
				return err
			}
			if showQuery {
				fmt.Println(query.RawData(rt, p))
				return nil
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			opts := trino.HistoryOptions{}
			if progress {
				opts.Observe = progressObserver()
			}
			f, err := client.RawData(cmd.Context(), rt, p, opts)
			if err != nil {
				return err
			}

			if output != "" {
				return exportFrame(f, output)
			}
			printFrame(f)
			return nil
		},
	}

	qf.register(cmd)
	cmd.Flags().StringVar(&table, "table", "", "Raw table name (rollcall_replies, acas, allcall_replies, identification, operational_status, position, velocity)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write results to a .csv or .parquet file")
	cmd.Flags().BoolVar(&showQuery, "show-query", false, "Print the generated SQL instead of running it")
	cmd.Flags().BoolVar(&progress, "progress", false, "Report execution progress on stderr")
	_ = cmd.MarkFlagRequired("table")

	return cmd
}

func rawTableByName(name string) (opensky.RawTable, error) {
	switch name {
	case "rollcall_replies":
		return opensky.RawRollcallReplies, nil
	case "acas":
		return opensky.RawAcas, nil
	case "allcall_replies":
		return opensky.RawAllcallReplies, nil
	case "identification":
		return opensky.RawIdentification, nil
	case "operational_status":
		return opensky.RawOperationalStatus, nil
	case "position":
		return opensky.RawPosition, nil
	case "velocity":
		return opensky.RawVelocity, nil
	default:
		return 0, opensky.Errorf(opensky.KindInvalidParam, "unknown raw table %q", name)
	}
}
