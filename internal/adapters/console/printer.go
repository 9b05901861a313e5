package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	service "github.com/okian/bikeshare/internal/app"
	"github.com/okian/bikeshare/internal/domain/types"
)

const separatorWidth = 40

var separator = strings.Repeat("-", separatorWidth) //nolint:gochecknoglobals // constant line

// sectionTitles are printed before each aggregator's figures.
var sectionTitles = map[string]string{ //nolint:gochecknoglobals // read-only lookup table
	service.AggregatorTime:     "Calculating The Most Frequent Times of Travel...",
	service.AggregatorStations: "Calculating The Most Popular Stations and Trip...",
	service.AggregatorDuration: "Calculating Trip Duration...",
	service.AggregatorUsers:    "Calculating User Stats...",
}

const noDataMessage = "No data for this selection."

// WriteReport writes every section of r the way the shell prints it.
func WriteReport(w io.Writer, r service.Report) {
	printReport(w, r)
}

// printReport writes every section of r followed by its timing line.
func printReport(w io.Writer, r service.Report) {
	for _, sec := range r.Sections {
		printSection(w, sec)
	}
}

func printSection(w io.Writer, sec service.Section) {
	fmt.Fprintf(w, "\n%s\n\n", sectionTitles[sec.Name])

	switch {
	case sec.Err != nil && sec.Empty():
		fmt.Fprintln(w, noDataMessage)
	case sec.Err != nil:
		fmt.Fprintf(w, "Could not compute statistics: %v\n", sec.Err)
	case sec.Time != nil:
		printTime(w, sec)
	case sec.Stations != nil:
		printStations(w, sec)
	case sec.Duration != nil:
		printDuration(w, sec)
	case sec.Users != nil:
		printUsers(w, sec)
	}

	fmt.Fprintf(w, "\nThis took %s seconds.\n", formatSeconds(sec.Took))
	fmt.Fprintln(w, separator)
}

func printTime(w io.Writer, sec service.Section) {
	r := sec.Time
	fmt.Fprintf(w, "The most popular month is %s.\n", r.Month)
	fmt.Fprintf(w, "The most popular day is %s.\n", r.Weekday)
	fmt.Fprintf(w, "The most popular hour is %d:00.\n", r.Hour)
}

func printStations(w io.Writer, sec service.Section) {
	r := sec.Stations
	fmt.Fprintf(w, "The most popular start station is: %s\n", r.Start)
	fmt.Fprintf(w, "The most popular end station is: %s\n", r.End)
	fmt.Fprintf(w, "The most popular combination of start and end station is: %s and %s (%d trips)\n",
		r.PairStart, r.PairEnd, r.PairCount)
}

func printDuration(w io.Writer, sec service.Section) {
	r := sec.Duration
	fmt.Fprintf(w, "Total trip duration is %s hours.\n", formatFloat(r.TotalHours))
	fmt.Fprintf(w, "Average trip duration is %s hours.\n", formatFloat(r.MeanHours))
	fmt.Fprintf(w, "Number of trips is %d.\n", r.Trips)
}

func printUsers(w io.Writer, sec service.Section) {
	r := sec.Users
	printCounts(w, "User Type", r.UserTypes)

	if r.GenderAvailable {
		fmt.Fprintln(w)
		printCounts(w, "Gender", r.Genders)
	} else {
		fmt.Fprintln(w, "\nGender: not available")
	}

	if r.BirthYearAvailable {
		fmt.Fprintf(w, "\nThe earliest birth year is %d.\n", r.EarliestYear)
		fmt.Fprintf(w, "The most recent birth year is %d.\n", r.LatestYear)
		fmt.Fprintf(w, "The most common birth year is %d.\n", r.CommonYear)
	} else {
		fmt.Fprintln(w, "\nBirth year: not available")
	}
}

// printCounts writes a frequency table as aligned value/count columns.
func printCounts(w io.Writer, title string, counts []types.Count) {
	fmt.Fprintf(w, "%s counts:\n", title)
	tw := tabwriter.NewWriter(w, 0, 0, 4, ' ', 0)
	for _, c := range counts {
		fmt.Fprintf(tw, "%s\t%d\n", c.Value, c.Count)
	}
	_ = tw.Flush()
}

func formatSeconds(d time.Duration) string {
	return formatFloat(d.Seconds())
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
