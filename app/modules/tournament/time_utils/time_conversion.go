package tournamenttime

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	tournamentutil "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/utils"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/en"
)

// TimeParserInterface defines the methods for schedule parsing and timezone
// handling.
type TimeParserInterface interface {
	GetTimezoneFromInput(input string) (string, bool)
	ParseScheduleInput(startTimeStr string, timezone string, clock tournamentutil.Clock) (sharedtypes.Timestamp, error)
}

// TimeParser struct holds the timezone mappings and implements TimeParserInterface.
type TimeParser struct {
	TimezoneMap map[string]string
}

// NewTimeParser creates a new TimeParser instance with predefined timezone mappings.
func NewTimeParser() *TimeParser {
	return &TimeParser{
		TimezoneMap: map[string]string{
			"PST": "America/Los_Angeles",
			"PDT": "America/Los_Angeles",
			"MST": "America/Denver",
			"MDT": "America/Denver",
			"CST": "America/Chicago",
			"CDT": "America/Chicago",
			"EST": "America/New_York",
			"EDT": "America/New_York",
			"UTC": "UTC",
		},
	}
}

// GetTimezoneFromInput extracts a timezone abbreviation or full name from user input.
func (tp *TimeParser) GetTimezoneFromInput(input string) (string, bool) {
	inputUpper := strings.ToUpper(input)

	// Direct match against full timezone names
	for _, fullName := range tp.TimezoneMap {
		if inputUpper == strings.ToUpper(fullName) {
			return fullName, true
		}
	}

	// Match against abbreviations
	if fullName, exists := tp.TimezoneMap[inputUpper]; exists {
		return fullName, true
	}

	return "", false
}

// ParseScheduleInput parses a natural-language start time ("tomorrow 6pm",
// "friday at 9:30am") and converts it to a UTC timestamp. Parsing is anchored
// to clock.Now so the result is deterministic under test and under
// redelivery.
func (tp *TimeParser) ParseScheduleInput(startTimeStr string, timezone string, clock tournamentutil.Clock) (sharedtypes.Timestamp, error) {
	userTimeZone, found := tp.GetTimezoneFromInput(timezone)
	if !found {
		return 0, fmt.Errorf("invalid timezone: %s", timezone)
	}

	loc, err := clock.LoadLocation(userTimeZone)
	if err != nil {
		return 0, fmt.Errorf("failed to load timezone: %s", timezone)
	}

	// Normalize the input
	startTimeStr = strings.ToLower(startTimeStr)
	startTimeStr = strings.ReplaceAll(startTimeStr, "today ", "today at ")

	// Ensure time format includes a colon (e.g., "932am" -> "9:32 am")
	timePattern := `(\d{1,2})(\d{2})(am|pm)`
	startTimeStr = regexp.MustCompile(timePattern).ReplaceAllString(startTimeStr, "$1:$2 $3")

	w := when.New(nil)
	w.Add(en.All...)

	r, err := w.Parse(startTimeStr, clock.Now().In(loc))
	if err != nil {
		slog.Error("Error parsing time input with when", slog.String("input", startTimeStr), slog.Any("error", err))
	}
	if r != nil {
		parsedTime := r.Time.In(loc)

		// Ensure parsed time is not in the past
		nowInLoc := clock.Now().In(loc).Truncate(time.Minute)
		parsedTime = parsedTime.Truncate(time.Minute)

		if parsedTime.Before(nowInLoc) {
			return 0, fmt.Errorf("start time must be in the future (parsed: %s, now: %s)", parsedTime, nowInLoc)
		}

		return sharedtypes.TimestampFromTime(parsedTime.In(time.UTC)), nil
	}

	// If `when` fails, try manual parsing as "Monday 3:04 PM"
	slog.Warn("`when` failed to parse input, falling back to manual parsing", slog.String("input", startTimeStr))

	manualTimeStr := fmt.Sprintf("%s %s", clock.Now().Weekday().String(), startTimeStr)
	parsedTime, err := time.ParseInLocation("Monday 3:04 PM", manualTimeStr, loc)
	if err != nil {
		return 0, fmt.Errorf("could not recognize time format: %s", startTimeStr)
	}

	return sharedtypes.TimestampFromTime(parsedTime.In(time.UTC)), nil
}
