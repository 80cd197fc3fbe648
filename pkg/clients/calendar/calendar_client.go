package calendar_client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/promptdeck/pkg/commons"
	"github.com/promptdeck/pkg/utils"
)

const (
	eventWindow      = 30 * 24 * time.Hour
	maxEventsPerList = 50
)

// Event is one upcoming calendar entry with concrete start and end
// times. All-day entries never appear here.
type Event struct {
	Id          string    `json:"id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	HangoutLink string    `json:"hangoutLink,omitempty"`
	Attendees   []string  `json:"attendees,omitempty"`
}

// CalendarClient lists upcoming events on behalf of a signed-in user.
// The access token comes from the user's OAuth session, never from
// service credentials.
type CalendarClient interface {
	UpcomingEvents(ctx context.Context, accessToken string) ([]Event, error)
}

type googleCalendarClient struct {
	logger commons.Logger
	now    func() time.Time
}

func NewCalendarClient(logger commons.Logger) CalendarClient {
	return &googleCalendarClient{logger: logger, now: time.Now}
}

// UpcomingEvents returns the timed events on the user's primary calendar
// over the next 30 days, earliest first.
func (g *googleCalendarClient) UpcomingEvents(ctx context.Context, accessToken string) ([]Event, error) {
	if utils.IsEmpty(accessToken) {
		return nil, fmt.Errorf("%w: calendar access token is required", commons.ErrPermission)
	}

	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	service, err := calendar.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, fmt.Errorf("failed to build calendar service: %w", err)
	}

	timeMin := g.now()
	timeMax := timeMin.Add(eventWindow)
	list, err := service.Events.List("primary").
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		MaxResults(maxEventsPerList).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		if strings.Contains(err.Error(), "invalid_grant") {
			return nil, fmt.Errorf("calendar authorization expired: %w", commons.ErrPermission)
		}
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}

	events := make([]Event, 0, len(list.Items))
	for _, item := range list.Items {
		// drop all-day entries, they carry Date instead of DateTime
		if item.Start == nil || item.End == nil || item.Start.DateTime == "" || item.End.DateTime == "" {
			continue
		}
		start, err := time.Parse(time.RFC3339, item.Start.DateTime)
		if err != nil {
			g.logger.Warnf("skipping event %s with unparseable start %q: %v", item.Id, item.Start.DateTime, err)
			continue
		}
		end, err := time.Parse(time.RFC3339, item.End.DateTime)
		if err != nil {
			g.logger.Warnf("skipping event %s with unparseable end %q: %v", item.Id, item.End.DateTime, err)
			continue
		}

		attendees := make([]string, 0, len(item.Attendees))
		for _, attendee := range item.Attendees {
			if attendee.Email != "" {
				attendees = append(attendees, attendee.Email)
			}
		}
		events = append(events, Event{
			Id:          item.Id,
			Summary:     item.Summary,
			Description: item.Description,
			Location:    item.Location,
			Start:       start,
			End:         end,
			HangoutLink: item.HangoutLink,
			Attendees:   attendees,
		})
	}

	g.logger.Debugf("fetched %d timed calendar events", len(events))
	return events, nil
}
