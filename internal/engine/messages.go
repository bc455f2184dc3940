package engine

import (
	"fmt"

	"github.com/rblake2320/New-election-countdown-sub005/internal/events"
)

// renderFunc builds notification content from an event payload.
type renderFunc func(eventData map[string]any) events.Content

// messageTemplates maps eventType/triggerID to a renderer. Unknown
// combinations fall back to a generic template that only references the
// entity title.
var messageTemplates = map[string]renderFunc{
	"election_result/election-result-final": func(d map[string]any) events.Content {
		return events.Content{
			Subject: fmt.Sprintf("Final results: %s", titleOf(d)),
			Message: fmt.Sprintf("Results for %s are final. Winner: %s.", titleOf(d), field(d, "winner")),
			TemplateData: map[string]string{
				"title":  titleOf(d),
				"winner": field(d, "winner"),
			},
		}
	},
	"election_result/election-result-update": func(d map[string]any) events.Content {
		return events.Content{
			Subject: fmt.Sprintf("Results update: %s", titleOf(d)),
			Message: fmt.Sprintf("Preliminary results for %s updated with %s%% reporting.", titleOf(d), field(d, "reporting_percent")),
			TemplateData: map[string]string{
				"title":             titleOf(d),
				"reporting_percent": field(d, "reporting_percent"),
			},
		}
	},
	"deadline_reminder/registration-deadline-soon": func(d map[string]any) events.Content {
		return events.Content{
			Subject: fmt.Sprintf("Registration deadline approaching: %s", titleOf(d)),
			Message: fmt.Sprintf("Voter registration for %s closes in %s day(s), on %s.", titleOf(d), field(d, "days_until"), field(d, "deadline_date")),
			TemplateData: map[string]string{
				"title":         titleOf(d),
				"days_until":    field(d, "days_until"),
				"deadline_date": field(d, "deadline_date"),
			},
		}
	},
	"breaking_news/breaking-news-urgent": func(d map[string]any) events.Content {
		return events.Content{
			Subject: fmt.Sprintf("Breaking: %s", field(d, "headline")),
			Message: field(d, "summary"),
			TemplateData: map[string]string{
				"headline": field(d, "headline"),
			},
		}
	},
	"system_incident/system-incident-critical": func(d map[string]any) events.Content {
		return events.Content{
			Subject: fmt.Sprintf("System incident: %s", field(d, "component")),
			Message: fmt.Sprintf("Critical incident on %s: %s", field(d, "component"), field(d, "description")),
			TemplateData: map[string]string{
				"component": field(d, "component"),
			},
		}
	},
}

// renderMessage renders the notification content for a trigger match.
func renderMessage(eventType, triggerID string, eventData map[string]any) events.Content {
	if render, ok := messageTemplates[eventType+"/"+triggerID]; ok {
		return render(eventData)
	}
	title := titleOf(eventData)
	return events.Content{
		Subject:      fmt.Sprintf("Election update: %s", title),
		Message:      fmt.Sprintf("There is a new update for %s.", title),
		TemplateData: map[string]string{"title": title},
	}
}

func titleOf(eventData map[string]any) string {
	if t, ok := eventData["title"].(string); ok && t != "" {
		return t
	}
	return "your election"
}

// field renders any payload value as a string, empty when absent.
func field(eventData map[string]any, name string) string {
	v, ok := eventData[name]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	if f, ok := v.(float64); ok && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%v", v)
}
