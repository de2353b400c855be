package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"chatcal/internal/calendar"
	"chatcal/internal/history"
	"chatcal/internal/intent"
	"chatcal/internal/llm"
	"chatcal/internal/news"
)

// Dispatcher turns one inbound message into one reply. It owns no state of
// its own: schedules live in the store, the conversation record lives in the
// log, and the AI and news collaborators are reached through their
// interfaces.
type Dispatcher struct {
	parser *intent.Parser
	store  *calendar.Store
	hist   *history.Log
	ai     llm.Client
	news   news.Source
	now    func() time.Time
}

func New(store *calendar.Store, hist *history.Log, ai llm.Client, src news.Source) *Dispatcher {
	return &Dispatcher{
		parser: intent.NewParser(),
		store:  store,
		hist:   hist,
		ai:     ai,
		news:   src,
		now:    time.Now,
	}
}

// Handle records the inbound message, classifies it and executes the matching
// operation. Every path ends in a reply string; nothing escapes as an error.
func (d *Dispatcher) Handle(ctx context.Context, userID, raw string) string {
	msg := strings.TrimSpace(raw)
	d.hist.AppendUser(userID, msg)

	switch in := d.parser.Parse(msg).(type) {
	case intent.AddEvent:
		d.store.Add(userID, in.Date, in.Text)
		return fmt.Sprintf(replyAdded, in.Date, in.Text)

	case intent.QueryToday:
		today := intent.DateKey(d.now())
		events := d.store.Query(userID, today)
		if len(events) == 0 {
			return replyTodayEmpty
		}
		return formatSchedule(scheduleTodayHeader, events)

	case intent.QueryDate:
		events := d.store.Query(userID, in.Date)
		if len(events) == 0 {
			return fmt.Sprintf(replyDateEmpty, in.Date)
		}
		return formatSchedule(fmt.Sprintf(scheduleDateHeader, in.Date), events)

	case intent.DeleteDateAll:
		return d.deleteAll(userID, in.Date)

	case intent.DeleteDateEvent:
		err := d.store.DeleteOne(userID, in.Date, in.Text)
		switch {
		case errors.Is(err, calendar.ErrNotFound):
			return replyNoUserData
		case errors.Is(err, calendar.ErrEmptyDate):
			return fmt.Sprintf(replyDateNothing, in.Date)
		case errors.Is(err, calendar.ErrEventNotFound):
			return fmt.Sprintf(replyEventMissing, in.Text, in.Date)
		}
		return fmt.Sprintf(replyDeletedOne, in.Date, in.Text)

	case intent.DeleteToday:
		return d.deleteAll(userID, intent.DateKey(d.now()))

	case intent.ShowHelp:
		return helpText

	case intent.ShowLocation:
		return locationText

	case intent.ShowNews:
		digest, err := d.news.Digest(ctx)
		if err != nil {
			log.Printf("news digest failed: %v", err)
		}
		return digest

	case intent.FreeText:
		return d.freeText(ctx, in.Raw)
	}
	// unreachable: FreeText always matches
	return ""
}

func (d *Dispatcher) deleteAll(userID, date string) string {
	err := d.store.DeleteAll(userID, date)
	switch {
	case errors.Is(err, calendar.ErrNotFound):
		return replyNoUserData
	case errors.Is(err, calendar.ErrEmptyDate):
		return fmt.Sprintf(replyDateNothing, date)
	}
	return fmt.Sprintf(replyDeletedAll, date)
}

// freeText asks the AI collaborator for a reply. Whatever comes back — text,
// the empty-response placeholder or an inline error — is logged as the bot
// entry and returned as-is.
func (d *Dispatcher) freeText(ctx context.Context, raw string) string {
	var reply string
	resp, err := d.ai.Generate(ctx, []llm.Message{{Role: "user", Content: raw}})
	if err != nil {
		log.Printf("ai generation failed: %v", err)
		reply = fmt.Sprintf(replyAIError, err.Error())
	} else if reply = strings.TrimSpace(resp.Content); reply == "" {
		reply = replyAIEmpty
	}
	d.hist.AppendBot(reply)
	return reply
}
