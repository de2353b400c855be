package intent

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Intent is the classified meaning of one inbound message.
type Intent interface{ isIntent() }

type AddEvent struct {
	Date string
	Text string
}

type QueryToday struct{}

type QueryDate struct {
	Date string
}

type DeleteDateAll struct {
	Date string
}

type DeleteDateEvent struct {
	Date string
	Text string
}

type DeleteToday struct{}

type ShowHelp struct{}

type ShowNews struct{}

type ShowLocation struct{}

type FreeText struct {
	Raw string
}

func (AddEvent) isIntent()        {}
func (QueryToday) isIntent()      {}
func (QueryDate) isIntent()       {}
func (DeleteDateAll) isIntent()   {}
func (DeleteDateEvent) isIntent() {}
func (DeleteToday) isIntent()     {}
func (ShowHelp) isIntent()        {}
func (ShowNews) isIntent()        {}
func (ShowLocation) isIntent()    {}
func (FreeText) isIntent()        {}

var (
	// leading month/day plus an event description, e.g. "6月20日 看牙醫"
	addRe = regexp.MustCompile(`^(\d{1,2})[月/](\d{1,2})日?\s*(.+)$`)
	// "我6月20日有什麼行程？" — prefix match, trailing text tolerated
	queryRe = regexp.MustCompile(`^我(\d{1,2})[月/](\d{1,2})日有什麼(行程|事)？?`)
	// "刪除6月20日..." with either 全部 or an event name after the date
	deleteRe = regexp.MustCompile(`^刪除(\d{1,2})[月/](\d{1,2})日(.*)$`)
)

const deleteAllMarker = "全部"

// Parser classifies raw message text into an Intent. Rules are tried in a
// fixed order and the first match wins; unmatched input falls through to
// FreeText, so classification never fails.
type Parser struct {
	now func() time.Time
}

func NewParser() *Parser {
	return &Parser{now: time.Now}
}

// NewParserAt pins the parser's clock, used to derive the year of DateKeys.
func NewParserAt(now func() time.Time) *Parser {
	return &Parser{now: now}
}

type rule func(msg string) (Intent, bool)

func (p *Parser) Parse(raw string) Intent {
	msg := strings.TrimSpace(raw)
	rules := []rule{
		p.matchAdd,
		matchQueryToday,
		p.matchQueryDate,
		p.matchDelete,
		matchDeleteToday,
		matchKeyword,
	}
	for _, r := range rules {
		if in, ok := r(msg); ok {
			return in
		}
	}
	return FreeText{Raw: msg}
}

func (p *Parser) matchAdd(msg string) (Intent, bool) {
	m := addRe.FindStringSubmatch(msg)
	if m == nil {
		return nil, false
	}
	return AddEvent{
		Date: p.dateKey(m[1], m[2]),
		Text: strings.TrimSpace(m[3]),
	}, true
}

func matchQueryToday(msg string) (Intent, bool) {
	if msg == "今天有什麼行程？" || msg == "今天要做什麼？" {
		return QueryToday{}, true
	}
	return nil, false
}

func (p *Parser) matchQueryDate(msg string) (Intent, bool) {
	m := queryRe.FindStringSubmatch(msg)
	if m == nil {
		return nil, false
	}
	return QueryDate{Date: p.dateKey(m[1], m[2])}, true
}

func (p *Parser) matchDelete(msg string) (Intent, bool) {
	m := deleteRe.FindStringSubmatch(msg)
	if m == nil {
		return nil, false
	}
	date := p.dateKey(m[1], m[2])
	rest := strings.TrimSpace(m[3])
	if rest == deleteAllMarker {
		return DeleteDateAll{Date: date}, true
	}
	// An empty rest still targets an event by (empty) name. Nothing stored
	// ever equals the empty string, so such a delete always misses.
	return DeleteDateEvent{Date: date, Text: rest}, true
}

func matchDeleteToday(msg string) (Intent, bool) {
	if msg == "刪除今天的行程" || msg == "刪除今天行程" {
		return DeleteToday{}, true
	}
	return nil, false
}

func matchKeyword(msg string) (Intent, bool) {
	switch msg {
	case "說明", "help":
		return ShowHelp{}, true
	case "新聞":
		return ShowNews{}, true
	case "位置":
		return ShowLocation{}, true
	}
	return nil, false
}

// dateKey builds the canonical YYYY-MM-DD key using the current year. Digits
// are taken as given; there is no calendar validation and no year rollover.
func (p *Parser) dateKey(month, day string) string {
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	return fmt.Sprintf("%d-%02d-%02d", p.now().Year(), m, d)
}

// DateKey formats an arbitrary time as a calendar key, for "today" lookups.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
