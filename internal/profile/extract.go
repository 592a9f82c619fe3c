// Package profile turns a ufcstats.com fighter detail page into a
// fighters.Fighter.
package profile

import (
	"errors"
	"fighterdata/internal/components/chrono"
	"fighterdata/internal/fighters"
	"fighterdata/lib/htmlutil"
	"regexp"
	"strconv"
	"strings"
)

const (
	classTitle       = "b-content__title-highlight"
	classNickname    = "b-content__Nickname"
	classRecord      = "b-content__title-record"
	classListItem    = "b-list__box-list-item"
	classCareerStats = "b-list__info-box-left"
)

const nicknameLabel = "Nickname:"

var recordPattern = regexp.MustCompile(`Record:\s*(\d+)-(\d+)-(\d+)`)

var ErrMissingName = errors.New("profile has no fighter name")

type Identity struct {
	Name     string
	Nickname string
}

type Physical struct {
	Height string
	Weight string
	Reach  string
	Stance string
	Dob    string
}

type Record struct {
	Wins   int
	Losses int
	Draws  int
}

type CareerStats struct {
	SigStrikesLandedPerMin   string
	StrikingAccuracy         string
	SigStrikesAbsorbedPerMin string
	StrikingDefense          string
	TakedownAvg              string
	TakedownAccuracy         string
	TakedownDefense          string
	SubmissionAvg            string
}

func first(views []htmlutil.DocumentView) htmlutil.DocumentView {
	if len(views) == 0 {
		return nil
	}
	return views[0]
}

func ExtractIdentity(doc htmlutil.DocumentView) Identity {
	var id Identity
	if title := first(doc.FindByTagAndClass("span", classTitle)); title != nil {
		id.Name = htmlutil.NormalizeText(title.Text())
	}
	if nickname := first(doc.FindByTagAndClass("p", classNickname)); nickname != nil {
		text := htmlutil.NormalizeText(nickname.Text())
		text = strings.TrimPrefix(text, nicknameLabel)
		id.Nickname = strings.TrimSpace(text)
	}
	return id
}

// labeledField binds a label prefix such as "Height:" to the field that
// receives the text following it.
type labeledField struct {
	label string
	dest  *string
}

// scanLabeled assigns each item's value to the first field whose label
// prefixes it. Later items overwrite earlier ones with the same label.
func scanLabeled(items []htmlutil.DocumentView, fields []labeledField) {
	for _, item := range items {
		text := htmlutil.NormalizeText(item.Text())
		for _, f := range fields {
			value, ok := strings.CutPrefix(text, f.label)
			if !ok {
				continue
			}
			*f.dest = strings.TrimSpace(value)
			break
		}
	}
}

func ExtractPhysical(doc htmlutil.DocumentView) Physical {
	p := Physical{
		Height: fighters.Unknown,
		Weight: fighters.Unknown,
		Reach:  fighters.Unknown,
		Dob:    fighters.Unknown,
	}
	scanLabeled(doc.FindByTagAndClass("li", classListItem), []labeledField{
		{label: "Height:", dest: &p.Height},
		{label: "Weight:", dest: &p.Weight},
		{label: "Reach:", dest: &p.Reach},
		{label: "STANCE:", dest: &p.Stance},
		{label: "DOB:", dest: &p.Dob},
	})
	return p
}

func ExtractRecord(doc htmlutil.DocumentView) Record {
	span := first(doc.FindByTagAndClass("span", classRecord))
	if span == nil {
		return Record{}
	}
	match := recordPattern.FindStringSubmatch(htmlutil.NormalizeText(span.Text()))
	if match == nil {
		return Record{}
	}
	// the pattern only admits digits, overflow is the only failure mode
	wins, err1 := strconv.Atoi(match[1])
	losses, err2 := strconv.Atoi(match[2])
	draws, err3 := strconv.Atoi(match[3])
	if err := errors.Join(err1, err2, err3); err != nil {
		return Record{}
	}
	return Record{Wins: wins, Losses: losses, Draws: draws}
}

func ExtractCareerStats(doc htmlutil.DocumentView) CareerStats {
	s := CareerStats{
		SigStrikesLandedPerMin:   fighters.ZeroRate,
		StrikingAccuracy:         fighters.ZeroPercent,
		SigStrikesAbsorbedPerMin: fighters.ZeroRate,
		StrikingDefense:          fighters.ZeroPercent,
		TakedownAvg:              fighters.ZeroRate,
		TakedownAccuracy:         fighters.ZeroPercent,
		TakedownDefense:          fighters.ZeroPercent,
		SubmissionAvg:            fighters.ZeroSubAvg,
	}
	fields := []labeledField{
		{label: "SLpM:", dest: &s.SigStrikesLandedPerMin},
		{label: "Str. Acc.:", dest: &s.StrikingAccuracy},
		{label: "SApM:", dest: &s.SigStrikesAbsorbedPerMin},
		{label: "Str. Def:", dest: &s.StrikingDefense},
		{label: "TD Avg.:", dest: &s.TakedownAvg},
		{label: "TD Acc.:", dest: &s.TakedownAccuracy},
		{label: "TD Def.:", dest: &s.TakedownDefense},
		{label: "Sub. Avg.:", dest: &s.SubmissionAvg},
	}
	// the outer container nests the inner ones, so the first match already
	// covers every career item
	if box := first(doc.FindByTagAndClass("div", classCareerStats)); box != nil {
		scanLabeled(box.FindByTagAndClass("li", classListItem), fields)
	}
	return s
}

// Extract builds the full record for the fighter described by doc. The only
// error is ErrMissingName; partial pages yield sentinel values instead.
func Extract(doc htmlutil.DocumentView, clock chrono.API) (fighters.Fighter, History, error) {
	id := ExtractIdentity(doc)
	if id.Name == "" {
		return fighters.Fighter{}, History{}, ErrMissingName
	}

	f := fighters.New(id.Name)
	f.Nickname = id.Nickname

	physical := ExtractPhysical(doc)
	f.Height = physical.Height
	f.Weight = physical.Weight
	f.Reach = physical.Reach
	f.Stance = physical.Stance
	f.Dob = physical.Dob

	record := ExtractRecord(doc)
	f.Wins = record.Wins
	f.Losses = record.Losses
	f.Draws = record.Draws

	stats := ExtractCareerStats(doc)
	f.SigStrikesLandedPerMin = stats.SigStrikesLandedPerMin
	f.StrikingAccuracy = stats.StrikingAccuracy
	f.SigStrikesAbsorbedPerMin = stats.SigStrikesAbsorbedPerMin
	f.StrikingDefense = stats.StrikingDefense
	f.TakedownAvg = stats.TakedownAvg
	f.TakedownAccuracy = stats.TakedownAccuracy
	f.TakedownDefense = stats.TakedownDefense
	f.SubmissionAvg = stats.SubmissionAvg

	history := ExtractFightHistory(doc, id.Name)
	f.LastFights = history.Fights

	f.SetAge(ComputeAge(f.Dob, clock.Now()))

	return f, history, nil
}
