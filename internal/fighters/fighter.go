// Package fighters holds the record shape shared by the extractor, the
// dataset merger and the front-end that reads fighters_data.json.
package fighters

import (
	"fighterdata/lib/textutil"
	"fmt"
)

// Sentinel values stored when a field could not be determined.
const (
	Unknown     = "--"
	ZeroRate    = "0.00"
	ZeroPercent = "0%"
	ZeroSubAvg  = "0.0"
)

// MaxFights is how many recent bouts are kept per fighter.
const MaxFights = 3

// Fight results as stored in FightSummary.Result.
const (
	ResultWin       = "win"
	ResultLoss      = "loss"
	ResultDraw      = "draw"
	ResultNoContest = "nc"
)

// Normalized fight methods.
const (
	MethodKO                = "KO/TKO"
	MethodSubmission        = "Submission"
	MethodDecision          = "Decision"
	MethodDecisionUnanimous = "Decision (Unanimous)"
	MethodDecisionSplit     = "Decision (Split)"
)

type FightSummary struct {
	Result   string `json:"result"`
	Opponent string `json:"opponent"`
	Method   string `json:"method,omitempty"`
	Round    string `json:"round,omitempty"`
}

type Fighter struct {
	Name     string `json:"name"`
	Nickname string `json:"nickname"`

	Height string `json:"height"`
	Weight string `json:"weight"`
	Reach  string `json:"reach"`
	Stance string `json:"stance"`
	Dob    string `json:"dob"`

	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`

	SigStrikesLandedPerMin   string `json:"sig_strikes_landed_per_min"`
	StrikingAccuracy         string `json:"striking_accuracy"`
	SigStrikesAbsorbedPerMin string `json:"sig_strikes_absorbed_per_min"`
	StrikingDefense          string `json:"striking_defense"`
	TakedownAvg              string `json:"takedown_avg"`
	TakedownAccuracy         string `json:"takedown_accuracy"`
	TakedownDefense          string `json:"takedown_defense"`
	SubmissionAvg            string `json:"submission_avg"`

	// LastFights is ordered most recent first.
	LastFights []FightSummary `json:"last_3_fights"`

	Age *int `json:"age,omitempty"`
}

// New returns a record for name with every other field at its sentinel.
func New(name string) Fighter {
	return Fighter{
		Name:   name,
		Height: Unknown,
		Weight: Unknown,
		Reach:  Unknown,
		Dob:    Unknown,

		SigStrikesLandedPerMin:   ZeroRate,
		StrikingAccuracy:         ZeroPercent,
		SigStrikesAbsorbedPerMin: ZeroRate,
		StrikingDefense:          ZeroPercent,
		TakedownAvg:              ZeroRate,
		TakedownAccuracy:         ZeroPercent,
		TakedownDefense:          ZeroPercent,
		SubmissionAvg:            ZeroSubAvg,

		LastFights: []FightSummary{},
	}
}

// Target is a fighter requested by name, with the details known ahead of
// time that are used if the fighter cannot be found on the site.
type Target struct {
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
	Weight   string `json:"weight"`
}

// Placeholder builds the manual-fallback record for a target.
func Placeholder(t Target) Fighter {
	f := New(t.Name)
	f.Nickname = t.Nickname
	if t.Weight != "" {
		f.Weight = t.Weight
	}
	return f
}

// NameKey is the only comparison used between fighter names.
func NameKey(name string) string {
	return textutil.NormalizeName(name)
}

func SameName(a, b string) bool {
	return NameKey(a) == NameKey(b)
}

// SetAge stores age, or clears it when ok is false.
func (f *Fighter) SetAge(age int, ok bool) {
	if !ok {
		f.Age = nil
		return
	}
	f.Age = &age
}

// Record formats wins-losses-draws the way the site does.
func (f Fighter) Record() string {
	return fmt.Sprintf("%d-%d-%d", f.Wins, f.Losses, f.Draws)
}
