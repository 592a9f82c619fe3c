package profile

import (
	"errors"
	"fighterdata/internal/fighters"
	"fighterdata/lib/htmlutil"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	classHistoryBody = "b-fight-details__table-body"
	classHistoryRow  = "b-fight-details__table-row"
	classHistoryCell = "b-fight-details__table-col"
	classFighterLink = "b-link"

	// result token of a scheduled bout listed above the fought ones
	tokenUpcoming = "next"
)

var (
	ErrNoHistory    = errors.New("no fight history table")
	ErrRowsDropped  = errors.New("fight history rows dropped")
	ErrHistoryPanic = errors.New("fight history extraction panicked")
)

var (
	errTooFewCells      = errors.New("too few cells")
	errNoResult         = errors.New("result not determined")
	errDecisionAsResult = errors.New("result cell holds a decision token")
	errNoOpponent       = errors.New("opponent not determined")
)

var methodKeywords = []string{"KO/TKO", "SUB", "DEC", "DECISION"}

// History is the outcome of reading a fight history table. Fights is always
// usable, Diagnostic explains anything that was skipped.
type History struct {
	Fights     []fighters.FightSummary
	Diagnostic error
}

// ExtractFightHistory reads at most fighters.MaxFights bouts from the first
// history table in doc. owner is the fighter the page belongs to, used to
// tell the opponent apart in the two-name fighter cell. Scheduled bouts are
// not fights yet and are skipped without a diagnostic.
func ExtractFightHistory(doc htmlutil.DocumentView, owner string) (history History) {
	history.Fights = []fighters.FightSummary{}
	defer func() {
		if r := recover(); r != nil {
			history.Diagnostic = fmt.Errorf("%w: %v", ErrHistoryPanic, r)
		}
	}()

	body := first(doc.FindByTagAndClass("tbody", classHistoryBody))
	if body == nil {
		history.Diagnostic = ErrNoHistory
		return history
	}

	var dropped []error
	inspected := 0
	for _, row := range body.FindByTagAndClass("tr", classHistoryRow) {
		cells := row.FindByTagAndClass("td", classHistoryCell)
		if len(cells) == 0 || isUpcoming(cells[0]) {
			continue
		}
		if inspected == fighters.MaxFights {
			break
		}
		inspected++

		fight, err := parseBout(cells, owner)
		if err != nil {
			dropped = append(dropped, fmt.Errorf("row %d: %w", inspected, err))
			continue
		}
		history.Fights = append(history.Fights, fight)
	}

	if len(dropped) > 0 {
		history.Diagnostic = fmt.Errorf("%w: %w", ErrRowsDropped, errors.Join(dropped...))
	}
	return history
}

func isUpcoming(resultCell htmlutil.DocumentView) bool {
	return strings.ToLower(htmlutil.NormalizeText(resultCell.Text())) == tokenUpcoming
}

func parseBout(cells []htmlutil.DocumentView, owner string) (fighters.FightSummary, error) {
	if len(cells) < 2 {
		return fighters.FightSummary{}, errTooFewCells
	}

	token := strings.ToLower(htmlutil.NormalizeText(cells[0].Text()))
	fight := fighters.FightSummary{
		Result:   resultFromToken(token),
		Opponent: findOpponent(cells[1], owner),
		Method:   findMethod(cells[2:]),
		Round:    findRound(cells[2:]),
	}

	decision := methodFromDecisionToken(token)
	if fight.Method == "" {
		fight.Method = decision
	}

	var errs []error
	if fight.Result == "" {
		if decision != "" {
			errs = append(errs, fmt.Errorf("%w: %q", errDecisionAsResult, token))
		} else {
			errs = append(errs, fmt.Errorf("%w: %q", errNoResult, token))
		}
	}
	if fight.Opponent == "" {
		errs = append(errs, errNoOpponent)
	}
	if len(errs) > 0 {
		return fighters.FightSummary{}, errors.Join(errs...)
	}
	return fight, nil
}

func resultFromToken(token string) string {
	switch token {
	case fighters.ResultWin, fighters.ResultLoss, fighters.ResultDraw, fighters.ResultNoContest:
		return token
	}
	return ""
}

func methodFromDecisionToken(token string) string {
	switch token {
	case "u-dec":
		return fighters.MethodDecisionUnanimous
	case "s-dec":
		return fighters.MethodDecisionSplit
	}
	return ""
}

func findOpponent(cell htmlutil.DocumentView, owner string) string {
	ownerKey := fighters.NameKey(owner)
	for _, link := range cell.FindByTagAndClass("a", classFighterLink) {
		name := htmlutil.NormalizeText(link.Text())
		if name != "" && fighters.NameKey(name) != ownerKey {
			return name
		}
	}

	// one name per paragraph; goquery joins sibling text without a
	// separator so the paragraphs are read one by one
	var candidates []string
	for _, p := range cell.FindByTagAndClass("p", "") {
		candidates = append(candidates, p.Text())
	}
	if len(candidates) == 0 {
		candidates = strings.Split(cell.Text(), "\n")
	}
	for _, candidate := range candidates {
		name := htmlutil.NormalizeText(candidate)
		if utf8.RuneCountInString(name) <= 3 {
			continue
		}
		if fighters.NameKey(name) == ownerKey || strings.HasPrefix(strings.ToLower(name), "def.") {
			continue
		}
		return name
	}
	return ""
}

// findMethod prefers the first cell whose leading line is a known method.
// Event cells can contain "Dec." in their date, so a keyword hit alone only
// counts when no cell normalizes cleanly.
func findMethod(cells []htmlutil.DocumentView) string {
	fallback := ""
	for _, cell := range cells {
		text := cell.Text()
		if !containsKeyword(strings.ToUpper(text)) {
			continue
		}
		line := firstLine(text)
		if method, ok := normalizeMethod(line); ok {
			return method
		}
		if fallback == "" {
			fallback = line
		}
	}
	return fallback
}

func containsKeyword(upper string) bool {
	for _, k := range methodKeywords {
		if strings.Contains(upper, k) {
			return true
		}
	}
	return false
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = htmlutil.NormalizeText(line)
		if line != "" {
			return line
		}
	}
	return ""
}

func normalizeMethod(line string) (string, bool) {
	upper := strings.ToUpper(line)
	switch {
	case strings.Contains(upper, "KO/TKO"):
		return fighters.MethodKO, true
	case strings.HasPrefix(upper, "SUB"):
		return fighters.MethodSubmission, true
	case strings.Contains(upper, "U-DEC"), strings.Contains(upper, "UNANIMOUS"):
		return fighters.MethodDecisionUnanimous, true
	case strings.Contains(upper, "S-DEC"), strings.Contains(upper, "SPLIT"):
		return fighters.MethodDecisionSplit, true
	case strings.HasPrefix(upper, "DEC"), strings.Contains(upper, "-DEC"):
		return fighters.MethodDecision, true
	}
	return line, false
}

func findRound(cells []htmlutil.DocumentView) string {
	round := ""
	for _, cell := range cells {
		text := htmlutil.NormalizeText(cell.Text())
		if isDigits(text) {
			round = text
		}
	}
	return round
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
