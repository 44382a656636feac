// Package enrich selects a short display description for each catalog
// product: a scored paragraph from the product's datasheet when one passes
// the acceptance rules, otherwise a synthetic description assembled from
// key attributes. The engine consumes the result as opaque text.
package enrich

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/aigentincubator/sales-ctonet/internal/normalize"
	"github.com/aigentincubator/sales-ctonet/pkg/models"
)

// MaxDescriptionLen caps the stored description.
const MaxDescriptionLen = 240

// candidateParagraphs limits how deep into the document we look.
const candidateParagraphs = 8

var (
	paragraphSplit = regexp.MustCompile(`\n\s*\n+|\r\n\r\n+`)
	footnoteStart  = regexp.MustCompile(`^\[\d+\]`)
	looseHyphen    = regexp.MustCompile(`\s+-\s+`)
)

// bannedPrefixes reject headings and obvious non-descriptive sections.
var bannedPrefixes = []string{
	"technical specifications",
	"specifications",
	"feature",
	"features",
	"hardware",
	"interfaces",
	"dimensions",
	"package",
	"warranty",
	"product code",
	"peplink",
	"pepwave",
	"datasheet",
	"max",
	"balance",
}

// boilerplate marks port-configuration footnote text that reads like a
// description but never is one.
var boilerplate = []string{
	"wan port(s) can be configured",
	"configured as a lan",
	"ge ports can be configured",
	"configured as wan",
	"lan 1-2 are configured as",
	"wan 3 is configured",
}

// verbSignals accept prose that describes what the product does.
var verbSignals = []string{
	"is ", "provides", "delivers", "offers", "enables", "designed", "ideal", "supports",
}

// SplitParagraphs breaks extracted document text on blank lines and
// flattens each paragraph's internal line breaks.
func SplitParagraphs(text string) []string {
	var out []string
	for _, p := range paragraphSplit.Split(text, -1) {
		p = strings.ReplaceAll(p, "\n", " ")
		p = strings.ReplaceAll(p, "\r", " ")
		p = normalize.CleanDisplay(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ValidDescription applies the fixed rule set to one candidate paragraph.
// Rejection rules run first (length, digit density, footnotes, headings,
// boilerplate, all-caps); then any acceptance signal passes it.
func ValidDescription(p, productName string) bool {
	if len(p) < 40 || len(p) > 600 {
		return false
	}
	digits := 0
	for _, ch := range p {
		if unicode.IsDigit(ch) {
			digits++
		}
	}
	if float64(digits)/float64(len(p)) > 0.30 {
		return false
	}

	l := strings.ToLower(strings.TrimSpace(p))
	if strings.HasPrefix(l, "[") || footnoteStart.MatchString(l) {
		return false
	}
	for _, kw := range boilerplate {
		if strings.Contains(l, kw) {
			return false
		}
	}
	for _, prefix := range bannedPrefixes {
		if strings.HasPrefix(l, prefix) {
			return false
		}
	}
	if allCaps(p) {
		return false
	}

	for _, v := range verbSignals {
		if strings.Contains(l, v) {
			return true
		}
	}
	if productName != "" {
		first := strings.ToLower(strings.Fields(productName)[0])
		if strings.Contains(l, first) {
			return true
		}
	}
	return len(strings.Fields(p)) >= 8
}

// PickDescription returns the first acceptable paragraph among the leading
// candidates, trimmed to MaxDescriptionLen, or "" when none qualifies.
func PickDescription(text, productName string) string {
	paras := SplitParagraphs(text)
	if len(paras) > candidateParagraphs {
		paras = paras[:candidateParagraphs]
	}
	for _, p := range paras {
		if !ValidDescription(p, productName) {
			continue
		}
		p = normalize.CleanDisplay(looseHyphen.ReplaceAllString(p, "-"))
		return truncate(p)
	}
	return ""
}

// Synthetic assembles a compact description from key attributes; the
// guaranteed fallback when document extraction yields nothing usable.
func Synthetic(name string, attrs map[string]string) string {
	var role []string
	g5 := strings.ToLower(strings.TrimSpace(attrs[models.Attr5GSupport]))
	if g5 == "yes" || g5 == "true" {
		role = append(role, "5G")
	}
	modem := strings.TrimSpace(attrs[models.AttrModemCount])
	if modem != "" && modem != "None" && modem != "0" {
		role = append(role, modem+" modem")
	}
	ap := strings.ToLower(strings.TrimSpace(attrs[models.AttrWiFiAP]))
	if ap != "" && ap != "no" && ap != "none" {
		role = append(role, "Wi‑Fi AP")
	}
	if radio := strings.TrimSpace(attrs[models.AttrWiFiRadio]); radio != "" {
		role = append(role, radio)
	}
	roleText := "Router"
	if len(role) > 0 {
		roleText = strings.Join(role, ", ")
	}

	var details []string
	if wan := strings.TrimSpace(attrs[models.AttrWANPorts]); wan != "" {
		details = append(details, "WAN: "+wan)
	}
	if lan := strings.TrimSpace(attrs[models.AttrLANPorts]); lan != "" {
		details = append(details, "LAN: "+lan)
	}
	if tput := strings.TrimSpace(attrs[models.AttrRouterThroughput]); tput != "" {
		details = append(details, "Throughput: "+tput)
	}
	if users := strings.TrimSpace(attrs[models.AttrUsers]); users != "" {
		details = append(details, "Users: "+users)
	}

	out := normalize.CleanDisplay(name + ": " + roleText + ". " + strings.Join(details, "; "))
	if r := []rune(out); len(r) > MaxDescriptionLen {
		out = string(r[:MaxDescriptionLen])
	}
	return out
}

func allCaps(p string) bool {
	sawLetter := false
	for _, ch := range p {
		if unicode.IsLetter(ch) {
			sawLetter = true
			if unicode.IsLower(ch) {
				return false
			}
		}
	}
	return sawLetter
}

func truncate(p string) string {
	r := []rune(p)
	if len(r) <= MaxDescriptionLen {
		return p
	}
	return strings.TrimRight(string(r[:MaxDescriptionLen]), " ") + "…"
}
