package txparser

import (
	"strings"
	"unicode"

	"avinya/fin-pulse/internal/textutils"
)

// Context is what a PartyStrategy sees of the message being parsed.
type Context struct {
	Text string
	// Lower is Text with ASCII letters lower-cased; offsets match Text.
	Lower    string
	IsCredit bool
	// Handle is the lower-cased UPI handle, or "".
	Handle   string
	UPINames func() map[string]string
}

// PartyStrategy is one step of counterparty extraction. The first strategy
// returning ok wins.
type PartyStrategy interface {
	Extract(ctx Context) (name string, ok bool)
	Name() string
}

// DefaultPartyStrategies returns the standard extraction order.
func DefaultPartyStrategies() []PartyStrategy {
	return []PartyStrategy{
		upiMappingStrategy{},
		capitalizationStrategy{},
		sentYouStrategy{},
		hasSentStrategy{},
		keywordStrategy{},
	}
}

var (
	creditIndicators = map[string]bool{"paid": true, "sent": true, "transferred": true, "credited": true, "gave": true}
	debitIndicators  = map[string]bool{"to": true, "at": true, "for": true}

	// Never part of a name.
	skipWords = map[string]bool{
		"you": true, "your": true, "rs": true, "inr": true, "rupees": true, "the": true, "a": true, "an": true,
		"has": true, "have": true, "is": true, "was": true, "been": true, "will": true, "would": true,
		"should": true, "could": true, "can": true, "may": true, "upi": true, "vpa": true, "payment": true,
		"transaction": true, "txn": true, "amount": true, "money": true, "from": true, "account": true,
		"acct": true, "bank": true, "dear": true, "customer": true, "alert": true, "info": true, "ref": true,
		"received": true, "paid": true, "sent": true, "spent": true, "debited": true, "credited": true,
		"transferred": true, "gave": true, "yours": true, "ac": true, "on": true, "via": true, "using": true,
	}

	genericWords = map[string]bool{"your": true, "my": true, "me": true, "you": true, "account": true, "a/c": true, "bank": true, "vpa": true, "upi": true}

	creditAnchors = []string{"from ", "received from ", "credited by ", "by transfer from ", "payment from ", "transfer from ", "trf from ", "by ", "sent by "}
	debitAnchors  = []string{"trf to ", "transfer to ", "paid to ", "sent to ", "spent at ", "payment to ", "to ", "at ", "info: upi-"}
	terminators   = []string{" ref", " refno", " if not", " avbl", " avl", " bal", "-"}
)

// acceptName rejects empty, generic, one-character and letterless names.
func acceptName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < 2 || genericWords[strings.ToLower(name)] {
		return "", false
	}
	if strings.IndexFunc(name, unicode.IsLetter) < 0 {
		return "", false
	}
	return name, true
}

func lettersOnly(word string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		return -1
	}, word)
}

// upiMappingStrategy uses a name the user taught for the UPI handle.
type upiMappingStrategy struct{}

func (upiMappingStrategy) Name() string { return "UPIMapping" }

func (upiMappingStrategy) Extract(ctx Context) (string, bool) {
	if ctx.Handle == "" || ctx.UPINames == nil {
		return "", false
	}
	name, found := ctx.UPINames()[ctx.Handle]
	if !found {
		return "", false
	}
	return acceptName(name)
}

// capitalizationStrategy looks for runs of capitalized words next to a
// direction indicator. For credits the name precedes a verb ("Rahul sent");
// for debits it follows a preposition ("to Rahul").
type capitalizationStrategy struct{}

func (capitalizationStrategy) Name() string { return "Capitalization" }

func (s capitalizationStrategy) Extract(ctx Context) (string, bool) {
	words := strings.Fields(ctx.Text)
	if ctx.IsCredit {
		return s.beforeVerb(words)
	}
	return s.afterPreposition(words)
}

func (capitalizationStrategy) beforeVerb(words []string) (string, bool) {
	for i, w := range words {
		if i == 0 || !creditIndicators[strings.ToLower(textutils.TrimPunct(w))] {
			continue
		}
		var parts []string
		for j := i - 1; j >= 0; j-- {
			clean := lettersOnly(words[j])
			if clean == "" {
				continue
			}
			if skipWords[strings.ToLower(clean)] || !textutils.IsCapitalized(clean) {
				break
			}
			parts = append([]string{clean}, parts...)
		}
		if name, ok := acceptName(strings.Join(parts, " ")); ok {
			return name, true
		}
	}

	// Notifications often lead with the sender: "Rahul Sharma: Rs 500 ..."
	if len(words) == 0 {
		return "", false
	}
	first := lettersOnly(words[0])
	if len(first) < 2 || !textutils.IsCapitalized(first) || skipWords[strings.ToLower(first)] {
		return "", false
	}
	if len(words) > 1 {
		second := lettersOnly(words[1])
		if second != "" && textutils.IsCapitalized(second) && !skipWords[strings.ToLower(second)] &&
			!creditIndicators[strings.ToLower(second)] {
			return first + " " + second, true
		}
	}
	return first, true
}

// afterPreposition takes the capitalized run following "to", "at" or "for",
// not the one preceding it. For debits the words before the indicator are
// the verb and the payer, so a debit with no run after it falls through to
// the keyword strategy.
func (capitalizationStrategy) afterPreposition(words []string) (string, bool) {
	for i, w := range words {
		if !debitIndicators[strings.ToLower(textutils.TrimPunct(w))] {
			continue
		}
		var parts []string
		for j := i + 1; j < len(words); j++ {
			clean := lettersOnly(words[j])
			if clean == "" || skipWords[strings.ToLower(clean)] || !textutils.IsCapitalized(clean) {
				break
			}
			parts = append(parts, clean)
			if strings.ContainsAny(words[j], ".,:;") {
				break
			}
		}
		if name, ok := acceptName(strings.Join(parts, " ")); ok {
			return name, true
		}
	}
	return "", false
}

// sentYouStrategy handles "Name sent you Rs..." and "Name sent Rs... to you".
type sentYouStrategy struct{}

func (sentYouStrategy) Name() string { return "SentYou" }

func (sentYouStrategy) Extract(ctx Context) (string, bool) {
	if !ctx.IsCredit || !strings.Contains(ctx.Lower, "sent") {
		return "", false
	}
	if i := strings.Index(ctx.Lower, "sent you"); i > 0 {
		return acceptName(ctx.Text[:i])
	}
	if strings.Contains(ctx.Lower, "to you") {
		if i := strings.Index(ctx.Lower, "sent"); i > 0 {
			return acceptName(ctx.Text[:i])
		}
	}
	return "", false
}

// hasSentStrategy handles "Name has sent/transferred/paid ...".
type hasSentStrategy struct{}

func (hasSentStrategy) Name() string { return "HasSent" }

func (hasSentStrategy) Extract(ctx Context) (string, bool) {
	if !ctx.IsCredit {
		return "", false
	}
	for _, phrase := range []string{"has sent", "has transferred", "has paid"} {
		if i := strings.Index(ctx.Lower, phrase); i > 0 {
			return acceptName(ctx.Text[:i])
		}
	}
	return "", false
}

// keywordStrategy takes the text following a direction-specific anchor up to
// the first terminator.
type keywordStrategy struct{}

func (keywordStrategy) Name() string { return "Keyword" }

func (keywordStrategy) Extract(ctx Context) (string, bool) {
	anchors := debitAnchors
	if ctx.IsCredit {
		anchors = creditAnchors
	}
	for _, anchor := range anchors {
		i := indexWord(ctx.Lower, anchor)
		if i < 0 {
			continue
		}
		start := i + len(anchor)
		end := len(ctx.Text)
		for _, t := range terminators {
			if j := strings.Index(ctx.Lower[start:], t); j >= 0 && start+j < end {
				end = start + j
			}
		}
		if j := strings.IndexAny(ctx.Text[start:], ".,\n"); j >= 0 && start+j < end {
			end = start + j
		}
		if name, ok := acceptName(ctx.Text[start:end]); ok && !leadsWithGeneric(name) {
			return name, true
		}
	}
	return "", false
}

// leadsWithGeneric reports whether the first word of name is generic, as in
// "VPA rahul" cut from "to VPA rahul.k@okaxis".
func leadsWithGeneric(name string) bool {
	fields := strings.Fields(name)
	return len(fields) > 0 && genericWords[strings.ToLower(fields[0])]
}

// indexWord finds anchor in s where it starts a word, so "to " does not
// match inside "into ".
func indexWord(s, anchor string) int {
	for offset := 0; offset < len(s); {
		i := strings.Index(s[offset:], anchor)
		if i < 0 {
			return -1
		}
		i += offset
		if i == 0 || !isWordByte(s[i-1]) {
			return i
		}
		offset = i + 1
	}
	return -1
}

func isWordByte(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}
