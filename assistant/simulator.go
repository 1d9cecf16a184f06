package assistant

import (
	"context"
	"math/rand/v2"
	"regexp"
	"strings"
	"sync"
	"time"
)

type rule struct {
	pattern  *regexp.Regexp
	response Response
}

var rules = []rule{
	{
		regexp.MustCompile(`how much (did|have) i spend (on|in) (.*?) (last|this) (month|week)`),
		Response{
			Text:     "Based on your transactions, you spent $320 on dining last month. That's about 15% of your total monthly spending.",
			HasChart: true,
		},
	},
	{
		regexp.MustCompile(`what('s| is) my (current )?balance`),
		Response{Text: "Your current account balance is $2,450.75. That's up $320.50 from last month."},
	},
	{
		regexp.MustCompile(`how (am i|are we) doing on (my|our) (.*?) goal`),
		Response{Text: "You're making good progress on your vacation goal! You've saved $1,250 out of your $3,000 target (42%). At your current rate, you'll reach your goal in about 4 months."},
	},
	{
		regexp.MustCompile(`how('s| is) my budget( doing)?`),
		Response{Text: "You're staying within budget this month. You've used 68% of your monthly budget with 10 days remaining. Your grocery spending is slightly higher than usual, but you've spent less on entertainment."},
	},
	{
		regexp.MustCompile(`show me my (biggest|largest|highest|top) expenses`),
		Response{
			Text:     "Your largest expenses this month are: 1) Rent: $1,200, 2) Groceries: $425, 3) Dining out: $320. Together these make up 65% of your monthly spending.",
			HasChart: true,
		},
	},
	{
		regexp.MustCompile(`how can i save (more money|money)`),
		Response{Text: "Based on your spending patterns, I see a few opportunities to save money: 1) Your subscription services total $65/month - consider reviewing which ones you actually use. 2) You've spent $320 on dining out this month - cooking at home more could save around $150."},
	},
	{
		regexp.MustCompile(`how much (did|have) i (earned|made|received|get)`),
		Response{Text: "You've received $3,250 in income this month from your primary job. That's consistent with your average monthly income over the past 6 months."},
	},
}

// Fallbacks are returned when no rule matches.
var Fallbacks = []string{
	"I'm not sure I understand that question. Could you rephrase it?",
	"Based on your recent transactions, you've been spending most on groceries and dining out.",
	"Your financial health looks good overall. Your savings rate is approximately 15% of your income.",
	"Would you like me to analyze your spending patterns for the past month?",
	"I can help you set up a budget if you'd like. What are your main financial goals right now?",
}

// DefaultDelay simulates the latency of a remote model.
const DefaultDelay = 500 * time.Millisecond

// Simulator answers from a fixed set of canned replies. Its figures are
// illustrative and unrelated to the user's ledger.
type Simulator struct {
	Delay time.Duration

	mu   sync.Mutex
	rand *rand.Rand
}

// NewSimulator returns a Simulator with DefaultDelay. A nil r uses a
// randomly seeded source.
func NewSimulator(r *rand.Rand) *Simulator {
	if r == nil {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Simulator{Delay: DefaultDelay, rand: r}
}

// Respond returns the reply of the first rule matching message, or a random
// fallback. It fails only when ctx is done before the delay elapses.
func (s *Simulator) Respond(ctx context.Context, message string) (Response, error) {
	resp := s.match(strings.ToLower(message))

	timer := time.NewTimer(s.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return Response{}, ctx.Err()
	case <-timer.C:
	}

	return resp, nil
}

func (s *Simulator) match(message string) Response {
	for _, r := range rules {
		if r.pattern.MatchString(message) {
			return r.response
		}
	}

	s.mu.Lock()
	i := s.rand.IntN(len(Fallbacks))
	s.mu.Unlock()

	return Response{Text: Fallbacks[i]}
}
