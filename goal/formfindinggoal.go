package goal

import (
	log4go "github.com/ccpaging/log4go"
	lru "github.com/hashicorp/golang-lru"

	"github.com/iParadigms/crawlsched"
)

// formScoreCacheSize bounds FormFindingGoal's response-score memo. Without a
// bound the memo would hold every Response ever scored for the life of the
// Goal, keyed by the Response itself - exactly the unbounded-cache shape the
// original Python FormasaurusGoal relied on a WeakKeyDictionary to avoid.
// Keying by URL instead of by the Response value lets the LRU evict entries
// without caring whether anything else still references the Response.
const formScoreCacheSize = 100000

// FormClassifier scores the probability that the text of a response
// contains each of a set of form types, keyed by the form-type label.
type FormClassifier func(text string) map[string]float64

// FormFindingGoal rewards responses in proportion to how likely they are to
// contain a particular kind of web form (a login form, a checkout form,
// etc.), and declares a domain done once its best response so far clears a
// probability threshold.
//
// Grounded on the teacher's console.Model per-domain stat tracking, with the
// per-response memoization bounded the way linkintake bounds its
// canonicalization cache: a fixed-size hashicorp/golang-lru keyed by a
// stable identifier (the response URL) rather than the Response value
// itself, so scored responses can still be garbage collected.
type FormFindingGoal struct {
	FormType   string
	Classifier FormClassifier
	Threshold  float64 // defaults to 0.7 via NewFormFindingGoal

	maxScores *MaxScores
	memo      *lru.Cache
}

// NewFormFindingGoal returns a FormFindingGoal targeting formType, with
// Threshold defaulted to 0.7.
func NewFormFindingGoal(formType string, classifier FormClassifier) *FormFindingGoal {
	memo, err := lru.New(formScoreCacheSize)
	if err != nil {
		// Only returns an error for a non-positive size, which
		// formScoreCacheSize never is.
		panic(err)
	}
	return &FormFindingGoal{
		FormType:   formType,
		Classifier: classifier,
		Threshold:  0.7,
		maxScores:  NewMaxScores(),
		memo:       memo,
	}
}

// GetReward returns the memoized probability that res's form type matches
// g.FormType, computing and caching it on first call. Responses with no
// extractable text score 0.
func (g *FormFindingGoal) GetReward(res crawlsched.Response) float64 {
	if reward, ok := g.memo.Get(res.URL()); ok {
		return reward.(float64)
	}

	var reward float64
	if text, ok := res.Text(); ok {
		scores := g.Classifier(text)
		reward = scores[g.FormType]
	}
	g.memo.Add(res.URL(), reward)
	return reward
}

// ResponseObserved records res's reward as the new max score for its
// domain, if higher than any seen before.
func (g *FormFindingGoal) ResponseObserved(res crawlsched.Response) {
	g.maxScores.Update(res.Domain(), g.GetReward(res))
}

// IsAchievedFor reports whether domain's best score so far exceeds
// g.Threshold.
func (g *FormFindingGoal) IsAchievedFor(domain string) bool {
	return g.maxScores.Get(domain) > g.Threshold
}

// DebugPrint logs the average and summed max score across every domain
// observed so far.
func (g *FormFindingGoal) DebugPrint() {
	log4go.Debug("FormFindingGoal(%v): avg=%v sum=%v", g.FormType, g.maxScores.Avg(), g.maxScores.Sum())
}
