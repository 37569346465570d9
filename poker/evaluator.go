package poker

import "sort"

// HandCategory classifies a five-card poker hand. Higher values are stronger.
type HandCategory int

const (
	HighCard HandCategory = iota + 1
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the conventional hand name.
func (hc HandCategory) String() string {
	switch hc {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	}
	return "Unknown"
}

// HandResult is the classification of a best five-card hand. TieBreaks holds
// the numeric rank values (2-14) used to order hands within the same
// category; the first mismatching entry decides.
type HandResult struct {
	Category  HandCategory `json:"category"`
	TieBreaks []int        `json:"tieBreaks"`
	Cards     []Card       `json:"cards"`
}

// Evaluate returns the best five-card hand makeable from the hole and
// community cards. It enumerates every five-card subset and keeps the
// maximum, so the result is independent of input card order.
func Evaluate(holeCards, communityCards []Card) HandResult {
	all := make([]Card, 0, len(holeCards)+len(communityCards))
	all = append(all, holeCards...)
	all = append(all, communityCards...)

	var best HandResult
	for _, combo := range Combinations(all, 5) {
		result := evaluateFive(combo)
		if best.Category == 0 || CompareHands(result, best) > 0 {
			best = result
		}
	}
	return best
}

// CompareHands orders two hand results: positive if a wins, negative if b
// wins, zero for an exact tie. Categories compare first, then the tie-break
// vectors entry-wise.
func CompareHands(a, b HandResult) int {
	if a.Category != b.Category {
		return int(a.Category) - int(b.Category)
	}
	for i := 0; i < len(a.TieBreaks) && i < len(b.TieBreaks); i++ {
		if a.TieBreaks[i] != b.TieBreaks[i] {
			return a.TieBreaks[i] - b.TieBreaks[i]
		}
	}
	return 0
}

// evaluateFive classifies exactly five cards.
func evaluateFive(cards []Card) HandResult {
	sorted := make([]Card, len(cards))
	copy(sorted, cards)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Rank.Value() > sorted[j].Rank.Value()
	})

	flush := isFlush(sorted)
	straightHigh, straight := straightHighCard(sorted)

	counts := rankCounts(sorted)
	shape := countShape(counts)

	switch {
	case flush && straight && straightHigh == 14:
		return HandResult{
			Category:  RoyalFlush,
			TieBreaks: []int{14, 13, 12, 11, 10},
			Cards:     sorted,
		}

	case flush && straight:
		return HandResult{
			Category:  StraightFlush,
			TieBreaks: []int{straightHigh},
			Cards:     sorted,
		}

	case shape[0] == 4:
		quad := ranksWithCount(counts, 4)[0]
		kicker := ranksWithCount(counts, 1)[0]
		return HandResult{
			Category:  FourOfAKind,
			TieBreaks: []int{quad, kicker},
			Cards:     sorted,
		}

	case shape[0] == 3 && shape[1] == 2:
		triple := ranksWithCount(counts, 3)[0]
		pair := ranksWithCount(counts, 2)[0]
		return HandResult{
			Category:  FullHouse,
			TieBreaks: []int{triple, pair},
			Cards:     sorted,
		}

	case flush:
		return HandResult{
			Category:  Flush,
			TieBreaks: rankValues(sorted),
			Cards:     sorted,
		}

	case straight:
		return HandResult{
			Category:  Straight,
			TieBreaks: []int{straightHigh},
			Cards:     sorted,
		}

	case shape[0] == 3:
		triple := ranksWithCount(counts, 3)[0]
		kickers := ranksWithCount(counts, 1)
		return HandResult{
			Category:  ThreeOfAKind,
			TieBreaks: append([]int{triple}, kickers...),
			Cards:     sorted,
		}

	case shape[0] == 2 && shape[1] == 2:
		pairs := ranksWithCount(counts, 2)
		kicker := ranksWithCount(counts, 1)[0]
		return HandResult{
			Category:  TwoPair,
			TieBreaks: []int{pairs[0], pairs[1], kicker},
			Cards:     sorted,
		}

	case shape[0] == 2:
		pair := ranksWithCount(counts, 2)[0]
		kickers := ranksWithCount(counts, 1)
		return HandResult{
			Category:  OnePair,
			TieBreaks: append([]int{pair}, kickers...),
			Cards:     sorted,
		}

	default:
		return HandResult{
			Category:  HighCard,
			TieBreaks: rankValues(sorted),
			Cards:     sorted,
		}
	}
}

func isFlush(cards []Card) bool {
	suit := cards[0].Suit
	for _, c := range cards[1:] {
		if c.Suit != suit {
			return false
		}
	}
	return true
}

// straightHighCard reports whether the cards (sorted descending by rank) form
// a straight and returns its high card value. The wheel A-2-3-4-5 counts as a
// straight with high card 5.
func straightHighCard(sorted []Card) (int, bool) {
	values := rankValues(sorted)

	sequential := true
	for i := 0; i < len(values)-1; i++ {
		if values[i]-values[i+1] != 1 {
			sequential = false
			break
		}
	}
	if sequential {
		return values[0], true
	}

	if values[0] == 14 && values[1] == 5 && values[2] == 4 && values[3] == 3 && values[4] == 2 {
		return 5, true
	}

	return 0, false
}

func rankValues(cards []Card) []int {
	values := make([]int, len(cards))
	for i, c := range cards {
		values[i] = c.Rank.Value()
	}
	return values
}

func rankCounts(cards []Card) map[int]int {
	counts := make(map[int]int, len(cards))
	for _, c := range cards {
		counts[c.Rank.Value()]++
	}
	return counts
}

// countShape returns the multiset shape of rank counts sorted descending,
// e.g. a full house yields [3 2 0 0 0].
func countShape(counts map[int]int) [5]int {
	var shape [5]int
	i := 0
	for _, n := range counts {
		shape[i] = n
		i++
	}
	sort.Sort(sort.Reverse(sort.IntSlice(shape[:])))
	return shape
}

// ranksWithCount returns the rank values appearing exactly count times,
// sorted descending.
func ranksWithCount(counts map[int]int, count int) []int {
	var ranks []int
	for value, n := range counts {
		if n == count {
			ranks = append(ranks, value)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))
	return ranks
}
