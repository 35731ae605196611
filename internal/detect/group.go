package detect

import "sort"

// group is one merchant bucket: the transactions that normalized to the same
// key, plus a frequency count of each distinct raw display string so the
// builder can pick the most common variant as the display name.
type group struct {
	key        string
	txs        []Transaction
	nameCounts map[string]int
	nameOrder  []string // first-seen order, used to break frequency ties
}

func (g *group) add(t Transaction) {
	g.txs = append(g.txs, t)
	label := t.Label()
	if _, seen := g.nameCounts[label]; !seen {
		g.nameOrder = append(g.nameOrder, label)
	}
	g.nameCounts[label]++
}

// displayName returns the most frequent raw variant; ties go to the variant
// seen first.
func (g *group) displayName() string {
	best := ""
	bestCount := 0
	for _, name := range g.nameOrder {
		if g.nameCounts[name] > bestCount {
			best = name
			bestCount = g.nameCounts[name]
		}
	}
	if best == "" {
		return g.key
	}
	return best
}

// groupByMerchant buckets transactions by normalized merchant key and returns
// the buckets in key order so every run visits groups deterministically.
func groupByMerchant(txs []Transaction) []*group {
	byKey := make(map[string]*group)
	for _, t := range txs {
		key := NormalizeMerchant(t.Label())
		if len(key) < minKeyLength {
			continue
		}
		g, ok := byKey[key]
		if !ok {
			g = &group{key: key, nameCounts: make(map[string]int)}
			byKey[key] = g
		}
		g.add(t)
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	groups := make([]*group, 0, len(keys))
	for _, k := range keys {
		groups = append(groups, byKey[k])
	}
	return groups
}
