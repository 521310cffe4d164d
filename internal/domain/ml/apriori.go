package ml

import (
	"sort"
	"strings"
)

// Rule regla de asociación entre conjuntos de productos.
// Support y Confidence están en [0,1]; Lift es un cociente de probabilidades.
type Rule struct {
	Antecedent []string
	Consequent []string
	Support    float64
	Confidence float64
	Lift       float64
}

// RuleMiner estrategia de minería de reglas sobre canastas de compra.
type RuleMiner interface {
	Mine(baskets [][]string) []Rule
}

// Métodos de minado reportados por MineRules.
const (
	MethodApriori      = "apriori"
	MethodCoOccurrence = "co-occurrence"
	MethodNone         = "none"
)

// MineRules punto único de decisión entre estrategias: intenta apriori con
// escalera de soporte adaptativa y, si no produce reglas, cae a la minería
// por co-ocurrencia de pares. Devuelve también el método que produjo las
// reglas, o MethodNone si ninguno aplicó.
func MineRules(baskets [][]string) ([]Rule, string) {
	clean := CleanBaskets(baskets)
	if len(clean) == 0 {
		return nil, MethodNone
	}

	if rules := NewAprioriMiner().Mine(clean); len(rules) > 0 {
		return rules, MethodApriori
	}
	if rules := NewCoOccurrenceMiner().Mine(clean); len(rules) > 0 {
		return rules, MethodCoOccurrence
	}
	return nil, MethodNone
}

// CleanBaskets deduplica items dentro de cada canasta, los ordena y descarta
// canastas con menos de dos productos distintos: solo esas aportan asociaciones.
func CleanBaskets(baskets [][]string) [][]string {
	out := make([][]string, 0, len(baskets))
	for _, b := range baskets {
		seen := make(map[string]struct{}, len(b))
		items := make([]string, 0, len(b))
		for _, it := range b {
			if it == "" {
				continue
			}
			if _, ok := seen[it]; ok {
				continue
			}
			seen[it] = struct{}{}
			items = append(items, it)
		}
		if len(items) < 2 {
			continue
		}
		sort.Strings(items)
		out = append(out, items)
	}
	return out
}

// ──────────────────────────────────────────────────────────────
// Apriori
// ──────────────────────────────────────────────────────────────

// AprioriMiner minería clásica de itemsets frecuentes con escalera de soporte
// descendente: se queda con el primer umbral que produce suficientes itemsets.
type AprioriMiner struct {
	SupportLadder []float64
	MinConfidence float64
	MaxLen        int
	MinItemsets   int
	TopN          int
}

// NewAprioriMiner parámetros por defecto del minero apriori.
func NewAprioriMiner() *AprioriMiner {
	return &AprioriMiner{
		SupportLadder: []float64{0.02, 0.01, 0.005, 0.003, 0.001, 0.0005},
		MinConfidence: 0.01,
		MaxLen:        4,
		MinItemsets:   10,
		TopN:          20,
	}
}

type itemset struct {
	items   []string
	support float64
}

// Mine recorre la escalera de soporte y genera reglas a partir de los
// itemsets frecuentes, ordenadas por lift descendente.
func (m *AprioriMiner) Mine(baskets [][]string) []Rule {
	baskets = CleanBaskets(baskets)
	if len(baskets) == 0 {
		return nil
	}

	var frequent []itemset
	for _, minSupport := range m.SupportLadder {
		frequent = m.frequentItemsets(baskets, minSupport)
		if len(frequent) > m.MinItemsets {
			break
		}
	}
	if len(frequent) == 0 {
		return nil
	}

	supports := make(map[string]float64, len(frequent))
	for _, is := range frequent {
		supports[itemsetKey(is.items)] = is.support
	}

	var rules []Rule
	for _, is := range frequent {
		if len(is.items) < 2 {
			continue
		}
		for _, antecedent := range properSubsets(is.items) {
			antSupport, ok := supports[itemsetKey(antecedent)]
			if !ok || antSupport == 0 {
				continue
			}
			consequent := difference(is.items, antecedent)
			conSupport, ok := supports[itemsetKey(consequent)]
			if !ok || conSupport == 0 {
				continue
			}
			confidence := is.support / antSupport
			if confidence < m.MinConfidence {
				continue
			}
			rules = append(rules, Rule{
				Antecedent: antecedent,
				Consequent: consequent,
				Support:    is.support,
				Confidence: confidence,
				Lift:       confidence / conSupport,
			})
		}
	}

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Lift != rules[j].Lift {
			return rules[i].Lift > rules[j].Lift
		}
		return rules[i].Confidence > rules[j].Confidence
	})
	if len(rules) > m.TopN {
		rules = rules[:m.TopN]
	}
	return rules
}

// frequentItemsets genera itemsets frecuentes por niveles hasta MaxLen.
func (m *AprioriMiner) frequentItemsets(baskets [][]string, minSupport float64) []itemset {
	total := float64(len(baskets))

	counts := make(map[string]int)
	for _, b := range baskets {
		for _, it := range b {
			counts[it]++
		}
	}

	var level []itemset
	for it, c := range counts {
		support := float64(c) / total
		if support >= minSupport {
			level = append(level, itemset{items: []string{it}, support: support})
		}
	}
	sort.Slice(level, func(i, j int) bool { return level[i].items[0] < level[j].items[0] })

	all := append([]itemset(nil), level...)
	for size := 2; size <= m.MaxLen && len(level) > 1; size++ {
		candidates := joinItemsets(level)
		var next []itemset
		for _, cand := range candidates {
			c := 0
			for _, b := range baskets {
				if containsAll(b, cand) {
					c++
				}
			}
			support := float64(c) / total
			if support >= minSupport {
				next = append(next, itemset{items: cand, support: support})
			}
		}
		all = append(all, next...)
		level = next
	}
	return all
}

// joinItemsets une itemsets ordenados que comparten prefijo, estilo apriori.
func joinItemsets(level []itemset) [][]string {
	var out [][]string
	seen := make(map[string]struct{})
	for i := 0; i < len(level); i++ {
		for j := i + 1; j < len(level); j++ {
			a, b := level[i].items, level[j].items
			if !samePrefix(a, b) {
				continue
			}
			merged := make([]string, len(a)+1)
			copy(merged, a)
			merged[len(a)] = b[len(b)-1]
			sort.Strings(merged)
			key := itemsetKey(merged)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, merged)
		}
	}
	return out
}

func samePrefix(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a)-1; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return a[len(a)-1] != b[len(b)-1]
}

// properSubsets subconjuntos propios no vacíos de un itemset ordenado.
func properSubsets(items []string) [][]string {
	n := len(items)
	var out [][]string
	for mask := 1; mask < (1<<n)-1; mask++ {
		var sub []string
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				sub = append(sub, items[i])
			}
		}
		out = append(out, sub)
	}
	return out
}

func difference(items, remove []string) []string {
	rm := make(map[string]struct{}, len(remove))
	for _, it := range remove {
		rm[it] = struct{}{}
	}
	var out []string
	for _, it := range items {
		if _, ok := rm[it]; !ok {
			out = append(out, it)
		}
	}
	return out
}

func containsAll(basket, items []string) bool {
	// ambas listas vienen ordenadas
	i := 0
	for _, b := range basket {
		if i == len(items) {
			return true
		}
		if b == items[i] {
			i++
		}
	}
	return i == len(items)
}

func itemsetKey(items []string) string {
	return strings.Join(items, "\x1f")
}

// ──────────────────────────────────────────────────────────────
// Co-ocurrencia
// ──────────────────────────────────────────────────────────────

// CoOccurrenceMiner respaldo simple: cuenta pares de productos que aparecen
// juntos y reporta los TopN. El soporte se expresa como fracción del total de
// canastas para mantener la misma escala que apriori.
type CoOccurrenceMiner struct {
	TopN int
}

// NewCoOccurrenceMiner parámetros por defecto del minero de co-ocurrencia.
func NewCoOccurrenceMiner() *CoOccurrenceMiner {
	return &CoOccurrenceMiner{TopN: 15}
}

// Mine genera una regla dirigida A→B por cada par frecuente.
func (m *CoOccurrenceMiner) Mine(baskets [][]string) []Rule {
	baskets = CleanBaskets(baskets)
	if len(baskets) == 0 {
		return nil
	}
	total := float64(len(baskets))

	itemCounts := make(map[string]int)
	pairCounts := make(map[[2]string]int)
	for _, b := range baskets {
		for _, it := range b {
			itemCounts[it]++
		}
		for i := 0; i < len(b); i++ {
			for j := i + 1; j < len(b); j++ {
				pairCounts[[2]string{b[i], b[j]}]++
			}
		}
	}

	type pair struct {
		a, b  string
		count int
	}
	pairs := make([]pair, 0, len(pairCounts))
	for k, c := range pairCounts {
		pairs = append(pairs, pair{a: k[0], b: k[1], count: c})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		if pairs[i].a != pairs[j].a {
			return pairs[i].a < pairs[j].a
		}
		return pairs[i].b < pairs[j].b
	})
	if len(pairs) > m.TopN {
		pairs = pairs[:m.TopN]
	}

	rules := make([]Rule, 0, len(pairs))
	for _, p := range pairs {
		ca := float64(itemCounts[p.a])
		cb := float64(itemCounts[p.b])
		if ca == 0 || cb == 0 {
			continue
		}
		support := float64(p.count) / total
		confidence := float64(p.count) / ca
		lift := support / ((ca / total) * (cb / total))
		rules = append(rules, Rule{
			Antecedent: []string{p.a},
			Consequent: []string{p.b},
			Support:    support,
			Confidence: confidence,
			Lift:       lift,
		})
	}
	return rules
}
