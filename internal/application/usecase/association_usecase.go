package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/siddzzzz/Software-Monitization/internal/application/dto"
	"github.com/siddzzzz/Software-Monitization/internal/domain"
	"github.com/siddzzzz/Software-Monitization/internal/domain/dataset"
	"github.com/siddzzzz/Software-Monitization/internal/domain/ml"
)

const (
	recommendationsTopN = 5
	productNameMaxLen   = 40
)

// AssociationUseCase mina reglas de asociación entre productos y las traduce
// en recomendaciones por cliente y por proveedor. Sin reglas utilizables cae
// a popularidad entre clientes similares: una lista vacía es un resultado
// válido, nunca un error.
type AssociationUseCase struct {
	store *dataset.Store
}

// NewAssociationUseCase construye el caso de uso.
func NewAssociationUseCase(store *dataset.Store) *AssociationUseCase {
	return &AssociationUseCase{store: store}
}

// Rules reglas de asociación con nombres de producto legibles.
func (uc *AssociationUseCase) Rules(_ context.Context) (*dto.AssociationRulesDTO, error) {
	snap := uc.store.Current()
	baskets := ml.CleanBaskets(snap.Baskets())
	rules, method := ml.MineRules(baskets)

	out := &dto.AssociationRulesDTO{
		Rules:        make([]dto.AssociationRuleDTO, 0, len(rules)),
		TotalBaskets: len(baskets),
		Method:       method,
	}
	for _, r := range rules {
		out.Rules = append(out.Rules, dto.AssociationRuleDTO{
			Antecedent: joinProductNames(snap, r.Antecedent),
			Consequent: joinProductNames(snap, r.Consequent),
			Support:    r.Support,
			Confidence: r.Confidence,
			Lift:       r.Lift,
		})
	}
	return out, nil
}

// RecommendForCustomer sugiere productos que el cliente no tiene, primero por
// reglas cuyo antecedente está contenido en su canasta y, si no hay, por
// popularidad entre clientes con compras en común.
func (uc *AssociationUseCase) RecommendForCustomer(_ context.Context, customerID string) (*dto.RecommendationsDTO, error) {
	snap := uc.store.Current()
	if _, ok := snap.CustomerByID(customerID); !ok {
		return nil, domain.ErrCustomerNotFound
	}

	owned := make(map[string]bool)
	for _, id := range snap.Basket(customerID) {
		owned[id] = true
	}

	if recs := uc.ruleRecommendations(snap, owned); len(recs) > 0 {
		return &dto.RecommendationsDTO{Recommendations: recs, Source: "rules"}, nil
	}

	recs := uc.popularityRecommendations(snap, customerID, owned)
	return &dto.RecommendationsDTO{Recommendations: recs, Source: "popularity"}, nil
}

// RecommendForVendor sugiere a un proveedor los productos de otros proveedores
// que sus clientes ya compran, como candidatos de alianza o cross-sell.
func (uc *AssociationUseCase) RecommendForVendor(_ context.Context, vendorID string) (*dto.RecommendationsDTO, error) {
	snap := uc.store.Current()
	if _, ok := snap.VendorByID(vendorID); !ok {
		return nil, domain.ErrVendorNotFound
	}

	own := make(map[string]bool)
	for _, id := range snap.ProductsOfVendor(vendorID) {
		own[id] = true
	}

	// Compradores del proveedor y qué más compran.
	buyers := 0
	counts := make(map[string]int)
	for _, c := range snap.Customers {
		basket := snap.Basket(c.ID)
		isBuyer := false
		for _, id := range basket {
			if own[id] {
				isBuyer = true
				break
			}
		}
		if !isBuyer {
			continue
		}
		buyers++
		for _, id := range basket {
			if !own[id] {
				counts[id]++
			}
		}
	}

	recs := rankCounts(snap, counts, buyers, func(count int) string {
		return fmt.Sprintf("Bought by %d of your customers", count)
	})
	return &dto.RecommendationsDTO{Recommendations: recs, Source: "vendor-cross"}, nil
}

// ruleRecommendations productos de consecuentes cuyas reglas tienen el
// antecedente completo dentro de la canasta del cliente, ordenados por
// confianza descendente; un producto aparece una sola vez con su mejor regla.
func (uc *AssociationUseCase) ruleRecommendations(snap *dataset.Snapshot, owned map[string]bool) []dto.RecommendationDTO {
	rules, _ := ml.MineRules(snap.Baskets())

	best := make(map[string]dto.RecommendationDTO)
	for _, r := range rules {
		if !containsAllOwned(r.Antecedent, owned) {
			continue
		}
		for _, productID := range r.Consequent {
			if owned[productID] {
				continue
			}
			if prev, ok := best[productID]; ok && prev.Confidence >= r.Confidence {
				continue
			}
			best[productID] = dto.RecommendationDTO{
				ProductID:   productID,
				ProductName: truncateName(snap.ProductName(productID), productNameMaxLen),
				Confidence:  r.Confidence,
				Reason:      fmt.Sprintf("Frequently bought with %s", joinProductNames(snap, r.Antecedent)),
			}
		}
	}

	recs := make([]dto.RecommendationDTO, 0, len(best))
	for _, rec := range best {
		recs = append(recs, rec)
	}
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Confidence != recs[j].Confidence {
			return recs[i].Confidence > recs[j].Confidence
		}
		return recs[i].ProductID < recs[j].ProductID
	})
	if len(recs) > recommendationsTopN {
		recs = recs[:recommendationsTopN]
	}
	return recs
}

// popularityRecommendations respaldo: lo que más compran los clientes que
// comparten al menos un producto con el cliente objetivo.
func (uc *AssociationUseCase) popularityRecommendations(snap *dataset.Snapshot, customerID string, owned map[string]bool) []dto.RecommendationDTO {
	similar := 0
	counts := make(map[string]int)
	for _, c := range snap.Customers {
		if c.ID == customerID {
			continue
		}
		basket := snap.Basket(c.ID)
		shares := false
		for _, id := range basket {
			if owned[id] {
				shares = true
				break
			}
		}
		if !shares {
			continue
		}
		similar++
		for _, id := range basket {
			if !owned[id] {
				counts[id]++
			}
		}
	}

	return rankCounts(snap, counts, similar, func(count int) string {
		return fmt.Sprintf("Popular among %d similar customers", count)
	})
}

// rankCounts convierte conteos por producto en recomendaciones ordenadas por
// confianza (conteo sobre población, recortada a 1) con desempate por id.
func rankCounts(snap *dataset.Snapshot, counts map[string]int, population int, reason func(count int) string) []dto.RecommendationDTO {
	if population == 0 || len(counts) == 0 {
		return []dto.RecommendationDTO{}
	}

	recs := make([]dto.RecommendationDTO, 0, len(counts))
	for productID, count := range counts {
		confidence := float64(count) / float64(population)
		if confidence > 1 {
			confidence = 1
		}
		recs = append(recs, dto.RecommendationDTO{
			ProductID:   productID,
			ProductName: truncateName(snap.ProductName(productID), productNameMaxLen),
			Confidence:  confidence,
			Reason:      reason(count),
		})
	}
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Confidence != recs[j].Confidence {
			return recs[i].Confidence > recs[j].Confidence
		}
		return recs[i].ProductID < recs[j].ProductID
	})
	if len(recs) > recommendationsTopN {
		recs = recs[:recommendationsTopN]
	}
	return recs
}

func containsAllOwned(items []string, owned map[string]bool) bool {
	for _, id := range items {
		if !owned[id] {
			return false
		}
	}
	return len(items) > 0
}

func joinProductNames(snap *dataset.Snapshot, ids []string) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, truncateName(snap.ProductName(id), productNameMaxLen))
	}
	return strings.Join(names, ", ")
}

// truncateName recorta por runas para no partir nombres multibyte a mitad.
func truncateName(name string, max int) string {
	runes := []rune(name)
	if len(runes) <= max {
		return name
	}
	return string(runes[:max-3]) + "..."
}
