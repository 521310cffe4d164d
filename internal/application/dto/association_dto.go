package dto

// AssociationRuleDTO regla de asociación legible entre productos.
type AssociationRuleDTO struct {
	Antecedent string  `json:"antecedent"` // nombres de producto unidos por coma
	Consequent string  `json:"consequent"`
	Support    float64 `json:"support"`    // fracción de canastas en [0,1]
	Confidence float64 `json:"confidence"` // en [0,1]
	Lift       float64 `json:"lift"`
}

// AssociationRulesDTO respuesta de GET /api/association-rules.
type AssociationRulesDTO struct {
	Rules        []AssociationRuleDTO `json:"rules"`
	TotalBaskets int                  `json:"total_baskets"`
	Method       string               `json:"method"` // apriori|co-occurrence|none
}

// RecommendationDTO sugerencia de producto para un cliente o vendedor.
type RecommendationDTO struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Confidence  float64 `json:"confidence"` // en [0,1]
	Reason      string  `json:"reason"`
}

// RecommendationsDTO lista de recomendaciones con su origen.
type RecommendationsDTO struct {
	Recommendations []RecommendationDTO `json:"recommendations"`
	Source          string              `json:"source"` // rules|popularity|vendor-cross
}
