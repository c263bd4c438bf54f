package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	obsmetrics "github.com/packlane/packlane/internal/observability/metrics"
	obligationdomain "github.com/packlane/packlane/internal/obligation/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Repo    obligationdomain.Repository `optional:"true"`
	Metrics *obsmetrics.Metrics         `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	rules   map[string]obligationdomain.JurisdictionObligationRule
	metrics *obsmetrics.Metrics
}

func New(p Params) obligationdomain.Service {
	log := p.Log.Named("obligation.service")

	rules, err := load(p.Repo)
	if err != nil {
		log.Warn("falling back to compiled-in obligation rules", zap.Error(err))
		rules = nil
	}
	if len(rules) == 0 {
		rules = obligationdomain.DefaultObligationRules()
	}

	byCode := make(map[string]obligationdomain.JurisdictionObligationRule, len(rules))
	for _, rule := range rules {
		byCode[rule.JurisdictionCode] = rule
	}
	log.Info("obligation rules loaded", zap.Int("jurisdictions", len(byCode)))

	return &Service{log: log, rules: byCode, metrics: p.Metrics}
}

func load(repo obligationdomain.Repository) ([]obligationdomain.JurisdictionObligationRule, error) {
	if repo == nil {
		return nil, nil
	}
	return repo.ListRules(context.Background())
}

func (s *Service) Evaluate(ctx context.Context, jurisdictionCode string, annualRevenue, annualTonnage float64) (*obligationdomain.Determination, error) {
	code := strings.ToLower(strings.TrimSpace(jurisdictionCode))
	rule, ok := s.rules[code]
	if !ok {
		return nil, &obligationdomain.UnsupportedJurisdictionError{Code: jurisdictionCode}
	}

	det := evaluate(rule, annualRevenue, annualTonnage)
	if s.metrics != nil {
		s.metrics.RecordObligationEvaluation(ctx, code, det.Obligated)
	}
	return det, nil
}

func (s *Service) Rules() []obligationdomain.JurisdictionObligationRule {
	out := make([]obligationdomain.JurisdictionObligationRule, 0, len(s.rules))
	for _, rule := range s.rules {
		out = append(out, rule)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JurisdictionCode < out[j].JurisdictionCode })
	return out
}

// evaluate applies the rule's combinator. The two combinators treat a
// missing threshold differently: under OR it can never satisfy its
// term, under AND it is vacuously true. That asymmetry is deliberate
// and matched by the seeded rules.
func evaluate(rule obligationdomain.JurisdictionObligationRule, revenue, tonnage float64) *obligationdomain.Determination {
	det := &obligationdomain.Determination{JurisdictionCode: rule.JurisdictionCode}

	revenueMet := rule.RevenueThreshold != nil && revenue >= *rule.RevenueThreshold
	tonnageMet := rule.TonnageThreshold != nil && tonnage >= *rule.TonnageThreshold

	switch rule.Combinator {
	case obligationdomain.CombinatorAlways:
		det.Obligated = true
		det.Reason = fmt.Sprintf("all producers are obligated under the %s program", rule.JurisdictionCode)

	case obligationdomain.CombinatorOr:
		det.Obligated = revenueMet || tonnageMet
		switch {
		case revenueMet && tonnageMet:
			det.Reason = fmt.Sprintf("revenue %.2f meets threshold %.2f and tonnage %.2f meets threshold %.2f",
				revenue, *rule.RevenueThreshold, tonnage, *rule.TonnageThreshold)
		case revenueMet:
			det.Reason = fmt.Sprintf("revenue %.2f meets threshold %.2f", revenue, *rule.RevenueThreshold)
		case tonnageMet:
			det.Reason = fmt.Sprintf("tonnage %.2f meets threshold %.2f", tonnage, *rule.TonnageThreshold)
		default:
			det.Reason = "neither revenue nor tonnage threshold was met"
		}

	case obligationdomain.CombinatorAnd:
		revenueOK := rule.RevenueThreshold == nil || revenueMet
		tonnageOK := rule.TonnageThreshold == nil || tonnageMet
		det.Obligated = revenueOK && tonnageOK
		switch {
		case det.Obligated:
			det.Reason = "all defined thresholds were met: " + strings.Join(metTerms(rule, revenue, tonnage), ", ")
		case !revenueOK && !tonnageOK:
			det.Reason = "neither revenue nor tonnage threshold was met"
		case !revenueOK:
			det.Reason = fmt.Sprintf("revenue %.2f is below threshold %.2f", revenue, *rule.RevenueThreshold)
		default:
			det.Reason = fmt.Sprintf("tonnage %.2f is below threshold %.2f", tonnage, *rule.TonnageThreshold)
		}

	default:
		det.Reason = fmt.Sprintf("unknown combinator %q, producer treated as not obligated", rule.Combinator)
	}

	return det
}

func metTerms(rule obligationdomain.JurisdictionObligationRule, revenue, tonnage float64) []string {
	var terms []string
	if rule.RevenueThreshold != nil {
		terms = append(terms, fmt.Sprintf("revenue %.2f >= %.2f", revenue, *rule.RevenueThreshold))
	}
	if rule.TonnageThreshold != nil {
		terms = append(terms, fmt.Sprintf("tonnage %.2f >= %.2f", tonnage, *rule.TonnageThreshold))
	}
	if len(terms) == 0 {
		terms = append(terms, "no thresholds defined")
	}
	return terms
}
