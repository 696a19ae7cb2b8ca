// Package workflow maps classification and extraction outcomes to downstream
// actions. Deciding is pure; execution belongs to the surrounding system.
package workflow

import (
	"strconv"
	"strings"

	"github.com/rootuip/docintel/internal/catalog"
	"github.com/rootuip/docintel/internal/core/domain"
)

const (
	ActionCreateShipment   = "create_shipment"
	ActionCreateInvoice    = "create_invoice"
	ActionFlagHighValue    = "flag_high_value"
	ActionAlertHazmat      = "alert_hazmat"
	ActionManualReview     = "manual_review"
	ActionVerifyExtraction = "verify_extraction"
)

const highValueThreshold = 10_000

// Engine implements ports.RuleEngine with a deterministic rule table.
type Engine struct {
	catalog             *catalog.Catalog
	confidenceThreshold float64
	verifyThreshold     float64
}

func NewEngine(cat *catalog.Catalog, confidenceThreshold, verifyThreshold float64) *Engine {
	if confidenceThreshold <= 0 {
		confidenceThreshold = 0.85
	}
	if verifyThreshold <= 0 {
		verifyThreshold = 0.7
	}
	return &Engine{
		catalog:             cat,
		confidenceThreshold: confidenceThreshold,
		verifyThreshold:     verifyThreshold,
	}
}

// Decide applies type-specific rules first, then the cross-cutting rules in a
// fixed order so the returned list is reproducible.
func (e *Engine) Decide(cls domain.Classification, ext domain.ExtractionResult) []domain.WorkflowAction {
	var actions []domain.WorkflowAction

	switch cls.TypeID {
	case "bill_of_lading":
		if bl, ok := ext.Fields["blNumber"]; ok {
			data := map[string]string{"blNumber": bl}
			if v, ok := ext.Fields["shipper"]; ok {
				data["shipper"] = v
			}
			if v, ok := ext.Fields["consignee"]; ok {
				data["consignee"] = v
			}
			actions = append(actions, domain.WorkflowAction{Action: ActionCreateShipment, Data: data})
		}
	case "commercial_invoice":
		_, hasNumber := ext.Fields["invoiceNumber"]
		amount, hasAmount := ext.Fields["totalAmount"]
		if hasNumber && hasAmount {
			actions = append(actions, domain.WorkflowAction{Action: ActionCreateInvoice, Data: copyFields(ext.Fields)})
			if v, ok := parseAmount(amount); ok && v > highValueThreshold {
				actions = append(actions, domain.WorkflowAction{
					Action: ActionFlagHighValue,
					Reason: "invoice amount exceeds threshold",
				})
			}
		}
	case "dangerous_goods":
		actions = append(actions, domain.WorkflowAction{
			Action:   ActionAlertHazmat,
			Priority: "high",
			Data:     copyFields(ext.Fields),
		})
	}

	if cls.Confidence < e.confidenceThreshold {
		actions = append(actions, domain.WorkflowAction{
			Action: ActionManualReview,
			Reason: "low classification confidence",
		})
	}
	if ext.Confidence < e.verifyThreshold {
		actions = append(actions, domain.WorkflowAction{
			Action: ActionVerifyExtraction,
			Fields: e.missingFields(cls.TypeID, ext.Fields),
		})
	}
	return actions
}

// missingFields lists the expected fields absent from the result, in catalog
// declaration order.
func (e *Engine) missingFields(typeID string, fields map[domain.FieldName]string) []domain.FieldName {
	spec, ok := e.catalog.Get(typeID)
	if !ok {
		return nil
	}
	var missing []domain.FieldName
	for _, f := range spec.Fields {
		if _, found := fields[f]; !found {
			missing = append(missing, f)
		}
	}
	return missing
}

func copyFields(fields map[domain.FieldName]string) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		out[string(k)] = v
	}
	return out
}

// parseAmount reads a numeric value out of an extracted amount string,
// tolerating currency symbols and thousands separators.
func parseAmount(s string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.':
			return r
		default:
			return -1
		}
	}, s)
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
