package services

import (
	"strings"

	"journeybuilder/domain/core/entities"
	"journeybuilder/domain/core/valueobjects"
)

// actionOutcomes maps the named exits of action nodes to their labels
var actionOutcomes = map[string]valueobjects.LabelType{
	"on-delivered":    valueobjects.LabelSuccess,
	"on-opened":       valueobjects.LabelSuccess,
	"on-clicked":      valueobjects.LabelSuccess,
	"on-read":         valueobjects.LabelSuccess,
	"on-converted":    valueobjects.LabelSuccess,
	"on-success":      valueobjects.LabelSuccess,
	"on-bounce":       valueobjects.LabelFailure,
	"on-failed":       valueobjects.LabelFailure,
	"on-error":        valueobjects.LabelFailure,
	"on-unsubscribed": valueobjects.LabelFailure,
	"on-dismiss":      valueobjects.LabelTimeout,
	"on-timeout":      valueobjects.LabelTimeout,
}

// ActionOutcomeHandles lists the recognised action exits in a stable order
func ActionOutcomeHandles() []string {
	return []string{
		"on-delivered", "on-opened", "on-clicked", "on-read", "on-converted", "on-success",
		"on-bounce", "on-failed", "on-error", "on-unsubscribed",
		"on-dismiss", "on-timeout",
	}
}

// DeriveEdgeLabel computes the label of a new edge leaving source through
// handle. A nil source (unknown id) gets no label.
func DeriveEdgeLabel(source *entities.JourneyNode, handle string) valueobjects.EdgeLabel {
	if source == nil {
		return valueobjects.NoLabel
	}

	category := source.Data.Category
	if category == "" {
		category, _ = source.Type.DefaultCategory()
	}

	switch {
	case category == valueobjects.CategoryCondition:
		switch handle {
		case valueobjects.HandleYes, valueobjects.HandleTrue:
			return valueobjects.EdgeLabel{Text: "Yes", Type: valueobjects.LabelSuccess}
		case valueobjects.HandleNo, valueobjects.HandleFalse:
			return valueobjects.EdgeLabel{Text: "No", Type: valueobjects.LabelFailure}
		default:
			return valueobjects.EdgeLabel{Text: "Match", Type: valueobjects.LabelSuccess}
		}

	case category == valueobjects.CategoryAction && handle != "" && handle != valueobjects.HandleDefault:
		labelType, ok := actionOutcomes[handle]
		if !ok {
			return valueobjects.NoLabel
		}
		return valueobjects.EdgeLabel{Text: titleFromHandle(handle), Type: labelType}

	case source.Type == valueobjects.TypeSplit:
		return valueobjects.EdgeLabel{Text: "Branch", Type: valueobjects.LabelNone}

	case category == valueobjects.CategoryFlow && source.Type.IsWait():
		return valueobjects.EdgeLabel{Text: "Continue", Type: valueobjects.LabelTimeout}
	}

	return valueobjects.NoLabel
}

// titleFromHandle turns "on-bounce" into "On Bounce"
func titleFromHandle(handle string) string {
	words := strings.Split(handle, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
