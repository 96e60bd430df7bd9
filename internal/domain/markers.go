package domain

import (
	"fmt"

	m "rsdisco.dev/pkg/rsdisco/internal/model"
)

// interpretedItem is a function with its attributes and parameter markers
// already interpreted.
type interpretedItem struct {
	item    m.SourceItem
	attrs   []m.Attribute
	markers []m.ParameterMarker
	diags   []m.Diagnostic
}

func (it interpretedItem) has(kind m.AttributeKind) bool {
	for _, attr := range it.attrs {
		if attr.Kind == kind {
			return true
		}
	}

	return false
}

func (it interpretedItem) base() string {
	return joinPath(it.item.QualifiedPath)
}

// interpretItem runs the attribute interpreter over a function and its
// parameters. Invalid arguments become diagnostics; the attribute is kept
// with whatever could be interpreted.
func interpretItem(unit m.Path, item m.SourceItem) interpretedItem {
	it := interpretedItem{item: item}

	for _, record := range item.Attributes {
		attr, err := InterpretItemAttribute(record)
		if err != nil {
			it.diags = append(it.diags, newDiagnostic(m.DiagInvalidArgument, err.Error(), unit, it.base(), record.Span))
		}

		it.attrs = append(it.attrs, attr)
	}

	for _, param := range item.Params {
		marker, diags := classifyParameter(unit, it.base(), param)
		it.markers = append(it.markers, marker)
		it.diags = append(it.diags, diags...)
	}

	return it
}

// classifyParameter folds a parameter's attributes into one ParameterMarker.
// A second exclusive marker (case/values/files) sets Conflict.
func classifyParameter(unit m.Path, item string, param m.Parameter) (m.ParameterMarker, []m.Diagnostic) {
	marker := m.ParameterMarker{Kind: m.MarkerFixture}
	exclusive := 0

	var diags []m.Diagnostic

	for _, record := range param.Attributes {
		attr, err := InterpretParamAttribute(record)
		if err != nil {
			diags = append(diags, newDiagnostic(m.DiagInvalidArgument,
				fmt.Sprintf("parameter `%s`: %v", param.Name, err), unit, item, record.Span))

			continue
		}

		switch attr.Kind {
		case m.AttrCaseMarker:
			marker.Kind = m.MarkerCase
			exclusive++
		case m.AttrValues:
			marker.Kind = m.MarkerValues
			marker.Values = attr.Values
			exclusive++
		case m.AttrFiles:
			marker.Kind = m.MarkerFiles
			marker.Values = attr.Values
			exclusive++
		case m.AttrFuture:
			marker.Future = true
			marker.Awaited = marker.Awaited || attr.Awaited
		case m.AttrFrom:
			marker.From = attr.Label
		case m.AttrWith:
			marker.With = attr.Values
		case m.AttrDefault:
			v := attr.Values[0]
			marker.Default = &v
		}
	}

	if exclusive > 1 {
		marker.Conflict = true
		diags = append(diags, newDiagnostic(m.DiagConflictingMarkers,
			fmt.Sprintf("parameter `%s` combines case, values or files markers", param.Name), unit, item, param.Span))
	}

	return marker, diags
}

func newDiagnostic(kind m.DiagnosticKind, message string, unit m.Path, item string, span m.Span) m.Diagnostic {
	return m.Diagnostic{Kind: kind, Message: message, Unit: unit, Item: item, Span: span}
}
