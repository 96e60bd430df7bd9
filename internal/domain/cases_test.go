package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsdisco.dev/pkg/rsdisco/internal/domain"
	m "rsdisco.dev/pkg/rsdisco/internal/model"
)

func caseAttr(label string, values ...string) m.Attribute {
	attr := m.Attribute{Kind: m.AttrCase, Flavor: m.FlavorRstest, Label: label}
	for _, v := range values {
		attr.Values = append(attr.Values, domain.ParseValue(v))
	}

	return attr
}

func timeoutAttr(d time.Duration) m.Attribute {
	return m.Attribute{Kind: m.AttrTimeout, Timeout: &d}
}

func TestExpandCases_IndexesInSourceOrder(t *testing.T) {
	attrs := []m.Attribute{
		{Kind: m.AttrParameterized},
		caseAttr("", "0"),
		{Kind: m.AttrUnrecognized},
		caseAttr("big", "100"),
		caseAttr("", "7"),
	}

	list := domain.ExpandCases(attrs)

	require.Len(t, list.Cases, 3)

	for i, c := range list.Cases {
		assert.Equal(t, i, c.Index)
	}

	assert.Equal(t, "big", list.Cases[1].Label)
	assert.Equal(t, int64(7), list.Cases[2].Values[0].Int)
	assert.Nil(t, list.Default)
}

func TestExpandCases_TimeoutPlacement(t *testing.T) {
	attrs := []m.Attribute{
		timeoutAttr(time.Second),
		caseAttr("", "1"),
		caseAttr("", "2"),
		timeoutAttr(2 * time.Second),
		caseAttr("", "3"),
		caseAttr("", "4"),
		timeoutAttr(4 * time.Second),
	}

	list := domain.ExpandCases(attrs)

	require.Len(t, list.Cases, 4)
	assert.Equal(t, ms(1000), list.Default)
	assert.Nil(t, list.Cases[0].Timeout)
	assert.Nil(t, list.Cases[1].Timeout)
	assert.Equal(t, ms(2000), list.Cases[2].Timeout)
	assert.Equal(t, ms(4000), list.Cases[3].Timeout)

	assert.Equal(t, ms(1000), list.EffectiveTimeout(list.Cases[0]))
	assert.Equal(t, ms(2000), list.EffectiveTimeout(list.Cases[2]))
}

func TestExpandCases_LastTimeoutWins(t *testing.T) {
	attrs := []m.Attribute{
		timeoutAttr(time.Second),
		timeoutAttr(3 * time.Second),
		caseAttr("", "1"),
		timeoutAttr(5 * time.Second),
		timeoutAttr(6 * time.Second),
		caseAttr("", "2"),
	}

	list := domain.ExpandCases(attrs)

	assert.Equal(t, ms(3000), list.Default)
	assert.Equal(t, ms(6000), list.Cases[1].Timeout)
}

func TestExpandCases_NoCases(t *testing.T) {
	list := domain.ExpandCases([]m.Attribute{{Kind: m.AttrTest}, timeoutAttr(time.Minute)})

	assert.Empty(t, list.Cases)
	assert.Equal(t, ms(60000), list.Default)
}

func TestExpandCases_IgnoresUninterpretedTimeout(t *testing.T) {
	list := domain.ExpandCases([]m.Attribute{caseAttr("", "1"), {Kind: m.AttrTimeout}})

	require.Len(t, list.Cases, 1)
	assert.Nil(t, list.Cases[0].Timeout)
}

func TestCombine(t *testing.T) {
	axes := []domain.Axis{
		{Param: "a", Values: []m.Value{{Raw: "1"}, {Raw: "2"}}},
		{Param: "b", Values: []m.Value{{Raw: "x"}, {Raw: "y"}, {Raw: "z"}}},
	}

	assert.Equal(t, [][]int{
		{0, 0}, {0, 1}, {0, 2},
		{1, 0}, {1, 1}, {1, 2},
	}, domain.Combine(axes))
}

func TestCombine_EmptyAxis(t *testing.T) {
	axes := []domain.Axis{
		{Param: "a", Values: []m.Value{{Raw: "1"}}},
		{Param: "b"},
	}

	assert.Empty(t, domain.Combine(axes))
	assert.Nil(t, domain.Combine(nil))
}

func TestCombine_SingleAxis(t *testing.T) {
	axes := []domain.Axis{{Param: "a", Values: []m.Value{{Raw: "1"}, {Raw: "2"}, {Raw: "3"}}}}

	assert.Equal(t, [][]int{{0}, {1}, {2}}, domain.Combine(axes))
}
