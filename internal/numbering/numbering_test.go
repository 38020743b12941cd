package numbering

import (
	"errors"
	"testing"

	"github.com/mvp-joe/project-classdoc/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Number:
// - Two namespaces (2 then 1 types) from start 3 yield 3.1, 3.1.1, 3.1.2, 3.2, 3.2.1
// - Grouping is stable by first appearance, not sorted
// - Interleaved namespaces are regrouped keeping type order
// - Non-positive start index is rejected
// - Empty input yields no sections
// - Namespace display drops the first segment and joins with "/"

func entity(ns, name string) model.TypeEntity {
	return model.TypeEntity{Namespace: ns, Name: name}
}

func labels(sections []Section) []string {
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = s.Label() + " " + s.Title
	}
	return out
}

func TestNumber_TwoNamespaces(t *testing.T) {
	t.Parallel()

	sections, err := Number([]model.TypeEntity{
		entity("Shop.Models", "Order"),
		entity("Shop.Models", "Line"),
		entity("Shop.Services", "Mailer"),
	}, 3)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"3.1 Models",
		"3.1.1 Order",
		"3.1.2 Line",
		"3.2 Services",
		"3.2.1 Mailer",
	}, labels(sections))

	assert.True(t, sections[0].IsNamespace())
	assert.Equal(t, 2, sections[0].Level())
	assert.False(t, sections[1].IsNamespace())
	assert.Equal(t, 3, sections[1].Level())
	assert.Equal(t, "Order", sections[1].Entity.Name)
}

func TestNumber_FirstSeenOrder(t *testing.T) {
	t.Parallel()

	sections, err := Number([]model.TypeEntity{
		entity("App.Zeta", "Z1"),
		entity("App.Alpha", "A1"),
		entity("App.Zeta", "Z2"),
		entity("App.Alpha", "A2"),
	}, 1)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"1.1 Zeta",
		"1.1.1 Z1",
		"1.1.2 Z2",
		"1.2 Alpha",
		"1.2.1 A1",
		"1.2.2 A2",
	}, labels(sections))
}

func TestNumber_InvalidStart(t *testing.T) {
	t.Parallel()

	for _, start := range []int{0, -1} {
		_, err := Number([]model.TypeEntity{entity("A.B", "C")}, start)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidStartIndex))
	}
}

func TestNumber_Empty(t *testing.T) {
	t.Parallel()

	sections, err := Number(nil, 1)
	require.NoError(t, err)
	assert.Empty(t, sections)
}

func TestNumber_EntitiesAreCopied(t *testing.T) {
	t.Parallel()

	input := []model.TypeEntity{entity("A.B", "C")}
	sections, err := Number(input, 1)
	require.NoError(t, err)

	input[0].Name = "changed"
	assert.Equal(t, "C", sections[1].Entity.Name)
}

func TestDisplayNamespace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Company.Shop.Models", "Shop/Models"},
		{"Company.Shop", "Shop"},
		{"Global", "Global"},
		{"Shop", "Shop"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DisplayNamespace(tt.in), tt.in)
	}
}
