package models

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSummarizeGroupsAndConserves(t *testing.T) {
	rows := []CategorizedTransaction{
		{Transaction{"a", d("10.10")}, "Food"},
		{Transaction{"b", d("-2000")}, "Income"},
		{Transaction{"c", d("0.20")}, "Food"},
		{Transaction{"d", d("5")}, "food"},
	}
	s := Summarize(rows)

	if got := s.Categories(); !reflect.DeepEqual(got, []string{"Food", "Income", "food"}) {
		t.Fatalf("categories = %v", got)
	}
	if food, _ := s.Get("Food"); !food.Equal(d("10.30")) {
		t.Fatalf("Food = %s, want 10.30", food)
	}
	if lower, ok := s.Get("food"); !ok || !lower.Equal(d("5")) {
		t.Fatalf("grouping must be exact-match, food = %s", lower)
	}

	sum := decimal.Zero
	for _, r := range rows {
		sum = sum.Add(r.Amount)
	}
	if !s.Total().Equal(sum) {
		t.Fatalf("total %s != sum of rows %s", s.Total(), sum)
	}
}

func TestSummaryCloneIsIndependent(t *testing.T) {
	s := NewCategorySummary()
	s.Add("Food", d("1"))
	c := s.Clone()
	c.Add("Food", d("1"))
	c.Add("Health", d("3"))

	if v, _ := s.Get("Food"); !v.Equal(d("1")) {
		t.Fatalf("original mutated: %s", v)
	}
	if s.Len() != 1 || c.Len() != 2 {
		t.Fatalf("len original=%d clone=%d", s.Len(), c.Len())
	}
}

func TestInsightStatus(t *testing.T) {
	if (Insight{Budget: d("10"), Spent: d("10")}).Status() != "under budget" {
		t.Fatalf("at budget should be under budget")
	}
	if (Insight{Budget: d("10"), Spent: d("10.01")}).Status() != "over budget" {
		t.Fatalf("expected over budget")
	}
}
