package prompt

import (
	"strings"
	"testing"

	"sellerbot/internal/adapters/marketplace"
	"sellerbot/internal/core/feedback"
)

func TestShippedTemplates_Render(t *testing.T) {
	s, err := Open("../../../templates")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	entries, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, e := range entries {
		if !e.Exists {
			t.Fatalf("template %s is in the manifest but has no file", e.Name)
		}
	}

	product := marketplace.ProductContext{Name: "Кружка", Price: "499 RUB", Attrs: map[string]string{"Цвет": "белый"}}
	cases := map[string]any{
		Question: map[string]any{
			"Place": "Wildberries", "Summary": "керамика",
			"Question": feedback.Question{AuthorName: "Анна", Text: "Можно в посудомойку?"},
		},
		Review: map[string]any{
			"Place": "Ozon", "Summary": "",
			"Review": feedback.Review{AuthorName: "Пётр", Text: "Отлично", Score: 5},
		},
		ProductSummary: map[string]any{"Place": "Wildberries", "Product": product},
	}
	want := map[string]string{Question: "посудомойку", Review: "Отлично", ProductSummary: "Цвет: белый;"}
	for name, data := range cases {
		out, err := s.Render(name, data)
		if err != nil {
			t.Fatalf("Render(%s): %v", name, err)
		}
		if !strings.Contains(out, want[name]) {
			t.Fatalf("Render(%s) = %q, want it to contain %q", name, out, want[name])
		}
	}
}
