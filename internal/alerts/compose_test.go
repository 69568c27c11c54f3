package alerts

import (
	"strings"
	"testing"

	"github.com/stockalert-app/stockalert-backend/internal/stock"
)

func TestCompose_SingleProductNamesItWithStock(t *testing.T) {
	title, body := Compose([]stock.Level{{ProductID: 1, Name: "Milk", Stock: 2}}, 3)

	if !strings.Contains(title, "Milk") {
		t.Fatalf("single-product title must name the product, got %q", title)
	}
	if !strings.Contains(body, "2") {
		t.Fatalf("single-product body must carry the stock level, got %q", body)
	}
}

func TestCompose_BatchNamesFirstThreeAndCountsTheRest(t *testing.T) {
	low := []stock.Level{
		{ProductID: 1, Name: "Milk", Stock: 2},
		{ProductID: 2, Name: "Flour", Stock: 1},
		{ProductID: 3, Name: "Sugar", Stock: 0},
		{ProductID: 4, Name: "Butter", Stock: 3},
	}

	title, body := Compose(low, 3)

	if !strings.Contains(title, "4") {
		t.Fatalf("batch title must carry the count, got %q", title)
	}
	for _, name := range []string{"Milk", "Flour", "Sugar"} {
		if !strings.Contains(body, name) {
			t.Fatalf("body must name %s, got %q", name, body)
		}
	}
	if strings.Contains(body, "Butter") {
		t.Fatalf("body must not name the fourth product, got %q", body)
	}
	if !strings.Contains(body, "1 more") {
		t.Fatalf("body must count exactly 1 remaining product, got %q", body)
	}
}

func TestCompose_BatchAtLimitHasNoRemainder(t *testing.T) {
	low := []stock.Level{
		{ProductID: 1, Name: "Milk", Stock: 2},
		{ProductID: 2, Name: "Flour", Stock: 1},
		{ProductID: 3, Name: "Sugar", Stock: 0},
	}

	_, body := Compose(low, 3)

	if strings.Contains(body, "more") {
		t.Fatalf("exactly 3 products must not mention a remainder, got %q", body)
	}
	if body != "Milk, Flour, Sugar" {
		t.Fatalf("names must keep input order, got %q", body)
	}
}

func TestCompose_EmptyBatch(t *testing.T) {
	title, body := Compose(nil, 3)
	if title != "" || body != "" {
		t.Fatalf("empty batch must compose nothing, got %q / %q", title, body)
	}
}
