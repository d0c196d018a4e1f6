package ozon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "sellerbot/internal/platform/errors"
	"sellerbot/internal/platform/logger"
	kit "sellerbot/internal/platform/testkit"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	l := logger.Nop()
	return New(Options{ClientID: "cid", APIKey: "key", BaseURL: srv.URL, Log: &l})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestListNewQuestions(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/question/list" || r.Method != http.MethodPost {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Client-Id") != "cid" || r.Header.Get("Api-Key") != "key" {
			t.Errorf("auth headers = %v", r.Header)
		}
		var req questionListRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Filter.Status != "UNPROCESSED" || req.Filter.DateFrom != "2024-05-01T07:00:00Z" {
			t.Errorf("filter = %+v", req.Filter)
		}
		_, _ = io.WriteString(w, `{"questions":[
			{"id":"q-1","author_name":"Анна","published_at":"2024-05-01T07:00:00Z","sku":1001,"text":"Есть  XL?"},
			{"id":"q-2","author_name":"","published_at":"2024-05-01T09:00:00Z","sku":1002,"text":"Состав?"},
			{"id":"q-3","author_name":"Олег","published_at":"2024-05-01T08:00:00Z","sku":1003,"text":"Цвет?"}
		],"last_id":""}`)
	}))

	got, err := c.ListNewQuestions(context.Background(), 2, 1714546800)
	if err != nil {
		t.Fatalf("ListNewQuestions: %v", err)
	}
	if len(got) != 2 || got[0].ID != "q-2" || got[1].ID != "q-3" {
		t.Fatalf("questions = %+v, want [q-2 q-3]", got)
	}
	if got[0].AuthorName != "User" || got[0].ProductID != "1002" || got[1].AuthorName != "Олег" {
		t.Fatalf("questions = %+v", got)
	}
}

func TestListNewReviews(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req reviewListRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Limit != 20 || req.Status != "UNPROCESSED" || req.SortDir != "DESC" || req.LastID != "" {
			t.Errorf("review request = %+v", req)
		}
		_, _ = io.WriteString(w, `{"has_next":false,"last_id":"","reviews":[
			{"id":"r-1","sku":5,"text":"Отлично","rating":5,"photos_amount":2,"videos_amount":1,"published_at":"2024-05-01T07:00:00Z"},
			{"id":"r-0","sku":5,"text":"Старый","rating":1,"published_at":"2024-04-01T07:00:00Z"}
		]}`)
	}))

	got, err := c.ListNewReviews(context.Background(), 1, 1714546800)
	if err != nil {
		t.Fatalf("ListNewReviews: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("reviews = %+v", got)
	}
	r := got[0]
	if r.ID != "r-1" || r.AuthorName != "User" || r.Score != 5 || r.PhotosAmount != 2 || r.VideosAmount != 1 || r.ProductID != "5" {
		t.Fatalf("review = %+v", r)
	}
}

func TestErrorBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"code":7,"message":"Premium Plus required","details":[]}`)
	}))
	_, err := c.ListNewQuestions(context.Background(), 20, 0)
	if !perr.IsCode(err, perr.ErrorCodeForbidden) {
		t.Fatalf("err = %v, want forbidden", err)
	}
	kit.MustContain(t, err.Error(), "Premium Plus required")
}

func TestPremiumPlus(t *testing.T) {
	for _, body := range []string{`{"premium":true,"premium_plus":true}`, `{"premium":true,"premium_plus":false}`} {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/v1/rating/summary" {
				t.Errorf("path = %s", r.URL.Path)
			}
			_, _ = io.WriteString(w, body)
		}))
		ok, err := c.PremiumPlus(context.Background())
		if err != nil {
			t.Fatalf("PremiumPlus: %v", err)
		}
		if want := strings.Contains(body, `"premium_plus":true`); ok != want {
			t.Fatalf("PremiumPlus(%s) = %v, want %v", body, ok, want)
		}
	}
}

func TestAnswers(t *testing.T) {
	var gotQ answerCreateRequest
	var gotR commentCreateRequest
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/question/answer/create":
			_ = json.NewDecoder(r.Body).Decode(&gotQ)
			_, _ = io.WriteString(w, `{"answer_id":"a-1"}`)
		case "/v1/review/comment/create":
			_ = json.NewDecoder(r.Body).Decode(&gotR)
			_, _ = io.WriteString(w, `{"comment_id":"c-1"}`)
		default:
			t.Errorf("unexpected %s", r.URL.Path)
		}
	}))

	if err := c.AnswerQuestion(context.Background(), "q-1", "Да", " 1001 "); err != nil {
		t.Fatalf("AnswerQuestion: %v", err)
	}
	if gotQ.QuestionID != "q-1" || gotQ.SKU != 1001 || gotQ.Text != "Да" {
		t.Fatalf("question payload = %+v", gotQ)
	}
	if err := c.AnswerReview(context.Background(), "r-1", "Спасибо"); err != nil {
		t.Fatalf("AnswerReview: %v", err)
	}
	if gotR.ReviewID != "r-1" || gotR.Text != "Спасибо" || !gotR.MarkReviewAsProcessed || gotR.ParentCommentID != "" {
		t.Fatalf("review payload = %+v", gotR)
	}

	err := c.AnswerQuestion(context.Background(), "q-2", "Да", "abc")
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("bad sku err = %v, want invalid argument", err)
	}
}

func TestProducts_Paginates(t *testing.T) {
	var lists int
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v3/product/list":
			var req productListRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.Filter.Visibility != "ALL" || req.Limit != productPageLimit {
				t.Errorf("list request = %+v", req)
			}
			var resp productListResponse
			lists++
			n := productPageLimit
			if lists == 1 {
				resp.Result.LastID = "next"
			} else {
				if req.LastID != "next" {
					t.Errorf("last_id = %q, want next", req.LastID)
				}
				n = 3
			}
			for i := range n {
				resp.Result.Items = append(resp.Result.Items, struct {
					ProductID int64  `json:"product_id"`
					OfferID   string `json:"offer_id"`
				}{ProductID: int64(lists*1000 + i)})
			}
			writeJSON(w, resp)
		case "/v3/product/info/list":
			var req productInfoRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.OfferID == nil || req.SKU == nil {
				t.Errorf("info request must send empty arrays: %+v", req)
			}
			var resp productInfoResponse
			for _, id := range req.ProductID {
				resp.Items = append(resp.Items, productInfo{ID: id, SKU: id + 1, Name: fmt.Sprintf("p%d", id)})
			}
			writeJSON(w, resp)
		default:
			t.Errorf("unexpected %s", r.URL.Path)
		}
	}))

	var ids []string
	for p, err := range c.Products(context.Background()) {
		if err != nil {
			t.Fatalf("Products: %v", err)
		}
		ids = append(ids, p.ID)
	}
	if len(ids) != productPageLimit+3 || ids[0] != "1001" || ids[len(ids)-1] != "2003" {
		t.Fatalf("got %d products: first %q last %q", len(ids), ids[0], ids[len(ids)-1])
	}
}

func TestProductContext(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v3/product/info/list":
			var req productInfoRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if len(req.SKU) != 1 || req.SKU[0] != 900 {
				t.Errorf("info sku = %v", req.SKU)
			}
			_, _ = io.WriteString(w, `{"items":[{"id":42,"sku":900,"name":"Кружка","marketing_price":"499.00","currency_code":"RUB"}]}`)
		case "/v1/product/info/description":
			var req map[string]int64
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req["product_id"] != 42 {
				t.Errorf("description product_id = %v", req)
			}
			_, _ = io.WriteString(w, `{"result":{"id":42,"description":"Керамическая кружка"}}`)
		case "/v4/product/info/attributes":
			_, _ = io.WriteString(w, `{"result":[{"weight":350,"weight_unit":"g","height":10,"width":8.5,"depth":8.5,"dimension_unit":"cm",
				"description_category_id":7,"type_id":3,"attributes":[
				{"id":1,"values":[{"value":" Керамика "},{"value":"глазурь"}]},
				{"id":2,"values":[{"value":"Керамическая кружка"}]},
				{"id":3,"values":[{"value":"{\"content\":[{\"img\":\"x\",\"text\":[\"Удобная\",\"-\"]}],\"version\":0.3}"}]},
				{"id":99,"values":[{"value":"скрыто"}]}
			]}]}`)
		case "/v1/description-category/attribute":
			var req categoryAttributesRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.DescriptionCategoryID != 7 || req.TypeID != 3 || req.Language != "DEFAULT" {
				t.Errorf("category request = %+v", req)
			}
			_, _ = io.WriteString(w, `{"result":[{"id":1,"name":"Материал"},{"id":2,"name":"Аннотация"},{"id":3,"name":"Rich-контент JSON"}]}`)
		default:
			t.Errorf("unexpected %s", r.URL.Path)
		}
	}))

	pc, err := c.ProductContext(context.Background(), "900")
	if err != nil {
		t.Fatalf("ProductContext: %v", err)
	}
	if pc.Name != "Кружка" || pc.Price != "499.00 RUB" || pc.Desc != "Керамическая кружка" {
		t.Fatalf("context = %+v", pc)
	}
	if pc.Weight != "350g" || pc.Box != "height: 10cm, width: 8.5cm, depth: 8.5cm" {
		t.Fatalf("weight/box = %q / %q", pc.Weight, pc.Box)
	}
	if pc.Attrs["Материал"] != "Керамика, глазурь" {
		t.Fatalf("Материал = %q", pc.Attrs["Материал"])
	}
	if _, ok := pc.Attrs["Аннотация"]; ok {
		t.Fatalf("description attribute should be dropped: %v", pc.Attrs)
	}
	if got := pc.Attrs["Rich-контент JSON"]; got != `{"content":[{"text":["Удобная"]}]}` {
		t.Fatalf("rich = %q", got)
	}
	if len(pc.Attrs) != 2 {
		t.Fatalf("attrs = %v", pc.Attrs)
	}
}

func TestProductContext_NotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"items":[]}`)
	}))
	_, err := c.ProductContext(context.Background(), "1")
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
	_, err = c.ProductContext(context.Background(), "x")
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("err = %v, want invalid argument", err)
	}
}
