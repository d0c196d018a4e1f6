package wb

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"net/url"
	"strconv"
	"strings"

	"sellerbot/internal/adapters/marketplace"
	perr "sellerbot/internal/platform/errors"
)

func (c *Client) cards(ctx context.Context, cursor cardsCursor, search string) (cardsResponse, error) {
	var req cardsRequest
	req.Settings.Cursor = cursor
	req.Settings.Filter = cardsFilter{WithPhoto: -1, TextSearch: search}
	var resp cardsResponse
	err := c.api.Post(ctx, c.opts.ContentURL+"/content/v2/get/cards/list", req, &resp)
	return resp, err
}

// Products implements marketplace.Seller, paging the content API by cursor
func (c *Client) Products(ctx context.Context) iter.Seq2[marketplace.Product, error] {
	return func(yield func(marketplace.Product, error) bool) {
		cursor := cardsCursor{Limit: productPageLimit}
		for {
			page, err := c.cards(ctx, cursor, "")
			if err != nil {
				yield(marketplace.Product{}, err)
				return
			}
			for _, cd := range page.Cards {
				p := marketplace.Product{ID: strconv.FormatInt(cd.NmID, 10), Name: cd.Title}
				if !yield(p, nil) {
					return
				}
			}
			if page.Cursor.Total < productPageLimit {
				return
			}
			cursor.UpdatedAt = page.Cursor.UpdatedAt
			cursor.NmID = page.Cursor.NmID
		}
	}
}

// ProductContext implements marketplace.Seller
func (c *Client) ProductContext(ctx context.Context, productID string) (marketplace.ProductContext, error) {
	productID = strings.TrimSpace(productID)
	page, err := c.cards(ctx, cardsCursor{Limit: 1}, productID)
	if err != nil {
		return marketplace.ProductContext{}, perr.Wrapf(err, perr.CodeOf(err), "wb product card %s", productID)
	}
	if len(page.Cards) == 0 {
		return marketplace.ProductContext{}, perr.NotFoundf("wb product %s not found", productID)
	}
	cd := page.Cards[0]

	attrs := map[string]string{
		"Бренд":     cd.Brand,
		"Категория": cd.SubjectName,
	}
	for _, ch := range cd.Characteristics {
		attrs[ch.Name] = string(ch.Value)
	}
	if rich, ok := c.richContent(ctx, cd); ok {
		attrs["Rich-контент JSON"] = rich
	}

	pc := marketplace.ProductContext{
		ID:     productID,
		Name:   cd.Title,
		Desc:   cd.Description,
		Attrs:  attrs,
		Weight: marketplace.Unknown,
		Box:    marketplace.Unknown,
		Price:  c.price(ctx, productID),
	}
	if d := cd.Dimensions; d != nil {
		pc.Weight = num(d.WeightBrutto)
		pc.Box = fmt.Sprintf("height: %s, width: %s, length: %s", num(d.Height), num(d.Width), num(d.Length))
	}
	return pc, nil
}

// richContent loads the seller's rich description stored next to the first photo
func (c *Client) richContent(ctx context.Context, cd card) (string, bool) {
	if len(cd.Photos) == 0 {
		return "", false
	}
	basket, _, found := strings.Cut(cd.Photos[0].Big, "/images/")
	if !found {
		return "", false
	}
	var raw json.RawMessage
	if err := c.raw.Get(ctx, basket+"/info/ru/rich_v1.json", &raw); err != nil {
		c.log.Debug().Err(err).Int64("nm_id", cd.NmID).Msg("rich content unavailable")
		return "Empty", true
	}
	return marketplace.SanitizeRichJSON(string(raw), marketplace.WBRichBlacklist), true
}

// price is best effort; failures give Unknown
func (c *Client) price(ctx context.Context, productID string) string {
	nm, err := strconv.ParseInt(productID, 10, 64)
	if err != nil {
		return marketplace.Unknown
	}
	q := url.Values{}
	q.Set("limit", "1")
	q.Set("filterNmID", strconv.FormatInt(nm, 10))

	var env envelope[goodsList]
	if err := c.api.Get(ctx, c.opts.PricesURL+"/api/v2/list/goods/filter?"+q.Encode(), &env); err != nil {
		c.log.Debug().Err(err).Str("product_id", productID).Msg("price unavailable")
		return marketplace.Unknown
	}
	if env.Data == nil || len(env.Data.ListGoods) == 0 {
		return marketplace.Unknown
	}
	g := env.Data.ListGoods[0]
	amount := marketplace.Unknown
	if len(g.Sizes) > 0 {
		amount = num(g.Sizes[0].DiscountedPrice)
	}
	return amount + " " + g.CurrencyIsoCode4217
}

func num(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
