package ozon

import (
	"context"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"sellerbot/internal/adapters/marketplace"
	perr "sellerbot/internal/platform/errors"
)

const (
	visibilityAll   = "ALL"
	languageDefault = "DEFAULT"
	richPrefix      = "Rich-"
	richSuffix      = "JSON"
)

// Products implements marketplace.Seller; the product list only carries
// product ids so every page is resolved to skus and names through info/list
func (c *Client) Products(ctx context.Context) iter.Seq2[marketplace.Product, error] {
	return func(yield func(marketplace.Product, error) bool) {
		var req productListRequest
		req.Filter.Visibility = visibilityAll
		req.Limit = productPageLimit
		for {
			var page productListResponse
			if err := c.post(ctx, "/v3/product/list", req, &page); err != nil {
				yield(marketplace.Product{}, err)
				return
			}
			if len(page.Result.Items) > 0 {
				ids := make([]int64, 0, len(page.Result.Items))
				for _, it := range page.Result.Items {
					ids = append(ids, it.ProductID)
				}
				infos, err := c.productInfo(ctx, productInfoRequest{ProductID: ids})
				if err != nil {
					yield(marketplace.Product{}, err)
					return
				}
				for _, in := range infos {
					if !yield(marketplace.Product{ID: strconv.FormatInt(in.SKU, 10), Name: in.Name}, nil) {
						return
					}
				}
			}
			if len(page.Result.Items) < productPageLimit || page.Result.LastID == "" {
				return
			}
			req.LastID = page.Result.LastID
		}
	}
}

func (c *Client) productInfo(ctx context.Context, req productInfoRequest) ([]productInfo, error) {
	if req.OfferID == nil {
		req.OfferID = []string{}
	}
	if req.ProductID == nil {
		req.ProductID = []int64{}
	}
	if req.SKU == nil {
		req.SKU = []int64{}
	}
	var resp productInfoResponse
	if err := c.post(ctx, "/v3/product/info/list", req, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// ProductContext implements marketplace.Seller; productID is a sku
func (c *Client) ProductContext(ctx context.Context, productID string) (marketplace.ProductContext, error) {
	productID = strings.TrimSpace(productID)
	sku, err := strconv.ParseInt(productID, 10, 64)
	if err != nil {
		return marketplace.ProductContext{}, perr.WithField(perr.InvalidArgf("ozon product: bad sku %q", productID), "product_id")
	}

	infos, err := c.productInfo(ctx, productInfoRequest{SKU: []int64{sku}})
	if err != nil {
		return marketplace.ProductContext{}, perr.Wrapf(err, perr.CodeOf(err), "ozon product info %d", sku)
	}
	if len(infos) == 0 {
		return marketplace.ProductContext{}, perr.NotFoundf("ozon product %d not found", sku)
	}
	info := infos[0]

	var desc descriptionResponse
	if err := c.post(ctx, "/v1/product/info/description", map[string]int64{"product_id": info.ID}, &desc); err != nil {
		return marketplace.ProductContext{}, perr.Wrapf(err, perr.CodeOf(err), "ozon product description %d", sku)
	}

	var areq attributesRequest
	areq.Filter.SKU = []int64{sku}
	areq.Limit = 1
	var aresp attributesResponse
	if err := c.post(ctx, "/v4/product/info/attributes", areq, &aresp); err != nil {
		return marketplace.ProductContext{}, perr.Wrapf(err, perr.CodeOf(err), "ozon product attributes %d", sku)
	}
	if len(aresp.Result) == 0 {
		return marketplace.ProductContext{}, perr.NotFoundf("ozon product %d has no attributes", sku)
	}
	pa := aresp.Result[0]

	names, err := c.attributeNames(ctx, pa.DescriptionCategoryID, pa.TypeID)
	if err != nil {
		return marketplace.ProductContext{}, perr.Wrapf(err, perr.CodeOf(err), "ozon category attributes %d", sku)
	}

	return marketplace.ProductContext{
		ID:     productID,
		Name:   info.Name,
		Price:  strings.TrimSpace(info.MarketingPrice + " " + info.CurrencyCode),
		Desc:   desc.Result.Description,
		Attrs:  namedAttributes(pa.Attributes, names, desc.Result.Description),
		Weight: num(pa.Weight) + pa.WeightUnit,
		Box: fmt.Sprintf("height: %s%s, width: %s%s, depth: %s%s",
			num(pa.Height), pa.DimensionUnit, num(pa.Width), pa.DimensionUnit, num(pa.Depth), pa.DimensionUnit),
	}, nil
}

func (c *Client) attributeNames(ctx context.Context, categoryID, typeID int64) (map[int64]string, error) {
	req := categoryAttributesRequest{DescriptionCategoryID: categoryID, Language: languageDefault, TypeID: typeID}
	var resp categoryAttributesResponse
	if err := c.post(ctx, "/v1/description-category/attribute", req, &resp); err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(resp.Result))
	for _, a := range resp.Result {
		names[a.ID] = a.Name
	}
	return names, nil
}

// namedAttributes keys values by their category attribute name. The first
// attribute repeating the description is dropped and the first rich content
// attribute is sanitized
func namedAttributes(attrs []productAttribute, names map[int64]string, desc string) map[string]string {
	out := make(map[string]string, len(attrs))
	descSeen, richSeen := false, false
	for _, a := range attrs {
		name, ok := names[a.ID]
		if !ok {
			continue
		}
		vals := make([]string, 0, len(a.Values))
		for _, v := range a.Values {
			if s := strings.TrimSpace(v.Value); s != "" {
				vals = append(vals, s)
			}
		}
		value := strings.Join(vals, ", ")

		if !descSeen && desc != "" && value == strings.TrimSpace(desc) {
			descSeen = true
			continue
		}
		if !richSeen && strings.HasPrefix(name, richPrefix) && strings.HasSuffix(name, richSuffix) {
			richSeen = true
			value = marketplace.SanitizeRichJSON(value, marketplace.OzonRichBlacklist)
		}
		out[name] = value
	}
	return out
}

func num(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
