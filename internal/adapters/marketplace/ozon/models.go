package ozon

type ratingSummary struct {
	Premium              bool `json:"premium"`
	PremiumPlus          bool `json:"premium_plus"`
	PenaltyScoreExceeded bool `json:"penalty_score_exceeded"`
}

type questionFilter struct {
	Status   string `json:"status"`
	DateFrom string `json:"date_from,omitempty"`
}

type questionListRequest struct {
	Filter questionFilter `json:"filter"`
	LastID string         `json:"last_id"`
}

type question struct {
	ID           string `json:"id"`
	AuthorName   string `json:"author_name"`
	PublishedAt  string `json:"published_at"`
	SKU          int64  `json:"sku"`
	Text         string `json:"text"`
	Status       string `json:"status"`
	AnswersCount int64  `json:"answers_count"`
}

type questionListResponse struct {
	Questions []question `json:"questions"`
	LastID    string     `json:"last_id"`
}

type reviewListRequest struct {
	Limit   uint32 `json:"limit"`
	Status  string `json:"status"`
	SortDir string `json:"sort_dir"`
	LastID  string `json:"last_id"`
}

type review struct {
	ID           string `json:"id"`
	SKU          int64  `json:"sku"`
	Text         string `json:"text"`
	Rating       int    `json:"rating"`
	PhotosAmount int    `json:"photos_amount"`
	VideosAmount int    `json:"videos_amount"`
	PublishedAt  string `json:"published_at"`
	Status       string `json:"status"`
}

type reviewListResponse struct {
	HasNext bool     `json:"has_next"`
	LastID  string   `json:"last_id"`
	Reviews []review `json:"reviews"`
}

type answerCreateRequest struct {
	QuestionID string `json:"question_id"`
	SKU        int64  `json:"sku"`
	Text       string `json:"text"`
}

type commentCreateRequest struct {
	ReviewID              string `json:"review_id"`
	Text                  string `json:"text"`
	ParentCommentID       string `json:"parent_comment_id"`
	MarkReviewAsProcessed bool   `json:"mark_review_as_processed"`
}

type productListRequest struct {
	Filter struct {
		Visibility string `json:"visibility"`
	} `json:"filter"`
	Limit  int    `json:"limit"`
	LastID string `json:"last_id"`
}

type productListResponse struct {
	Result struct {
		Items []struct {
			ProductID int64  `json:"product_id"`
			OfferID   string `json:"offer_id"`
		} `json:"items"`
		Total  int    `json:"total"`
		LastID string `json:"last_id"`
	} `json:"result"`
}

type productInfoRequest struct {
	OfferID   []string `json:"offer_id"`
	ProductID []int64  `json:"product_id"`
	SKU       []int64  `json:"sku"`
}

type productInfo struct {
	ID                    int64  `json:"id"`
	SKU                   int64  `json:"sku"`
	OfferID               string `json:"offer_id"`
	Name                  string `json:"name"`
	MarketingPrice        string `json:"marketing_price"`
	CurrencyCode          string `json:"currency_code"`
	DescriptionCategoryID int64  `json:"description_category_id"`
	TypeID                int64  `json:"type_id"`
}

type productInfoResponse struct {
	Items []productInfo `json:"items"`
}

type descriptionResponse struct {
	Result struct {
		ID          int64  `json:"id"`
		Description string `json:"description"`
	} `json:"result"`
}

type attributesRequest struct {
	Filter struct {
		SKU []int64 `json:"sku"`
	} `json:"filter"`
	Limit  int    `json:"limit"`
	LastID string `json:"last_id"`
}

type attributeValue struct {
	DictionaryValueID int64  `json:"dictionary_value_id"`
	Value             string `json:"value"`
}

type productAttribute struct {
	ID     int64            `json:"id"`
	Values []attributeValue `json:"values"`
}

type productAttributes struct {
	Weight                float64            `json:"weight"`
	WeightUnit            string             `json:"weight_unit"`
	Height                float64            `json:"height"`
	Width                 float64            `json:"width"`
	Depth                 float64            `json:"depth"`
	DimensionUnit         string             `json:"dimension_unit"`
	DescriptionCategoryID int64              `json:"description_category_id"`
	TypeID                int64              `json:"type_id"`
	Attributes            []productAttribute `json:"attributes"`
}

type attributesResponse struct {
	Result []productAttributes `json:"result"`
}

type categoryAttributesRequest struct {
	DescriptionCategoryID int64  `json:"description_category_id"`
	Language              string `json:"language"`
	TypeID                int64  `json:"type_id"`
}

type categoryAttribute struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type categoryAttributesResponse struct {
	Result []categoryAttribute `json:"result"`
}
