package wb

import "encoding/json"

type productDetails struct {
	NmID        int64  `json:"nmId"`
	ProductName string `json:"productName"`
}

type question struct {
	ID             string         `json:"id"`
	Text           string         `json:"text"`
	CreatedDate    string         `json:"createdDate"`
	State          string         `json:"state"`
	ProductDetails productDetails `json:"productDetails"`
}

type questionList struct {
	CountUnanswered int        `json:"countUnanswered"`
	CountArchive    int        `json:"countArchive"`
	Questions       []question `json:"questions"`
}

type photoLink struct {
	FullSize string `json:"fullSize"`
	MiniSize string `json:"miniSize"`
}

type video struct {
	PreviewImage string `json:"previewImage"`
	Link         string `json:"link"`
	DurationSec  int    `json:"durationSec"`
}

type review struct {
	ID               string         `json:"id"`
	Text             string         `json:"text"`
	Pros             string         `json:"pros"`
	Cons             string         `json:"cons"`
	ProductValuation int            `json:"productValuation"`
	CreatedDate      string         `json:"createdDate"`
	ProductDetails   productDetails `json:"productDetails"`
	Video            *video         `json:"video"`
	PhotoLinks       []photoLink    `json:"photoLinks"`
	UserName         string         `json:"userName"`
}

type reviewList struct {
	CountUnanswered int      `json:"countUnanswered"`
	CountArchive    int      `json:"countArchive"`
	Feedbacks       []review `json:"feedbacks"`
}

type answerQuestionParams struct {
	ID     string `json:"id"`
	Answer struct {
		Text string `json:"text"`
	} `json:"answer"`
	State string `json:"state"`
}

type answerReviewParams struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// content-api

type cardsCursor struct {
	Limit     int    `json:"limit"`
	UpdatedAt string `json:"updatedAt,omitempty"`
	NmID      int64  `json:"nmID,omitempty"`
}

type cardsFilter struct {
	WithPhoto  int    `json:"withPhoto"`
	TextSearch string `json:"textSearch,omitempty"`
}

type cardsRequest struct {
	Settings struct {
		Cursor cardsCursor `json:"cursor"`
		Filter cardsFilter `json:"filter"`
	} `json:"settings"`
}

type characteristic struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value"`
}

type dimensions struct {
	Length       float64 `json:"length"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	WeightBrutto float64 `json:"weightBrutto"`
}

type photo struct {
	Big string `json:"big"`
}

type card struct {
	NmID            int64            `json:"nmID"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Brand           string           `json:"brand"`
	SubjectName     string           `json:"subjectName"`
	Characteristics []characteristic `json:"characteristics"`
	Dimensions      *dimensions      `json:"dimensions"`
	Photos          []photo          `json:"photos"`
}

type cardsResponse struct {
	Cards  []card `json:"cards"`
	Cursor struct {
		UpdatedAt string `json:"updatedAt"`
		NmID      int64  `json:"nmID"`
		Total     int    `json:"total"`
	} `json:"cursor"`
}

// discounts-prices-api

type sizePrice struct {
	Price           float64 `json:"price"`
	DiscountedPrice float64 `json:"discountedPrice"`
}

type goods struct {
	NmID                int64       `json:"nmID"`
	Sizes               []sizePrice `json:"sizes"`
	CurrencyIsoCode4217 string      `json:"currencyIsoCode4217"`
	Discount            int         `json:"discount"`
}

type goodsList struct {
	ListGoods []goods `json:"listGoods"`
}
