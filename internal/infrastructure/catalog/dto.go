package catalog

import (
	"strconv"

	"card_tracker/internal/domain/entity"
	"card_tracker/internal/domain/value"
)

const releaseYearLen = 4

type envelope struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error-message"`
}

type productsResponse struct {
	envelope
	Products []product `json:"products"`
}

type productResponse struct {
	envelope
	Product *product `json:"product"`
	product
}

type product struct {
	ID              flexString `json:"id"`
	ProductName     string     `json:"product-name"`
	ConsoleName     string     `json:"console-name"`
	Genre           string     `json:"genre"`
	ReleaseDate     string     `json:"release-date"`
	LoosePrice      price      `json:"loose-price"`
	ManualOnlyPrice price      `json:"manual-only-price"`
	GradedPrice     price      `json:"graded-price"`
	NewPrice        price      `json:"new-price"`
	CIBPrice        price      `json:"cib-price"`
	BGS10Price      price      `json:"bgs-10-price"`
	Condition17     price      `json:"condition-17-price"`
	Condition18     price      `json:"condition-18-price"`
	SalesVolume     flexInt    `json:"sales-volume"`
}

func (p product) toEntity() entity.Card {
	return entity.Card{
		ID:          value.CardID(p.ID),
		Name:        p.ProductName,
		Set:         p.ConsoleName,
		Genre:       p.Genre,
		ReleaseDate: p.ReleaseDate,
		Year:        releaseYear(p.ReleaseDate),
		Prices: entity.Prices{
			Ungraded: int64(p.LoosePrice),
			PSA10:    int64(p.ManualOnlyPrice),
			Grade9:   int64(p.GradedPrice),
			Grade8:   int64(p.NewPrice),
			Grade7:   int64(p.CIBPrice),
			BGS10:    int64(p.BGS10Price),
			CGC10:    int64(p.Condition17),
			SGC10:    int64(p.Condition18),
		},
		SalesVolume: int(p.SalesVolume),
	}
}

func releaseYear(releaseDate string) int {
	if len(releaseDate) < releaseYearLen {
		return 0
	}

	year, err := strconv.Atoi(releaseDate[:releaseYearLen])
	if err != nil {
		return 0
	}

	return year
}
