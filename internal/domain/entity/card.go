package entity

import "card_tracker/internal/domain/value"

// Prices цены карточки по состояниям, в центах. Ноль означает "нет данных".
type Prices struct {
	Ungraded int64 `json:"ungraded"`
	PSA10    int64 `json:"psa10"`
	Grade9   int64 `json:"grade9"`
	Grade8   int64 `json:"grade8"`
	Grade7   int64 `json:"grade7"`
	BGS10    int64 `json:"bgs10"`
	CGC10    int64 `json:"cgc10"`
	SGC10    int64 `json:"sgc10"`
}

type Card struct {
	ID          value.CardID `json:"id"`
	Name        string       `json:"name"`
	Player      string       `json:"player,omitempty"`
	Set         string       `json:"set,omitempty"`
	Genre       string       `json:"genre,omitempty"`
	ReleaseDate string       `json:"releaseDate,omitempty"`
	Year        int          `json:"year,omitempty"`
	Prices      Prices       `json:"prices"`
	SalesVolume int          `json:"salesVolume,omitempty"`
}

// Candidate карточка из каталога с рыночной ценой, ещё не оценённая.
type Candidate struct {
	Card             Card
	MarketValueCents int64
}

// NewCandidate берёт за рыночную цену ungraded (loose) цену карточки.
func NewCandidate(card Card) Candidate {
	return Candidate{
		Card:             card,
		MarketValueCents: card.Prices.Ungraded,
	}
}

func NewCandidates(cards []Card) []Candidate {
	result := make([]Candidate, 0, len(cards))

	for _, card := range cards {
		result = append(result, NewCandidate(card))
	}

	return result
}
