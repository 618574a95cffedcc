package persistence

import (
	"fmt"
	"time"
)

// documentSchema строка таблицы documents: одна коллекция целиком.
type documentSchema struct {
	Collection string    `db:"collection"`
	Body       []byte    `db:"body"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (s documentSchema) toDocuments() (Documents, error) {
	docs := Documents{}

	if len(s.Body) == 0 {
		return docs, nil
	}

	if err := json.Unmarshal(s.Body, &docs); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return docs, nil
}

func newDocumentSchema(collection string, docs Documents, now time.Time) (documentSchema, error) {
	if docs == nil {
		docs = Documents{}
	}

	body, err := json.Marshal(docs)
	if err != nil {
		return documentSchema{}, fmt.Errorf("json.Marshal: %w", err)
	}

	return documentSchema{
		Collection: collection,
		Body:       body,
		UpdatedAt:  now,
	}, nil
}
