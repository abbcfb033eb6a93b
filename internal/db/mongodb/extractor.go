package mongodb

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mlingest/internal/domain"
)

// Extractor materializes MongoDB collections as datasets. It implements
// domain.DataExtractor.
type Extractor struct {
	client *Client
	logger *slog.Logger
}

// NewExtractor creates an Extractor bound to a client.
func NewExtractor(client *Client, logger *slog.Logger) *Extractor {
	return &Extractor{client: client, logger: logger}
}

// ExportDataset returns every document of the named collection as a dataset,
// in the store's default cursor order. A full collection scan — no filter,
// no projection, no pagination.
func (e *Extractor) ExportDataset(ctx context.Context, collection, database string) (*domain.Dataset, error) {
	if err := e.client.Connect(ctx); err != nil {
		return nil, err
	}

	cur, err := e.client.Database(database).Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, domain.ErrExtraction(err, "find all documents in %q", collection)
	}
	defer cur.Close(ctx)

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, domain.ErrExtraction(err, "iterate cursor for %q", collection)
	}

	ds := datasetFromDocuments(docs)
	e.logger.Info("collection exported", "collection", collection, "rows", ds.NumRows(), "columns", ds.NumColumns())
	return ds, nil
}

// datasetFromDocuments builds a dataset from raw documents. Columns are
// ordered by first appearance across the documents; field values are
// normalized to the dataset value types.
func datasetFromDocuments(docs []bson.M) *domain.Dataset {
	ds := domain.NewDataset(nil)
	seen := make(map[string]bool)
	for _, doc := range docs {
		row := make(domain.Row, len(doc))
		for k, v := range doc {
			if !seen[k] {
				seen[k] = true
				ds.Columns = append(ds.Columns, k)
			}
			row[k] = normalizeValue(v)
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds
}

// normalizeValue maps BSON decode types onto the dataset value types.
func normalizeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case nil, bool, int64, float64, string:
		return t
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case float32:
		return float64(t)
	case primitive.ObjectID:
		return t.Hex()
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.Decimal128:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}
