package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore is the production RecordStore backed by Cloud Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) GetAll(ctx context.Context, collection string) ([]Record, error) {
	return collect(s.client.Collection(collection).Documents(ctx))
}

func (s *FirestoreStore) Get(ctx context.Context, collection, id string) (Record, error) {
	doc, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	return Record{ID: doc.Ref.ID, Data: doc.Data()}, nil
}

func (s *FirestoreStore) Create(ctx context.Context, collection string, fields map[string]interface{}) (Record, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, translateSentinels(fields))
	if err != nil {
		return Record{}, err
	}
	return Record{ID: ref.ID, Data: fields}, nil
}

func (s *FirestoreStore) Set(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	_, err := s.client.Collection(collection).Doc(id).Set(ctx, translateSentinels(fields))
	return err
}

func (s *FirestoreStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	_, err := s.client.Collection(collection).Doc(id).Update(ctx, fieldUpdates(fields))
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}

func (s *FirestoreStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.client.Collection(collection).Doc(id).Delete(ctx)
	return err
}

func (s *FirestoreStore) QueryEqual(ctx context.Context, collection, field string, value interface{}) ([]Record, error) {
	return collect(s.client.Collection(collection).Where(field, "==", value).Documents(ctx))
}

func (s *FirestoreStore) Transact(ctx context.Context, fn func(tx Tx) error) error {
	return s.client.RunTransaction(ctx, func(ctx context.Context, t *firestore.Transaction) error {
		return fn(&firestoreTx{client: s.client, tx: t})
	})
}

type firestoreTx struct {
	client *firestore.Client
	tx     *firestore.Transaction
}

func (t *firestoreTx) Get(collection, id string) (Record, error) {
	doc, err := t.tx.Get(t.client.Collection(collection).Doc(id))
	if status.Code(err) == codes.NotFound {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	return Record{ID: doc.Ref.ID, Data: doc.Data()}, nil
}

func (t *firestoreTx) Update(collection, id string, fields map[string]interface{}) error {
	err := t.tx.Update(t.client.Collection(collection).Doc(id), fieldUpdates(fields))
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}

func (t *firestoreTx) Delete(collection, id string) error {
	return t.tx.Delete(t.client.Collection(collection).Doc(id))
}

func collect(iter *firestore.DocumentIterator) ([]Record, error) {
	defer iter.Stop()
	var records []Record
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, Record{ID: doc.Ref.ID, Data: doc.Data()})
	}
	return records, nil
}

// fieldUpdates converts a merge map into Firestore update paths, so a
// missing document surfaces as NotFound instead of being created.
func fieldUpdates(fields map[string]interface{}) []firestore.Update {
	updates := make([]firestore.Update, 0, len(fields))
	for k, v := range fields {
		if _, ok := v.(serverTimestamp); ok {
			v = firestore.ServerTimestamp
		}
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}
	return updates
}

// translateSentinels swaps the store-level timestamp sentinel for the
// Firestore one without mutating the caller's map.
func translateSentinels(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if _, ok := v.(serverTimestamp); ok {
			out[k] = firestore.ServerTimestamp
			continue
		}
		out[k] = v
	}
	return out
}
