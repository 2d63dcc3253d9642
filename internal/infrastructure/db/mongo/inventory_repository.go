package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chiraitori/farm-management-api/internal/core/domain"
	"github.com/chiraitori/farm-management-api/internal/core/ports"
)

const collectionInventory = "inventory"

type InventoryRepository struct {
	col *mongo.Collection
}

func NewInventoryRepository(db *mongo.Database) *InventoryRepository {
	return &InventoryRepository{col: db.Collection(collectionInventory)}
}

// mongoEntry is the stored document shape. Upload dates persist as BSON UTC
// datetimes — the one canonical representation used by the create, update,
// and calendar-read paths alike.
type mongoEntry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	FarmID     primitive.ObjectID `bson:"farm_id"`
	Items      []domain.LineItem  `bson:"items"`
	UploadDate time.Time          `bson:"upload_date"`
	UpdatedBy  string             `bson:"updated_by,omitempty"`
	UpdatedAt  *time.Time         `bson:"updated_at,omitempty"`
}

func (me *mongoEntry) toDomain() *domain.InventoryEntry {
	return &domain.InventoryEntry{
		ID:         me.ID.Hex(),
		FarmID:     me.FarmID.Hex(),
		Items:      me.Items,
		UploadDate: me.UploadDate.UTC(),
		UpdatedBy:  me.UpdatedBy,
		UpdatedAt:  me.UpdatedAt,
	}
}

func (r *InventoryRepository) Insert(ctx context.Context, e *domain.InventoryEntry) (*domain.InventoryEntry, error) {
	fid, err := primitive.ObjectIDFromHex(e.FarmID)
	if err != nil {
		return nil, domain.ErrFarmNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoEntry{
		FarmID:     fid,
		Items:      e.Items,
		UploadDate: e.UploadDate.UTC(),
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert inventory entry: %w", err)
	}

	created := *e
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	created.UploadDate = doc.UploadDate
	return &created, nil
}

// UpdateByID applies the reconciliation payload in one atomic
// find-and-modify, returning the new document. Fields absent from upd keep
// their stored values, which is how an update without an explicit upload
// date preserves the original one.
func (r *InventoryRepository) UpdateByID(ctx context.Context, id string, upd ports.EntryUpdate) (*domain.InventoryEntry, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEntryNotFound
	}
	return r.findOneAndUpdate(ctx, bson.M{"_id": oid}, upd, nil)
}

// UpdateByFarm targets the farm's newest entry so the fallback path stays
// deterministic when a farm has uploaded more than once.
func (r *InventoryRepository) UpdateByFarm(ctx context.Context, farmID string, upd ports.EntryUpdate) (*domain.InventoryEntry, error) {
	fid, err := primitive.ObjectIDFromHex(farmID)
	if err != nil {
		return nil, domain.ErrEntryNotFound
	}
	sort := bson.D{{Key: "upload_date", Value: -1}}
	return r.findOneAndUpdate(ctx, bson.M{"farm_id": fid}, upd, sort)
}

func (r *InventoryRepository) findOneAndUpdate(ctx context.Context, filter bson.M, upd ports.EntryUpdate, sort bson.D) (*domain.InventoryEntry, error) {
	set := bson.M{
		"items":      upd.Items,
		"updated_at": upd.UpdatedAt.UTC(),
	}
	if upd.UpdatedBy != "" {
		set["updated_by"] = upd.UpdatedBy
	}
	if upd.UploadDate != nil {
		set["upload_date"] = upd.UploadDate.UTC()
	}
	if upd.FarmID != nil {
		fid, err := primitive.ObjectIDFromHex(*upd.FarmID)
		if err != nil {
			return nil, domain.ErrFarmNotFound
		}
		set["farm_id"] = fid
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if sort != nil {
		opts = opts.SetSort(sort)
	}

	var me mongoEntry
	err := r.col.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&me)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, fmt.Errorf("update inventory entry: %w", err)
	}
	return me.toDomain(), nil
}

// FindRange returns entries with upload_date in [from, to] in natural
// (insertion) order, which is stable for a given query.
func (r *InventoryRepository) FindRange(ctx context.Context, from, to time.Time) ([]*domain.InventoryEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"upload_date": bson.M{
		"$gte": from.UTC(),
		"$lte": to.UTC(),
	}}

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find inventory range: %w", err)
	}
	defer cur.Close(ctx)

	var entries []*domain.InventoryEntry
	for cur.Next(ctx) {
		var me mongoEntry
		if err := cur.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode inventory entry: %w", err)
		}
		entries = append(entries, me.toDomain())
	}
	return entries, cur.Err()
}

func (r *InventoryRepository) DeleteByFarm(ctx context.Context, farmID string) error {
	fid, err := primitive.ObjectIDFromHex(farmID)
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = r.col.DeleteMany(ctx, bson.M{"farm_id": fid})
	if err != nil {
		return fmt.Errorf("delete farm inventory: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes backing the farm-fallback update and the
// calendar range scan.
func (r *InventoryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "farm_id", Value: 1}, {Key: "upload_date", Value: -1}}},
		{Keys: bson.D{{Key: "upload_date", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
